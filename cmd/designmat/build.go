// SPDX-License-Identifier: MIT

package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/katalvlaran/designmat/design"
	"github.com/katalvlaran/designmat/model"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"
)

func newBuildCmd(logLevel *string) *cobra.Command {
	var eventsPath, configPath, format string
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a design matrix from an event file and a model config",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(cmd.ErrOrStderr(), *logLevel)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			opts, err := cfg.options(logger)
			if err != nil {
				return err
			}
			evts, err := loadEvents(eventsPath)
			if err != nil {
				return err
			}
			rec, err := design.BuildGroups(evts, cfg.Formulas, cfg.EventTypes, opts...)
			if err != nil {
				return err
			}

			switch format {
			case "summary":
				return writeSummary(cmd.OutOrStdout(), rec)
			case "csv":
				return writeCSV(cmd.OutOrStdout(), rec)
			default:
				return fmt.Errorf("unknown format %q (want summary or csv)", format)
			}
		},
	}
	cmd.Flags().StringVar(&eventsPath, "events", "", "event file (YAML or JSON list of attribute maps with \"type\")")
	cmd.Flags().StringVar(&configPath, "config", "", "model config file (YAML or JSON)")
	cmd.Flags().StringVar(&format, "format", "summary", "output format (summary, csv)")
	_ = cmd.MarkFlagRequired("events")
	_ = cmd.MarkFlagRequired("config")
	return cmd
}

// writeSummary prints one line per column.
func writeSummary(w io.Writer, rec *design.Record) error {
	r, c := rec.Rows(), rec.Cols()
	fmt.Fprintf(w, "%d rows × %d columns\n", r, c)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tcolumn\tvariable\ttype\tgroup")
	vars := rec.VariableNames()
	types := rec.VariableTypes()
	groups := rec.ColumnToEventGroup()
	colVars := rec.ColumnToVariable()
	for j, name := range rec.ColumnNames() {
		v := colVars[j]
		group := strconv.Itoa(groups[j])
		if groups[j] == model.NoGroup {
			group = "-"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", j+1, name, vars[v-1], types[v-1], group)
	}
	return tw.Flush()
}

// writeCSV prints the column names followed by the matrix rows.
func writeCSV(w io.Writer, rec *design.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(rec.ColumnNames()); err != nil {
		return err
	}
	x := rec.Matrix()
	record := make([]string, rec.Cols())
	for i := 0; i < rec.Rows(); i++ {
		for j, v := range mat.Row(nil, i, x) {
			record[j] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
