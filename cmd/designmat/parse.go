// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/katalvlaran/designmat/formula"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var categorical []string
	cmd := &cobra.Command{
		Use:   "parse <formula>",
		Short: "Show how a formula is interpreted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, c := range categorical {
				if c == "" {
					return fmt.Errorf("empty --categorical name")
				}
			}
			f, err := formula.Parse(args[0], formula.WithCategorical(categorical...))
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "response: %s\n", f.Response)
			fmt.Fprintf(w, "predictors: %v\n", f.Predictors)
			fmt.Fprintf(w, "categorical: %v\n", f.Categorical)
			fmt.Fprintf(w, "terms: %v\n", f.Terms)
			fmt.Fprintf(w, "splines: %v\n", f.Splines)
			fmt.Fprintf(w, "intercept: %v\n", f.Intercept)
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&categorical, "categorical", nil, "predictors to code as categorical")
	return cmd
}
