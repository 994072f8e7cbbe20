// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var logLevel string
	root := &cobra.Command{
		Use:   "designmat",
		Short: "designmat: design matrices for regression-based deconvolution",
		Long: `designmat turns experiment events and model formulas into the design
matrix of a regression-based deconvolution model.

Formulas use Wilkinson notation with two extensions: cat(x) forces x to be
categorical and spl(x,k) expands x into a k-column spline basis.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(newBuildCmd(&logLevel), newParseCmd())
	return root
}

// newLogger returns a text logger at the named level.
func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}
