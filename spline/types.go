// SPDX-License-Identifier: MIT

package spline

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Spacing selects how breakpoints are placed over the data range.
type Spacing int

const (
	// Quantiles places breakpoints at evenly spaced sample quantiles.
	Quantiles Spacing = iota
	// Linear places breakpoints evenly between min and max.
	Linear
	// Log places breakpoints evenly in log10 space.
	Log
	// LogReverse mirrors Log so breakpoints crowd the upper end.
	LogReverse
)

// DefaultSpacing is used when no spacing is configured.
const DefaultSpacing = Quantiles

var spacingNames = map[Spacing]string{
	Quantiles:  "quantiles",
	Linear:     "linear",
	Log:        "log",
	LogReverse: "logreverse",
}

// String returns the lower-case spacing name.
func (s Spacing) String() string {
	if n, ok := spacingNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Spacing(%d)", int(s))
}

// Valid reports whether s is one of the defined strategies.
func (s Spacing) Valid() bool {
	_, ok := spacingNames[s]
	return ok
}

// ParseSpacing maps a case-insensitive name to a Spacing. "" is the default.
func ParseSpacing(name string) (Spacing, error) {
	if name == "" {
		return DefaultSpacing, nil
	}
	for s, n := range spacingNames {
		if strings.EqualFold(n, name) {
			return s, nil
		}
	}
	return DefaultSpacing, fmt.Errorf("%w: %q", ErrUnknownSpacing, name)
}

// Result is the output of a Service call.
type Result struct {
	// Basis is rows×k; rows listed in MissingRows are all zero.
	Basis *mat.Dense
	// Labels names each basis column (unique).
	Labels []string
	// MissingRows lists row indices whose input was NaN or infinite.
	MissingRows []int
	// Knots is the full (clamped) knot vector.
	Knots []float64
	// Breakpoints are the distinct-position knots placed by the spacing strategy.
	Breakpoints []float64
	// Order is the B-spline order (degree+1).
	Order int
}

// Service computes a spline basis for a predictor.
type Service interface {
	Basis(values []float64, k int, spacing Spacing) (*Result, error)
}

// ServiceFunc adapts a plain function to the Service interface.
type ServiceFunc func(values []float64, k int, spacing Spacing) (*Result, error)

// Basis calls f.
func (f ServiceFunc) Basis(values []float64, k int, spacing Spacing) (*Result, error) {
	return f(values, k, spacing)
}
