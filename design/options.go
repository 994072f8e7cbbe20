// SPDX-License-Identifier: MIT

// options.go: functional options for Build and BuildGroups.
//
// Contract:
//   • Options are functional (type Option func(*config)).
//   • Option constructors validate and PANIC on meaningless inputs
//     (nil logger/service, undefined spacing or schema). Builds never panic.
//   • Later options override earlier ones; list options accumulate.

package design

import (
	"log/slog"

	"github.com/katalvlaran/designmat/coding"
	"github.com/katalvlaran/designmat/formula"
	"github.com/katalvlaran/designmat/spline"
)

// Option customizes a build.
type Option func(*config)

// config is the single source of truth for build knobs.
type config struct {
	categorical []string
	splines     []formula.SplineSpec
	spacing     spline.Spacing
	schema      coding.Schema
	service     spline.Service
	logger      *slog.Logger
}

// newConfig applies opts over the documented defaults:
// no forced categoricals, quantile spline spacing, reference coding,
// spline.BSpline{} as basis service, slog.Default() for advisories.
func newConfig(opts ...Option) config {
	cfg := config{
		spacing: spline.DefaultSpacing,
		schema:  coding.DefaultSchema,
		service: spline.BSpline{},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithCategorical forces predictors to categorical coding, in addition to
// cat() declarations in the formula. Panics on an empty name.
func WithCategorical(names ...string) Option {
	for _, n := range names {
		if n == "" {
			panic("design: WithCategorical(\"\")")
		}
	}
	return func(c *config) {
		c.categorical = append(c.categorical, names...)
	}
}

// WithSplines declares spline predictors in addition to spl() terms.
// Panics on an empty variable or K < 1.
func WithSplines(specs ...formula.SplineSpec) Option {
	for _, s := range specs {
		if s.Variable == "" || s.K < 1 {
			panic("design: WithSplines: variable must be non-empty and K >= 1")
		}
	}
	return func(c *config) {
		c.splines = append(c.splines, specs...)
	}
}

// WithSplineSpacing selects the knot placement strategy. Panics on an
// undefined Spacing.
func WithSplineSpacing(s spline.Spacing) Option {
	if !s.Valid() {
		panic("design: WithSplineSpacing: undefined spacing")
	}
	return func(c *config) {
		c.spacing = s
	}
}

// WithCodingSchema selects reference or effects coding. Panics on an
// undefined Schema.
func WithCodingSchema(s coding.Schema) Option {
	if s != coding.Reference && s != coding.Effects {
		panic("design: WithCodingSchema: undefined schema")
	}
	return func(c *config) {
		c.schema = s
	}
}

// WithSplineService replaces the spline-basis service. Panics on nil.
func WithSplineService(svc spline.Service) Option {
	if svc == nil {
		panic("design: WithSplineService(nil)")
	}
	return func(c *config) {
		c.service = svc
	}
}

// WithLogger sets the logger for warnings (string columns promoted to
// categorical, NaN columns) and stage-level debug records. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("design: WithLogger(nil)")
	}
	return func(c *config) {
		c.logger = l
	}
}
