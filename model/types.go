// SPDX-License-Identifier: MIT

package model

import "strings"

const (
	// Intercept is the reserved name of the constant column and its variable.
	Intercept = "(intercept)"

	// InteractionSep joins the components of an interaction name ("x:cond").
	InteractionSep = ":"

	// LevelSep joins a predictor and one of its levels ("cond_B").
	LevelSep = "_"

	// NoVariable marks a column that is not attached to any variable.
	NoVariable = 0

	// NoGroup marks a column that no parsed event group produced.
	NoGroup = 0
)

// VarType classifies a modeled variable.
type VarType int

const (
	// Unknown is used for columns appended after the build.
	Unknown VarType = iota
	// InterceptVar is the constant term.
	InterceptVar
	// Continuous is a numeric predictor entered linearly.
	Continuous
	// Categorical is a coded (reference or effects) predictor.
	Categorical
	// Interaction is a product of two or more predictors.
	Interaction
	// Spline is a non-linear basis expansion of a numeric predictor.
	Spline
)

var varTypeNames = [...]string{
	Unknown:      "unknown",
	InterceptVar: "intercept",
	Continuous:   "continuous",
	Categorical:  "categorical",
	Interaction:  "interaction",
	Spline:       "spline",
}

// String returns the lower-case type name.
func (t VarType) String() string {
	if t < 0 || int(t) >= len(varTypeNames) {
		return varTypeNames[Unknown]
	}
	return varTypeNames[t]
}

// Factor is one component of a column: a predictor and, for coded or basis
// columns, the level (or basis label) this column stands for.
type Factor struct {
	Predictor string
	Level     string // empty for continuous predictors and the intercept
}

// String renders the factor as "pred" or "pred_level".
func (f Factor) String() string {
	if f.Level == "" {
		return f.Predictor
	}
	return f.Predictor + LevelSep + f.Level
}

// Column describes one matrix column.
//
// Var and Group are 1-based; NoVariable / NoGroup (0) are sentinels and are
// never shifted when records are combined.
type Column struct {
	Factors []Factor
	Var     int
	Group   int
}

// Name renders the column name from its factors.
func (c Column) Name() string {
	parts := make([]string, len(c.Factors))
	for i, f := range c.Factors {
		parts[i] = f.String()
	}
	return strings.Join(parts, InteractionSep)
}

// Clone returns a deep copy of the column.
func (c Column) Clone() Column {
	out := c
	out.Factors = append([]Factor(nil), c.Factors...)
	return out
}

// Variable describes one modeled variable.
// Predictors holds the components: one for main effects, splines and the
// intercept (Intercept), two or more for interactions.
type Variable struct {
	Predictors []string
	Type       VarType
}

// Name renders the variable name ("x", "x:cond", "(intercept)").
func (v Variable) Name() string {
	return strings.Join(v.Predictors, InteractionSep)
}

// Clone returns a deep copy of the variable.
func (v Variable) Clone() Variable {
	out := v
	out.Predictors = append([]string(nil), v.Predictors...)
	return out
}

// Rename returns a copy of the column with every factor predictor mapped
// through fn. Levels are left as they are.
func (c Column) Rename(fn func(string) string) Column {
	out := c.Clone()
	for i := range out.Factors {
		out.Factors[i].Predictor = fn(out.Factors[i].Predictor)
	}
	return out
}

// Rename returns a copy of the variable with every component mapped through fn.
func (v Variable) Rename(fn func(string) string) Variable {
	out := v.Clone()
	for i := range out.Predictors {
		out.Predictors[i] = fn(out.Predictors[i])
	}
	return out
}
