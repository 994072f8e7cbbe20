// SPDX-License-Identifier: MIT

package formula

import (
	"sort"
	"strings"
)

// Term is one model component: a non-empty, ordered set of predictor names.
// A single predictor is a main effect; two or more form an interaction.
type Term []string

// IsInteraction reports whether the term involves more than one predictor.
func (t Term) IsInteraction() bool { return len(t) > 1 }

// String renders the term as "a:b".
func (t Term) String() string { return strings.Join(t, ":") }

// key identifies a term independent of predictor order (a:b == b:a).
func (t Term) key() string {
	s := append([]string(nil), t...)
	sort.Strings(s)
	return strings.Join(s, "\x00")
}

// SplineSpec declares a spline predictor with K basis functions.
type SplineSpec struct {
	Variable string
	K        int
}

// Expansion is the output of the linear-term expander.
type Expansion struct {
	Response   string
	Predictors []string // first-appearance order
	Terms      []Term   // main effects first, then by degree
	Intercept  bool
}

// Formula is a fully parsed model formula.
type Formula struct {
	// Text is the formula as given by the caller.
	Text string
	// Linear is the whitespace-free text handed to the expander
	// (cat() rewritten, spl() removed).
	Linear string

	Response    string
	Predictors  []string
	Terms       []Term
	Intercept   bool
	Categorical []string
	Splines     []SplineSpec
}

// IsCategorical reports whether name was declared categorical.
func (f *Formula) IsCategorical(name string) bool {
	for _, c := range f.Categorical {
		if c == name {
			return true
		}
	}
	return false
}

// SplineVariables returns the spline predictor names in declaration order.
func (f *Formula) SplineVariables() []string {
	out := make([]string, len(f.Splines))
	for i, s := range f.Splines {
		out[i] = s.Variable
	}
	return out
}

// Referenced returns every attribute name the formula needs: linear
// predictors first, then spline variables not already listed.
func (f *Formula) Referenced() []string {
	out := append([]string(nil), f.Predictors...)
	for _, s := range f.Splines {
		if !contains(out, s.Variable) {
			out = append(out, s.Variable)
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
