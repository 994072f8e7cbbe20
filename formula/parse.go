// SPDX-License-Identifier: MIT

package formula

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// A call is only recognized at the start of a term, so "concat(x)" or
// "myspl(x)" never match.
var (
	catCallRe      = regexp.MustCompile(`(^|[~+\-*:(])cat\(([^()]*)\)`)
	splCallRe      = regexp.MustCompile(`(^|[~+\-*:(])spl\(([^()]*)\)`)
	splBeforeOpRe  = regexp.MustCompile(`(^|[~+\-*:(])spl\([^()]*\)[*:]`)
	splAfterOpRe   = regexp.MustCompile(`[*:]spl\(`)
	splTermRe      = regexp.MustCompile(`^spl\([^()]*\)$`)
	identifierRe   = regexp.MustCompile(`^[\p{L}_.][\p{L}\p{N}_.]*$`)
	leftoverCallRe = regexp.MustCompile(`(^|[~+\-*:(])(spl|cat)\(`)
)

// ParseOption configures Parse.
type ParseOption func(*parseConfig)

type parseConfig struct {
	categorical []string
	splines     []SplineSpec
}

// WithCategorical adds externally declared categorical predictors. They are
// merged with cat() declarations; duplicates are harmless.
// Panics on an empty name.
func WithCategorical(names ...string) ParseOption {
	for _, n := range names {
		if n == "" {
			panic("formula: WithCategorical(\"\")")
		}
	}
	return func(c *parseConfig) {
		c.categorical = append(c.categorical, names...)
	}
}

// WithSplines adds externally declared spline predictors. They are merged
// with spl() declarations; exact duplicates are harmless.
// Panics on an empty variable or K < 1.
func WithSplines(specs ...SplineSpec) ParseOption {
	for _, s := range specs {
		if s.Variable == "" || s.K < 1 {
			panic("formula: WithSplines: variable must be non-empty and K >= 1")
		}
	}
	return func(c *parseConfig) {
		c.splines = append(c.splines, specs...)
	}
}

// Parse interprets a formula string.
//
// Implementation:
//   - Stage 1: strip all whitespace.
//   - Stage 2: reject spl() next to "*" or ":" (spline interactions).
//   - Stage 3: extract cat(X) declarations, rewrite them to X.
//   - Stage 4: extract spl(X,k) declarations and drop their "+" terms.
//   - Stage 5: merge with WithCategorical / WithSplines declarations.
//   - Stage 6: expand the remaining algebra with Expand.
//
// An empty right-hand side after spline removal means intercept only,
// so "y~spl(x,5)" models an intercept plus the spline.
//
// Errors: ErrFormula (wrapped with the formula text).
func Parse(text string, opts ...ParseOption) (*Formula, error) {
	cfg := parseConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	// Stage 1: whitespace carries no meaning.
	s := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)

	// Stage 2: splines are not supported inside interactions.
	if splBeforeOpRe.MatchString(s) || splAfterOpRe.MatchString(s) {
		return nil, formulaErrorf(text, "spline terms cannot be part of an interaction")
	}

	// Stage 3: cat(X) → X.
	var categorical []string
	for _, m := range catCallRe.FindAllStringSubmatch(s, -1) {
		name := m[2]
		if !identifierRe.MatchString(name) {
			return nil, formulaErrorf(text, "cat() expects a single predictor name, got %q", name)
		}
		categorical = appendUnique(categorical, name)
	}
	s = catCallRe.ReplaceAllString(s, "${1}${2}")

	// Stage 4: spl(X,k) declarations, removed from the linear part.
	var splines []SplineSpec
	for _, m := range splCallRe.FindAllStringSubmatch(s, -1) {
		spec, err := parseSplineArgs(text, m[2])
		if err != nil {
			return nil, err
		}
		if splines, err = appendSpline(text, splines, spec); err != nil {
			return nil, err
		}
	}
	linear, err := dropSplineTerms(text, s)
	if err != nil {
		return nil, err
	}
	if leftoverCallRe.MatchString(linear) {
		return nil, formulaErrorf(text, "spl()/cat() must wrap a single predictor and spl() must be a '+' term")
	}

	// Stage 5: merge external declarations.
	for _, name := range cfg.categorical {
		categorical = appendUnique(categorical, name)
	}
	for _, spec := range cfg.splines {
		if splines, err = appendSpline(text, splines, spec); err != nil {
			return nil, err
		}
	}

	// Stage 6: linear-term expansion.
	exp, err := Expand(linear)
	if err != nil {
		return nil, err
	}

	return &Formula{
		Text:        text,
		Linear:      linear,
		Response:    exp.Response,
		Predictors:  exp.Predictors,
		Terms:       exp.Terms,
		Intercept:   exp.Intercept,
		Categorical: categorical,
		Splines:     splines,
	}, nil
}

// parseSplineArgs validates "X,k".
func parseSplineArgs(text, args string) (SplineSpec, error) {
	parts := strings.Split(args, ",")
	if len(parts) != 2 {
		return SplineSpec{}, formulaErrorf(text, "spl() expects exactly two arguments (variable, k), got %q", args)
	}
	if !identifierRe.MatchString(parts[0]) {
		return SplineSpec{}, formulaErrorf(text, "spl() variable %q is not a predictor name", parts[0])
	}
	k, err := strconv.Atoi(parts[1])
	if err != nil || k < 1 {
		return SplineSpec{}, formulaErrorf(text, "spl() basis count %q must be a positive integer", parts[1])
	}
	return SplineSpec{Variable: parts[0], K: k}, nil
}

// appendSpline adds spec unless an identical one exists. The same variable
// with a different basis count is a conflict.
func appendSpline(text string, list []SplineSpec, spec SplineSpec) ([]SplineSpec, error) {
	for _, s := range list {
		if s.Variable != spec.Variable {
			continue
		}
		if s.K != spec.K {
			return nil, formulaErrorf(text, "spline %q declared with %d and %d basis functions", s.Variable, s.K, spec.K)
		}
		return list, nil
	}
	return append(list, spec), nil
}

// dropSplineTerms removes every top-level "+spl(...)" summand from the
// right-hand side. A right-hand side left empty becomes "1".
func dropSplineTerms(text, s string) (string, error) {
	idx := strings.Index(s, "~")
	if idx < 0 {
		// Expand reports the missing "~".
		return s, nil
	}
	lhs, rhs := s[:idx+1], s[idx+1:]

	var kept []string
	for _, sm := range splitSummands(rhs) {
		body := strings.TrimLeft(sm, "+-")
		if !splTermRe.MatchString(body) {
			kept = append(kept, sm)
			continue
		}
		if strings.HasPrefix(sm, "-") {
			return "", formulaErrorf(text, "spline terms cannot be removed with '-'")
		}
	}
	if len(kept) == 0 {
		return lhs + "1", nil
	}
	kept[0] = strings.TrimPrefix(kept[0], "+")
	return lhs + strings.Join(kept, ""), nil
}

// splitSummands splits at top-level "+" and "-", each piece keeping its
// leading sign.
func splitSummands(rhs string) []string {
	var (
		out   []string
		depth int
		start int
	)
	for i, r := range rhs {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case '+', '-':
			if depth == 0 && i > start {
				out = append(out, rhs[start:i])
				start = i
			}
		}
	}
	if start < len(rhs) {
		out = append(out, rhs[start:])
	}
	return out
}

func appendUnique(list []string, s string) []string {
	if contains(list, s) {
		return list
	}
	return append(list, s)
}
