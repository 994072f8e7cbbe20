// SPDX-License-Identifier: MIT

package coding

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/designmat/events"
	"github.com/katalvlaran/designmat/formula"
	"github.com/katalvlaran/designmat/model"
)

// Input bundles what the coder needs.
type Input struct {
	// Table is projected onto the formula predictors and already masked.
	Table *events.Table
	// Keep marks modeled rows (len == Table.Rows()).
	Keep []bool
	// Terms and Intercept come from the parsed formula.
	Terms     []formula.Term
	Intercept bool
	// Categorical lists predictors to code as categorical.
	Categorical []string
	Schema      Schema
}

// CenteredMean is a mean removed from a continuous predictor (Effects only).
type CenteredMean struct {
	Predictor string
	Mean      float64
}

// LevelSet records the observed levels of a categorical predictor.
type LevelSet struct {
	Predictor string
	Levels    []string // sorted; Levels[0] is the reference
}

// Result is the coded part of a design matrix.
type Result struct {
	// X is rows×len(Columns); nil when no column was produced.
	X         *mat.Dense
	Columns   []model.Column
	Variables []model.Variable
	Means     []CenteredMean
	Levels    []LevelSet
	// MissingMainEffects lists predictors used in interactions without a
	// main-effect term of their own. They get no variable.
	MissingMainEffects []string
}

// subColumn is one coded column of a single predictor.
type subColumn struct {
	level  string
	values []float64
}

// Code builds the coded columns.
//
// Implementation:
//   - Stage 1: code every predictor used by a term (levels/means from kept rows).
//   - Stage 2: emit the intercept, then one variable per term; interactions
//     are products of their components' sub-columns.
//   - Stage 3: zero rows outside Keep.
//   - Stage 4: check that every column has a variable and every variable a column.
//
// Errors: ErrDegenerateColumn, ErrNameClash, ErrNotNumeric, events.ErrMixedType,
// events.ErrUnknownColumn.
//
// Complexity: O(R·C) for R rows and C produced columns.
func Code(in Input) (*Result, error) {
	rows := in.Table.Rows()
	isCat := make(map[string]bool, len(in.Categorical))
	for _, c := range in.Categorical {
		isCat[c] = true
	}

	// Stage 1: per-predictor coding, in order of first use.
	res := &Result{}
	coded := make(map[string][]subColumn)
	hasMain := make(map[string]bool)
	for _, term := range in.Terms {
		if len(term) == 1 {
			hasMain[term[0]] = true
		}
		for _, p := range term {
			if _, done := coded[p]; done {
				continue
			}
			var (
				subs []subColumn
				err  error
			)
			if isCat[p] {
				subs, err = codeCategorical(in, p, res)
			} else {
				subs, err = codeContinuous(in, p, res)
			}
			if err != nil {
				return nil, err
			}
			coded[p] = subs
		}
	}

	// Stage 2: assemble columns and variables.
	var data [][]float64
	if in.Intercept {
		ones := make([]float64, rows)
		for i := range ones {
			ones[i] = 1
		}
		res.Variables = append(res.Variables, model.Variable{Predictors: []string{model.Intercept}, Type: model.InterceptVar})
		res.Columns = append(res.Columns, model.Column{
			Factors: []model.Factor{{Predictor: model.Intercept}},
			Var:     len(res.Variables),
		})
		data = append(data, ones)
	}

	seenVar := make(map[string]bool)
	for _, term := range in.Terms {
		v := model.Variable{Predictors: append([]string(nil), term...), Type: termType(term, isCat)}
		key := termKey(term)
		if seenVar[key] {
			continue
		}
		seenVar[key] = true
		res.Variables = append(res.Variables, v)
		idx := len(res.Variables)

		if term.IsInteraction() {
			for _, p := range term {
				if !hasMain[p] {
					res.MissingMainEffects = appendUnique(res.MissingMainEffects, p)
				}
			}
		}

		for _, combo := range product(term, coded) {
			factors := make([]model.Factor, len(term))
			values := make([]float64, rows)
			for i := range values {
				values[i] = 1
			}
			for k, sc := range combo {
				factors[k] = model.Factor{Predictor: term[k], Level: sc.level}
				for i, x := range sc.values {
					values[i] *= x
				}
			}
			res.Columns = append(res.Columns, model.Column{Factors: factors, Var: idx})
			data = append(data, values)
		}
	}

	// Stage 3: rows outside the fit subset carry no information.
	for _, col := range data {
		for i := range col {
			if !in.Keep[i] {
				col[i] = 0
			}
		}
	}

	// Stage 4: one variable per column, at least one column per variable,
	// and no two columns with the same rendered name.
	if err := checkMapping(res); err != nil {
		return nil, err
	}
	if err := CheckNames(res.Columns); err != nil {
		return nil, err
	}

	if len(data) > 0 && rows > 0 {
		res.X = mat.NewDense(rows, len(data), nil)
		for j, col := range data {
			res.X.SetCol(j, col)
		}
	}
	return res, nil
}

// codeCategorical builds one column per non-reference level.
// Masked rows are 0, missing values NaN; under Effects the reference level
// is -1 in every column.
//
// Complexity: O(R·L) for R rows and L levels.
func codeCategorical(in Input, p string, res *Result) ([]subColumn, error) {
	kind, err := in.Table.Kind(p)
	if err != nil {
		return nil, err
	}
	vals, err := in.Table.Column(p)
	if err != nil {
		return nil, err
	}

	levels := observedLevels(vals, in.Keep, kind)
	res.Levels = append(res.Levels, LevelSet{Predictor: p, Levels: levels})
	if len(levels) < 2 {
		return nil, codingErrorf(ErrDegenerateColumn,
			"categorical predictor %q has %d observed level(s) %v; at least 2 are needed", p, len(levels), levels)
	}

	ref := levels[0]
	subs := make([]subColumn, 0, len(levels)-1)
	for _, lvl := range levels[1:] {
		col := make([]float64, len(vals))
		for i, v := range vals {
			switch {
			case !in.Keep[i]:
				col[i] = 0
			case v.IsMissing():
				col[i] = math.NaN()
			case v.Text() == lvl:
				col[i] = 1
			case v.Text() == ref && in.Schema == Effects:
				col[i] = -1
			default:
				col[i] = 0
			}
		}
		subs = append(subs, subColumn{level: lvl, values: col})
	}
	return subs, nil
}

// observedLevels returns the sorted distinct levels on kept rows.
// Numeric columns sort numerically, so "10" follows "9".
//
// Complexity: O(R + L·log L) for R rows and L distinct levels.
func observedLevels(vals []events.Value, keep []bool, kind events.ValueKind) []string {
	seen := make(map[string]bool)
	var nums []float64
	var strs []string
	for i, v := range vals {
		if !keep[i] || v.IsMissing() {
			continue
		}
		txt := v.Text()
		if seen[txt] {
			continue
		}
		seen[txt] = true
		if kind == events.KindNumeric {
			nums = append(nums, v.Float())
		} else {
			strs = append(strs, txt)
		}
	}
	if kind == events.KindNumeric {
		sort.Float64s(nums)
		out := make([]string, len(nums))
		for i, x := range nums {
			out[i] = strconv.FormatFloat(x, 'g', -1, 64)
		}
		return out
	}
	sort.Strings(strs)
	return strs
}

// codeContinuous returns the raw values, centered under Effects coding.
// The mean is taken over kept, non-missing rows only.
//
// Complexity: O(R).
func codeContinuous(in Input, p string, res *Result) ([]subColumn, error) {
	kind, err := in.Table.Kind(p)
	if err != nil {
		return nil, err
	}
	if kind != events.KindNumeric {
		return nil, codingErrorf(ErrNotNumeric, "%q", p)
	}
	col, err := in.Table.Floats(p)
	if err != nil {
		return nil, err
	}

	if in.Schema == Effects {
		var valid []float64
		for i, x := range col {
			if in.Keep[i] && !math.IsNaN(x) {
				valid = append(valid, x)
			}
		}
		if len(valid) > 0 {
			mean := stat.Mean(valid, nil)
			for i := range col {
				col[i] -= mean
			}
			res.Means = append(res.Means, CenteredMean{Predictor: p, Mean: mean})
		}
	}
	return []subColumn{{values: col}}, nil
}

// product enumerates the cartesian product of the terms' sub-columns,
// first predictor outermost.
//
// Complexity: O(Πᵢ Sᵢ · P) for P predictors with Sᵢ sub-columns each.
func product(term formula.Term, coded map[string][]subColumn) [][]subColumn {
	combos := [][]subColumn{{}}
	for _, p := range term {
		var next [][]subColumn
		for _, prefix := range combos {
			for _, sc := range coded[p] {
				c := append(append([]subColumn(nil), prefix...), sc)
				next = append(next, c)
			}
		}
		combos = next
	}
	return combos
}

// termKey identifies a term by its predictor set, so a:b and b:a give one variable.
func termKey(term formula.Term) string {
	s := append([]string(nil), term...)
	sort.Strings(s)
	return strings.Join(s, "\x00")
}

func termType(term formula.Term, isCat map[string]bool) model.VarType {
	switch {
	case term.IsInteraction():
		return model.Interaction
	case isCat[term[0]]:
		return model.Categorical
	default:
		return model.Continuous
	}
}

// checkMapping verifies that every column has a variable and every
// variable at least one column.
//
// Complexity: O(C + V).
func checkMapping(res *Result) error {
	used := make([]bool, len(res.Variables)+1)
	for _, c := range res.Columns {
		if c.Var <= model.NoVariable || c.Var > len(res.Variables) {
			return codingErrorf(ErrDegenerateColumn, "column %q maps to no variable", c.Name())
		}
		used[c.Var] = true
	}
	for i, v := range res.Variables {
		if !used[i+1] {
			return codingErrorf(ErrDegenerateColumn, "variable %q produced no column", v.Name())
		}
	}
	return nil
}

// CheckNames fails with ErrNameClash when two columns render to the same
// name. Both columns and their position are reported.
//
// Complexity: O(C) for C columns.
func CheckNames(cols []model.Column) error {
	seen := make(map[string]int, len(cols))
	for i, c := range cols {
		name := c.Name()
		if j, dup := seen[name]; dup {
			return codingErrorf(ErrNameClash, "columns %d and %d are both named %q; rename the attribute", j+1, i+1, name)
		}
		seen[name] = i
	}
	return nil
}

func appendUnique(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}
