// SPDX-License-Identifier: MIT

package design

import (
	"fmt"

	"github.com/katalvlaran/designmat/model"
	"github.com/katalvlaran/designmat/spline"
	"gonum.org/v1/gonum/mat"
)

// SplineInfo describes one spline basis injected into the design matrix.
// Columns [Start, End) of the matrix hold its basis (0-based, End exclusive).
type SplineInfo struct {
	Variable    string
	K           int
	Spacing     spline.Spacing
	Order       int
	Knots       []float64
	Breakpoints []float64
	Labels      []string
	Start, End  int
	Group       int
}

// CenteredPredictor is the mean removed from a continuous predictor under
// effects coding.
type CenteredPredictor struct {
	Predictor string
	Mean      float64
	Group     int
}

// CategoricalLevels lists the observed levels of a categorical predictor.
// Levels[0] is the reference level.
type CategoricalLevels struct {
	Predictor string
	Levels    []string
	Group     int
}

// Record is a design matrix together with its bookkeeping.
//
// Invariants (checked by Validate):
//   - Matrix column count == len(Columns()) == len(ColumnToVariable()) == len(ColumnToEventGroup()).
//   - Every column maps to a variable in [1, len(Variables())].
//   - Column names are unique.
//   - Rows of events outside a column's event group are zero in that column.
//
// Accessors return copies; the only mutation is AppendColumn.
type Record struct {
	x          *mat.Dense
	columns    []model.Column
	variables  []model.Variable
	splines    []SplineInfo
	centering  []CenteredPredictor
	levels     []CategoricalLevels
	formulas   []string
	eventTypes [][]string
}

// Rows returns the number of rows (events).
func (r *Record) Rows() int {
	if r.x == nil {
		return 0
	}
	n, _ := r.x.Dims()
	return n
}

// Cols returns the number of columns (parameters).
func (r *Record) Cols() int {
	return len(r.columns)
}

// Matrix returns a read-only view of the design matrix, or nil for a
// record without columns.
func (r *Record) Matrix() mat.Matrix {
	if r.x == nil {
		return nil
	}
	return r.x
}

// Dense returns a copy of the design matrix, or nil for a record without
// columns.
func (r *Record) Dense() *mat.Dense {
	if r.x == nil {
		return nil
	}
	return mat.DenseCopyOf(r.x)
}

// Columns returns the structured column descriptions.
func (r *Record) Columns() []model.Column {
	out := make([]model.Column, len(r.columns))
	for i, c := range r.columns {
		out[i] = c.Clone()
	}
	return out
}

// Variables returns the structured variable descriptions; index i holds
// variable i+1.
func (r *Record) Variables() []model.Variable {
	out := make([]model.Variable, len(r.variables))
	for i, v := range r.variables {
		out[i] = v.Clone()
	}
	return out
}

// ColumnNames renders one name per column.
func (r *Record) ColumnNames() []string {
	out := make([]string, len(r.columns))
	for i, c := range r.columns {
		out[i] = c.Name()
	}
	return out
}

// VariableNames renders one name per variable.
func (r *Record) VariableNames() []string {
	out := make([]string, len(r.variables))
	for i, v := range r.variables {
		out[i] = v.Name()
	}
	return out
}

// ColumnToVariable returns the 1-based variable index of every column.
func (r *Record) ColumnToVariable() []int {
	out := make([]int, len(r.columns))
	for i, c := range r.columns {
		out[i] = c.Var
	}
	return out
}

// ColumnToEventGroup returns the 1-based event-group index of every
// column; model.NoGroup marks appended columns.
func (r *Record) ColumnToEventGroup() []int {
	out := make([]int, len(r.columns))
	for i, c := range r.columns {
		out[i] = c.Group
	}
	return out
}

// VariableTypes returns the type of every variable.
func (r *Record) VariableTypes() []model.VarType {
	out := make([]model.VarType, len(r.variables))
	for i, v := range r.variables {
		out[i] = v.Type
	}
	return out
}

// Splines returns the injected spline bases in column order.
func (r *Record) Splines() []SplineInfo {
	out := make([]SplineInfo, len(r.splines))
	for i, s := range r.splines {
		s.Knots = append([]float64(nil), s.Knots...)
		s.Breakpoints = append([]float64(nil), s.Breakpoints...)
		s.Labels = append([]string(nil), s.Labels...)
		out[i] = s
	}
	return out
}

// Centering returns the means removed from continuous predictors.
// Empty under reference coding.
func (r *Record) Centering() []CenteredPredictor {
	return append([]CenteredPredictor(nil), r.centering...)
}

// Levels returns the levels of every categorical predictor.
func (r *Record) Levels() []CategoricalLevels {
	out := make([]CategoricalLevels, len(r.levels))
	for i, l := range r.levels {
		l.Levels = append([]string(nil), l.Levels...)
		out[i] = l
	}
	return out
}

// Formulas returns the formula of every event group, in group order.
func (r *Record) Formulas() []string {
	return append([]string(nil), r.formulas...)
}

// EventTypeGroups returns the event types of every event group.
// An empty list means the group modeled every event type.
func (r *Record) EventTypeGroups() [][]string {
	out := make([][]string, len(r.eventTypes))
	for i, g := range r.eventTypes {
		out[i] = append([]string(nil), g...)
	}
	return out
}

// ColumnIndex returns the 0-based index of the column named name.
func (r *Record) ColumnIndex(name string) (int, bool) {
	for i, c := range r.columns {
		if c.Name() == name {
			return i, true
		}
	}
	return -1, false
}

// Validate checks the record invariants. Every record returned by Build,
// BuildGroups and AppendColumn passes it.
func (r *Record) Validate() error {
	c := 0
	if r.x != nil {
		_, c = r.x.Dims()
	}
	if c != len(r.columns) {
		return fmt.Errorf("%w: matrix has %d columns, metadata has %d", ErrInvariant, c, len(r.columns))
	}
	seen := make(map[string]int, len(r.columns))
	used := make([]bool, len(r.variables))
	for i, col := range r.columns {
		if col.Var == model.NoVariable || col.Var > len(r.variables) || col.Var < 0 {
			return fmt.Errorf("%w: column %q maps to variable %d of %d", ErrInvariant, col.Name(), col.Var, len(r.variables))
		}
		used[col.Var-1] = true
		name := col.Name()
		if j, dup := seen[name]; dup {
			return fmt.Errorf("%w: columns %d and %d are both named %q", ErrInvariant, j, i, name)
		}
		seen[name] = i
	}
	for i, ok := range used {
		if !ok {
			return fmt.Errorf("%w: variable %q has no column", ErrInvariant, r.variables[i].Name())
		}
	}
	for _, s := range r.splines {
		if s.Start < 0 || s.End > len(r.columns) || s.Start >= s.End {
			return fmt.Errorf("%w: spline %q spans columns [%d, %d)", ErrInvariant, s.Variable, s.Start, s.End)
		}
	}
	return nil
}

// appendBlock concatenates block to the right of the matrix together with
// its column descriptions. Column Var/Group must already be final.
// Every column-adding path (coding, splines, groups, AppendColumn) goes
// through here.
func (r *Record) appendBlock(block mat.Matrix, cols []model.Column, vars []model.Variable) {
	if r.x == nil {
		r.x = mat.DenseCopyOf(block)
	} else {
		var out mat.Dense
		out.Augment(r.x, block)
		r.x = &out
	}
	r.columns = append(r.columns, cols...)
	r.variables = append(r.variables, vars...)
}

// zeroRows clears the given rows across every column.
func (r *Record) zeroRows(rows []int) {
	if r.x == nil || len(rows) == 0 {
		return
	}
	_, c := r.x.Dims()
	zero := make([]float64, c)
	for _, i := range rows {
		r.x.SetRow(i, zero)
	}
}
