// SPDX-License-Identifier: MIT

package design

import (
	"fmt"

	"github.com/katalvlaran/designmat/coding"
	"github.com/katalvlaran/designmat/events"
	"github.com/katalvlaran/designmat/formula"
	"github.com/katalvlaran/designmat/model"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// stage enumerates the single-formula pipeline.
type stage int

const (
	stageParse stage = iota
	stageTable
	stageValidate
	stageCode
	stageSplines
	stageFinalize
)

var stageNames = [...]string{
	stageParse:    "parse formula",
	stageTable:    "build table",
	stageValidate: "validate predictors",
	stageCode:     "code predictors",
	stageSplines:  "inject splines",
	stageFinalize: "finalize",
}

func (s stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return fmt.Sprintf("stage(%d)", int(s))
	}
	return stageNames[s]
}

// groupBuilder carries the state of one single-formula build.
type groupBuilder struct {
	cfg   config
	evts  []events.Event
	text  string
	types []string

	f           *formula.Formula
	table       *events.Table // masked
	keep        []bool
	proj        *events.Table // masked, projected on the referenced names
	categorical []string
	rec         *Record
}

// Build turns events and one formula into a design Record.
// eventTypes selects the modeled rows; empty means every event type.
// Rows of other event types are all zero.
//
// Implementation:
//   - Stage 1 (parse formula): cat()/spl() extraction and term expansion.
//   - Stage 2 (build table): union of attribute names plus "type", masked to eventTypes.
//   - Stage 3 (validate predictors): every referenced name exists; string
//     predictors not declared categorical are promoted with a warning.
//   - Stage 4 (code predictors): intercept, main effects and interactions.
//   - Stage 5 (inject splines): one basis per spl() term, appended in order.
//   - Stage 6 (finalize): reject empty matrices, warn on NaN, check invariants.
//
// Errors: ErrNoEvents, ErrFormula, ErrMissingVariable, ErrMixedType,
// ErrNotNumeric, ErrDegenerateColumn, ErrNameClash, ErrShapeMismatch, ErrEmptyDesignMatrix
// and spline basis errors, each wrapped with the stage that raised it.
//
// Complexity: O(R·C) for R events and C columns, plus the spline service cost.
func Build(evts []events.Event, text string, eventTypes []string, opts ...Option) (*Record, error) {
	return build(newConfig(opts...), evts, text, eventTypes)
}

func build(cfg config, evts []events.Event, text string, eventTypes []string) (*Record, error) {
	if len(evts) == 0 {
		return nil, ErrNoEvents
	}
	b := &groupBuilder{
		cfg:   cfg,
		evts:  evts,
		text:  text,
		types: append([]string(nil), eventTypes...),
	}
	steps := []struct {
		st  stage
		run func() error
	}{
		{stageParse, b.parse},
		{stageTable, b.buildTable},
		{stageValidate, b.validate},
		{stageCode, b.code},
		{stageSplines, b.injectSplines},
		{stageFinalize, b.finalize},
	}
	for _, s := range steps {
		cfg.logger.Debug("design stage", "stage", s.st.String(), "formula", text)
		if err := s.run(); err != nil {
			return nil, stageErrorf(s.st, err)
		}
	}
	return b.rec, nil
}

func (b *groupBuilder) parse() error {
	f, err := formula.Parse(b.text,
		formula.WithCategorical(b.cfg.categorical...),
		formula.WithSplines(b.cfg.splines...),
	)
	if err != nil {
		return err
	}
	b.f = f
	return nil
}

func (b *groupBuilder) buildTable() error {
	b.table, b.keep = events.NewTable(b.evts).Mask(b.types)
	return nil
}

func (b *groupBuilder) validate() error {
	proj, err := b.table.Select(b.f.Referenced())
	if err != nil {
		return err
	}
	b.proj = proj

	b.categorical = append([]string(nil), b.f.Categorical...)
	for _, p := range b.f.Predictors {
		kind, err := proj.Kind(p)
		if err != nil {
			return err
		}
		if kind == events.KindString && !b.f.IsCategorical(p) {
			b.cfg.logger.Warn("string column promoted to categorical", "column", p, "formula", b.text)
			b.categorical = append(b.categorical, p)
		}
	}
	for _, v := range b.f.SplineVariables() {
		kind, err := proj.Kind(v)
		if err != nil {
			return err
		}
		if kind == events.KindString {
			return fmt.Errorf("%w: spline predictor %q holds strings", ErrNotNumeric, v)
		}
	}
	return nil
}

func (b *groupBuilder) code() error {
	res, err := coding.Code(coding.Input{
		Table:       b.proj,
		Keep:        b.keep,
		Terms:       b.f.Terms,
		Intercept:   b.f.Intercept,
		Categorical: b.categorical,
		Schema:      b.cfg.schema,
	})
	if err != nil {
		return err
	}
	if len(res.MissingMainEffects) > 0 {
		b.cfg.logger.Info("interaction without main effect", "predictors", res.MissingMainEffects, "formula", b.text)
	}

	b.rec = &Record{}
	if res.X != nil {
		cols := make([]model.Column, len(res.Columns))
		for i, c := range res.Columns {
			c = c.Clone()
			c.Group = 1
			cols[i] = c
		}
		b.rec.appendBlock(res.X, cols, res.Variables)
	}
	for _, m := range res.Means {
		b.rec.centering = append(b.rec.centering, CenteredPredictor{Predictor: m.Predictor, Mean: m.Mean, Group: 1})
	}
	for _, l := range res.Levels {
		b.rec.levels = append(b.rec.levels, CategoricalLevels{Predictor: l.Predictor, Levels: l.Levels, Group: 1})
	}
	return nil
}

func (b *groupBuilder) finalize() error {
	if b.rec.Cols() == 0 {
		return fmt.Errorf("%w: formula %q", ErrEmptyDesignMatrix, b.text)
	}

	// Excluded event types stay zero whatever the spline service returned.
	var masked []int
	for i, k := range b.keep {
		if !k {
			masked = append(masked, i)
		}
	}
	b.rec.zeroRows(masked)

	b.rec.formulas = []string{b.text}
	b.rec.eventTypes = [][]string{b.types}

	// Spline labels can render like coded columns ("x_1.00").
	if err := coding.CheckNames(b.rec.columns); err != nil {
		return err
	}

	if nan := nanColumns(b.rec); len(nan) > 0 {
		b.cfg.logger.Warn("design matrix contains NaN", "columns", nan, "formula", b.text)
	}
	return b.rec.Validate()
}

// nanColumns names the columns holding at least one NaN.
func nanColumns(r *Record) []string {
	if r.x == nil {
		return nil
	}
	var out []string
	for j, c := range r.columns {
		if floats.HasNaN(mat.Col(nil, j, r.x)) {
			out = append(out, c.Name())
		}
	}
	return out
}
