// SPDX-License-Identifier: MIT

package design

import (
	"fmt"

	"github.com/katalvlaran/designmat/model"
	"github.com/katalvlaran/designmat/spline"
)

// injectSplines appends one basis per declared spline, in declaration
// order. Each spline becomes one variable of type model.Spline whose
// columns are named "<variable>_<label>".
//
// Rows where the spline predictor is missing carry no information for any
// parameter, so they are zeroed across the whole matrix.
func (b *groupBuilder) injectSplines() error {
	rows := b.proj.Rows()
	for _, spec := range b.f.Splines {
		vals, err := b.proj.Floats(spec.Variable)
		if err != nil {
			return err
		}
		res, err := b.cfg.service.Basis(vals, spec.K, b.cfg.spacing)
		if err != nil {
			return fmt.Errorf("spline %q: %w", spec.Variable, err)
		}
		if err := checkBasis(res, rows, spec.Variable); err != nil {
			return err
		}

		varIdx := len(b.rec.variables) + 1
		cols := make([]model.Column, len(res.Labels))
		for i, label := range res.Labels {
			cols[i] = model.Column{
				Factors: []model.Factor{{Predictor: spec.Variable, Level: label}},
				Var:     varIdx,
				Group:   1,
			}
		}
		start := b.rec.Cols()
		b.rec.appendBlock(res.Basis, cols, []model.Variable{{Predictors: []string{spec.Variable}, Type: model.Spline}})
		b.rec.splines = append(b.rec.splines, SplineInfo{
			Variable:    spec.Variable,
			K:           spec.K,
			Spacing:     b.cfg.spacing,
			Order:       res.Order,
			Knots:       append([]float64(nil), res.Knots...),
			Breakpoints: append([]float64(nil), res.Breakpoints...),
			Labels:      append([]string(nil), res.Labels...),
			Start:       start,
			End:         b.rec.Cols(),
			Group:       1,
		})

		var dropped []int
		for _, i := range res.MissingRows {
			if b.keep[i] {
				dropped = append(dropped, i)
			}
		}
		if len(dropped) > 0 {
			b.cfg.logger.Debug("rows without spline value zeroed", "variable", spec.Variable, "rows", len(dropped))
		}
		b.rec.zeroRows(res.MissingRows)
	}
	return nil
}

// checkBasis rejects service output that cannot be appended.
func checkBasis(res *spline.Result, rows int, variable string) error {
	if res == nil || res.Basis == nil {
		return fmt.Errorf("%w: spline %q: empty basis", ErrShapeMismatch, variable)
	}
	r, c := res.Basis.Dims()
	if r != rows || c != len(res.Labels) {
		return fmt.Errorf("%w: spline %q: basis is %d×%d, want %d rows and %d labelled columns",
			ErrShapeMismatch, variable, r, c, rows, len(res.Labels))
	}
	for _, i := range res.MissingRows {
		if i < 0 || i >= rows {
			return fmt.Errorf("%w: spline %q: missing row %d out of range", ErrShapeMismatch, variable, i)
		}
	}
	return nil
}
