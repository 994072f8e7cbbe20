// SPDX-License-Identifier: MIT

package design

import (
	"fmt"

	"github.com/katalvlaran/designmat/model"
	"gonum.org/v1/gonum/mat"
)

// AppendColumn adds a user-supplied column to a built record.
//
// The column becomes a new variable of type model.Unknown (index = old
// variable count + 1) and belongs to no event group (model.NoGroup).
// values is copied.
//
// Errors:
//   - ErrPrecondition if the record has no design matrix.
//   - ErrShapeMismatch if len(values) differs from the row count.
//   - ErrInvalidLabel if label is empty or names an existing column.
//
// The record is unchanged on error.
func (r *Record) AppendColumn(values []float64, label string) error {
	if r.x == nil || r.Cols() == 0 {
		return ErrPrecondition
	}
	if len(values) != r.Rows() {
		return fmt.Errorf("%w: column %q has %d values, matrix has %d rows", ErrShapeMismatch, label, len(values), r.Rows())
	}
	if label == "" {
		return fmt.Errorf("%w: empty label", ErrInvalidLabel)
	}
	if _, ok := r.ColumnIndex(label); ok {
		return fmt.Errorf("%w: %q", ErrInvalidLabel, label)
	}

	block := mat.NewDense(len(values), 1, append([]float64(nil), values...))
	r.appendBlock(block,
		[]model.Column{{
			Factors: []model.Factor{{Predictor: label}},
			Var:     len(r.variables) + 1,
			Group:   model.NoGroup,
		}},
		[]model.Variable{{Predictors: []string{label}, Type: model.Unknown}},
	)
	return nil
}
