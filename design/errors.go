// SPDX-License-Identifier: MIT

package design

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/designmat/coding"
	"github.com/katalvlaran/designmat/events"
	"github.com/katalvlaran/designmat/formula"
)

// Errors raised by the lower layers, re-exported so callers can branch on
// one package. They are the same sentinels, errors.Is matches either name.
var (
	// ErrFormula: the formula or one of its spl()/cat() terms is malformed.
	ErrFormula = formula.ErrFormula
	// ErrMissingVariable: the formula references attributes no event has.
	ErrMissingVariable = events.ErrMissingVariable
	// ErrMixedType: a predictor column mixes numbers and strings.
	ErrMixedType = events.ErrMixedType
	// ErrDegenerateColumn: a coded column maps to no variable
	// (typically a categorical predictor with a single observed level).
	ErrDegenerateColumn = coding.ErrDegenerateColumn
	// ErrNameClash: two columns of one group render to the same name.
	ErrNameClash = coding.ErrNameClash
	// ErrNotNumeric: a continuous or spline predictor holds strings.
	ErrNotNumeric = coding.ErrNotNumeric
)

var (
	// ErrEmptyDesignMatrix indicates a formula that models nothing
	// (e.g. "y~0" without splines).
	ErrEmptyDesignMatrix = errors.New("design: design matrix has no columns")

	// ErrShapeMismatch indicates inconsistent lengths: an appended column
	// whose length differs from the row count, formula/event-group lists of
	// different length, or a spline basis with the wrong shape.
	ErrShapeMismatch = errors.New("design: shape mismatch")

	// ErrPrecondition indicates AppendColumn on a record without columns.
	ErrPrecondition = errors.New("design: record has no design matrix yet")

	// ErrNoEvents indicates an empty event array.
	ErrNoEvents = errors.New("design: no events")

	// ErrInvalidLabel indicates an appended column label that is empty or
	// already used by another column.
	ErrInvalidLabel = errors.New("design: column label empty or already in use")

	// ErrInvariant indicates corrupted record metadata (parallel views out
	// of sync, variable index 0 on a column, duplicate column names).
	ErrInvariant = errors.New("design: record invariant violated")
)

// stageErrorf wraps err with the pipeline stage it came from.
func stageErrorf(st stage, err error) error {
	return fmt.Errorf("design: %s: %w", st, err)
}
