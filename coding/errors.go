// SPDX-License-Identifier: MIT

package coding

import (
	"errors"
	"fmt"
)

var (
	// ErrDegenerateColumn indicates a coded column without a variable, or a
	// variable that produced no column. The usual cause is a categorical
	// predictor with a single observed level.
	ErrDegenerateColumn = errors.New("coding: degenerate column")

	// ErrNotNumeric indicates a continuous predictor backed by string values.
	ErrNotNumeric = errors.New("coding: continuous predictor is not numeric")

	// ErrNameClash indicates two coded columns that render to the same name,
	// e.g. level "b" of cat(c) next to an attribute named "c_b".
	ErrNameClash = errors.New("coding: column names clash")

	// ErrUnknownSchema indicates an unrecognized coding schema name.
	ErrUnknownSchema = errors.New("coding: unknown coding schema")
)

// codingErrorf adds predictor context to a sentinel.
func codingErrorf(err error, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", err, fmt.Sprintf(format, args...))
}
