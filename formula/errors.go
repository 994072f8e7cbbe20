// SPDX-License-Identifier: MIT

package formula

import (
	"errors"
	"fmt"
)

// ErrFormula is returned for every malformed or unsupported formula:
// syntax errors, malformed spl()/cat() calls and spline interactions.
// Callers branch with errors.Is(err, ErrFormula); the wrapped message
// carries the offending formula text.
var ErrFormula = errors.New("formula: invalid formula")

// formulaErrorf wraps ErrFormula with the formula text and a reason.
func formulaErrorf(text, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s (in %q)", ErrFormula, fmt.Sprintf(format, args...), text)
}
