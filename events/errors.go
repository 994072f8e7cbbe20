// SPDX-License-Identifier: MIT

package events

import "errors"

var (
	// ErrMissingVariable indicates that a formula references attributes the
	// events do not have. The wrapped message lists every absent name.
	ErrMissingVariable = errors.New("events: variable not found in events")

	// ErrMixedType indicates a column holding both numbers and strings on
	// modeled rows. The wrapped message names the column, the number of valid
	// strings and the row count.
	ErrMixedType = errors.New("events: column mixes numeric and string values")

	// ErrUnknownColumn indicates a lookup of a column the table does not hold.
	ErrUnknownColumn = errors.New("events: unknown column")
)
