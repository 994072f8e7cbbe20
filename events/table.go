// SPDX-License-Identifier: MIT

package events

import (
	"fmt"
	"sort"
	"strings"
)

// TypeColumn is the name under which the event type is exposed as a column.
const TypeColumn = "type"

// Table is a columnar view over an event array. Row i is event i.
// A Table is immutable; Mask and Select return new tables.
type Table struct {
	names []string
	cols  map[string][]Value
	types []string
}

// NewTable builds a table over the union of all attribute names (sorted)
// plus the "type" column. Attributes an event lacks are missing.
//
// Complexity: O(N·A) for N events and A distinct attributes.
func NewTable(evts []Event) *Table {
	// Stage 1: collect the attribute universe.
	seen := map[string]bool{TypeColumn: true}
	for _, e := range evts {
		for k := range e.Attrs {
			seen[k] = true
		}
	}
	names := make([]string, 0, len(seen))
	for k := range seen {
		names = append(names, k)
	}
	sort.Strings(names)

	// Stage 2: fill columns; zero Value is missing so absent keys need no work.
	t := &Table{
		names: names,
		cols:  make(map[string][]Value, len(names)),
		types: make([]string, len(evts)),
	}
	for _, k := range names {
		t.cols[k] = make([]Value, len(evts))
	}
	for i, e := range evts {
		t.types[i] = e.Type
		t.cols[TypeColumn][i] = Str(e.Type)
		for k, v := range e.Attrs {
			if k == TypeColumn {
				continue
			}
			t.cols[k][i] = normalize(v)
		}
	}
	return t
}

// normalize re-applies the missing rules to values built by hand
// (e.g. Value{} literals or Num(NaN) already covered by constructors).
func normalize(v Value) Value {
	switch v.kind {
	case KindNumeric:
		return Num(v.num)
	case KindString:
		return Str(v.str)
	default:
		return Missing()
	}
}

// Rows returns the number of rows (events).
func (t *Table) Rows() int { return len(t.types) }

// Names returns the column names in table order.
func (t *Table) Names() []string { return append([]string(nil), t.names...) }

// Has reports whether the table holds a column.
func (t *Table) Has(name string) bool {
	_, ok := t.cols[name]
	return ok
}

// EventTypes returns the event type of every row.
func (t *Table) EventTypes() []string { return append([]string(nil), t.types...) }

// Column returns a copy of a column's values.
func (t *Table) Column(name string) ([]Value, error) {
	col, ok := t.cols[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	return append([]Value(nil), col...), nil
}

// Mask keeps rows whose event type is in types and overwrites every value
// on all other rows with missing. Row count and order are unchanged.
// An empty types list keeps every row.
//
// Returns the masked table and the row mask (true = modeled row).
//
// Complexity: O(R·A) for R rows and A columns.
func (t *Table) Mask(types []string) (*Table, []bool) {
	keep := make([]bool, t.Rows())
	want := make(map[string]bool, len(types))
	for _, typ := range types {
		want[typ] = true
	}
	for i, typ := range t.types {
		keep[i] = len(types) == 0 || want[typ]
	}

	out := &Table{
		names: t.names,
		cols:  make(map[string][]Value, len(t.cols)),
		types: t.types,
	}
	for name, col := range t.cols {
		masked := make([]Value, len(col))
		for i, v := range col {
			if keep[i] {
				masked[i] = v
			}
		}
		out.cols[name] = masked
	}
	return out, keep
}

// Select projects the table onto names, in that order. Every absent name
// is reported at once via ErrMissingVariable. Column storage is shared
// with t.
//
// Complexity: O(N) for N names.
func (t *Table) Select(names []string) (*Table, error) {
	var missing []string
	for _, n := range names {
		if !t.Has(n) {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingVariable, strings.Join(missing, ", "))
	}

	out := &Table{
		names: append([]string(nil), names...),
		cols:  make(map[string][]Value, len(names)),
		types: t.types,
	}
	for _, n := range names {
		out.cols[n] = t.cols[n]
	}
	return out, nil
}

// Kind infers a column's kind from its non-missing values.
// All-missing columns are numeric. Columns with both numbers and strings
// fail with ErrMixedType.
//
// Complexity: O(R).
func (t *Table) Kind(name string) (ValueKind, error) {
	col, ok := t.cols[name]
	if !ok {
		return KindMissing, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	var nums, strs int
	for _, v := range col {
		switch v.kind {
		case KindNumeric:
			nums++
		case KindString:
			strs++
		}
	}
	if nums > 0 && strs > 0 {
		return KindMissing, fmt.Errorf("%w: column %q: found %d valid strings in %d rows (some events have numbers or nulls instead of strings?)",
			ErrMixedType, name, strs, len(col))
	}
	if strs > 0 {
		return KindString, nil
	}
	return KindNumeric, nil
}

// Floats returns the column as float64 with NaN for missing (and string) values.
//
// Complexity: O(R).
func (t *Table) Floats(name string) ([]float64, error) {
	col, ok := t.cols[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	out := make([]float64, len(col))
	for i, v := range col {
		out[i] = v.Float()
	}
	return out, nil
}
