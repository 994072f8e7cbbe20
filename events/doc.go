// SPDX-License-Identifier: MIT

// Package events provides a row-aligned, columnar view over experiment
// events (stimulus onsets, fixations, button presses, ...).
//
// Every event has a Type and an open set of named attributes. Each value is
// numeric, a string, or missing. Absent attributes, nil, "" and NaN all
// become missing before anything else happens, so a column can only ever
// mix missing with one real kind.
//
// Rows are never removed. Masking events of other types overwrites their
// values with missing and keeps the row, so row i of every table (and of the
// design matrix built from it) is still event i of the caller's array and
// lines up with that event's latency.
//
// Usage:
//
//	tbl := events.NewTable(evts)
//	mask := tbl.Mask([]string{"fixation"}) // true where the row is modeled
//	proj, err := tbl.Select([]string{"x", "cond"})
//	kind, err := proj.Kind("cond")          // KindNumeric / KindString
package events
