// SPDX-License-Identifier: MIT

package design

import (
	"fmt"
	"strconv"

	"github.com/katalvlaran/designmat/events"
	"github.com/katalvlaran/designmat/model"
)

// BuildGroups builds one design per (formula, event types) pair and
// concatenates them column-wise into a single Record.
//
// eventTypes[k] selects the rows of group k+1; a nil eventTypes slice
// means every group models every event type.
//
// Implementation:
//   - Stage 1: check that formulas and eventTypes line up.
//   - Stage 2: build group 1 with Build semantics; it becomes the accumulator.
//   - Stage 3: for every further group k, build it, prefix its colliding
//     predictor names with "k_", offset its variable/group indices past the
//     accumulator's, and append its columns.
//   - Stage 4: check the record invariants once more.
//
// Errors: ErrShapeMismatch, ErrInvariant, plus any Build error wrapped
// with the 1-based group index.
//
// Complexity: O(G·R·C) for G groups.
func BuildGroups(evts []events.Event, formulas []string, eventTypes [][]string, opts ...Option) (*Record, error) {
	if len(formulas) == 0 {
		return nil, fmt.Errorf("%w: no formulas", ErrShapeMismatch)
	}
	if eventTypes != nil && len(eventTypes) != len(formulas) {
		return nil, fmt.Errorf("%w: %d formulas but %d event-type groups", ErrShapeMismatch, len(formulas), len(eventTypes))
	}

	cfg := newConfig(opts...)
	var acc *Record
	for k, text := range formulas {
		var types []string
		if eventTypes != nil {
			types = eventTypes[k]
		}
		rec, err := build(cfg, evts, text, types)
		if err != nil {
			return nil, fmt.Errorf("design: group %d: %w", k+1, err)
		}
		if acc == nil {
			acc = rec
			continue
		}
		renamed := acc.merge(rec, k+1)
		if len(renamed) > 0 {
			cfg.logger.Debug("renamed colliding predictors", "group", k+1, "predictors", renamed)
		}
	}
	if err := acc.Validate(); err != nil {
		return nil, err
	}
	return acc, nil
}

// merge appends other (a freshly built single-group record) as group
// number group. A predictor of other gets the prefix "<group>_" when its
// name already occurs among r's variable names or interaction components,
// or when one of its rendered columns would repeat a column name of r.
// Returns the renamed predictors, original names, in first-seen order.
//
// Complexity: O(P·C) for P predictors and C columns of other, plus the
// O(R·(C+C')) matrix augmentation.
func (r *Record) merge(other *Record, group int) []string {
	taken := make(map[string]bool)
	for _, v := range r.variables {
		taken[v.Name()] = true
		for _, p := range v.Predictors {
			taken[p] = true
		}
	}
	names := make(map[string]bool, len(r.columns))
	for _, c := range r.columns {
		names[c.Name()] = true
		for _, f := range c.Factors {
			names[f.String()] = true
		}
	}

	prefix := strconv.Itoa(group) + "_"
	prefixed := make(map[string]bool)
	for p := range taken {
		prefixed[p] = true
	}
	rename := func(p string) string {
		if prefixed[p] {
			return prefix + p
		}
		return p
	}
	// A rendered-name clash prefixes every still unprefixed predictor of
	// the clashing column; each round prefixes at least one more name.
	for changed := true; changed; {
		changed = false
		for _, c := range other.columns {
			if !names[c.Rename(rename).Name()] {
				continue
			}
			for _, f := range c.Factors {
				if !prefixed[f.Predictor] {
					prefixed[f.Predictor] = true
					changed = true
				}
			}
		}
	}

	var renamed []string
	seen := make(map[string]bool)
	for _, c := range other.columns {
		for _, f := range c.Factors {
			if prefixed[f.Predictor] && !seen[f.Predictor] {
				seen[f.Predictor] = true
				renamed = append(renamed, f.Predictor)
			}
		}
	}

	varOffset := len(r.variables)
	groupOffset := r.maxGroup()
	colOffset := r.Cols()

	cols := make([]model.Column, len(other.columns))
	for i, c := range other.columns {
		c = c.Rename(rename)
		if c.Var != model.NoVariable {
			c.Var += varOffset
		}
		if c.Group != model.NoGroup {
			c.Group += groupOffset
		}
		cols[i] = c
	}
	vars := make([]model.Variable, len(other.variables))
	for i, v := range other.variables {
		vars[i] = v.Rename(rename)
	}
	r.appendBlock(other.x, cols, vars)

	for _, s := range other.splines {
		s.Variable = rename(s.Variable)
		s.Start += colOffset
		s.End += colOffset
		s.Group += groupOffset
		r.splines = append(r.splines, s)
	}
	for _, m := range other.centering {
		m.Predictor = rename(m.Predictor)
		m.Group += groupOffset
		r.centering = append(r.centering, m)
	}
	for _, l := range other.levels {
		l.Predictor = rename(l.Predictor)
		l.Group += groupOffset
		r.levels = append(r.levels, l)
	}
	r.formulas = append(r.formulas, other.formulas...)
	r.eventTypes = append(r.eventTypes, other.eventTypes...)
	return renamed
}

// maxGroup returns the largest event-group index in use; appended columns
// (model.NoGroup) never raise it.
//
// Complexity: O(C).
func (r *Record) maxGroup() int {
	m := model.NoGroup
	for _, c := range r.columns {
		if c.Group > m {
			m = c.Group
		}
	}
	return m
}
