// SPDX-License-Identifier: MIT

// Package design builds the design matrix of a regression-based
// deconvolution model from experiment events and model formulas.
//
// 🚀 What does it build?
//
//	events + "y ~ 1 + cat(cond)*x + spl(speed,5)"
//	     │
//	     ▼
//	┌───────────┬────────┬───┬──────────┬──────────────┬─────┐
//	│(intercept)│ cond_B │ x │ cond_B:x │ speed_1.00 … │     │  ← one column per parameter
//	├───────────┼────────┼───┼──────────┼──────────────┼─────┤
//	│     1     │   0    │ 2 │    0     │   0.17 …     │     │  ← one row per event
//	│     0     │   0    │ 0 │    0     │   0    …     │     │  ← excluded event type: all zero
//	└───────────┴────────┴───┴──────────┴──────────────┴─────┘
//
// plus the bookkeeping that links every column to its variable, its event
// group, and (for splines) its basis construction.
//
// ✨ Pipeline (single formula, Build):
//
//	ParseFormula → BuildTable → ValidatePredictors → Code → InjectSplines → Finalize
//
// Every stage runs once, in order. The first failing stage aborts the build
// and no partial Record is returned.
//
// Several formulas, each fitted to its own subset of event types, are
// combined with BuildGroups: groups are built one after another and
// concatenated column-wise. Names that collide with earlier groups get a
// "k_" prefix (k = 1-based group index), applied to predictor names inside
// the structured column description, so "cond" → "2_cond" never touches
// "condition".
//
// ⚙️ Usage:
//
//	rec, err := design.Build(evts, "y~1+cat(cond)+spl(speed,5)", []string{"stim"},
//	    design.WithCodingSchema(coding.Effects),
//	    design.WithLogger(logger),
//	)
//	if err != nil {
//	    // errors.Is(err, design.ErrFormula), design.ErrMissingVariable, ...
//	}
//	fmt.Println(rec.ColumnNames())
//
// Records are not safe for concurrent mutation (AppendColumn).
package design
