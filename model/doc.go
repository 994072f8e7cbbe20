// SPDX-License-Identifier: MIT

// Package model holds the shared vocabulary of a design matrix: columns,
// variables, their types, and the rules that turn structured names into
// the strings users see.
//
// What lives here:
//
//	• Factor   — one (predictor, level) component of a column name
//	• Column   — a matrix column: its factors, variable index, event group
//	• Variable — one modeled variable (intercept, main effect, interaction, spline)
//	• VarType  — the closed set of variable kinds
//
// Names are always RENDERED from structure and never edited as strings.
// Renaming a predictor (e.g. "cond" → "2_cond" when groups are combined)
// touches the Factor.Predictor fields only, so "condition_B" is never
// mistaken for a column of "cond".
//
// Indices are 1-based with 0 reserved as a sentinel:
//
//	NoVariable (0) — column not attached to any variable (never valid after a build)
//	NoGroup    (0) — column not produced by any parsed event group (appended columns)
package model
