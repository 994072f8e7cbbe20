// SPDX-License-Identifier: MIT

// Package coding turns a projected event table and a term list into the
// numeric columns of a design matrix.
//
// Schemas:
//
//	Reference (default) — one indicator column per non-reference level;
//	                      the first level (sorted) is the baseline.
//	Effects             — sum-to-zero contrasts: +1 for the level, −1 for the
//	                      reference level, 0 otherwise. Continuous predictors
//	                      are mean-centered and the removed means are reported.
//
// Levels and means are computed on modeled rows only. Rows outside the fit
// subset are zeroed after coding, so they never influence a contrast.
//
// Column layout:
//
//	(intercept) │ main effects in term order │ interactions by degree
//
// An interaction column is the elementwise product of its components' coded
// columns, first component outermost: a:b with a∈{a_2,a_3}, b∈{b_2} gives
// a_2:b_2, a_3:b_2.
//
// Every column maps to exactly one variable. A categorical with fewer than
// two observed levels would give a variable without columns; that is
// reported as ErrDegenerateColumn rather than silently dropped.
package coding
