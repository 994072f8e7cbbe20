// SPDX-License-Identifier: MIT

// Package spline provides the spline-basis service used for non-linear
// predictors: a Service turns raw values into a block of basis columns.
//
// The design builder treats the service as a black box:
//
//	(values, k, spacing) → (basis rows×k, labels, rows with missing input)
//
// BSpline is the default implementation: a clamped B-spline basis of order
// min(4, k) (cubic when possible) with k columns. Its k−order+2 breakpoints
// span the observed range and are placed by a Spacing strategy:
//
//	Linear     — evenly spaced
//	Log        — evenly spaced in log10 (positive data only)
//	LogReverse — Log mirrored, dense at the upper end
//	Quantiles  — at evenly spaced sample quantiles (default)
//
// Column labels are the Greville abscissae (the "center" of each basis
// function) with two decimals, so "speed" columns read speed_0.00,
// speed_1.25, ... in a design matrix.
//
// NaN and ±Inf inputs produce all-zero basis rows and are listed in
// Result.MissingRows so the caller can drop those events from the fit.
package spline
