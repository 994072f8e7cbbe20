// SPDX-License-Identifier: MIT

package spline

import "errors"

var (
	// ErrTooFewBasis indicates k < 2; a spline needs at least two basis functions.
	ErrTooFewBasis = errors.New("spline: at least 2 basis functions are required")

	// ErrNoData indicates that no finite value was available to place knots.
	ErrNoData = errors.New("spline: no finite values")

	// ErrConstant indicates that all finite values are equal, so the range
	// to place knots on is empty.
	ErrConstant = errors.New("spline: values do not span a range")

	// ErrLogSpacing indicates log spacing requested for non-positive data.
	ErrLogSpacing = errors.New("spline: log spacing requires positive values")

	// ErrUnknownSpacing indicates an unrecognized spacing name.
	ErrUnknownSpacing = errors.New("spline: unknown spacing")
)
