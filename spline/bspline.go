// SPDX-License-Identifier: MIT

package spline

import (
	"math"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// DefaultOrder is the B-spline order used by BSpline (cubic).
const DefaultOrder = 4

// BSpline is the default Service: a clamped B-spline basis.
// Order <= 0 means DefaultOrder. The effective order is min(Order, k).
type BSpline struct {
	Order int
}

var _ Service = BSpline{}

// Basis evaluates k B-spline basis functions at every value.
//
// Implementation:
//   - Stage 1: validate k, collect finite values (NaN/±Inf → missing rows).
//   - Stage 2: place k−order+2 breakpoints with the spacing strategy.
//   - Stage 3: clamp (repeat end breakpoints order−1 times) to get k+order knots.
//   - Stage 4: evaluate the Cox–de Boor recursion row by row.
//   - Stage 5: label columns with Greville abscissae.
//
// Errors: ErrTooFewBasis, ErrNoData, ErrConstant, ErrLogSpacing, ErrUnknownSpacing.
//
// Complexity: O(n·(k+order)·order) time, O(n·k) memory for n values.
func (b BSpline) Basis(values []float64, k int, spacing Spacing) (*Result, error) {
	// Stage 1 (Validate).
	if k < 2 {
		return nil, ErrTooFewBasis
	}
	if !spacing.Valid() {
		return nil, ErrUnknownSpacing
	}
	order := b.Order
	if order <= 0 {
		order = DefaultOrder
	}
	if order > k {
		order = k
	}

	var (
		finite  []float64
		missing []int
	)
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			missing = append(missing, i)
			continue
		}
		finite = append(finite, v)
	}
	if len(finite) == 0 {
		return nil, ErrNoData
	}
	sort.Float64s(finite)
	lo, hi := finite[0], finite[len(finite)-1]
	if lo == hi {
		return nil, ErrConstant
	}

	// Stage 2 (Breakpoints).
	bp, err := breakpoints(finite, k-order+2, spacing)
	if err != nil {
		return nil, err
	}

	// Stage 3 (Clamped knot vector).
	knots := make([]float64, 0, k+order)
	for i := 0; i < order-1; i++ {
		knots = append(knots, bp[0])
	}
	knots = append(knots, bp...)
	for i := 0; i < order-1; i++ {
		knots = append(knots, bp[len(bp)-1])
	}

	// Stage 4 (Evaluate).
	basis := mat.NewDense(len(values), k, nil)
	row := make([]float64, len(knots)-1)
	isMissing := make(map[int]bool, len(missing))
	for _, i := range missing {
		isMissing[i] = true
	}
	for i, v := range values {
		if isMissing[i] {
			continue
		}
		evalRow(knots, order, v, row)
		basis.SetRow(i, row[:k])
	}

	// Stage 5 (Labels).
	return &Result{
		Basis:       basis,
		Labels:      grevilleLabels(knots, order, k),
		MissingRows: missing,
		Knots:       knots,
		Breakpoints: bp,
		Order:       order,
	}, nil
}

// breakpoints places n >= 2 breakpoints over sorted finite data.
func breakpoints(sorted []float64, n int, spacing Spacing) ([]float64, error) {
	lo, hi := sorted[0], sorted[len(sorted)-1]
	bp := make([]float64, n)
	switch spacing {
	case Linear:
		floats.Span(bp, lo, hi)
	case Log:
		if lo <= 0 {
			return nil, ErrLogSpacing
		}
		floats.LogSpan(bp, lo, hi)
	case LogReverse:
		if lo <= 0 {
			return nil, ErrLogSpacing
		}
		ls := floats.LogSpan(make([]float64, n), lo, hi)
		for i := range bp {
			bp[i] = lo + hi - ls[n-1-i]
		}
	case Quantiles:
		for i := range bp {
			p := float64(i) / float64(n-1)
			bp[i] = stat.Quantile(p, stat.LinInterp, sorted, nil)
		}
	}
	// The ends must cover the data exactly; pow/quantile rounding may not.
	bp[0], bp[n-1] = lo, hi
	for i := 1; i < n; i++ {
		if bp[i] < bp[i-1] {
			bp[i] = bp[i-1]
		}
	}
	return bp, nil
}

// evalRow writes all len(knots)-1 order-`order` basis values at x into out;
// the first len(knots)-order entries are the basis functions.
// The last non-empty knot span is closed on the right so x == max is covered.
func evalRow(knots []float64, order int, x float64, out []float64) {
	for i := range out {
		out[i] = 0
	}

	// Degree 0: locate the span.
	span := -1
	for j := 0; j < len(knots)-1; j++ {
		if knots[j] < knots[j+1] && x >= knots[j] && x < knots[j+1] {
			span = j
			break
		}
	}
	if span < 0 {
		for j := len(knots) - 2; j >= 0; j-- {
			if knots[j] < knots[j+1] && x == knots[j+1] {
				span = j
				break
			}
		}
	}
	if span < 0 {
		return // outside the knot range
	}
	out[span] = 1

	// Degrees 1..order-1 (Cox–de Boor), 0/0 := 0.
	for d := 1; d < order; d++ {
		for j := 0; j < len(knots)-1-d; j++ {
			var left, right float64
			if den := knots[j+d] - knots[j]; den > 0 {
				left = (x - knots[j]) / den * out[j]
			}
			if den := knots[j+d+1] - knots[j+1]; den > 0 {
				right = (knots[j+d+1] - x) / den * out[j+1]
			}
			out[j] = left + right
		}
	}
}

// grevilleLabels formats the Greville abscissa of each basis function,
// suffixing an index when two would collide.
func grevilleLabels(knots []float64, order, k int) []string {
	labels := make([]string, k)
	seen := make(map[string]bool, k)
	for i := 0; i < k; i++ {
		g := stat.Mean(knots[i+1:i+order], nil)
		label := strconv.FormatFloat(g, 'f', 2, 64)
		if seen[label] {
			label += "#" + strconv.Itoa(i+1)
		}
		seen[label] = true
		labels[i] = label
	}
	return labels
}
