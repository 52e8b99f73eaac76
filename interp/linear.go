// SPDX-License-Identifier: MIT

package interp

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/interp"
)

// Linear is a piecewise-linear function with optional limiting-line
// extrapolation above its last knot.
type Linear struct {
	xs, ys []float64
	pl     interp.PiecewiseLinear
	lo, hi float64 // slopes of the first and last segments
	top    tail
}

// NewLinear fits a piecewise-linear function through (xs, ys).
//
// Complexity: O(n) construction, O(log n) evaluation.
func NewLinear(xs, ys []float64) (*Linear, error) {
	return newLinear(xs, ys, nil)
}

// NewLinearWithLimit fits (xs, ys) and approaches the line
// y = intercept + slope·x above the last knot.
func NewLinearWithLimit(xs, ys []float64, intercept, slope float64) (*Linear, error) {
	return newLinear(xs, ys, &Limit{Intercept: intercept, Slope: slope})
}

func newLinear(xs, ys []float64, limit *Limit) (*Linear, error) {
	if err := validateKnots(xs, ys); err != nil {
		return nil, fmt.Errorf("linear: %w", err)
	}
	l := &Linear{xs: clone(xs), ys: clone(ys)}
	if err := l.pl.Fit(l.xs, l.ys); err != nil {
		return nil, fmt.Errorf("linear: %w", err)
	}
	n := len(xs)
	l.lo = (l.ys[1] - l.ys[0]) / (l.xs[1] - l.xs[0])
	l.hi = (l.ys[n-1] - l.ys[n-2]) / (l.xs[n-1] - l.xs[n-2])
	l.top = newTail(l.xs[n-1], l.ys[n-1], l.hi, limit)

	return l, nil
}

// Eval returns the interpolated value at x.
func (l *Linear) Eval(x float64) float64 {
	switch {
	case x < l.xs[0]:
		return l.ys[0] + l.lo*(x-l.xs[0])
	case x > l.xs[len(l.xs)-1]:
		return l.top.eval(x)
	default:
		return l.pl.Predict(x)
	}
}

// Derivative returns the slope at x.
func (l *Linear) Derivative(x float64) float64 {
	switch {
	case x < l.xs[0]:
		return l.lo
	case x > l.xs[len(l.xs)-1]:
		return l.top.derivative(x)
	}
	// Interior knots take the slope of the segment to their right.
	i := sort.SearchFloat64s(l.xs, x)
	if i < len(l.xs) && l.xs[i] == x {
		i++
	}
	if i >= len(l.xs) {
		return l.hi
	}

	return (l.ys[i] - l.ys[i-1]) / (l.xs[i] - l.xs[i-1])
}

// Knots returns copies of the knot abscissae and ordinates.
func (l *Linear) Knots() (xs, ys []float64) {
	return clone(l.xs), clone(l.ys)
}

// Limit returns the limiting line, if any.
func (l *Linear) Limit() (Limit, bool) {
	if l.top.limit == nil {
		return Limit{}, false
	}

	return *l.top.limit, true
}
