// SPDX-License-Identifier: MIT

package interp

import (
	"fmt"

	"gonum.org/v1/gonum/interp"
)

// Cubic is a piecewise-cubic Hermite function, matching values and first
// derivatives at every knot.
type Cubic struct {
	xs, ys, ds []float64
	pc         interp.PiecewiseCubic
	top        tail
}

// NewCubic fits a Hermite cubic through (xs, ys) with slopes dydxs.
//
// Complexity: O(n) construction, O(log n) evaluation.
func NewCubic(xs, ys, dydxs []float64) (*Cubic, error) {
	return newCubic(xs, ys, dydxs, nil)
}

// NewCubicWithLimit is NewCubic with a limiting line above the last knot.
func NewCubicWithLimit(xs, ys, dydxs []float64, intercept, slope float64) (*Cubic, error) {
	return newCubic(xs, ys, dydxs, &Limit{Intercept: intercept, Slope: slope})
}

func newCubic(xs, ys, dydxs []float64, limit *Limit) (*Cubic, error) {
	// gonum panics on malformed input, so everything is checked up front.
	if err := validateKnots(xs, ys, dydxs); err != nil {
		return nil, fmt.Errorf("cubic: %w", err)
	}
	c := &Cubic{xs: clone(xs), ys: clone(ys), ds: clone(dydxs)}
	c.pc.FitWithDerivatives(c.xs, c.ys, c.ds)
	n := len(xs)
	c.top = newTail(c.xs[n-1], c.ys[n-1], c.ds[n-1], limit)

	return c, nil
}

// Eval returns the interpolated value at x.
func (c *Cubic) Eval(x float64) float64 {
	switch {
	case x < c.xs[0]:
		return c.ys[0] + c.ds[0]*(x-c.xs[0])
	case x > c.xs[len(c.xs)-1]:
		return c.top.eval(x)
	default:
		return c.pc.Predict(x)
	}
}

// Derivative returns the slope at x.
func (c *Cubic) Derivative(x float64) float64 {
	switch {
	case x < c.xs[0]:
		return c.ds[0]
	case x > c.xs[len(c.xs)-1]:
		return c.top.derivative(x)
	case x == c.xs[len(c.xs)-1]:
		return c.ds[len(c.ds)-1]
	default:
		return c.pc.PredictDerivative(x)
	}
}

// Knots returns copies of the knot abscissae, ordinates and slopes.
func (c *Cubic) Knots() (xs, ys, dydxs []float64) {
	return clone(c.xs), clone(c.ys), clone(c.ds)
}
