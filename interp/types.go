// SPDX-License-Identifier: MIT

package interp

import (
	"fmt"
	"math"
)

// Func is a real function of one variable with a first derivative.
type Func interface {
	// Eval returns f(x).
	Eval(x float64) float64
	// Derivative returns f′(x).
	Derivative(x float64) float64
}

// Limit is the line y = Intercept + Slope·x approached above the last knot.
type Limit struct {
	Intercept float64
	Slope     float64
}

// decayTol is the gap below which the limiting line is used as is.
const decayTol = 1e-12

// tail is the shared above-range extrapolation rule.
type tail struct {
	xn, yn, dn float64 // last knot, value and slope there
	limit      *Limit
	a, b       float64 // decay gap and rate
	mode       tailMode
}

type tailMode int

const (
	tailLinear tailMode = iota // continue along the last slope
	tailLimit                  // exactly the limiting line
	tailDecay                  // decaying approach to the limiting line
)

// newTail picks the extrapolation mode for knot (xn, yn) with slope dn.
func newTail(xn, yn, dn float64, limit *Limit) tail {
	t := tail{xn: xn, yn: yn, dn: dn, mode: tailLinear}
	if limit == nil {
		return t
	}
	l := *limit
	t.limit = &l

	levelGap := l.Intercept + l.Slope*xn - yn
	slopeGap := l.Slope - dn
	if math.Abs(levelGap) < decayTol {
		if math.Abs(slopeGap) < decayTol {
			t.mode = tailLimit
		}
		return t
	}
	rate := -slopeGap / levelGap
	if rate > 0 && !math.IsInf(rate, 0) {
		t.a, t.b, t.mode = levelGap, rate, tailDecay
	}

	return t
}

func (t tail) eval(x float64) float64 {
	switch t.mode {
	case tailLimit:
		return t.limit.Intercept + t.limit.Slope*x
	case tailDecay:
		return t.limit.Intercept + t.limit.Slope*x - t.a*math.Exp(-t.b*(x-t.xn))
	default:
		return t.yn + t.dn*(x-t.xn)
	}
}

func (t tail) derivative(x float64) float64 {
	switch t.mode {
	case tailLimit:
		return t.limit.Slope
	case tailDecay:
		return t.limit.Slope + t.a*t.b*math.Exp(-t.b*(x-t.xn))
	default:
		return t.dn
	}
}

// validateKnots checks shape, ordering and finiteness of knot slices.
func validateKnots(xs []float64, cols ...[]float64) error {
	if len(xs) < 2 {
		return ErrTooFewPoints
	}
	for _, c := range cols {
		if len(c) != len(xs) {
			return fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(xs), len(c))
		}
	}
	for i, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("%w: x[%d]=%v", ErrNonFinite, i, x)
		}
		if i > 0 && x <= xs[i-1] {
			return fmt.Errorf("%w: x[%d]=%v after %v", ErrNotIncreasing, i, x, xs[i-1])
		}
	}
	for _, c := range cols {
		for i, v := range c {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: value[%d]=%v", ErrNonFinite, i, v)
			}
		}
	}

	return nil
}

func clone(s []float64) []float64 {
	out := make([]float64, len(s))
	copy(out, s)

	return out
}
