// SPDX-License-Identifier: MIT

// Package roots finds zeros of scalar functions for the target and
// steady-state computations.
//
// Find runs the secant method from a single starting point, taking its
// second iterate a small relative step away. Non-convergence is reported
// as ErrNoConvergence so callers can record "not found" without guessing.
package roots

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNoConvergence indicates the iteration limit was hit or the secant degenerated.
	ErrNoConvergence = errors.New("roots: failed to converge")

	// ErrNonFinite indicates the function returned NaN or Inf at an iterate.
	ErrNonFinite = errors.New("roots: function value is not finite")
)

// Defaults.
const (
	// DefaultTolerance is the absolute step size accepted as converged.
	DefaultTolerance = 1.48e-8

	// DefaultMaxIter bounds the number of secant steps.
	DefaultMaxIter = 50
)

// Option configures Find.
type Option func(*Options)

// Options holds the resolved configuration.
type Options struct {
	tol     float64
	maxIter int
}

// WithTolerance sets the absolute convergence tolerance. Panics if tol <= 0.
func WithTolerance(tol float64) Option {
	if !(tol > 0) {
		panic(fmt.Sprintf("roots: WithTolerance(%v): tolerance must be > 0", tol))
	}

	return func(o *Options) { o.tol = tol }
}

// WithMaxIter sets the iteration cap. Panics if n < 1.
func WithMaxIter(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("roots: WithMaxIter(%d): must be >= 1", n))
	}

	return func(o *Options) { o.maxIter = n }
}

func gatherOptions(opts ...Option) Options {
	o := Options{tol: DefaultTolerance, maxIter: DefaultMaxIter}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// Find returns x with f(x) ≈ 0 starting from x0.
//
// Complexity: at most maxIter+1 evaluations of f.
func Find(f func(float64) float64, x0 float64, opts ...Option) (float64, error) {
	o := gatherOptions(opts...)

	p0 := x0
	p1 := x0*(1+1e-4) + 1e-4
	if x0 < 0 {
		p1 = x0*(1+1e-4) - 1e-4
	}
	q0, q1 := f(p0), f(p1)
	if !finite(q0) || !finite(q1) {
		return math.NaN(), fmt.Errorf("%w: at x=%v", ErrNonFinite, x0)
	}
	if math.Abs(q1) < math.Abs(q0) {
		p0, p1, q0, q1 = p1, p0, q1, q0
	}

	for i := 0; i < o.maxIter; i++ {
		if q1 == q0 {
			if q1 == 0 {
				return p1, nil
			}
			return (p0 + p1) / 2, fmt.Errorf("%w: flat secant at x=%v", ErrNoConvergence, p1)
		}
		p := p1 - q1*(p1-p0)/(q1-q0)
		if math.Abs(p-p1) <= o.tol {
			return p, nil
		}
		p0, q0 = p1, q1
		p1 = p
		q1 = f(p1)
		if !finite(q1) {
			return math.NaN(), fmt.Errorf("%w: at x=%v", ErrNonFinite, p1)
		}
	}

	return p1, fmt.Errorf("%w: after %d iterations", ErrNoConvergence, o.maxIter)
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }
