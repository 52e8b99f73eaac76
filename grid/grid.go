// SPDX-License-Identifier: MIT

// Package grid builds the end-of-period asset grids the stage solvers
// evaluate expectations on.
package grid

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

var (
	// ErrBadGrid indicates an invalid grid specification.
	ErrBadGrid = errors.New("grid: invalid specification")
)

// ExpMult returns n points between lo and hi spaced evenly after timesToNest
// applications of x ↦ log(x + 1). Nesting packs points near lo, where
// consumption functions bend most. timesToNest = 0 gives log-even spacing
// and then requires lo > 0.
//
// Complexity: O(n·timesToNest).
func ExpMult(lo, hi float64, n, timesToNest int) ([]float64, error) {
	if n < 2 || !(lo < hi) || timesToNest < 0 || math.IsInf(hi, 0) {
		return nil, fmt.Errorf("%w: lo=%v hi=%v n=%d nest=%d", ErrBadGrid, lo, hi, n, timesToNest)
	}

	out := make([]float64, n)
	if timesToNest == 0 {
		if lo <= 0 {
			return nil, fmt.Errorf("%w: log spacing needs lo > 0, got %v", ErrBadGrid, lo)
		}
		floats.LogSpan(out, lo, hi)
		out[0], out[n-1] = lo, hi

		return out, nil
	}
	if lo <= -1 {
		return nil, fmt.Errorf("%w: nested spacing needs lo > -1, got %v", ErrBadGrid, lo)
	}

	// Stage 1: transform the end points into nested-log space.
	a, b := lo, hi
	for j := 0; j < timesToNest; j++ {
		a, b = math.Log1p(a), math.Log1p(b)
	}

	// Stage 2: space evenly and map back.
	floats.Span(out, a, b)
	for i := range out {
		for j := 0; j < timesToNest; j++ {
			out[i] = math.Expm1(out[i])
		}
	}
	out[0], out[n-1] = lo, hi

	return out, nil
}
