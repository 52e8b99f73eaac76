// SPDX-License-Identifier: MIT

package roots_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/bufferstock/roots"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFind_Smooth solves a few well-behaved equations.
func TestFind_Smooth(t *testing.T) {
	cases := []struct {
		name string
		f    func(float64) float64
		x0   float64
		want float64
	}{
		{"quadratic", func(x float64) float64 { return x*x - 2 }, 1, math.Sqrt2},
		{"cosine", func(x float64) float64 { return math.Cos(x) - x }, 0.5, 0.7390851332151607},
		{"negative start", func(x float64) float64 { return x + 3 }, -1, -3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			x, err := roots.Find(tc.f, tc.x0)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, x, 1e-8)
		})
	}
}

// TestFind_NoRoot reports non-convergence for a function without zeros.
func TestFind_NoRoot(t *testing.T) {
	_, err := roots.Find(func(x float64) float64 { return math.Exp(x) }, 0.3, roots.WithMaxIter(20))
	assert.ErrorIs(t, err, roots.ErrNoConvergence)
}

// TestFind_NonFinite stops when the function leaves its domain.
func TestFind_NonFinite(t *testing.T) {
	_, err := roots.Find(func(x float64) float64 { return math.NaN() }, 1)
	assert.ErrorIs(t, err, roots.ErrNonFinite)
}

// TestOptions_Panic guards against nonsense configuration.
func TestOptions_Panic(t *testing.T) {
	assert.Panics(t, func() { roots.WithTolerance(0) })
	assert.Panics(t, func() { roots.WithMaxIter(0) })
}
