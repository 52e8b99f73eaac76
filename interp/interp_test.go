// SPDX-License-Identifier: MIT

package interp_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/bufferstock/interp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewLinear_Validation covers the construction errors.
func TestNewLinear_Validation(t *testing.T) {
	cases := []struct {
		name   string
		xs, ys []float64
		want   error
	}{
		{"one point", []float64{0}, []float64{0}, interp.ErrTooFewPoints},
		{"length mismatch", []float64{0, 1}, []float64{0}, interp.ErrLengthMismatch},
		{"not increasing", []float64{0, 1, 1}, []float64{0, 1, 2}, interp.ErrNotIncreasing},
		{"nan value", []float64{0, 1}, []float64{0, math.NaN()}, interp.ErrNonFinite},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := interp.NewLinear(tc.xs, tc.ys)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

// TestLinear_EvalAndExtrapolate checks knots, midpoints and both tails.
func TestLinear_EvalAndExtrapolate(t *testing.T) {
	f, err := interp.NewLinear([]float64{0, 1, 3}, []float64{0, 2, 3})
	require.NoError(t, err)

	assert.Equal(t, 2.0, f.Eval(1), "exact at knot")
	assert.InDelta(t, 2.5, f.Eval(2), 1e-12, "midpoint of second segment")
	assert.InDelta(t, -2.0, f.Eval(-1), 1e-12, "first segment continues below")
	assert.InDelta(t, 3.5, f.Eval(4), 1e-12, "last segment continues above")
	assert.Equal(t, 2.0, f.Derivative(-5))
	assert.Equal(t, 0.5, f.Derivative(3))
	assert.Equal(t, 0.5, f.Derivative(10))
	_, ok := f.Limit()
	assert.False(t, ok)
}

// TestLinear_Derivative checks segment slopes inside the range; a knot
// takes the slope of the segment to its right, the last knot its left.
func TestLinear_Derivative(t *testing.T) {
	f, err := interp.NewLinear([]float64{0, 1, 3, 4}, []float64{0, 2, 3, 3.25})
	require.NoError(t, err)

	cases := []struct{ x, want float64 }{
		{0, 2}, {0.5, 2}, {1, 0.5}, {2.9, 0.5}, {3, 0.25}, {3.5, 0.25}, {4, 0.25},
	}
	for _, tc := range cases {
		assert.InDelta(t, tc.want, f.Derivative(tc.x), 1e-15, "x=%v", tc.x)
	}
}

// TestLinear_LimitDecay verifies the decaying approach to the limiting line:
// continuity at the last knot, matching slope, and convergence far out.
func TestLinear_LimitDecay(t *testing.T) {
	// Last segment slope 0.8, limit line 0.5 + 0.5x lies above (1, 0.8) at x=1 by 0.2.
	f, err := interp.NewLinearWithLimit([]float64{0, 1}, []float64{0, 0.8}, 0.5, 0.5)
	require.NoError(t, err)

	assert.InDelta(t, 0.8, f.Eval(1+1e-12), 1e-9, "continuous at the last knot")
	assert.InDelta(t, 0.8, f.Derivative(1+1e-12), 1e-9, "slope matches the last segment")
	assert.InDelta(t, 0.5+0.5*200, f.Eval(200), 1e-9, "converges to the limiting line")
	assert.InDelta(t, 0.5, f.Derivative(200), 1e-9)

	// Gap shrinks monotonically.
	prev := math.Inf(1)
	for x := 1.5; x < 20; x += 1.5 {
		gap := 0.5 + 0.5*x - f.Eval(x)
		assert.Less(t, gap, prev, "gap must shrink at x=%v", x)
		assert.Greater(t, gap, 0.0)
		prev = gap
	}
}

// TestLinear_LimitOnLine uses the limit directly when the last knot already lies on it.
func TestLinear_LimitOnLine(t *testing.T) {
	f, err := interp.NewLinearWithLimit([]float64{-1, 0}, []float64{0, 0.5}, 0.5, 0.5)
	require.NoError(t, err)
	assert.InDelta(t, 0.5+0.5*7, f.Eval(7), 1e-12)
	assert.Equal(t, 0.5, f.Derivative(7))
	l, ok := f.Limit()
	require.True(t, ok)
	assert.Equal(t, interp.Limit{Intercept: 0.5, Slope: 0.5}, l)
}

// TestCubic_Hermite reproduces a cubic polynomial from its values and slopes.
func TestCubic_Hermite(t *testing.T) {
	p := func(x float64) float64 { return x*x*x - 2*x + 1 }
	dp := func(x float64) float64 { return 3*x*x - 2 }
	xs := []float64{-1, 0, 0.5, 2}
	ys := make([]float64, len(xs))
	ds := make([]float64, len(xs))
	for i, x := range xs {
		ys[i], ds[i] = p(x), dp(x)
	}
	f, err := interp.NewCubic(xs, ys, ds)
	require.NoError(t, err)

	for _, x := range []float64{-0.7, 0.2, 1.3, 1.99} {
		assert.InDelta(t, p(x), f.Eval(x), 1e-9, "value at %v", x)
		assert.InDelta(t, dp(x), f.Derivative(x), 1e-9, "slope at %v", x)
	}
	assert.InDelta(t, ys[0]+ds[0]*(-2+1), f.Eval(-2), 1e-12, "tangent below the first knot")
	assert.Equal(t, ds[3], f.Derivative(5), "tangent above the last knot")
}

// TestCubic_Validation ensures malformed input is an error, not a panic.
func TestCubic_Validation(t *testing.T) {
	_, err := interp.NewCubic([]float64{0, 1}, []float64{0, 1}, []float64{1})
	assert.ErrorIs(t, err, interp.ErrLengthMismatch)
	_, err = interp.NewCubic([]float64{1, 0}, []float64{0, 1}, []float64{1, 1})
	assert.ErrorIs(t, err, interp.ErrNotIncreasing)
}

// TestCubic_LimitDecay checks the tail uses the last knot slope as its starting slope.
func TestCubic_LimitDecay(t *testing.T) {
	f, err := interp.NewCubicWithLimit([]float64{0, 1}, []float64{0, 0.8}, []float64{1, 0.8}, 0.5, 0.5)
	require.NoError(t, err)
	assert.InDelta(t, 0.8, f.Derivative(1+1e-12), 1e-9)
	assert.InDelta(t, 50.5, f.Eval(100), 1e-9)
}

// TestLowerEnvelope picks the minimum and its derivative.
func TestLowerEnvelope(t *testing.T) {
	_, err := interp.NewLowerEnvelope()
	assert.ErrorIs(t, err, interp.ErrNoFuncs)

	steep, _ := interp.NewLinear([]float64{0, 1}, []float64{0, 1})
	flat, _ := interp.NewLinear([]float64{0, 1}, []float64{0.5, 0.75})
	env, err := interp.NewLowerEnvelope(flat, steep)
	require.NoError(t, err)

	assert.Equal(t, 0.2, env.Eval(0.2), "steep branch below the crossing")
	assert.Equal(t, 1.0, env.Derivative(0.2))
	assert.InDelta(t, 0.875, env.Eval(1.5), 1e-12, "flat branch above the crossing")
	assert.Equal(t, 0.25, env.Derivative(1.5))
	assert.Len(t, env.Funcs(), 2)
}
