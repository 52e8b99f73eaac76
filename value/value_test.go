// SPDX-License-Identifier: MIT

package value_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/bufferstock/interp"
	"github.com/katalvlaran/bufferstock/utility"
	"github.com/katalvlaran/bufferstock/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFunc_Chain checks level, marginal and marginal-marginal values for c(m)=0.5m.
func TestFunc_Chain(t *testing.T) {
	u := utility.CRRA{Rho: 2}
	c, err := interp.NewLinear([]float64{0, 1}, []float64{0, 0.5})
	require.NoError(t, err)
	nv, err := interp.NewLinear([]float64{0, 1}, []float64{0, 0.25})
	require.NoError(t, err)

	v := value.New(nv, c, u)
	m := 2.0
	assert.True(t, v.HasLevel())
	assert.InDelta(t, u.U(0.5), v.Eval(m), 1e-12, "v = u(nvrs(m))")
	assert.InDelta(t, u.UP(1), v.DM().Eval(m), 1e-12, "v′ = u′(c(m))")
	assert.InDelta(t, u.UPP(1)*0.5, v.DM().DM().Eval(m), 1e-12, "v″ = u″(c)·c′")
	assert.Equal(t, u, v.Utility())
}

// TestFunc_NoLevel keeps derivatives while the level is NaN.
func TestFunc_NoLevel(t *testing.T) {
	u := utility.CRRA{Rho: 1}
	c, _ := interp.NewLinear([]float64{0, 1}, []float64{0, 1})
	v := value.New(nil, c, u)
	assert.False(t, v.HasLevel())
	assert.Nil(t, v.Nvrs())
	assert.True(t, math.IsNaN(v.Eval(1)))
	assert.InDelta(t, 0.5, v.DM().Eval(2), 1e-12)
}

// TestNewFromUtility is v(m)=u(m) with the identity policy.
func TestNewFromUtility(t *testing.T) {
	u := utility.CRRA{Rho: 3}
	id, _ := interp.NewLinear([]float64{0, 1}, []float64{0, 1})
	v := value.NewFromUtility(id, u)
	for _, m := range []float64{0.3, 1, 4} {
		assert.InDelta(t, u.U(m), v.Eval(m), 1e-12)
		assert.InDelta(t, u.UP(m), v.DM().Eval(m), 1e-12)
	}
}
