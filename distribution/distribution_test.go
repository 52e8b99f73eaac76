// SPDX-License-Identifier: MIT

package distribution_test

import (
	"context"
	"math"
	"testing"

	"github.com/katalvlaran/bufferstock/distribution"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// TestNew_Validation covers the shape, pmf and naming errors.
func TestNew_Validation(t *testing.T) {
	cases := []struct {
		name  string
		pmf   []float64
		atoms [][]float64
		names []string
		want  error
	}{
		{"empty", nil, [][]float64{{}}, nil, distribution.ErrEmpty},
		{"shape", []float64{0.5, 0.5}, [][]float64{{1}}, nil, distribution.ErrShape},
		{"negative", []float64{1.5, -0.5}, [][]float64{{1, 2}}, nil, distribution.ErrBadPmf},
		{"sum", []float64{0.5, 0.4}, [][]float64{{1, 2}}, nil, distribution.ErrBadPmf},
		{"names count", []float64{1}, [][]float64{{1}, {2}}, []string{"a"}, distribution.ErrBadNames},
		{"duplicate", []float64{1}, [][]float64{{1}, {2}}, []string{"a", "a"}, distribution.ErrBadNames},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := distribution.New(tc.pmf, tc.atoms, tc.names...)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

// TestDiscrete_Accessors checks named lookup, moments and copies.
func TestDiscrete_Accessors(t *testing.T) {
	d, err := distribution.New([]float64{0.25, 0.75}, [][]float64{{1, 3}, {2, 0}}, "x", "y")
	require.NoError(t, err)

	assert.Equal(t, 2, d.Len())
	assert.Equal(t, 2, d.Dim())
	k, err := d.Position("y")
	require.NoError(t, err)
	assert.Equal(t, 1, k)
	_, err = d.Position("z")
	assert.ErrorIs(t, err, distribution.ErrUnknownVariable)

	assert.InDelta(t, 2.5, d.Mean(0), 1e-12)
	assert.Equal(t, 1.0, d.Min(0))
	assert.Equal(t, 2.0, d.Max(1))
	assert.InDelta(t, 0.25*2+0.75*0, d.Expect(func(a []float64) float64 { return a[0] * a[1] }), 1e-12)

	col, err := d.Column("x")
	require.NoError(t, err)
	col[0] = 99
	assert.Equal(t, 1.0, d.Atoms(0)[0], "Column returns a copy")
	assert.Equal(t, []string{"x", "y"}, d.Names())
}

// TestMeanOneLogNormal verifies equiprobable outcomes with mean exactly one.
func TestMeanOneLogNormal(t *testing.T) {
	const sigma, n = 0.2, 7
	d, err := distribution.MeanOneLogNormal(sigma, n, distribution.PermShk)
	require.NoError(t, err)
	require.Equal(t, n, d.Len())

	assert.InDelta(t, 1.0, d.Mean(0), 1e-12, "mean-one")
	atoms := d.Atoms(0)
	for i, p := range d.Pmf() {
		assert.InDelta(t, 1.0/n, p, 1e-15)
		if i > 0 {
			assert.Greater(t, atoms[i], atoms[i-1], "atoms increase")
		}
	}

	variance := d.Expect(func(a []float64) float64 { return (a[0] - 1) * (a[0] - 1) })
	cont := distribution.LogNormalOf(sigma).Variance()
	assert.Less(t, variance, cont, "discretization loses tail variance")
	assert.Greater(t, variance, 0.8*cont)

	_, err = distribution.MeanOneLogNormal(-1, n, "")
	assert.ErrorIs(t, err, distribution.ErrBadParameter)

	pt, err := distribution.MeanOneLogNormal(0, 5, "")
	require.NoError(t, err)
	assert.Equal(t, 1, pt.Len(), "zero variance collapses to one point")
}

// TestAddOutcomeConstantMean keeps the mean while adding the low outcome.
func TestAddOutcomeConstantMean(t *testing.T) {
	base, err := distribution.MeanOneLogNormal(0.1, 5, distribution.TranShk)
	require.NoError(t, err)
	d, err := distribution.AddOutcomeConstantMean(base, 0.3, 0.05)
	require.NoError(t, err)

	require.Equal(t, 6, d.Len())
	assert.Equal(t, 0.3, d.Atoms(0)[0])
	assert.Equal(t, 0.05, d.Pmf()[0])
	assert.InDelta(t, 1.0, d.Mean(0), 1e-12)
	_, err = d.Position(distribution.TranShk)
	assert.NoError(t, err, "name survives")

	_, err = distribution.AddOutcomeConstantMean(base, 0.3, 1)
	assert.ErrorIs(t, err, distribution.ErrBadParameter)
}

// TestCombineIndependent checks the product structure of the joint distribution.
func TestCombineIndependent(t *testing.T) {
	a, _ := distribution.New([]float64{0.5, 0.5}, [][]float64{{0.9, 1.1}}, "a")
	b, _ := distribution.New([]float64{0.2, 0.8}, [][]float64{{0, 1.25}}, "b")
	j, err := distribution.CombineIndependent(a, b)
	require.NoError(t, err)

	require.Equal(t, 4, j.Len())
	assert.Equal(t, []string{"a", "b"}, j.Names())
	assert.Equal(t, []float64{0.9, 0.9, 1.1, 1.1}, j.Atoms(0))
	assert.Equal(t, []float64{0, 1.25, 0, 1.25}, j.Atoms(1))
	assert.InDeltaSlice(t, []float64{0.1, 0.4, 0.1, 0.4}, j.Pmf(), 1e-15)
	assert.InDelta(t, 1.0, j.Expect(func(x []float64) float64 { return x[0] * x[1] }), 1e-12)

	joint, _ := distribution.New([]float64{1}, [][]float64{{1}, {1}})
	_, err = distribution.CombineIndependent(a, joint)
	assert.ErrorIs(t, err, distribution.ErrNotUnivariate)
}

// TestIncomeProcess_Build checks size and naming of the standard shocks.
func TestIncomeProcess_Build(t *testing.T) {
	d, err := distribution.IncomeProcess{
		PermShkStd: 0.1, PermShkCount: 7,
		TranShkStd: 0.1, TranShkCount: 7,
		UnempPrb: 0.05, IncUnemp: 0.3,
	}.Build()
	require.NoError(t, err)
	assert.Equal(t, 7*8, d.Len())

	p, err := d.Position(distribution.PermShk)
	require.NoError(t, err)
	q, err := d.Position(distribution.TranShk)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, d.Mean(p), 1e-12)
	assert.InDelta(t, 1.0, d.Mean(q), 1e-12)
	assert.Equal(t, 0.3, d.Min(q))
}

// TestDegenerate is the one-point mass at 1 for every variable.
func TestDegenerate(t *testing.T) {
	d, err := distribution.Degenerate(distribution.PermShk, distribution.TranShk)
	require.NoError(t, err)
	assert.Equal(t, 1, d.Len())
	assert.Equal(t, 1.0, d.Mean(1))
	_, err = distribution.Degenerate()
	assert.ErrorIs(t, err, distribution.ErrEmpty)
}

// TestExpectArray compares the parallel kernel against Expect and checks that
// the worker count does not change a single bit of the result.
func TestExpectArray(t *testing.T) {
	defer goleak.VerifyNone(t)

	d, err := distribution.IncomeProcess{
		PermShkStd: 0.1, PermShkCount: 5, TranShkStd: 0.1, TranShkCount: 5,
		UnempPrb: 0.05, IncUnemp: 0.3,
	}.Build()
	require.NoError(t, err)

	xs := []float64{0.1, 0.5, 1, 2, 4, 8, 16}
	f := func(atom []float64, x float64, out []float64) {
		m := 1.03/(1.01*atom[0])*x + atom[1]
		out[0] = math.Log(m)
		out[1] = 1 / m
	}
	serial, err := d.ExpectArray(context.Background(), f, xs, 2, 1)
	require.NoError(t, err)
	parallel, err := d.ExpectArray(context.Background(), f, xs, 2, 4)
	require.NoError(t, err)
	assert.Equal(t, serial.RawMatrix().Data, parallel.RawMatrix().Data, "bitwise identical across workers")

	for j, x := range xs {
		want := d.Expect(func(a []float64) float64 { return 1 / (1.03/(1.01*a[0])*x + a[1]) })
		assert.InDelta(t, want, serial.At(1, j), 1e-14, "gridpoint %d", j)
	}

	_, err = d.ExpectArray(context.Background(), f, nil, 2, 1)
	assert.ErrorIs(t, err, distribution.ErrBadParameter)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = d.ExpectArray(ctx, f, xs, 2, 2)
	assert.ErrorIs(t, err, context.Canceled)
}
