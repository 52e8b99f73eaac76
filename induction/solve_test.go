// SPDX-License-Identifier: MIT

package induction_test

import (
	"context"
	"math"
	"testing"

	"github.com/katalvlaran/bufferstock/distribution"
	"github.com/katalvlaran/bufferstock/grid"
	"github.com/katalvlaran/bufferstock/induction"
	"github.com/katalvlaran/bufferstock/solver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func pfParams() solver.Params {
	return solver.Params{Rfree: 1.03, PermGroFac: 1, LivPrb: 1, DiscFac: 0.96, CRRA: 2}
}

func riskParams(t testing.TB) solver.Params {
	t.Helper()
	d, err := distribution.IncomeProcess{
		PermShkStd: 0.1, PermShkCount: 5,
		TranShkStd: 0.1, TranShkCount: 5,
		UnempPrb: 0.05, IncUnemp: 0.3,
	}.Build()
	require.NoError(t, err)
	aXtra, err := grid.ExpMult(0.001, 20, 32, 3)
	require.NoError(t, err)
	zero := 0.0

	return solver.Params{
		Rfree: 1.03, PermGroFac: 1.01, LivPrb: 0.98, DiscFac: 0.96, CRRA: 2,
		BoroCnstArt: &zero, AXtraGrid: aXtra, IncShkDstn: d,
	}
}

func bare(t testing.TB, crra float64) *solver.Solution {
	t.Helper()
	s, err := solver.NewTerminal(crra)
	require.NoError(t, err)

	return s
}

func TestSolve_FiniteHorizon(t *testing.T) {
	p := pfParams()
	core, logs := observer.New(zapcore.DebugLevel)
	res, err := induction.Solve(context.Background(), bare(t, p.CRRA), p,
		induction.WithCycles(5), induction.WithLogger(zap.New(core)))
	require.NoError(t, err)

	require.Len(t, res.Stages, 6)
	assert.True(t, res.Converged)
	assert.True(t, math.IsNaN(res.Distance))
	assert.Equal(t, 5, res.Iterations)
	assert.Equal(t, solver.StatusFinished, res.First().Status)
	assert.Equal(t, solver.StatusIterator, res.Stages[5].Status, "enhanced terminal")
	for t0 := 0; t0 < 5; t0++ {
		assert.Equal(t, t0, res.Stages[t0].Stage)
		assert.Greater(t, res.Stages[t0].Bilt.HNrm, res.Stages[t0+1].Bilt.HNrm, "human wealth grows with horizon")
		assert.Less(t, res.Stages[t0].Bilt.MPCmin, res.Stages[t0+1].Bilt.MPCmin)
	}
	assert.Equal(t, 5, logs.FilterMessage("stage done").Len())
	assert.Equal(t, 1, logs.FilterMessage("induction finished").Len())
	assert.NotEmpty(t, res.Conditions.Conditions)

	// A finished stage cannot seed another solve.
	assert.Panics(t, func() { _, _ = solver.SolveStage(res.First(), p) })
}

func TestSolve_InfiniteHorizonPerfectForesight(t *testing.T) {
	p := pfParams()
	res, err := induction.Solve(context.Background(), bare(t, p.CRRA), p, induction.WithTolerance(1e-8))
	require.NoError(t, err)
	require.Len(t, res.Stages, 1)
	assert.True(t, res.Converged)
	assert.Less(t, res.Distance, 1e-8)

	s := res.First()
	fhwf := s.Bilt.Factor("FHWF")
	assert.InDelta(t, fhwf/(1-fhwf), s.Bilt.HNrm, 1e-4, "human wealth excluding current income")
	assert.InDelta(t, s.Bilt.HNrmInf, s.Bilt.HNrm+1, 1e-4, "hNrmInf includes current income")
	assert.InDelta(t, 1-s.Bilt.Factor("RPF"), s.Bilt.MPCmin, 1e-6)
	assert.False(t, res.Conditions.Degenerate)
}

func TestSolve_InfiniteHorizonIncomeRisk(t *testing.T) {
	if testing.Short() {
		t.Skip("long infinite-horizon run")
	}
	p := riskParams(t)
	res, err := induction.Solve(context.Background(), bare(t, p.CRRA), p,
		induction.WithTolerance(1e-5), induction.WithSolverOptions(solver.WithWorkers(2)))
	require.NoError(t, err)
	s := res.First()
	require.True(t, s.Bilt.MNrmTrg.Found)
	assert.InDelta(t, 0, s.Residuals().MTp1MinusMt(s.Bilt.MNrmTrg.Value), 1e-6)
	gic, ok := res.Conditions.Get("GICNrm")
	require.True(t, ok)
	assert.True(t, gic.Holds)
}

func TestSolve_NotConverged(t *testing.T) {
	p := pfParams()
	res, err := induction.Solve(context.Background(), bare(t, p.CRRA), p, induction.WithMaxIterations(3))
	require.ErrorIs(t, err, induction.ErrNotConverged)
	require.NotNil(t, res)
	assert.False(t, res.Converged)
	assert.Equal(t, 3, res.Iterations)
	assert.Equal(t, solver.StatusFinished, res.First().Status)
}

func TestSolve_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := riskParams(t)
	res, err := induction.Solve(ctx, bare(t, p.CRRA), p, induction.WithCycles(3))
	assert.Nil(t, res)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSolve_Errors(t *testing.T) {
	p := pfParams()
	_, err := induction.Solve(context.Background(), nil, p)
	assert.ErrorIs(t, err, induction.ErrNilTerminal)

	enhanced, err := solver.Enhance(bare(t, p.CRRA), p)
	require.NoError(t, err)
	_, err = induction.Solve(context.Background(), enhanced, p)
	assert.ErrorIs(t, err, solver.ErrBadParam, "terminal must be bare")

	p.CRRA = -1
	_, err = induction.Solve(context.Background(), bare(t, 2), p, induction.WithCycles(1))
	assert.ErrorIs(t, err, solver.ErrBadParam)
}

func TestDistance(t *testing.T) {
	p := pfParams()
	res, err := induction.Solve(context.Background(), bare(t, p.CRRA), p, induction.WithCycles(2))
	require.NoError(t, err)
	a, b := res.Stages[0], res.Stages[1]
	assert.Equal(t, 0.0, induction.Distance(a, a, []float64{0, 1, 2}))
	d := induction.Distance(a, b, []float64{1})
	base := math.Max(a.MNrmMin(), b.MNrmMin())
	assert.InDelta(t, math.Abs(a.CFunc().Eval(base+1)-b.CFunc().Eval(base+1)), d, 1e-15)
}

func TestOptions_Panics(t *testing.T) {
	assert.Panics(t, func() { induction.WithCycles(-1) })
	assert.Panics(t, func() { induction.WithTolerance(0) })
	assert.Panics(t, func() { induction.WithMaxIterations(0) })
	assert.Panics(t, func() { induction.WithProbe(nil) })
	assert.Panics(t, func() { induction.WithProbe([]float64{-1}) })
	assert.Panics(t, func() { induction.WithLogger(nil) })
}
