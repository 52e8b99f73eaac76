// SPDX-License-Identifier: MIT

package solver_test

import (
	"testing"

	"github.com/katalvlaran/bufferstock/distribution"
	"github.com/katalvlaran/bufferstock/grid"
	"github.com/katalvlaran/bufferstock/solver"
	"github.com/stretchr/testify/require"
)

// pfParams is the textbook perfect-foresight calibration.
func pfParams() solver.Params {
	return solver.Params{
		Rfree:      1.03,
		PermGroFac: 1.0,
		LivPrb:     1.0,
		DiscFac:    0.96,
		CRRA:       2.0,
	}
}

// riskParams is the standard idiosyncratic-shocks calibration with a
// zero artificial borrowing limit.
func riskParams(t testing.TB) solver.Params {
	t.Helper()
	d, err := distribution.IncomeProcess{
		PermShkStd: 0.1, PermShkCount: 7,
		TranShkStd: 0.1, TranShkCount: 7,
		UnempPrb: 0.05, IncUnemp: 0.3,
	}.Build()
	require.NoError(t, err)
	aXtra, err := grid.ExpMult(0.001, 20, 48, 3)
	require.NoError(t, err)
	zero := 0.0

	return solver.Params{
		Rfree:       1.03,
		PermGroFac:  1.01,
		LivPrb:      0.98,
		DiscFac:     0.96,
		CRRA:        2.0,
		BoroCnstArt: &zero,
		AXtraGrid:   aXtra,
		IncShkDstn:  d,
	}
}

// terminal returns the enhanced terminal stage for p.
func terminal(t testing.TB, p solver.Params) *solver.Solution {
	t.Helper()
	bare, err := solver.NewTerminal(p.CRRA)
	require.NoError(t, err)
	term, err := solver.Enhance(bare, p)
	require.NoError(t, err)

	return term
}

// solveBack solves n stages backward from the enhanced terminal.
func solveBack(t testing.TB, p solver.Params, n int, opts ...solver.Option) []*solver.Solution {
	t.Helper()
	stages := []*solver.Solution{terminal(t, p)}
	for i := 0; i < n; i++ {
		next := stages[len(stages)-1]
		s, err := solver.SolveStage(next, p, opts...)
		require.NoError(t, err, "stage %d", i)
		stages = append(stages, s)
	}

	return stages
}

func ptr(x float64) *float64 { return &x }
