// SPDX-License-Identifier: MIT

package solver_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/bufferstock/solver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewTerminal_Bare checks c(m)=m, v=u(m) and undefined recursive quantities.
func TestNewTerminal_Bare(t *testing.T) {
	bare, err := solver.NewTerminal(2)
	require.NoError(t, err)

	assert.Equal(t, solver.StatusTerminalPseudo, bare.Status)
	assert.True(t, math.IsNaN(bare.Bilt.HNrm), "hNrm undefined before enhancement")
	for _, m := range []float64{0.5, 1, 3} {
		assert.InDelta(t, m, bare.CFunc().Eval(m), 1e-12)
		assert.InDelta(t, -1/m, bare.VFunc().Eval(m), 1e-12)
	}

	_, err = solver.NewTerminal(-1)
	assert.Error(t, err)
}

// TestEnhance_Terminal is the bootstrap step: the enhanced record is new,
// the bare one is untouched.
func TestEnhance_Terminal(t *testing.T) {
	p := pfParams()
	bare, err := solver.NewTerminal(p.CRRA)
	require.NoError(t, err)
	term, err := solver.Enhance(bare, p)
	require.NoError(t, err)

	assert.Equal(t, solver.StatusIterator, term.Status)
	assert.Equal(t, 0.0, term.Bilt.HNrm)
	assert.Equal(t, 0.0, term.Bilt.BoroCnstNat)
	assert.Equal(t, 0.0, term.Bilt.MNrmMin)
	assert.Equal(t, 1.0, term.Bilt.MPCmin)
	assert.Equal(t, 1.0, term.Bilt.MPCmax)
	assert.InDelta(t, 1/1.03, term.Bilt.Factor("FHWF"), 1e-12, "facts populated")
	assert.NotEmpty(t, term.Bilt.Conditions)

	assert.Equal(t, solver.StatusTerminalPseudo, bare.Status, "bare record not mutated")
	assert.True(t, math.IsNaN(bare.Bilt.HNrm))

	_, err = solver.Enhance(term, p)
	assert.ErrorIs(t, err, solver.ErrBadParam, "only bare terminals can be enhanced")
}

// TestSolveStage_Lifecycle enforces the successor status rules.
func TestSolveStage_Lifecycle(t *testing.T) {
	p := pfParams()
	bare, err := solver.NewTerminal(p.CRRA)
	require.NoError(t, err)

	_, err = solver.SolveStage(bare, p)
	assert.ErrorIs(t, err, solver.ErrPseudoTerminal)

	_, err = solver.SolveStage(&solver.Solution{}, p)
	assert.ErrorIs(t, err, solver.ErrNotInitialized)

	_, err = solver.SolveStage(nil, p)
	assert.ErrorIs(t, err, solver.ErrNotInitialized)

	done := *terminal(t, p)
	done.Status = solver.StatusFinished
	assert.Panics(t, func() { _, _ = solver.SolveStage(&done, p) }, "finished successor is a sequencing bug")
}
