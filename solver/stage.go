// SPDX-License-Identifier: MIT

package solver

import (
	"fmt"

	"github.com/katalvlaran/bufferstock/interp"
	"github.com/katalvlaran/bufferstock/utility"
	"go.uber.org/zap"
)

// SolveStage solves one stage given its solved successor next.
//
// Dispatch:
//   - p.IncShkDstn == nil  perfect foresight;
//   - p.CubicBool          income risk with cubic c(m);
//   - otherwise            income risk with piecewise-linear c(m).
//
// A bare terminal successor yields ErrPseudoTerminal; a finished successor
// panics.
func SolveStage(next *Solution, p Params, opts ...Option) (*Solution, error) {
	if p.IncShkDstn == nil {
		return SolvePerfectForesight(next, p, opts...)
	}
	var strategy Interpolator = LinearInterpolator{}
	if p.CubicBool {
		strategy = CubicInterpolator{}
	}

	return solveIncomeRisk(next, p, strategy, gatherOptions(opts...))
}

// checkSuccessor enforces the stage lifecycle.
func checkSuccessor(next *Solution, stage int) error {
	if next == nil {
		return &StageError{Stage: stage, Param: "successor", Err: ErrNotInitialized}
	}
	switch next.Status {
	case StatusFinished:
		panic(fmt.Sprintf("solver: stage %d: successor stage %d is already finished", stage, next.Stage))
	case StatusTerminalPseudo:
		return &StageError{Stage: stage, Param: "successor", Err: ErrPseudoTerminal}
	case StatusNotInitialized:
		return &StageError{Stage: stage, Param: "successor", Err: ErrNotInitialized}
	}

	return nil
}

// newStage starts a record for p whose successor is next.
func newStage(next *Solution, p Params, o Options) (*Solution, error) {
	if err := checkSuccessor(next, o.stage); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, stageErr(o.stage, "", err)
	}
	s := &Solution{
		Status: StatusIterator,
		Stage:  o.stage,
		Pars:   p,
		Folw:   followingOf(next),
	}
	s.Bilt.Utility = utility.CRRA{Rho: p.CRRA}

	return s, nil
}

// followingOf copies the successor's recursive quantities. Kinks are the
// interior knots of a piecewise-linear successor policy.
func followingOf(next *Solution) Following {
	b := next.Bilt
	f := Following{
		CFunc:       b.CFunc,
		VFunc:       b.VFunc,
		Utility:     b.Utility,
		CRRA:        b.Utility.Rho,
		HNrm:        b.HNrm,
		MNrmMin:     b.MNrmMin,
		MPCmin:      b.MPCmin,
		MPCmax:      b.MPCmax,
		BoroCnstNat: b.BoroCnstNat,
	}
	if lin, ok := b.CFunc.(*interp.Linear); ok {
		xs, ys := lin.Knots()
		if n := len(xs); n > 2 {
			f.MNrmKinks, f.CNrmKinks = xs[1:n-1], ys[1:n-1]
		}
	}

	return f
}

// finish evaluates the conditions and logs the stage summary.
func finish(s *Solution, o Options) *Solution {
	s.Bilt.Conditions, s.Bilt.Degenerate = evaluateConditions(s).index()
	o.logger.Debug("stage solved",
		zap.Int("stage", s.Stage),
		zap.Float64("hNrm", s.Bilt.HNrm),
		zap.Float64("mNrmMin", s.Bilt.MNrmMin),
		zap.Float64("MPCmin", s.Bilt.MPCmin),
		zap.Float64("MPCmax", s.Bilt.MPCmax),
		zap.Bool("degenerate", s.Bilt.Degenerate),
	)

	return s
}
