// SPDX-License-Identifier: MIT

package solver

import (
	"fmt"
	"math"

	"github.com/katalvlaran/bufferstock/interp"
	"github.com/katalvlaran/bufferstock/value"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

// Gridpoints are the endogenous (a, m, c) triples of one stage, starting at
// the natural borrowing constraint with zero consumption. EvPP carries the
// expected marginal-marginal value at each asset level (NaN at the first point).
type Gridpoints struct {
	A, M, C, EvPP []float64
}

// Interpolator turns endogenous gridpoints into the unconstrained policy.
type Interpolator interface {
	Build(s *Solution, pts Gridpoints) (interp.Func, error)
}

// LinearInterpolator connects the gridpoints with line segments and bends
// toward the limiting linear policy above them.
type LinearInterpolator struct{}

// Build implements Interpolator.
func (LinearInterpolator) Build(s *Solution, pts Gridpoints) (interp.Func, error) {
	return interp.NewLinearWithLimit(pts.M, pts.C, s.Bilt.CFuncLimitIntercept, s.Bilt.CFuncLimitSlope)
}

// solveIncomeRisk is the endogenous gridpoints solve shared by both strategies.
func solveIncomeRisk(next *Solution, p Params, strategy Interpolator, o Options) (*Solution, error) {
	s, err := newStage(next, p, o)
	if err != nil {
		return nil, err
	}
	sh, err := NewShockSetup(p.IncShkDstn, p.PermShkName, p.TranShkName)
	if err != nil {
		return nil, stageErr(o.stage, "", err)
	}
	s.Shocks = sh
	if p.VFuncBool && !s.Folw.VFunc.HasLevel() {
		return nil, &StageError{Stage: o.stage, Param: "VFuncBool", Err: ErrNoValueLevel}
	}

	var fb FactBuilder = IncomeRiskFacts{Shocks: sh}
	fb.BuildInfHorFacts(s)
	fb.BuildRecursiveFacts(s)
	b := &s.Bilt

	// Stage 1: unconstrained policy.
	var unc interp.Func
	if len(p.AXtraGrid) == 0 {
		o.logger.Warn("empty asset grid, using the limiting linear policy", zap.Int("stage", o.stage))
		unc, err = interp.NewLinear([]float64{b.BoroCnstNat, b.BoroCnstNat + 1}, []float64{0, b.MPCmin})
		if err != nil {
			return nil, stageErr(o.stage, "cFunc", err)
		}
	} else {
		pts, err := endogenousGridpoints(s, o)
		if err != nil {
			return nil, stageErr(o.stage, "EGM", err)
		}
		if unc, err = strategy.Build(s, pts); err != nil {
			return nil, stageErr(o.stage, "cFunc", err)
		}
	}

	// Stage 2: artificial constraint.
	b.CFunc = unc
	if p.BoroCnstArt != nil {
		cnst, err := interp.NewLinear([]float64{b.MNrmMin, b.MNrmMin + 1}, []float64{0, 1})
		if err != nil {
			return nil, stageErr(o.stage, "cFunc", err)
		}
		env, err := interp.NewLowerEnvelope(unc, cnst)
		if err != nil {
			return nil, stageErr(o.stage, "cFunc", err)
		}
		b.CFuncCnst, b.CFunc = cnst, env
	}

	// Stage 3: value function.
	b.VFunc = value.New(nil, b.CFunc, b.Utility)
	if p.VFuncBool && len(p.AXtraGrid) > 0 {
		if err := makeVFuncEGM(s); err != nil {
			return nil, stageErr(o.stage, "vFunc", err)
		}
	}

	return finish(s, o), nil
}

// endogenousGridpoints inverts the Euler equation on aNrm = BoroCnstNat + aXtra.
func endogenousGridpoints(s *Solution, o Options) (Gridpoints, error) {
	b := &s.Bilt
	aNrm := make([]float64, len(s.Pars.AXtraGrid))
	for i, x := range s.Pars.AXtraGrid {
		aNrm[i] = b.BoroCnstNat + x
	}
	post, err := postChoiceValues(s, aNrm, o)
	if err != nil {
		return Gridpoints{}, err
	}
	s.Et.Post.VPostChoice = post
	b.ANrmGrid = aNrm

	n := len(aNrm) + 1
	pts := Gridpoints{A: make([]float64, n), M: make([]float64, n), C: make([]float64, n), EvPP: make([]float64, n)}
	pts.A[0], pts.M[0], pts.C[0], pts.EvPP[0] = b.BoroCnstNat, b.BoroCnstNat, 0, math.NaN()
	for j, a := range aNrm {
		c := b.Utility.PInv(post.At(1, j))
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return Gridpoints{}, fmt.Errorf("%w: consumption %v at a=%v", ErrNumerical, c, a)
		}
		pts.A[j+1], pts.M[j+1], pts.C[j+1], pts.EvPP[j+1] = a, c+a, c, post.At(2, j)
	}
	m, cols := increasingKnots(pts.M, pts.A, pts.C, pts.EvPP)
	pts = Gridpoints{A: cols[0], M: m, C: cols[1], EvPP: cols[2]}
	b.MNrmGrid, b.CNrmGrid = pts.M, pts.C

	return pts, nil
}

// postChoiceValues returns E v, E v′ and E v″ of the successor discounted
// to each asset level, with m′ = R/(Γψ)·a + θ:
//
//	row 0  DiscLiv·E[(Γψ)^(1−ρ′)·v(m′)]
//	row 1  DiscLiv·R·E[(Γψ)^(−ρ′)·v′(m′)]
//	row 2  DiscLiv·R²·E[(Γψ)^(−1−ρ′)·v″(m′)]
//
// Row 0 is NaN unless the value function level is requested.
func postChoiceValues(s *Solution, aNrm []float64, o Options) (*mat.Dense, error) {
	var (
		sh      = s.Shocks
		R       = s.Pars.Rfree
		G       = s.Pars.PermGroFac
		discLiv = s.Pars.DiscLiv()
		rho     = s.Folw.CRRA
		v       = s.Folw.VFunc
		vP      = v.DM()
		vPP     = vP.DM()
		level   = s.Pars.VFuncBool
	)
	f := func(atom []float64, a float64, out []float64) {
		gpsi := G * atom[sh.PermPos]
		mNext := R/gpsi*a + atom[sh.TranPos]
		out[0] = math.NaN()
		if level {
			out[0] = discLiv * math.Pow(gpsi, 1-rho) * v.Eval(mNext)
		}
		out[1] = discLiv * R * math.Pow(gpsi, -rho) * vP.Eval(mNext)
		out[2] = discLiv * R * R * math.Pow(gpsi, -1-rho) * vPP.Eval(mNext)
	}

	return sh.Dstn.ExpectArray(o.ctx, f, aNrm, 3, o.workers)
}

// increasingKnots keeps the entries whose x strictly exceeds the last kept x,
// filtering the companion columns alike.
func increasingKnots(xs []float64, cols ...[]float64) ([]float64, [][]float64) {
	keep := make([]int, 0, len(xs))
	for i, x := range xs {
		if len(keep) == 0 || x > xs[keep[len(keep)-1]] {
			keep = append(keep, i)
		}
	}
	pick := func(src []float64) []float64 {
		out := make([]float64, len(keep))
		for j, i := range keep {
			out[j] = src[i]
		}
		return out
	}
	picked := make([][]float64, len(cols))
	for k, c := range cols {
		picked[k] = pick(c)
	}

	return pick(xs), picked
}
