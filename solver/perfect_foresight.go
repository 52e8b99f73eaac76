// SPDX-License-Identifier: MIT

package solver

import (
	"fmt"
	"math"

	"github.com/katalvlaran/bufferstock/interp"
	"github.com/katalvlaran/bufferstock/value"
	"go.uber.org/zap"
)

// SolvePerfectForesight solves a stage without income risk.
//
// The policy is piecewise linear: zero at the effective constraint, rising
// with slope one to the cusp where the constraint stops binding next period,
// then through the successor's kinks mapped back one period, and finally
// along slope MPCmin. Without an artificial constraint it is the single line
// c = MPCmin·(m + hNrm).
//
// Complexity: O(k) in the number of successor kinks.
func SolvePerfectForesight(next *Solution, p Params, opts ...Option) (*Solution, error) {
	o := gatherOptions(opts...)
	s, err := newStage(next, p, o)
	if err != nil {
		return nil, err
	}

	var fb FactBuilder = PerfectForesightFacts{}
	fb.BuildInfHorFacts(s)
	fb.BuildRecursiveFacts(s)

	if err := makeCFuncPF(s, o); err != nil {
		return nil, stageErr(o.stage, "cFunc", err)
	}
	if err := makeVFuncPF(s); err != nil {
		return nil, stageErr(o.stage, "vFunc", err)
	}

	return finish(s, o), nil
}

// kinkPoint is a (m, c) knot of the perfect-foresight policy.
type kinkPoint struct{ m, c float64 }

func makeCFuncPF(s *Solution, o Options) error {
	var (
		b       = &s.Bilt
		R       = s.Pars.Rfree
		G       = s.Pars.PermGroFac
		discLiv = s.Pars.DiscLiv()
		rhoNext = s.Folw.CRRA
		incNrm  = s.Et.Ante.IncNrmNxt
	)

	// Stage 1: map the successor's kinks back one period via the Euler equation.
	kinks := make([]kinkPoint, 0, len(s.Folw.MNrmKinks)+1)
	growth := math.Pow(R*discLiv, -1/rhoNext) * G
	for i, mNext := range s.Folw.MNrmKinks {
		a := (mNext - incNrm) * (G / R)
		c := growth * s.Folw.CNrmKinks[i]
		kinks = append(kinks, kinkPoint{m: a + c, c: c})
	}

	// Stage 2: the cusp, where saving exactly BoroCnst leaves next period
	// at its own lower bound. It exists only while the artificial limit binds;
	// otherwise c(BoroCnstNat) = 0 already.
	if s.Pars.BoroCnstArt != nil && b.BoroCnst > b.BoroCnstNat {
		mNextAtCnst := incNrm + b.BoroCnst*(R/G)
		vP := R * discLiv * math.Pow(G, -rhoNext) * s.Folw.VFunc.DM().Eval(mNextAtCnst)
		cCusp := b.Utility.PInv(vP)
		if math.IsNaN(cCusp) || math.IsInf(cCusp, 0) || cCusp < 0 {
			return fmt.Errorf("%w: cusp consumption %v", ErrNumerical, cCusp)
		}
		cusp := kinkPoint{m: cCusp + b.BoroCnst, c: cCusp}

		// Stage 3: merge; successor kinks below the cusp are dominated by it.
		if len(kinks) == 0 || cusp.m >= kinks[len(kinks)-1].m {
			kinks = []kinkPoint{cusp}
		} else {
			kept := []kinkPoint{cusp}
			for _, k := range kinks {
				if k.m > cusp.m {
					kept = append(kept, k)
				}
			}
			kinks = kept
		}
	}
	above := kinks[:0]
	for _, k := range kinks {
		if k.m > b.BoroCnst {
			above = append(above, k)
		}
	}
	kinks = above
	if maxKinks := s.Pars.MaxKinks; maxKinks > 0 && len(kinks) > maxKinks {
		o.logger.Debug("trimming kinks", zap.Int("kinks", len(kinks)), zap.Int("max", maxKinks))
		kinks = kinks[:maxKinks]
	}

	// Stage 4: constraint point, kinks, extrapolation point.
	ms := make([]float64, 0, len(kinks)+2)
	cs := make([]float64, 0, len(kinks)+2)
	ms, cs = append(ms, b.BoroCnst), append(cs, 0)
	for _, k := range kinks {
		ms, cs = append(ms, k.m), append(cs, k.c)
	}
	last := len(ms) - 1
	ms, cs = append(ms, ms[last]+1), append(cs, cs[last]+b.MPCmin)

	cFunc, err := interp.NewLinear(ms, cs)
	if err != nil {
		return err
	}
	b.CFunc = cFunc
	b.MNrmGrid, b.CNrmGrid = ms, cs
	if s.Pars.BoroCnstArt != nil {
		cnst, err := interp.NewLinear([]float64{b.MNrmMin, b.MNrmMin + 1}, []float64{0, 1})
		if err != nil {
			return err
		}
		b.CFuncCnst = cnst
	}

	return nil
}

// pfValueRefine is the number of subintervals each policy segment is split
// into for the value function.
const pfValueRefine = 16

// makeVFuncPF builds v(m) = u(c) + DiscLiv·Γ^(1−ρ′)·v′(R/Γ·(m − c) + 1) on the
// policy knots, each segment subdivided, and stores it in inverse-value space
// as a cubic with slopes from the envelope condition v′(m) = u′(c). Above the
// knots it approaches the unconstrained line MPCmin^(−ρ/(1−ρ))·(m + hNrm).
// Log utility, or a successor without a value level, keeps only the marginal
// chain.
func makeVFuncPF(s *Solution) error {
	b := &s.Bilt
	u := b.Utility
	slope := u.NvrsSlope(b.MPCmin)
	if math.IsNaN(slope) || !s.Folw.VFunc.HasLevel() {
		b.VFunc = value.New(nil, b.CFunc, u)
		return nil
	}
	var (
		R      = s.Pars.Rfree
		G      = s.Pars.PermGroFac
		incNrm = s.Et.Ante.IncNrmNxt
		vNext  = s.Folw.VFunc
		scale  = s.Pars.DiscLiv() * math.Pow(G, 1-s.Folw.CRRA)
	)

	// Stage 1: exact values and inverse slopes on the refined knots.
	ms := refineKnots(b.MNrmGrid, pfValueRefine)
	nv := make([]float64, len(ms))
	nvP := make([]float64, len(ms))
	for i, m := range ms {
		c := b.CFunc.Eval(m)
		if i == 0 {
			// c = 0 at the constraint: v is −∞ for ρ > 1 and its
			// inverse leaves zero with the slope of the binding MPC.
			c = 0
			if u.Rho > 1 {
				nv[0], nvP[0] = 0, u.NvrsSlope(b.MPCmaxEff)
				continue
			}
		}
		v := u.U(c) + scale*vNext.Eval((m-c)*R/G+incNrm)
		nv[i], nvP[i] = u.Inv(v), u.UP(c)*u.InvP(v)
	}
	// With ρ < 1, u′(0) is infinite; use the secant slope instead.
	if math.IsInf(nvP[0], 0) || math.IsNaN(nvP[0]) {
		nvP[0] = (nv[1] - nv[0]) / (ms[1] - ms[0])
	}

	// Stage 2: inverse-value cubic with the limiting line.
	nvrs, err := interp.NewCubicWithLimit(ms, nv, nvP, slope*b.HNrm, slope)
	if err != nil {
		return err
	}
	b.VFunc = value.New(nvrs, b.CFunc, u)

	return nil
}

// refineKnots splits every interval of xs into n equal parts.
func refineKnots(xs []float64, n int) []float64 {
	out := make([]float64, 0, (len(xs)-1)*n+1)
	for i := 0; i+1 < len(xs); i++ {
		lo, step := xs[i], (xs[i+1]-xs[i])/float64(n)
		for k := 0; k < n; k++ {
			out = append(out, lo+float64(k)*step)
		}
	}

	return append(out, xs[len(xs)-1])
}
