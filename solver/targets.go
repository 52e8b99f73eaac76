// SPDX-License-Identifier: MIT

package solver

import (
	"github.com/katalvlaran/bufferstock/interp"
	"github.com/katalvlaran/bufferstock/roots"
)

// Residuals is an immutable snapshot of the closed-form expectation
// functions of a solved stage. The successor's consumption function is
// approximated by the stage's own, which is exact at a fixed point.
type Residuals struct {
	cFunc      interp.Func
	rNrm       float64
	rNrmPF     float64
	invRNrmPF  float64
	incNrmNxt  float64
	permGroFac float64
	perm       []float64
	tran       []float64
	prbs       []float64
}

// Residuals captures the stage's expectation functions.
func (s *Solution) Residuals() Residuals {
	r := Residuals{
		cFunc:      s.Bilt.CFunc,
		rNrm:       s.Et.Post.RNrm,
		rNrmPF:     s.Et.Post.RNrmPF,
		invRNrmPF:  s.Et.Post.InvRNrmPF,
		incNrmNxt:  s.Et.Ante.IncNrmNxt,
		permGroFac: s.Pars.PermGroFac,
		perm:       []float64{1},
		tran:       []float64{1},
		prbs:       []float64{1},
	}
	if s.Shocks != nil {
		r.perm, r.tran, r.prbs = s.Shocks.PermShkVals, s.Shocks.TranShkVals, s.Shocks.ShkPrbs
	}

	return r
}

// MTp1MinusMt is E[m_{t+1}] − m_t; its root is the target m.
func (r Residuals) MTp1MinusMt(m float64) float64 {
	return r.rNrm*(m-r.cFunc.Eval(m)) + r.incNrmNxt - m
}

// PermShkTimesMTp1MinusMt is E[ψ·m_{t+1}] − m_t; its root is the
// individual steady state of m.
func (r Residuals) PermShkTimesMTp1MinusMt(m float64) float64 {
	return r.rNrmPF*(m-r.cFunc.Eval(m)) + r.incNrmNxt - m
}

// CWhereETMTp1MinusMtEq0 is the consumption keeping E[m_{t+1}] = m_t.
func (r Residuals) CWhereETMTp1MinusMtEq0(m float64) float64 {
	return m*(1-1/r.rNrm) + 1/r.rNrm
}

// CWherePermShkTimesMTp1MinusMtEq0 is the consumption keeping E[ψ·m_{t+1}] = m_t.
func (r Residuals) CWherePermShkTimesMTp1MinusMtEq0(m float64) float64 {
	return m*(1-r.invRNrmPF) + r.invRNrmPF
}

// MLevTp1OverPLevTFromA is E[M_{t+1}/P_t] given end-of-period assets a.
func (r Residuals) MLevTp1OverPLevTFromA(a float64) float64 {
	var sum float64
	for i, p := range r.prbs {
		psi := r.perm[i]
		sum += p * r.permGroFac * psi * ((r.rNrmPF/psi)*a + r.tran[i])
	}

	return sum
}

// CLevTp1OverPLevTFromA is E[C_{t+1}/P_t] given end-of-period assets a.
func (r Residuals) CLevTp1OverPLevTFromA(a float64) float64 {
	var sum float64
	for i, p := range r.prbs {
		psi := r.perm[i]
		sum += p * r.permGroFac * psi * r.cFunc.Eval((r.rNrmPF/psi)*a+r.tran[i])
	}

	return sum
}

// CLevTp1OverCLevTFromM is expected consumption growth E[C_{t+1}/C_t] at m.
func (r Residuals) CLevTp1OverCLevTFromM(m float64) float64 {
	c := r.cFunc.Eval(m)

	return r.CLevTp1OverPLevTFromA(m-c) / c
}

// FindTarget solves E[m_{t+1}] = m_t starting from mNrmMin + IncNrmNxt.
// Non-convergence yields Target{Found: false}.
func FindTarget(s *Solution, opts ...roots.Option) Target {
	return findRoot(s, s.Residuals().MTp1MinusMt, opts)
}

// FindSteadyState solves E[ψ·m_{t+1}] = m_t starting from mNrmMin + IncNrmNxt.
func FindSteadyState(s *Solution, opts ...roots.Option) Target {
	return findRoot(s, s.Residuals().PermShkTimesMTp1MinusMt, opts)
}

func findRoot(s *Solution, f func(float64) float64, opts []roots.Option) Target {
	x, err := roots.Find(f, s.Bilt.MNrmMin+s.Et.Ante.IncNrmNxt, opts...)
	if err != nil {
		return Target{}
	}

	return Target{Value: x, Found: true}
}

// WithTargets returns a copy of s with MNrmTrg and MNrmStE filled in.
func WithTargets(s *Solution, opts ...roots.Option) *Solution {
	out := *s
	out.Bilt.MNrmTrg = FindTarget(s, opts...)
	out.Bilt.MNrmStE = FindSteadyState(s, opts...)

	return &out
}
