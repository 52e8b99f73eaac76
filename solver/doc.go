// SPDX-License-Identifier: MIT

// Package solver computes one stage of the consumption-saving problem by
// backward induction.
//
// A stage takes the already-solved successor (stage t+1) and produces a new
// immutable *Solution holding the consumption function c(m), the value
// function with its DM() derivative chain, and the closed-form patience
// diagnostics that bound the solution.
//
// Three solvers share one record type and one pipeline:
//
//	SolvePerfectForesight  no income risk; closed-form kinked policy.
//	SolveStage / linear    income risk; endogenous gridpoints, piecewise linear c(m).
//	SolveStage / cubic     as above with slopes from E v″, cubic Hermite c(m).
//
// SolveStage picks the solver from Params: a nil IncShkDstn means perfect
// foresight, CubicBool picks the cubic interpolation strategy.
//
// Pipeline of every solve:
//
//  1. copy the successor's recursive quantities into Following;
//  2. build the infinite-horizon facts from parameters (fact table);
//  3. build the recursive facts (hNrm, constraints, bounding MPCs);
//  4. construct c(m) and v(m);
//  5. evaluate the stability conditions into Built.Conditions.
//
// Facts are named scalars with metadata (Fact): APF, RPF, GPFRaw, GPFLiv,
// GPFNrm, FHWF, FVAF, WRPF, DiscLiv, RNrmPF, InvRNrmPF, RNrm, IncNrmNxt,
// InvPermShk, UInvPermShk, hNrmInf, DiscGPFRawCusp, DiscGPFLivCusp,
// DiscGPFNrmCusp, and the recursive hNrm, BoroCnstNat, BoroCnst, mNrmMin,
// MPCmin, MPCmax, MPCmaxEff, cFuncLimitIntercept, cFuncLimitSlope.
//
// Lifecycle: NewTerminal builds the bare terminal stage (status
// StatusTerminalPseudo) which no solver accepts; Enhance returns the
// solvable terminal (StatusIterator). Passing a StatusFinished successor is
// a sequencing bug and panics.
//
// Records are never mutated after they are returned; Following shares the
// successor's immutable function values.
package solver
