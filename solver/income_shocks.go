// SPDX-License-Identifier: MIT

package solver

import (
	"fmt"

	"github.com/katalvlaran/bufferstock/distribution"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

// ShockSetup is the validated view of a joint (ψ, θ) income shock
// distribution used by the income-risk solvers.
type ShockSetup struct {
	Dstn    *distribution.Discrete
	PermPos int
	TranPos int

	PermShkVals []float64
	TranShkVals []float64
	ShkPrbs     []float64

	PermShkMin, PermShkMax float64
	TranShkMin, TranShkMax float64

	UnempPrb  float64 // marginal probability of the lowest transitory shock
	IncMinPrb float64 // probability that both shocks are at their minimum
	IncMaxPrb float64 // probability that both shocks are at their maximum
	IncMaxVal float64 // PermShkMax·TranShkMax
}

// NewShockSetup resolves the named shock columns of d and checks that both
// shocks have mean one. Empty names select distribution.PermShk and
// distribution.TranShk.
func NewShockSetup(d *distribution.Discrete, permName, tranName string) (*ShockSetup, error) {
	if d == nil {
		return nil, &StageError{Stage: -1, Param: "IncShkDstn", Err: fmt.Errorf("%w: nil distribution", ErrBadParam)}
	}
	if permName == "" {
		permName = distribution.PermShk
	}
	if tranName == "" {
		tranName = distribution.TranShk
	}

	// Stage 1: locate columns.
	pp, err := d.Position(permName)
	if err != nil {
		return nil, &StageError{Stage: -1, Param: "IncShkDstn", Err: err}
	}
	tp, err := d.Position(tranName)
	if err != nil {
		return nil, &StageError{Stage: -1, Param: "IncShkDstn", Err: err}
	}
	sh := &ShockSetup{
		Dstn:        d,
		PermPos:     pp,
		TranPos:     tp,
		PermShkVals: d.Atoms(pp),
		TranShkVals: d.Atoms(tp),
		ShkPrbs:     d.Pmf(),
	}

	// Stage 2: mean-one.
	for _, c := range []struct {
		name string
		vals []float64
	}{{permName, sh.PermShkVals}, {tranName, sh.TranShkVals}} {
		mean := floats.Dot(sh.ShkPrbs, c.vals)
		if !scalar.EqualWithinAbsOrRel(mean, 1, MeanOneTolerance, MeanOneTolerance) {
			return nil, &StageError{Stage: -1, Param: c.name, Err: fmt.Errorf("%w: mean is %v", ErrMeanOne, mean)}
		}
	}
	if floats.Min(sh.PermShkVals) <= 0 {
		return nil, &StageError{Stage: -1, Param: permName, Err: fmt.Errorf("%w: permanent shocks must be > 0", ErrBadParam)}
	}
	if floats.Min(sh.TranShkVals) < 0 {
		return nil, &StageError{Stage: -1, Param: tranName, Err: fmt.Errorf("%w: transitory shocks must be >= 0", ErrBadParam)}
	}

	// Stage 3: extremes and their probabilities.
	sh.PermShkMin, sh.PermShkMax = floats.Min(sh.PermShkVals), floats.Max(sh.PermShkVals)
	sh.TranShkMin, sh.TranShkMax = floats.Min(sh.TranShkVals), floats.Max(sh.TranShkVals)
	sh.IncMaxVal = sh.PermShkMax * sh.TranShkMax
	for i, p := range sh.ShkPrbs {
		psi, theta := sh.PermShkVals[i], sh.TranShkVals[i]
		if theta == sh.TranShkMin {
			sh.UnempPrb += p
		}
		if psi == sh.PermShkMin && theta == sh.TranShkMin {
			sh.IncMinPrb += p
		}
		if psi == sh.PermShkMax && theta == sh.TranShkMax {
			sh.IncMaxPrb += p
		}
	}

	return sh, nil
}

// expect returns E[f(ψ, θ)] in outcome order.
func (sh *ShockSetup) expect(f func(psi, theta float64) float64) float64 {
	var sum float64
	for i, p := range sh.ShkPrbs {
		sum += p * f(sh.PermShkVals[i], sh.TranShkVals[i])
	}

	return sum
}
