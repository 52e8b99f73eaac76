// SPDX-License-Identifier: MIT

package solver

import (
	"fmt"
	"math"

	"github.com/katalvlaran/bufferstock/interp"
	"github.com/katalvlaran/bufferstock/utility"
	"github.com/katalvlaran/bufferstock/value"
)

// NewTerminal returns the bare terminal stage for risk aversion crra: the
// agent consumes everything, c(m) = m and v(m) = u(m). Recursive
// quantities are left undefined (NaN) until Enhance.
func NewTerminal(crra float64) (*Solution, error) {
	u, err := utility.New(crra)
	if err != nil {
		return nil, &StageError{Stage: -1, Param: "CRRA", Err: err}
	}
	cFunc, err := interp.NewLinear([]float64{0, 1}, []float64{0, 1})
	if err != nil {
		return nil, err
	}
	nan := math.NaN()

	return &Solution{
		Status: StatusTerminalPseudo,
		Stage:  DefaultStage,
		Bilt: Built{
			CFunc:       cFunc,
			VFunc:       value.NewFromUtility(cFunc, u),
			Utility:     u,
			HNrm:        nan,
			HNrmInf:     nan,
			BoroCnstNat: nan,
			BoroCnst:    nan,
			MNrmMin:     nan,
			MPCmin:      nan,
			MPCmax:      nan,
			MPCmaxEff:   nan,
		},
	}, nil
}

// Enhance returns a solvable terminal stage built from the bare record and
// the stage parameters p. The bare record is left untouched.
//
// The enhanced record has hNrm = 0, BoroCnstNat = mNrmMin = 0,
// MPCmin = MPCmax = 1, the perfect-foresight facts of p, and status
// StatusIterator.
func Enhance(bare *Solution, p Params, opts ...Option) (*Solution, error) {
	o := gatherOptions(opts...)
	if bare.Status != StatusTerminalPseudo {
		return nil, &StageError{Stage: o.stage, Err: fmt.Errorf("%w: Enhance needs a terminal-pseudo record, got %s", ErrBadParam, bare.Status)}
	}
	if err := p.Validate(); err != nil {
		return nil, stageErr(o.stage, "", err)
	}

	term := &Solution{
		Status: StatusIterator,
		Stage:  o.stage,
		Pars:   p,
		Bilt: Built{
			CFunc:               bare.Bilt.CFunc,
			VFunc:               bare.Bilt.VFunc,
			Utility:             bare.Bilt.Utility,
			HNrm:                0,
			BoroCnstNat:         0,
			BoroCnst:            0,
			MNrmMin:             0,
			MPCmin:              1,
			MPCmax:              1,
			MPCmaxEff:           1,
			CFuncLimitIntercept: 0,
			CFuncLimitSlope:     1,
		},
	}
	PerfectForesightFacts{}.BuildInfHorFacts(term)
	for name, v := range map[string]float64{
		"hNrm": 0, "BoroCnstNat": 0, "BoroCnst": 0, "mNrmMin": 0,
		"MPCmin": 1, "MPCmax": 1, "MPCmaxEff": 1,
		"cFuncLimitIntercept": 0, "cFuncLimitSlope": 1,
	} {
		term.Bilt.Facts[name] = Fact{Name: name, About: "terminal value", Formula: fmt.Sprint(v), Value: v}
	}
	term.Bilt.Recursive = append(term.Bilt.Recursive, recursiveNames...)
	term.Bilt.Conditions, term.Bilt.Degenerate = evaluateConditions(term).index()
	o.logger.Debug("terminal stage enhanced")

	return term, nil
}

// recursiveNames lists the successor-dependent facts in table order.
var recursiveNames = []string{
	"hNrm", "BoroCnstNat", "BoroCnst", "mNrmMin", "MPCmin", "MPCmax", "MPCmaxEff",
	"cFuncLimitIntercept", "cFuncLimitSlope",
}
