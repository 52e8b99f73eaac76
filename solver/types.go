// SPDX-License-Identifier: MIT

package solver

import (
	"fmt"
	"math"

	"github.com/katalvlaran/bufferstock/distribution"
	"github.com/katalvlaran/bufferstock/interp"
	"github.com/katalvlaran/bufferstock/utility"
	"github.com/katalvlaran/bufferstock/value"
	"gonum.org/v1/gonum/mat"
)

// Status is the lifecycle state of a stage record.
type Status int

const (
	// StatusNotInitialized is the zero value: nothing has been solved.
	StatusNotInitialized Status = iota
	// StatusTerminalPseudo marks the bare terminal stage.
	StatusTerminalPseudo
	// StatusIterator marks a solved stage usable as a successor.
	StatusIterator
	// StatusFinished marks the last stage of a completed induction.
	StatusFinished
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusNotInitialized:
		return "not-initialized"
	case StatusTerminalPseudo:
		return "terminal-pseudo"
	case StatusIterator:
		return "iterator"
	case StatusFinished:
		return "finished"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Params are the primitive parameters of one stage.
//
// Fields:
//   - Rfree       gross risk-free return, > 0.
//   - PermGroFac  gross permanent income growth, > 0.
//   - LivPrb      survival probability, in (0, 1].
//   - DiscFac     time preference factor, > 0.
//   - CRRA        relative risk aversion, > 0.
//   - BoroCnstArt artificial borrowing limit on normalized assets; nil for none.
//   - MaxKinks    cap on kink points of the perfect-foresight policy; 0 for none.
//   - AXtraGrid   end-of-period assets above the natural limit, >= 0 and increasing.
//   - IncShkDstn  joint (permanent, transitory) shock distribution; nil for perfect foresight.
//   - PermShkName / TranShkName  variable names in IncShkDstn; empty selects the defaults.
//   - VFuncBool   build the value function level.
//   - CubicBool   use cubic interpolation for c(m).
type Params struct {
	Rfree       float64
	PermGroFac  float64
	LivPrb      float64
	DiscFac     float64
	CRRA        float64
	BoroCnstArt *float64
	MaxKinks    int
	AXtraGrid   []float64
	IncShkDstn  *distribution.Discrete
	PermShkName string
	TranShkName string
	VFuncBool   bool
	CubicBool   bool
}

// DiscLiv is the survival-adjusted discount factor DiscFac·LivPrb.
func (p Params) DiscLiv() float64 { return p.DiscFac * p.LivPrb }

// Validate checks every parameter and returns a *StageError naming the first
// offending one.
func (p Params) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"Rfree", p.Rfree},
		{"PermGroFac", p.PermGroFac},
		{"DiscFac", p.DiscFac},
		{"CRRA", p.CRRA},
	}
	for _, f := range positive {
		if !(f.v > 0) || math.IsInf(f.v, 0) {
			return &StageError{Stage: -1, Param: f.name, Err: fmt.Errorf("%w: must be finite and > 0, got %v", ErrBadParam, f.v)}
		}
	}
	if !(p.LivPrb > 0 && p.LivPrb <= 1) {
		return &StageError{Stage: -1, Param: "LivPrb", Err: fmt.Errorf("%w: must be in (0, 1], got %v", ErrBadParam, p.LivPrb)}
	}
	if p.BoroCnstArt != nil && (math.IsNaN(*p.BoroCnstArt) || math.IsInf(*p.BoroCnstArt, 0)) {
		return &StageError{Stage: -1, Param: "BoroCnstArt", Err: fmt.Errorf("%w: must be finite", ErrBadParam)}
	}
	if p.MaxKinks < 0 {
		return &StageError{Stage: -1, Param: "MaxKinks", Err: fmt.Errorf("%w: must be >= 0, got %d", ErrBadParam, p.MaxKinks)}
	}
	for i, a := range p.AXtraGrid {
		if a < 0 || math.IsNaN(a) || math.IsInf(a, 0) || (i > 0 && a <= p.AXtraGrid[i-1]) {
			return &StageError{Stage: -1, Param: "AXtraGrid", Err: fmt.Errorf("%w: must be >= 0 and strictly increasing at %d", ErrBadParam, i)}
		}
	}

	return nil
}

// Fact is a named diagnostic scalar.
type Fact struct {
	Name    string
	About   string
	Formula string
	Label   string
	Value   float64
}

// Target is a root-finding result; Found is false when it did not converge.
type Target struct {
	Value float64
	Found bool
}

// Built holds everything a stage constructs for itself.
type Built struct {
	CFunc     interp.Func
	CFuncCnst interp.Func // constrained branch c = m − mNrmMin, nil without BoroCnstArt
	VFunc     *value.Func
	Utility   utility.CRRA

	HNrm                float64
	HNrmInf             float64
	BoroCnstNat         float64
	BoroCnst            float64
	MNrmMin             float64
	MPCmin              float64
	MPCmax              float64
	MPCmaxEff           float64
	CFuncLimitIntercept float64
	CFuncLimitSlope     float64

	Facts      map[string]Fact
	Recursive  []string
	Conditions map[string]Condition
	Degenerate bool

	ANrmGrid []float64
	MNrmGrid []float64
	CNrmGrid []float64

	MNrmTrg Target
	MNrmStE Target
}

// Factor returns the value of the named fact, NaN if absent.
func (b *Built) Factor(name string) float64 {
	f, ok := b.Facts[name]
	if !ok {
		return math.NaN()
	}

	return f.Value
}

// AnteChoice holds expectations over shocks realized before next period's choice.
type AnteChoice struct {
	IncNrmNxt   float64 // E[ψθ]
	InvPermShk  float64 // E[1/ψ]
	UInvPermShk float64 // E[ψ^(1−ρ)]
}

// PostChoice holds expectations taken after this period's choice.
type PostChoice struct {
	RNrmPF    float64
	InvRNrmPF float64
	RNrm      float64
	// VPostChoice rows are E v, E v′ and E v″ discounted back to the asset
	// grid; columns follow Built.ANrmGrid. Nil for perfect foresight.
	VPostChoice *mat.Dense
}

// Expectations collects the stage's expectation quantities.
type Expectations struct {
	Ante AnteChoice
	Post PostChoice
}

// Following is the successor's recursive state as seen from this stage.
type Following struct {
	CFunc       interp.Func
	VFunc       *value.Func
	Utility     utility.CRRA
	CRRA        float64
	HNrm        float64
	MNrmMin     float64
	MPCmin      float64
	MPCmax      float64
	BoroCnstNat float64
	MNrmKinks   []float64
	CNrmKinks   []float64
}

// Solution is the record of one solved stage.
type Solution struct {
	Status Status
	Stage  int
	Pars   Params
	Bilt   Built
	Et     Expectations
	Folw   Following
	Shocks *ShockSetup // nil for perfect foresight
}

// CFunc returns the consumption function.
func (s *Solution) CFunc() interp.Func { return s.Bilt.CFunc }

// VFunc returns the value function.
func (s *Solution) VFunc() *value.Func { return s.Bilt.VFunc }

// MNrmMin returns the lowest feasible market resources.
func (s *Solution) MNrmMin() float64 { return s.Bilt.MNrmMin }
