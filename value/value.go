// SPDX-License-Identifier: MIT

// Package value represents a stage's value function together with its
// marginal and marginal-marginal value, reached through chained DM() calls:
//
//	v(m)            = vf.Eval(m)
//	v′(m)           = vf.DM().Eval(m)
//	v″(m)           = vf.DM().DM().Eval(m)
//
// Levels are stored in "inverse value" space: v(m) = u(ṽ(m)) where ṽ is a
// well-behaved interpolant. Marginal values follow the envelope condition
// v′(m) = u′(c(m)) and v″(m) = u″(c(m))·c′(m) from the consumption function.
package value

import (
	"math"

	"github.com/katalvlaran/bufferstock/interp"
	"github.com/katalvlaran/bufferstock/utility"
)

// Func is a value function v(m).
type Func struct {
	nvrs  interp.Func // nil when the level is not represented
	cFunc interp.Func
	u     utility.CRRA
}

// New builds v(m) = u(nvrs(m)) with marginal values taken from cFunc.
// A nil nvrs yields NaN levels while keeping the derivative chain usable.
func New(nvrs, cFunc interp.Func, u utility.CRRA) *Func {
	return &Func{nvrs: nvrs, cFunc: cFunc, u: u}
}

// NewFromUtility builds the value function v(m) = u(m) whose consumption
// function is the identity, as in a terminal stage.
func NewFromUtility(cFunc interp.Func, u utility.CRRA) *Func {
	return &Func{nvrs: cFunc, cFunc: cFunc, u: u}
}

// Eval returns v(m).
func (v *Func) Eval(m float64) float64 {
	if v.nvrs == nil {
		return math.NaN()
	}

	return v.u.U(v.nvrs.Eval(m))
}

// HasLevel reports whether Eval yields a represented level.
func (v *Func) HasLevel() bool { return v.nvrs != nil }

// Nvrs returns the inverse-value interpolant, or nil.
func (v *Func) Nvrs() interp.Func { return v.nvrs }

// Utility returns the utility bundle the function was built with.
func (v *Func) Utility() utility.CRRA { return v.u }

// DM returns the marginal value function.
func (v *Func) DM() *Marginal {
	return &Marginal{cFunc: v.cFunc, u: v.u}
}

// Marginal is v′(m) = u′(c(m)).
type Marginal struct {
	cFunc interp.Func
	u     utility.CRRA
}

// Eval returns v′(m).
func (vp *Marginal) Eval(m float64) float64 {
	return vp.u.UP(vp.cFunc.Eval(m))
}

// DM returns the marginal-marginal value function.
func (vp *Marginal) DM() *MarginalMarginal {
	return &MarginalMarginal{cFunc: vp.cFunc, u: vp.u}
}

// MarginalMarginal is v″(m) = u″(c(m))·c′(m).
type MarginalMarginal struct {
	cFunc interp.Func
	u     utility.CRRA
}

// Eval returns v″(m).
func (vpp *MarginalMarginal) Eval(m float64) float64 {
	return vpp.u.UPP(vpp.cFunc.Eval(m)) * vpp.cFunc.Derivative(m)
}
