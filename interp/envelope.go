// SPDX-License-Identifier: MIT

package interp

// LowerEnvelope is the pointwise minimum of its component functions.
// The derivative is that of the component attaining the minimum; ties go to
// the earliest component.
type LowerEnvelope struct {
	funcs []Func
}

// NewLowerEnvelope combines funcs into their lower envelope.
func NewLowerEnvelope(funcs ...Func) (*LowerEnvelope, error) {
	if len(funcs) == 0 {
		return nil, ErrNoFuncs
	}
	fs := make([]Func, len(funcs))
	copy(fs, funcs)

	return &LowerEnvelope{funcs: fs}, nil
}

// Eval returns min_k f_k(x).
func (e *LowerEnvelope) Eval(x float64) float64 {
	_, y := e.argmin(x)

	return y
}

// Derivative returns f_k′(x) for the minimizing k.
func (e *LowerEnvelope) Derivative(x float64) float64 {
	k, _ := e.argmin(x)

	return e.funcs[k].Derivative(x)
}

// Funcs returns the components in their original order.
func (e *LowerEnvelope) Funcs() []Func {
	out := make([]Func, len(e.funcs))
	copy(out, e.funcs)

	return out
}

func (e *LowerEnvelope) argmin(x float64) (int, float64) {
	best, y := 0, e.funcs[0].Eval(x)
	for k := 1; k < len(e.funcs); k++ {
		if v := e.funcs[k].Eval(x); v < y {
			best, y = k, v
		}
	}

	return best, y
}
