// SPDX-License-Identifier: MIT

package solver

import (
	"github.com/katalvlaran/bufferstock/interp"
)

// CubicInterpolator builds a cubic Hermite policy whose slopes at the
// gridpoints come from the expected marginal-marginal value:
//
//	dc/da = E v″(a) / u″(c),  MPC = (dc/da) / (dc/da + 1),
//
// with MPCmax at the natural constraint.
type CubicInterpolator struct{}

// Build implements Interpolator.
func (CubicInterpolator) Build(s *Solution, pts Gridpoints) (interp.Func, error) {
	u := s.Bilt.Utility
	mpc := make([]float64, len(pts.M))
	mpc[0] = s.Bilt.MPCmax
	for i := 1; i < len(mpc); i++ {
		dcda := pts.EvPP[i] / u.UPP(pts.C[i])
		mpc[i] = dcda / (dcda + 1)
	}

	return interp.NewCubicWithLimit(pts.M, pts.C, mpc, s.Bilt.CFuncLimitIntercept, s.Bilt.CFuncLimitSlope)
}
