// SPDX-License-Identifier: MIT

package solver

import (
	"fmt"
	"math"

	"github.com/katalvlaran/bufferstock/interp"
	"github.com/katalvlaran/bufferstock/value"
)

// makeVFuncEGM builds v(m) = u(c) + w(m − c), where w is the end-of-period
// value, both represented in inverse-value space with cubic interpolants.
// Log utility keeps only the marginal chain.
func makeVFuncEGM(s *Solution) error {
	b := &s.Bilt
	u := b.Utility
	if u.Rho == 1 {
		return nil
	}
	post := s.Et.Post.VPostChoice

	// Stage 1: end-of-period value ṽ(a) = u⁻¹(w(a)) and its slope.
	n := len(b.ANrmGrid)
	aT := make([]float64, 0, n+1)
	wNvrs := make([]float64, 0, n+1)
	wNvrsP := make([]float64, 0, n+1)
	aT, wNvrs, wNvrsP = append(aT, b.BoroCnstNat), append(wNvrs, 0), append(wNvrsP, math.NaN())
	for j, a := range b.ANrmGrid {
		w, wP := post.At(0, j), post.At(1, j)
		aT = append(aT, a)
		wNvrs = append(wNvrs, u.Inv(w))
		wNvrsP = append(wNvrsP, wP*u.InvP(w))
	}
	aT, cols := increasingKnots(aT, wNvrs, wNvrsP)
	wNvrs, wNvrsP = cols[0], cols[1]
	if len(aT) < 2 {
		return fmt.Errorf("%w: no end-of-period gridpoints above the natural constraint", ErrNumerical)
	}
	wNvrsP[0] = wNvrsP[1]
	wFunc, err := interp.NewCubic(aT, wNvrs, wNvrsP)
	if err != nil {
		return err
	}

	// Stage 2: value on mNrmMin + aXtra, carried into inverse space.
	mT := make([]float64, 0, n+1)
	vNvrs := make([]float64, 0, n+1)
	vNvrsP := make([]float64, 0, n+1)
	mT, vNvrs, vNvrsP = append(mT, b.MNrmMin), append(vNvrs, 0), append(vNvrsP, u.NvrsSlope(b.MPCmaxEff))
	for _, x := range s.Pars.AXtraGrid {
		m := b.MNrmMin + x
		c := b.CFunc.Eval(m)
		v := u.U(c) + u.U(wFunc.Eval(m-c))
		mT = append(mT, m)
		vNvrs = append(vNvrs, u.Inv(v))
		vNvrsP = append(vNvrsP, u.UP(c)*u.InvP(v))
	}
	mT, cols = increasingKnots(mT, vNvrs, vNvrsP)
	slope := u.NvrsSlope(b.MPCmin)
	nvrs, err := interp.NewCubicWithLimit(mT, cols[0], cols[1], slope*b.HNrm, slope)
	if err != nil {
		return err
	}
	b.VFunc = value.New(nvrs, b.CFunc, u)

	return nil
}
