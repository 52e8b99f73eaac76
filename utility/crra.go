// SPDX-License-Identifier: MIT

package utility

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrBadCRRA is returned when the risk-aversion coefficient is negative, NaN or infinite.
	ErrBadCRRA = errors.New("utility: CRRA must be a finite value >= 0")
)

// CRRA is the constant-relative-risk-aversion utility bundle with coefficient Rho.
type CRRA struct {
	Rho float64
}

// New returns the bundle for coefficient rho after validating it.
func New(rho float64) (CRRA, error) {
	if math.IsNaN(rho) || math.IsInf(rho, 0) || rho < 0 {
		return CRRA{}, fmt.Errorf("%w: got %v", ErrBadCRRA, rho)
	}

	return CRRA{Rho: rho}, nil
}

// isLog reports whether the bundle degenerates to log utility.
func (u CRRA) isLog() bool { return u.Rho == 1 }

// U evaluates utility at consumption c.
func (u CRRA) U(c float64) float64 {
	if u.isLog() {
		return math.Log(c)
	}

	return math.Pow(c, 1-u.Rho) / (1 - u.Rho)
}

// UP evaluates marginal utility u′(c).
func (u CRRA) UP(c float64) float64 {
	return math.Pow(c, -u.Rho)
}

// UPP evaluates the second derivative u″(c).
func (u CRRA) UPP(c float64) float64 {
	return -u.Rho * math.Pow(c, -u.Rho-1)
}

// Inv maps a utility level back to consumption.
func (u CRRA) Inv(v float64) float64 {
	if u.isLog() {
		return math.Exp(v)
	}

	return math.Pow((1-u.Rho)*v, 1/(1-u.Rho))
}

// InvP is the derivative of Inv with respect to the utility level.
func (u CRRA) InvP(v float64) float64 {
	if u.isLog() {
		return math.Exp(v)
	}

	return math.Pow((1-u.Rho)*v, u.Rho/(1-u.Rho))
}

// PInv maps marginal utility back to consumption, (u′)⁻¹.
func (u CRRA) PInv(vP float64) float64 {
	return math.Pow(vP, -1/u.Rho)
}

// PInvP is the derivative of PInv with respect to marginal utility.
func (u CRRA) PInvP(vP float64) float64 {
	return (-1 / u.Rho) * math.Pow(vP, -1/u.Rho-1)
}

// NvrsSlope converts a marginal propensity to consume into the slope of the
// inverse value function, κ^(-ρ/(1-ρ)). It is undefined (NaN) for log utility.
func (u CRRA) NvrsSlope(mpc float64) float64 {
	if u.isLog() {
		return math.NaN()
	}

	return math.Pow(mpc, -u.Rho/(1-u.Rho))
}
