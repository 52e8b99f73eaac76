// SPDX-License-Identifier: MIT

// Package utility implements the constant-relative-risk-aversion (CRRA)
// utility bundle used by the stage solvers.
//
// For a coefficient ρ ≥ 0 the bundle provides
//
//	u(c)    = c^(1-ρ)/(1-ρ)        (log c when ρ = 1)
//	u′(c)   = c^(-ρ)
//	u″(c)   = -ρ·c^(-ρ-1)
//	u⁻¹(v)  = ((1-ρ)·v)^(1/(1-ρ))  (exp v when ρ = 1)
//	(u′)⁻¹  = x^(-1/ρ)
//
// together with the derivatives of the two inverse maps, which the value
// function construction needs to carry slopes into "inverse value" space.
//
// The bundle is a plain value type: copy it freely, it has no state besides ρ.
//
// Conventions at the boundary follow IEEE arithmetic: u′(0) = +Inf, and
// (u′)⁻¹(+Inf) = 0, so a successor with zero consumption at its lower bound
// yields exactly zero consumption after inversion.
package utility
