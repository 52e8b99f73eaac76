// SPDX-License-Identifier: MIT

// Package interp provides the one-dimensional function representations used
// for consumption and value functions.
//
// Three concrete types satisfy Func:
//
//   - Linear      piecewise-linear through (x, y) pairs.
//   - Cubic       piecewise-cubic Hermite through (x, y, dy/dx) triples.
//   - LowerEnvelope pointwise minimum of several Funcs.
//
// In-range evaluation is delegated to gonum.org/v1/gonum/interp. Extrapolation
// is handled here, since gonum clamps to the end values:
//
//   - below the first knot the function continues along its first segment
//     (Linear) or first tangent (Cubic);
//   - above the last knot, when a limiting line y = a + b·x is supplied, the
//     function approaches it with exponentially decaying gap
//
//     y(x) = a + b·x − A·exp(−B·(x − xₙ)),
//     A = a + b·xₙ − yₙ,  B = −(b − y′ₙ)/A,
//
//     which matches both the level and slope at the last knot; without a
//     limit (or if the decay would not shrink) it continues along the last
//     segment or tangent.
//
// All values are immutable once constructed and safe for concurrent use.
package interp
