// SPDX-License-Identifier: MIT

// Package distribution holds finite discrete joint distributions of shocks
// and the expectation operator over them.
//
// A Discrete distribution has n outcomes over d variables. Atoms are stored
// column-wise: Atoms(k)[i] is the value of variable k in outcome i. Variables
// may be named so callers locate columns by meaning instead of position.
//
// Constructors cover the income process of the consumption model:
//
//   - MeanOneLogNormal: equiprobable discretization of a lognormal with mean 1.
//   - AddOutcomeConstantMean: mix in a low outcome (unemployment) while
//     rescaling the remaining atoms so the mean stays fixed.
//   - CombineIndependent: joint distribution of independent marginals.
//   - Degenerate: a single outcome where every variable equals 1.
//
// Expectations are evaluated in a fixed outcome order, so results are
// reproducible regardless of how many workers ExpectArray uses.
package distribution
