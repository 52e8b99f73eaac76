// SPDX-License-Identifier: MIT

// Package induction drives backward induction over solver stages.
//
// Solve enhances a bare terminal stage and repeatedly calls
// solver.SolveStage. A finite horizon (WithCycles(T), T >= 1) solves exactly
// T stages and returns all of them. A zero cycle count means an infinite
// horizon: stages are solved until the sup-norm distance between successive
// consumption functions on a probe grid falls below the tolerance, and only
// the converged stage is kept.
//
// The last stage of a run is returned with status solver.StatusFinished, its
// targets filled in and its stability conditions checked. Cancellation of
// ctx is honored between stages and inside the expectation kernel.
package induction
