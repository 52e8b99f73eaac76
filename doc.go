// SPDX-License-Identifier: MIT

// Package bufferstock solves the consumption-saving problem of a consumer
// facing permanent and transitory income shocks, one stage at a time, by
// backward induction.
//
// 🚀 What is bufferstock?
//
//	A small numerical library and CLI that brings together:
//		• Utility: CRRA utility, its derivatives and inverses
//		• Distributions: discrete shocks, equiprobable lognormals, expectations
//		• Interpolation: linear and cubic Hermite with limit-aware tails
//		• Stage solvers: perfect foresight (closed form), EGM linear and cubic
//		• Diagnostics: patience factors, stability conditions, target wealth
//		• Induction: finite horizons and infinite-horizon convergence
//
// ✨ Why choose bufferstock?
//
//   - Immutable stage records: every solve returns a fresh *solver.Solution
//   - Explicit lifecycle: bare terminal → enhanced → solved → finished
//   - Closed-form bounds: MPCs, human wealth and constraints as named facts
//   - Parallel expectations with deterministic results
//
// Packages:
//
//	utility/       CRRA utility and inverse-utility operators
//	distribution/  discrete distributions, income shock constructors, expectations
//	grid/          multi-exponentially spaced asset grids
//	interp/        piecewise linear / cubic functions and lower envelopes
//	value/         value functions stored in inverse space, with DM() chains
//	roots/         secant root finding for targets
//	solver/        one-stage solvers, facts, conditions, targets
//	induction/     backward induction driver
//	config/        YAML calibrations and file watching
//	chart/         consumption function plots
//	cmd/bufferstock  the command line tool
//
// Quick example:
//
//	bare, _ := solver.NewTerminal(2)
//	res, err := induction.Solve(ctx, bare, params, induction.WithCycles(40))
//	c := res.First().CFunc().Eval(1.5)
//
//	go install github.com/katalvlaran/bufferstock/cmd/bufferstock@latest
package bufferstock
