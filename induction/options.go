// SPDX-License-Identifier: MIT

package induction

import (
	"fmt"

	"github.com/katalvlaran/bufferstock/solver"
	"go.uber.org/zap"
)

const (
	// DefaultTolerance is the sup-norm distance accepted as converged.
	DefaultTolerance = 1e-6

	// DefaultMaxIterations caps an infinite-horizon run.
	DefaultMaxIterations = 2000

	// DefaultProbeSpan is the width of the default probe grid above mNrmMin.
	DefaultProbeSpan = 20.0

	// DefaultProbePoints is the size of the default probe grid.
	DefaultProbePoints = 200
)

// Option configures Solve.
type Option func(*Options)

// Options is the resolved configuration of a run.
type Options struct {
	logger     *zap.Logger
	cycles     int
	tol        float64
	maxIter    int
	probe      []float64
	solverOpts []solver.Option
	quiet      bool
}

// WithLogger routes progress logs to l. Panics on nil.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("induction: WithLogger(nil)")
	}

	return func(o *Options) { o.logger = l }
}

// WithCycles sets the number of stages; 0 selects the infinite horizon.
// Panics on negative n.
func WithCycles(n int) Option {
	if n < 0 {
		panic(fmt.Sprintf("induction: WithCycles(%d): must be >= 0", n))
	}

	return func(o *Options) { o.cycles = n }
}

// WithTolerance sets the infinite-horizon convergence tolerance. Panics if tol <= 0.
func WithTolerance(tol float64) Option {
	if !(tol > 0) {
		panic(fmt.Sprintf("induction: WithTolerance(%v): must be > 0", tol))
	}

	return func(o *Options) { o.tol = tol }
}

// WithMaxIterations caps the infinite-horizon run. Panics if n < 1.
func WithMaxIterations(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("induction: WithMaxIterations(%d): must be >= 1", n))
	}

	return func(o *Options) { o.maxIter = n }
}

// WithProbe sets the offsets above mNrmMin at which successive consumption
// functions are compared. Panics on an empty or negative probe.
func WithProbe(offsets []float64) Option {
	if len(offsets) == 0 {
		panic("induction: WithProbe: empty probe")
	}
	for _, x := range offsets {
		if !(x >= 0) {
			panic(fmt.Sprintf("induction: WithProbe: offset %v must be >= 0", x))
		}
	}
	cp := append([]float64(nil), offsets...)

	return func(o *Options) { o.probe = cp }
}

// WithSolverOptions forwards opts to every stage solve. Stage index and
// context are set by Solve itself.
func WithSolverOptions(opts ...solver.Option) Option {
	return func(o *Options) { o.solverOpts = append(o.solverOpts, opts...) }
}

// WithQuietConditions skips logging the condition report of the last stage.
func WithQuietConditions() Option {
	return func(o *Options) { o.quiet = true }
}

func gatherOptions(opts ...Option) Options {
	o := Options{
		logger:  zap.NewNop(),
		tol:     DefaultTolerance,
		maxIter: DefaultMaxIterations,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}
