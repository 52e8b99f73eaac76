// SPDX-License-Identifier: MIT

package solver

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// ---------- Defaults ----------

const (
	// DefaultWorkers lets the expectation kernel use GOMAXPROCS goroutines.
	DefaultWorkers = 0

	// DefaultStage marks a solve with no known stage index.
	DefaultStage = -1

	// MeanOneTolerance bounds |E[shock] − 1| accepted at shock setup.
	MeanOneTolerance = 1e-6
)

// ---------- Options ----------

// Option configures a stage solve.
type Option func(*Options)

// Options is the resolved configuration of a solve.
type Options struct {
	logger  *zap.Logger
	workers int
	stage   int
	ctx     context.Context
}

// WithLogger routes solver diagnostics to l. Panics on nil.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("solver: WithLogger(nil)")
	}

	return func(o *Options) { o.logger = l }
}

// WithWorkers sets the goroutine limit of the expectation kernel;
// 0 means GOMAXPROCS. Panics on negative n.
func WithWorkers(n int) Option {
	if n < 0 {
		panic(fmt.Sprintf("solver: WithWorkers(%d): must be >= 0", n))
	}

	return func(o *Options) { o.workers = n }
}

// WithStage records the stage index in the result and in errors.
func WithStage(i int) Option {
	return func(o *Options) { o.stage = i }
}

// WithContext lets the expectation kernel stop early on cancellation. Panics on nil.
func WithContext(ctx context.Context) Option {
	if ctx == nil {
		panic("solver: WithContext(nil)")
	}

	return func(o *Options) { o.ctx = ctx }
}

func gatherOptions(opts ...Option) Options {
	o := Options{
		logger:  zap.NewNop(),
		workers: DefaultWorkers,
		stage:   DefaultStage,
		ctx:     context.Background(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}
