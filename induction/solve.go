// SPDX-License-Identifier: MIT

package induction

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/bufferstock/solver"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
)

var (
	// ErrNotConverged indicates an infinite-horizon run hit its iteration cap.
	// Solve still returns the last stage alongside it.
	ErrNotConverged = errors.New("induction: infinite horizon did not converge")

	// ErrNilTerminal indicates a nil terminal stage.
	ErrNilTerminal = errors.New("induction: nil terminal stage")
)

// Result is the outcome of a run.
//
// For a finite horizon Stages[0] is the first period and Stages[T] the
// enhanced terminal. For an infinite horizon Stages holds the converged
// stage only.
type Result struct {
	Stages     []*solver.Solution
	Iterations int
	Distance   float64 // last sup-norm distance, NaN for finite horizons
	Converged  bool
	Conditions solver.Report
}

// First returns the first-period stage.
func (r *Result) First() *solver.Solution { return r.Stages[0] }

// Solve runs backward induction from the bare terminal stage with the same
// stage parameters p in every period.
//
// Complexity: O(stages · cost(SolveStage)).
func Solve(ctx context.Context, terminal *solver.Solution, p solver.Params, opts ...Option) (*Result, error) {
	if terminal == nil {
		return nil, ErrNilTerminal
	}
	o := gatherOptions(opts...)
	term, err := solver.Enhance(terminal, p, solver.WithLogger(o.logger))
	if err != nil {
		return nil, fmt.Errorf("induction: %w", err)
	}

	var res *Result
	if o.cycles > 0 {
		res, err = solveFinite(ctx, term, p, o)
	} else {
		res, err = solveInfinite(ctx, term, p, o)
	}
	if res == nil {
		return nil, err
	}

	// Finalize the first-period stage.
	last := solver.WithTargets(res.Stages[0])
	last.Status = solver.StatusFinished
	res.Stages[0] = last
	var condOpts []solver.Option
	if !o.quiet {
		condOpts = append(condOpts, solver.WithLogger(o.logger))
	}
	res.Conditions = solver.CheckConditions(last, false, condOpts...)
	o.logger.Info("induction finished",
		zap.Int("iterations", res.Iterations),
		zap.Bool("converged", res.Converged),
		zap.Float64("distance", res.Distance),
		zap.Bool("targetFound", last.Bilt.MNrmTrg.Found),
		zap.Float64("mNrmTrg", last.Bilt.MNrmTrg.Value),
	)

	return res, err
}

func stageOptions(ctx context.Context, o Options, stage int) []solver.Option {
	out := make([]solver.Option, 0, len(o.solverOpts)+3)
	out = append(out, solver.WithLogger(o.logger))
	out = append(out, o.solverOpts...)

	return append(out, solver.WithStage(stage), solver.WithContext(ctx))
}

func solveFinite(ctx context.Context, term *solver.Solution, p solver.Params, o Options) (*Result, error) {
	stages := make([]*solver.Solution, o.cycles+1)
	stages[o.cycles] = term
	next := term
	for t := o.cycles - 1; t >= 0; t-- {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("induction: before stage %d: %w", t, err)
		}
		s, err := solver.SolveStage(next, p, stageOptions(ctx, o, t)...)
		if err != nil {
			return nil, fmt.Errorf("induction: %w", err)
		}
		o.logger.Debug("stage done", zap.Int("stage", t), zap.Float64("MPCmin", s.Bilt.MPCmin))
		stages[t] = s
		next = s
	}

	return &Result{Stages: stages, Iterations: o.cycles, Distance: math.NaN(), Converged: true}, nil
}

func solveInfinite(ctx context.Context, term *solver.Solution, p solver.Params, o Options) (*Result, error) {
	probe := o.probe
	if probe == nil {
		probe = make([]float64, DefaultProbePoints)
		floats.Span(probe, 0, DefaultProbeSpan)
	}

	next := term
	dist := math.Inf(1)
	for it := 1; it <= o.maxIter; it++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("induction: before iteration %d: %w", it, err)
		}
		s, err := solver.SolveStage(next, p, stageOptions(ctx, o, it)...)
		if err != nil {
			return nil, fmt.Errorf("induction: %w", err)
		}
		dist = Distance(s, next, probe)
		o.logger.Debug("iteration done", zap.Int("iteration", it), zap.Float64("distance", dist))
		next = s
		if dist < o.tol {
			return &Result{Stages: []*solver.Solution{s}, Iterations: it, Distance: dist, Converged: true}, nil
		}
	}
	o.logger.Warn("iteration cap reached", zap.Int("maxIterations", o.maxIter), zap.Float64("distance", dist))

	return &Result{Stages: []*solver.Solution{next}, Iterations: o.maxIter, Distance: dist},
		fmt.Errorf("%w: distance %g after %d iterations", ErrNotConverged, dist, o.maxIter)
}

// Distance is the sup-norm of c_a − c_b at the probe offsets above the
// larger of the two mNrmMin values. A NaN anywhere yields +Inf.
func Distance(a, b *solver.Solution, probe []float64) float64 {
	base := math.Max(a.MNrmMin(), b.MNrmMin())
	var d float64
	for _, x := range probe {
		diff := math.Abs(a.CFunc().Eval(base+x) - b.CFunc().Eval(base+x))
		if math.IsNaN(diff) {
			return math.Inf(1)
		}
		d = math.Max(d, diff)
	}

	return d
}
