// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/katalvlaran/bufferstock/config"
	"github.com/katalvlaran/bufferstock/induction"
	"github.com/katalvlaran/bufferstock/solver"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) solveCmd() *cobra.Command {
	var (
		watch     bool
		allStages bool
	)
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve the model and print a stage summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.loadModel()
			if err != nil {
				return err
			}
			if err := a.solveAndPrint(cmd.Context(), cmd.OutOrStdout(), m, allStages); err != nil {
				return err
			}
			if !watch {
				return nil
			}
			if a.configPath == "" {
				return errors.New("--watch needs --config")
			}
			a.logger.Info("watching for changes", zap.String("config", a.configPath))

			return config.Watch(cmd.Context(), a.configPath, func(m *config.Model, err error) {
				if err != nil {
					a.logger.Error("reload failed", zap.Error(err))
					return
				}
				if err := a.solveAndPrint(cmd.Context(), cmd.OutOrStdout(), m, allStages); err != nil {
					a.logger.Error("solve failed", zap.Error(err))
				}
			})
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-solve whenever the config file changes")
	cmd.Flags().BoolVar(&allStages, "stages", false, "print every stage of a finite horizon")

	return cmd
}

// run solves m from a fresh terminal stage.
func (a *app) run(ctx context.Context, m *config.Model) (*induction.Result, error) {
	p, err := m.StageParams()
	if err != nil {
		return nil, err
	}
	bare, err := solver.NewTerminal(p.CRRA)
	if err != nil {
		return nil, err
	}
	opts := append(m.InductionOptions(), induction.WithLogger(a.logger), induction.WithQuietConditions())
	res, err := induction.Solve(ctx, bare, p, opts...)
	if errors.Is(err, induction.ErrNotConverged) {
		a.logger.Warn("reporting the last iterate", zap.Error(err))
		err = nil
	}

	return res, err
}

func (a *app) solveAndPrint(ctx context.Context, w io.Writer, m *config.Model, allStages bool) error {
	res, err := a.run(ctx, m)
	if err != nil {
		return err
	}
	stages := res.Stages[:1]
	if allStages {
		stages = res.Stages
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "stage\tstatus\thNrm\tmNrmMin\tMPCmin\tMPCmax\tc(1)")
	for _, s := range stages {
		fmt.Fprintf(tw, "%d\t%s\t%.6f\t%.6f\t%.6f\t%.6f\t%.6f\n",
			s.Stage, s.Status, s.Bilt.HNrm, s.MNrmMin(), s.Bilt.MPCmin, s.Bilt.MPCmax, s.CFunc().Eval(1))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	first := res.First()
	fmt.Fprintf(w, "iterations=%d converged=%t", res.Iterations, res.Converged)
	if m.Cycles == 0 {
		fmt.Fprintf(w, " distance=%.3g", res.Distance)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "target m: %s\nsteady-state m: %s\n", target(first.Bilt.MNrmTrg), target(first.Bilt.MNrmStE))
	if res.Conditions.Degenerate {
		fmt.Fprintln(w, "warning: the limiting solution is degenerate; see `bufferstock conditions`")
	}

	return nil
}

func target(t solver.Target) string {
	if !t.Found {
		return "not found"
	}

	return fmt.Sprintf("%.6f", t.Value)
}
