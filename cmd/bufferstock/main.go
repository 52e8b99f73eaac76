// SPDX-License-Identifier: MIT

// Command bufferstock solves consumption-saving models described by a YAML
// calibration.
//
//	bufferstock solve --config model.yaml [--verbose] [--watch]
//	bufferstock conditions --config model.yaml
//	bufferstock plot --config model.yaml --out cfunc.png
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/katalvlaran/bufferstock/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// app carries the state shared by all subcommands.
type app struct {
	configPath string
	verbose    bool
	logger     *zap.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}
	root := &cobra.Command{
		Use:   "bufferstock",
		Short: "Solve buffer-stock consumption-saving models",
		Long: `bufferstock solves the consumption-saving problem of a consumer facing
permanent and transitory income shocks by backward induction with the
method of endogenous gridpoints. Without an income process the
perfect-foresight problem is solved in closed form.

A calibration file without cycles (or cycles: 0) is solved over an
infinite horizon until successive consumption functions converge.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := zap.NewProductionConfig()
			if a.verbose {
				cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			l, err := cfg.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = l.With(zap.String("run", uuid.NewString()), zap.String("command", cmd.Name()))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "model calibration file (YAML); defaults apply when empty")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(a.solveCmd(), a.conditionsCmd(), a.plotCmd())

	return root
}

// loadModel reads the calibration, falling back to the defaults.
func (a *app) loadModel() (*config.Model, error) {
	if a.configPath == "" {
		a.logger.Info("no config file given, using the default calibration")
		return config.Default(), nil
	}

	return config.Load(a.configPath)
}
