// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/katalvlaran/bufferstock/chart"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) plotCmd() *cobra.Command {
	var (
		out    string
		lo, hi float64
		step   int
	)
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Plot the consumption functions of the solved stages",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.loadModel()
			if err != nil {
				return err
			}
			res, err := a.run(cmd.Context(), m)
			if err != nil {
				return err
			}
			title := "Consumption function"
			if m.Cycles > 0 {
				title = fmt.Sprintf("Consumption functions, %d periods", m.Cycles)
			}
			p, err := chart.Policies(title, chart.ConsumptionCurves(res.Stages, step), lo, hi, chart.DefaultPoints)
			if err != nil {
				return err
			}
			if err := chart.Save(p, out, 0, 0); err != nil {
				return err
			}
			a.logger.Info("plot written", zap.String("path", out))
			fmt.Fprintln(cmd.OutOrStdout(), out)

			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "cfunc.png", "output file; the extension selects the format")
	cmd.Flags().Float64Var(&lo, "min", -1, "lowest m on the x axis")
	cmd.Flags().Float64Var(&hi, "max", 10, "highest m on the x axis")
	cmd.Flags().IntVar(&step, "every", 1, "plot every n-th stage")

	return cmd
}
