// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) conditionsCmd() *cobra.Command {
	var explain bool
	cmd := &cobra.Command{
		Use:   "conditions",
		Short: "Print the stability conditions of the solved model",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.loadModel()
			if err != nil {
				return err
			}
			res, err := a.run(cmd.Context(), m)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, c := range res.Conditions.Conditions {
				fmt.Fprintln(w, c.Message)
				if explain {
					fmt.Fprintln(w, "  "+c.Explanation)
				}
			}
			fmt.Fprintf(w, "degenerate: %t\n", res.Conditions.Degenerate)

			return nil
		},
	}
	cmd.Flags().BoolVarP(&explain, "explain", "e", false, "print the explanation of each condition")

	return cmd
}
