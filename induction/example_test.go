// SPDX-License-Identifier: MIT

package induction_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/bufferstock/induction"
	"github.com/katalvlaran/bufferstock/solver"
)

// A three-period perfect-foresight life.
func ExampleSolve() {
	p := solver.Params{Rfree: 1.03, PermGroFac: 1, LivPrb: 1, DiscFac: 0.96, CRRA: 2}
	bare, _ := solver.NewTerminal(p.CRRA)
	res, err := induction.Solve(context.Background(), bare, p, induction.WithCycles(3))
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, s := range res.Stages {
		fmt.Printf("t=%d %s hNrm=%.4f\n", s.Stage, s.Status, s.Bilt.HNrm)
	}
	// Output:
	// t=0 finished hNrm=2.8286
	// t=1 iterator hNrm=1.9135
	// t=2 iterator hNrm=0.9709
	// t=-1 iterator hNrm=0.0000
}
