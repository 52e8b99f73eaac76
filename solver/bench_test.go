// SPDX-License-Identifier: MIT

package solver_test

import (
	"testing"

	"github.com/katalvlaran/bufferstock/solver"
)

func BenchmarkSolveStage_Linear(b *testing.B) { benchmarkSolveStage(b, false) }
func BenchmarkSolveStage_Cubic(b *testing.B) { benchmarkSolveStage(b, true) }

func benchmarkSolveStage(b *testing.B, cubic bool) {
	p := riskParams(b)
	p.CubicBool = cubic
	next := terminal(b, p)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := solver.SolveStage(next, p); err != nil {
			b.Fatal(err)
		}
	}
}
