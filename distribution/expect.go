// SPDX-License-Identifier: MIT

package distribution

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// VectorFunc evaluates width quantities for one outcome at gridpoint x,
// writing them into out. atom and out are reused between calls.
type VectorFunc func(atom []float64, x float64, out []float64)

// ExpectArray computes, for every gridpoint xs[j], the expectation of each
// of the width outputs of f. Row r of the result holds output r, column j
// holds gridpoint j.
//
// Gridpoints are split into contiguous blocks evaluated concurrently by up
// to workers goroutines (workers <= 0 means GOMAXPROCS). Each gridpoint is
// summed in outcome order by a single goroutine, so the result does not
// depend on workers.
//
// Complexity: O(len(xs)·n) calls to f.
func (d *Discrete) ExpectArray(ctx context.Context, f VectorFunc, xs []float64, width, workers int) (*mat.Dense, error) {
	if width < 1 || len(xs) == 0 {
		return nil, fmt.Errorf("%w: width=%d gridpoints=%d", ErrBadParameter, width, len(xs))
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(xs) {
		workers = len(xs)
	}

	out := mat.NewDense(width, len(xs), nil)
	block := (len(xs) + workers - 1) / workers

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for lo := 0; lo < len(xs); lo += block {
		hi := min(lo+block, len(xs))
		g.Go(func() error {
			atom := make([]float64, len(d.atoms))
			buf := make([]float64, width)
			acc := make([]float64, width)
			for j := lo; j < hi; j++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				clear(acc)
				for i, p := range d.pmf {
					d.fill(atom, i)
					f(atom, xs[j], buf)
					for r := range acc {
						acc[r] += p * buf[r]
					}
				}
				for r, v := range acc {
					out.Set(r, j, v)
				}
			}

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}
