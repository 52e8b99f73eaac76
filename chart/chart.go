// SPDX-License-Identifier: MIT

// Package chart draws policy functions of solved stages with gonum/plot.
package chart

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/bufferstock/solver"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

var (
	// ErrNoCurves indicates nothing to draw.
	ErrNoCurves = errors.New("chart: no curves")

	// ErrBadRange indicates an empty or non-finite x range.
	ErrBadRange = errors.New("chart: invalid range")
)

// Defaults.
const (
	DefaultPoints = 200
	DefaultWidth  = 6 * vg.Inch
	DefaultHeight = 4 * vg.Inch
)

// Curve is one function to draw, defined from Min upward.
type Curve struct {
	Label string
	F     func(float64) float64
	Min   float64
}

// ConsumptionCurves returns c(m) of every step-th stage, labeled by stage
// index. Stages are drawn from their own mNrmMin. A step < 1 is treated as 1.
func ConsumptionCurves(stages []*solver.Solution, step int) []Curve {
	if step < 1 {
		step = 1
	}
	var out []Curve
	for i := 0; i < len(stages); i += step {
		s := stages[i]
		out = append(out, Curve{
			Label: fmt.Sprintf("t=%d", s.Stage),
			F:     s.CFunc().Eval,
			Min:   s.MNrmMin(),
		})
	}

	return out
}

// Policies plots each curve on [max(lo, Min), hi] with points samples.
func Policies(title string, curves []Curve, lo, hi float64, points int) (*plot.Plot, error) {
	if len(curves) == 0 {
		return nil, ErrNoCurves
	}
	if !(lo < hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return nil, fmt.Errorf("%w: [%v, %v]", ErrBadRange, lo, hi)
	}
	if points < 2 {
		points = DefaultPoints
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "m"
	p.Y.Label.Text = "c(m)"
	p.Add(plotter.NewGrid())

	xs := make([]float64, points)
	for i, c := range curves {
		start := math.Max(lo, c.Min)
		if !(start < hi) {
			continue
		}
		floats.Span(xs, start, hi)
		pts := make(plotter.XYs, 0, points)
		for _, x := range xs {
			y := c.F(x)
			if math.IsNaN(y) || math.IsInf(y, 0) {
				continue
			}
			pts = append(pts, plotter.XY{X: x, Y: y})
		}
		if len(pts) < 2 {
			continue
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("chart: %s: %w", c.Label, err)
		}
		line.Color = plotutil.Color(i)
		line.Dashes = plotutil.Dashes(i / 7)
		p.Add(line)
		p.Legend.Add(c.Label, line)
	}
	p.Legend.Top = false
	p.Legend.Left = false

	return p, nil
}

// Save writes p to path; the format follows the extension (png, svg, pdf, ...).
func Save(p *plot.Plot, path string, width, height vg.Length) error {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	if err := p.Save(width, height, path); err != nil {
		return fmt.Errorf("chart: save %s: %w", path, err)
	}

	return nil
}
