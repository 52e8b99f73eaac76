// SPDX-License-Identifier: MIT

package distribution

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Degenerate returns the single-outcome distribution where every named
// variable equals 1.
func Degenerate(names ...string) (*Discrete, error) {
	if len(names) == 0 {
		return nil, ErrEmpty
	}
	atoms := make([][]float64, len(names))
	for k := range atoms {
		atoms[k] = []float64{1}
	}

	return New([]float64{1}, atoms, names...)
}

// MeanOneLogNormal discretizes ln X ~ N(−σ²/2, σ²) into n equiprobable
// outcomes, each atom being the conditional mean of X on its quantile bin.
// The discrete mean is 1 up to rounding. σ = 0 or n = 1 gives the point mass at 1.
func MeanOneLogNormal(sigma float64, n int, name string) (*Discrete, error) {
	if n < 1 || sigma < 0 || math.IsNaN(sigma) || math.IsInf(sigma, 0) {
		return nil, fmt.Errorf("%w: sigma=%v n=%d", ErrBadParameter, sigma, n)
	}
	if sigma == 0 || n == 1 {
		return New([]float64{1}, [][]float64{{1}}, optionalName(name)...)
	}

	// Bin edges in standard-normal space; E[X | z ∈ (a,b)]·P = Φ(b−σ) − Φ(a−σ)
	// because the mean of X is one.
	std := distuv.UnitNormal
	edges := make([]float64, n+1)
	edges[0], edges[n] = math.Inf(-1), math.Inf(1)
	for j := 1; j < n; j++ {
		edges[j] = std.Quantile(float64(j) / float64(n))
	}
	pmf := make([]float64, n)
	atoms := make([]float64, n)
	for j := 0; j < n; j++ {
		pmf[j] = 1 / float64(n)
		atoms[j] = float64(n) * (std.CDF(edges[j+1]-sigma) - std.CDF(edges[j]-sigma))
	}

	return New(pmf, [][]float64{atoms}, optionalName(name)...)
}

func optionalName(name string) []string {
	if name == "" {
		return nil
	}

	return []string{name}
}

// LogNormalOf returns the continuous mean-one lognormal that MeanOneLogNormal
// discretizes, for comparison and sampling.
func LogNormalOf(sigma float64) distuv.LogNormal {
	return distuv.LogNormal{Mu: -sigma * sigma / 2, Sigma: sigma}
}

// AddOutcomeConstantMean prepends outcome x with probability p to the
// univariate distribution d and rescales the existing atoms by
// (1 − p·x)/(1 − p) so the mean is unchanged when it was 1.
func AddOutcomeConstantMean(d *Discrete, x, p float64) (*Discrete, error) {
	if d.Dim() != 1 {
		return nil, ErrNotUnivariate
	}
	if p < 0 || p >= 1 || math.IsNaN(p) {
		return nil, fmt.Errorf("%w: outcome probability %v", ErrBadParameter, p)
	}
	if p == 0 {
		return d, nil
	}
	scale := (1 - p*x) / (1 - p)
	pmf := make([]float64, 0, d.Len()+1)
	atoms := make([]float64, 0, d.Len()+1)
	pmf = append(pmf, p)
	atoms = append(atoms, x)
	for i, q := range d.pmf {
		pmf = append(pmf, (1-p)*q)
		atoms = append(atoms, d.atoms[0][i]*scale)
	}

	return New(pmf, [][]float64{atoms}, d.names...)
}

// CombineIndependent forms the joint distribution of independent univariate
// marginals. Outcomes are ordered with the last marginal varying fastest;
// variable names are taken from the marginals.
func CombineIndependent(marginals ...*Discrete) (*Discrete, error) {
	if len(marginals) == 0 {
		return nil, ErrEmpty
	}
	total := 1
	names := make([]string, 0, len(marginals))
	for _, m := range marginals {
		if m.Dim() != 1 {
			return nil, ErrNotUnivariate
		}
		total *= m.Len()
		if len(m.names) == 1 {
			names = append(names, m.names[0])
		}
	}
	if len(names) != len(marginals) {
		names = nil
	}

	pmf := make([]float64, total)
	atoms := make([][]float64, len(marginals))
	for k := range atoms {
		atoms[k] = make([]float64, total)
	}
	for i := 0; i < total; i++ {
		p, rem := 1.0, i
		for k := len(marginals) - 1; k >= 0; k-- {
			m := marginals[k]
			j := rem % m.Len()
			rem /= m.Len()
			p *= m.pmf[j]
			atoms[k][i] = m.atoms[0][j]
		}
		pmf[i] = p
	}

	return New(pmf, atoms, names...)
}
