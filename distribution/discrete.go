// SPDX-License-Identifier: MIT

package distribution

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// PmfTolerance bounds |Σp − 1| accepted by New.
const PmfTolerance = 1e-9

// Discrete is an immutable finite joint distribution.
type Discrete struct {
	pmf   []float64
	atoms [][]float64
	names []string
	index map[string]int
}

// New validates and builds a distribution. atoms[k] holds variable k across
// outcomes; names, when given, must name every variable exactly once.
func New(pmf []float64, atoms [][]float64, names ...string) (*Discrete, error) {
	// Stage 1: shape.
	if len(pmf) == 0 || len(atoms) == 0 {
		return nil, ErrEmpty
	}
	for k, col := range atoms {
		if len(col) != len(pmf) {
			return nil, fmt.Errorf("%w: column %d has %d atoms, pmf has %d", ErrShape, k, len(col), len(pmf))
		}
	}

	// Stage 2: probabilities.
	for i, p := range pmf {
		if p < 0 || math.IsNaN(p) || math.IsInf(p, 0) {
			return nil, fmt.Errorf("%w: p[%d]=%v", ErrBadPmf, i, p)
		}
	}
	if s := floats.Sum(pmf); math.Abs(s-1) > PmfTolerance {
		return nil, fmt.Errorf("%w: sum=%v", ErrBadPmf, s)
	}

	// Stage 3: names.
	d := &Discrete{pmf: clone(pmf), atoms: make([][]float64, len(atoms))}
	for k, col := range atoms {
		d.atoms[k] = clone(col)
	}
	if len(names) > 0 {
		if len(names) != len(atoms) {
			return nil, fmt.Errorf("%w: %d names for %d variables", ErrBadNames, len(names), len(atoms))
		}
		d.index = make(map[string]int, len(names))
		for k, name := range names {
			if _, dup := d.index[name]; dup || name == "" {
				return nil, fmt.Errorf("%w: %q", ErrBadNames, name)
			}
			d.index[name] = k
		}
		d.names = append([]string(nil), names...)
	}

	return d, nil
}

// Len returns the number of outcomes.
func (d *Discrete) Len() int { return len(d.pmf) }

// Dim returns the number of variables.
func (d *Discrete) Dim() int { return len(d.atoms) }

// Pmf returns a copy of the outcome probabilities.
func (d *Discrete) Pmf() []float64 { return clone(d.pmf) }

// Atoms returns a copy of variable k across outcomes.
func (d *Discrete) Atoms(k int) []float64 { return clone(d.atoms[k]) }

// Names returns the variable names (nil if unnamed).
func (d *Discrete) Names() []string { return append([]string(nil), d.names...) }

// Position resolves a variable name to its column index.
func (d *Discrete) Position(name string) (int, error) {
	k, ok := d.index[name]
	if !ok {
		return -1, fmt.Errorf("%w: %q", ErrUnknownVariable, name)
	}

	return k, nil
}

// Column returns a copy of the named variable across outcomes.
func (d *Discrete) Column(name string) ([]float64, error) {
	k, err := d.Position(name)
	if err != nil {
		return nil, err
	}

	return d.Atoms(k), nil
}

// Mean returns E[X_k].
func (d *Discrete) Mean(k int) float64 {
	return floats.Dot(d.pmf, d.atoms[k])
}

// Min returns the smallest atom of variable k.
func (d *Discrete) Min(k int) float64 { return floats.Min(d.atoms[k]) }

// Max returns the largest atom of variable k.
func (d *Discrete) Max(k int) float64 { return floats.Max(d.atoms[k]) }

// Expect returns Σ_i p_i·f(x_i) where x_i is the atom vector of outcome i.
// The slice passed to f is reused between calls and must not be retained.
//
// Complexity: O(n·d) plus n calls to f.
func (d *Discrete) Expect(f func(atom []float64) float64) float64 {
	atom := make([]float64, len(d.atoms))
	var sum float64
	for i, p := range d.pmf {
		d.fill(atom, i)
		sum += p * f(atom)
	}

	return sum
}

func (d *Discrete) fill(dst []float64, i int) {
	for k := range d.atoms {
		dst[k] = d.atoms[k][i]
	}
}

func clone(s []float64) []float64 {
	out := make([]float64, len(s))
	copy(out, s)

	return out
}
