// SPDX-License-Identifier: MIT

// Package config loads model calibrations from YAML.
//
// A file lists the primitive parameters, the asset grid, the optional
// income process and the induction controls:
//
//	crra: 2
//	rfree: 1.03
//	disc_fac: 0.96
//	liv_prb: 0.98
//	perm_gro_fac: 1.01
//	boro_cnst_art: 0      # null for no artificial limit
//	max_kinks: 400
//	vfunc: false
//	cubic: false
//	cycles: 0             # 0 = infinite horizon
//	tolerance: 1.0e-6
//	max_iterations: 2000
//	workers: 0
//	grid: {min: 0.001, max: 20, count: 48, nest: 3}
//	income:               # omit for perfect foresight
//	  perm_shk_std: 0.1
//	  perm_shk_count: 7
//	  tran_shk_std: 0.1
//	  tran_shk_count: 7
//	  unemp_prb: 0.05
//	  inc_unemp: 0.3
//
// Keys missing from the file keep the values of Default, except income,
// which is only present when the file names it. Unknown keys are rejected.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/katalvlaran/bufferstock/distribution"
	"github.com/katalvlaran/bufferstock/grid"
	"github.com/katalvlaran/bufferstock/induction"
	"github.com/katalvlaran/bufferstock/solver"
	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalid indicates a calibration that cannot be solved.
	ErrInvalid = errors.New("config: invalid model")
)

// Grid configures the end-of-period asset grid above the natural limit.
type Grid struct {
	Min   float64 `yaml:"min"`
	Max   float64 `yaml:"max"`
	Count int     `yaml:"count"`
	Nest  int     `yaml:"nest"`
}

// Model is one calibration.
type Model struct {
	CRRA          float64                     `yaml:"crra"`
	Rfree         float64                     `yaml:"rfree"`
	DiscFac       float64                     `yaml:"disc_fac"`
	LivPrb        float64                     `yaml:"liv_prb"`
	PermGroFac    float64                     `yaml:"perm_gro_fac"`
	BoroCnstArt   *float64                    `yaml:"boro_cnst_art"`
	MaxKinks      int                         `yaml:"max_kinks"`
	VFunc         bool                        `yaml:"vfunc"`
	Cubic         bool                        `yaml:"cubic"`
	Cycles        int                         `yaml:"cycles"`
	Tolerance     float64                     `yaml:"tolerance"`
	MaxIterations int                         `yaml:"max_iterations"`
	Workers       int                         `yaml:"workers"`
	Grid          Grid                        `yaml:"grid"`
	Income        *distribution.IncomeProcess `yaml:"income,omitempty"`
}

// Default returns the standard idiosyncratic-shocks calibration solved over
// an infinite horizon.
func Default() *Model {
	zero := 0.0

	return &Model{
		CRRA:          2,
		Rfree:         1.03,
		DiscFac:       0.96,
		LivPrb:        0.98,
		PermGroFac:    1.01,
		BoroCnstArt:   &zero,
		MaxKinks:      400,
		Tolerance:     induction.DefaultTolerance,
		MaxIterations: induction.DefaultMaxIterations,
		Grid:          Grid{Min: 0.001, Max: 20, Count: 48, Nest: 3},
		Income: &distribution.IncomeProcess{
			PermShkStd: 0.1, PermShkCount: 7,
			TranShkStd: 0.1, TranShkCount: 7,
			UnempPrb: 0.05, IncUnemp: 0.3,
		},
	}
}

// Load reads and validates the model at path.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return m, nil
}

// Parse decodes and validates a YAML model.
func Parse(data []byte) (*Model, error) {
	m := Default()
	m.Income = nil
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(m); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	return m, nil
}

// Validate checks the induction controls, the grid and the stage parameters.
func (m *Model) Validate() error {
	switch {
	case m.Cycles < 0:
		return fmt.Errorf("%w: cycles must be >= 0, got %d", ErrInvalid, m.Cycles)
	case !(m.Tolerance > 0):
		return fmt.Errorf("%w: tolerance must be > 0, got %v", ErrInvalid, m.Tolerance)
	case m.MaxIterations < 1:
		return fmt.Errorf("%w: max_iterations must be >= 1, got %d", ErrInvalid, m.MaxIterations)
	case m.Workers < 0:
		return fmt.Errorf("%w: workers must be >= 0, got %d", ErrInvalid, m.Workers)
	}
	p, err := m.StageParams()
	if err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	return nil
}

// StageParams builds the solver parameters: the asset grid and, when an
// income process is configured, its joint shock distribution.
func (m *Model) StageParams() (solver.Params, error) {
	p := solver.Params{
		Rfree:      m.Rfree,
		PermGroFac: m.PermGroFac,
		LivPrb:     m.LivPrb,
		DiscFac:    m.DiscFac,
		CRRA:       m.CRRA,
		MaxKinks:   m.MaxKinks,
		VFuncBool:  m.VFunc,
		CubicBool:  m.Cubic,
	}
	if m.BoroCnstArt != nil {
		v := *m.BoroCnstArt
		p.BoroCnstArt = &v
	}
	if m.Income == nil {
		return p, nil
	}

	var err error
	if p.AXtraGrid, err = grid.ExpMult(m.Grid.Min, m.Grid.Max, m.Grid.Count, m.Grid.Nest); err != nil {
		return solver.Params{}, fmt.Errorf("%w: grid: %w", ErrInvalid, err)
	}
	if p.IncShkDstn, err = m.Income.Build(); err != nil {
		return solver.Params{}, fmt.Errorf("%w: income: %w", ErrInvalid, err)
	}

	return p, nil
}

// InductionOptions translates the induction controls.
func (m *Model) InductionOptions() []induction.Option {
	return []induction.Option{
		induction.WithCycles(m.Cycles),
		induction.WithTolerance(m.Tolerance),
		induction.WithMaxIterations(m.MaxIterations),
		induction.WithSolverOptions(solver.WithWorkers(m.Workers)),
	}
}

// Marshal encodes m as YAML.
func (m *Model) Marshal() ([]byte, error) {
	return yaml.Marshal(m)
}
