// Package config loads and validates simulation scenarios from YAML.
//
// A scenario fixes the grid, the solver, the per-tick options, the initial
// velocity field and the sources re-injected before every tick:
//
//	grid: {nx: 50, ny: 50, dx: 1.0}
//	solver: {overRelaxation: 1.4, iterations: 20, scanOrder: column-major}
//	step: {dt: 1.0, advectSmoke: false}
//	init: zero
//	sources:
//	  - {name: jet, rows: [33, 38], cols: [10, 20], u: 1, smoke: 1}
//
// The default jet only fits the default grid. A file that resizes the grid
// without listing sources starts with none.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/TheFellow/smokesim/pkg/fluid"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid scenario")

// Initial velocity fields.
const (
	InitZero   = "zero"
	InitRandom = "random"
	InitBlock  = "block"
)

type Config struct {
	Grid   GridConfig   `yaml:"grid"`
	Solver SolverConfig `yaml:"solver"`
	Step   StepConfig   `yaml:"step"`

	// Init selects the starting velocity field: zero, random or block.
	Init string `yaml:"init"`
	// Seed drives the random initial field.
	Seed uint64 `yaml:"seed"`

	Sources   []Source   `yaml:"sources"`
	Obstacles []Obstacle `yaml:"obstacles"`
}

// GridConfig sizes the grid. NX and NY include the solid ring.
type GridConfig struct {
	NX int     `yaml:"nx"`
	NY int     `yaml:"ny"`
	DX float64 `yaml:"dx"`
}

type SolverConfig struct {
	OverRelaxation float64 `yaml:"overRelaxation"`
	Iterations     int     `yaml:"iterations"`
	// Tolerance enables the early exit; 0 always runs every sweep.
	Tolerance float64 `yaml:"tolerance"`
	ScanOrder string  `yaml:"scanOrder"`
}

type StepConfig struct {
	DT           float64 `yaml:"dt"`
	Gravity      float64 `yaml:"gravity"`
	ApplyGravity bool    `yaml:"applyGravity"`
	// AdvectSmoke transports smoke through the flow. Off, smoke only
	// appears where sources write it.
	AdvectSmoke bool `yaml:"advectSmoke"`
}

// Source writes literal values into a rectangle before every tick. Rows and
// Cols are half-open [start, end) ranges; nil values are left alone.
type Source struct {
	Name  string   `yaml:"name"`
	Rows  []int    `yaml:"rows"`
	Cols  []int    `yaml:"cols"`
	U     *float64 `yaml:"u,omitempty"`
	V     *float64 `yaml:"v,omitempty"`
	Smoke *float64 `yaml:"smoke,omitempty"`
}

// Rect converts the source ranges to a fluid.Rect. Only valid after Validate.
func (s Source) Rect() fluid.Rect {
	return fluid.Rect{Row0: s.Rows[0], Row1: s.Rows[1], Col0: s.Cols[0], Col1: s.Cols[1]}
}

// Obstacle is a solid disc of cells.
type Obstacle struct {
	Row    int `yaml:"row"`
	Col    int `yaml:"col"`
	Radius int `yaml:"radius"`
}

func ptr(v float64) *float64 { return &v }

// Default returns a 50x50 scenario with a single jet on the left side.
func Default() *Config {
	return &Config{
		Grid: GridConfig{NX: 50, NY: 50, DX: 1.0},
		Solver: SolverConfig{
			OverRelaxation: fluid.DefaultOverRelaxation,
			Iterations:     fluid.DefaultIterations,
			ScanOrder:      fluid.ColumnMajor.String(),
		},
		Step: StepConfig{
			DT:      1.0,
			Gravity: fluid.StandardGravity,
		},
		Init: InitZero,
		Seed: 1,
		Sources: []Source{
			{Name: "jet", Rows: []int{33, 38}, Cols: []int{10, 20}, U: ptr(1), Smoke: ptr(1)},
		},
	}
}

// Load reads and validates a scenario file. Missing keys keep their
// Default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates a YAML scenario on top of Default.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}

	var keys map[string]any
	if err := yaml.Unmarshal(data, &keys); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if _, ok := keys["sources"]; !ok && cfg.Grid != Default().Grid {
		cfg.Sources = nil
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the scenario as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal scenario: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write scenario: %w", err)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// Validate reports the first problem found.
func (c *Config) Validate() error {
	if c.Grid.NX < 3 || c.Grid.NY < 3 {
		return invalid("grid must be at least 3x3, got %dx%d", c.Grid.NX, c.Grid.NY)
	}
	if !(c.Grid.DX > 0) || !finite(c.Grid.DX) {
		return invalid("grid.dx must be finite and positive, got %v", c.Grid.DX)
	}

	if !(c.Solver.OverRelaxation > 0 && c.Solver.OverRelaxation < 2) {
		return invalid("solver.overRelaxation must be in (0, 2), got %v", c.Solver.OverRelaxation)
	}
	if c.Solver.Iterations < 0 {
		return invalid("solver.iterations must be non-negative, got %d", c.Solver.Iterations)
	}
	if !(c.Solver.Tolerance >= 0) || !finite(c.Solver.Tolerance) {
		return invalid("solver.tolerance must be finite and non-negative, got %v", c.Solver.Tolerance)
	}
	if _, err := fluid.ParseScanOrder(c.Solver.ScanOrder); err != nil {
		return invalid("solver.scanOrder: %v", err)
	}

	if !(c.Step.DT >= 0) || !finite(c.Step.DT) {
		return invalid("step.dt must be finite and non-negative, got %v", c.Step.DT)
	}
	if !finite(c.Step.Gravity) {
		return invalid("step.gravity must be finite, got %v", c.Step.Gravity)
	}

	switch c.Init {
	case InitZero, InitRandom, InitBlock:
	default:
		return invalid("init must be %q, %q or %q, got %q", InitZero, InitRandom, InitBlock, c.Init)
	}

	for i, s := range c.Sources {
		if err := c.validateSource(s); err != nil {
			return invalid("sources[%d] %q: %v", i, s.Name, err)
		}
	}
	for i, o := range c.Obstacles {
		if o.Radius < 0 {
			return invalid("obstacles[%d]: negative radius %d", i, o.Radius)
		}
		if o.Row < 0 || o.Row >= c.Grid.NY || o.Col < 0 || o.Col >= c.Grid.NX {
			return invalid("obstacles[%d]: center (%d, %d) outside the grid", i, o.Row, o.Col)
		}
	}
	return nil
}

// validateSource checks the rectangle against every array it writes.
func (c *Config) validateSource(s Source) error {
	if len(s.Rows) != 2 || len(s.Cols) != 2 {
		return errors.New("rows and cols need [start, end]")
	}
	if s.Rows[0] > s.Rows[1] || s.Cols[0] > s.Cols[1] {
		return fmt.Errorf("empty or reversed range rows %v cols %v", s.Rows, s.Cols)
	}
	if s.U == nil && s.V == nil && s.Smoke == nil {
		return errors.New("writes nothing")
	}

	arrays := []struct {
		name       string
		set        bool
		rows, cols int
	}{
		{"u", s.U != nil, c.Grid.NY, c.Grid.NX + 1},
		{"v", s.V != nil, c.Grid.NY + 1, c.Grid.NX},
		{"smoke", s.Smoke != nil, c.Grid.NY, c.Grid.NX},
	}
	for _, a := range arrays {
		if !a.set {
			continue
		}
		if s.Rows[0] < 0 || s.Rows[1] > a.rows || s.Cols[0] < 0 || s.Cols[1] > a.cols {
			return fmt.Errorf("range rows %v cols %v outside the %dx%d %s array", s.Rows, s.Cols, a.rows, a.cols, a.name)
		}
	}
	for _, val := range []*float64{s.U, s.V, s.Smoke} {
		if val != nil && !finite(*val) {
			return fmt.Errorf("non-finite value %v", *val)
		}
	}
	return nil
}

// ScanOrder returns the parsed solver scan order.
func (c *Config) ScanOrder() fluid.ScanOrder {
	order, _ := fluid.ParseScanOrder(c.Solver.ScanOrder)
	return order
}

// SolverOptions translates the solver section for fluid.NewSolver.
func (c *Config) SolverOptions() []fluid.SolverOption {
	return []fluid.SolverOption{
		fluid.WithOverRelaxation(c.Solver.OverRelaxation),
		fluid.WithScanOrder(c.ScanOrder()),
		fluid.WithTolerance(c.Solver.Tolerance),
	}
}

// StepOptions translates the step section for fluid.Step.
func (c *Config) StepOptions() fluid.StepOptions {
	return fluid.StepOptions{
		Iterations:   c.Solver.Iterations,
		Gravity:      c.Step.Gravity,
		ApplyGravity: c.Step.ApplyGravity,
		AdvectSmoke:  c.Step.AdvectSmoke,
	}
}
