package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheFellow/smokesim/pkg/fluid"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 50, cfg.Grid.NX)
	assert.Equal(t, 1.4, cfg.Solver.OverRelaxation)
	assert.Equal(t, fluid.ColumnMajor, cfg.ScanOrder())
	require.Len(t, cfg.Sources, 1)
	assert.Equal(t, fluid.Rect{Row0: 33, Row1: 38, Col0: 10, Col1: 20}, cfg.Sources[0].Rect())
	assert.False(t, cfg.Step.AdvectSmoke)
}

func TestParseOverridesDefaults(t *testing.T) {
	data := []byte(`
grid:
  nx: 20
  ny: 30
solver:
  overRelaxation: 1.9
  scanOrder: row-major
  tolerance: 1e-6
step:
  dt: 0.05
  advectSmoke: true
init: random
seed: 42
sources:
  - name: inlet
    rows: [1, 29]
    cols: [1, 2]
    u: 2.0
obstacles:
  - {row: 15, col: 10, radius: 3}
`)
	cfg, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.Grid.NX)
	assert.Equal(t, 30, cfg.Grid.NY)
	assert.Equal(t, 1.0, cfg.Grid.DX, "unset keys keep defaults")
	assert.Equal(t, fluid.DefaultIterations, cfg.Solver.Iterations)
	assert.Equal(t, fluid.RowMajor, cfg.ScanOrder())
	assert.Equal(t, InitRandom, cfg.Init)
	assert.Equal(t, uint64(42), cfg.Seed)

	require.Len(t, cfg.Sources, 1)
	src := cfg.Sources[0]
	assert.Equal(t, "inlet", src.Name)
	require.NotNil(t, src.U)
	assert.Equal(t, 2.0, *src.U)
	assert.Nil(t, src.V)
	assert.Nil(t, src.Smoke)
	assert.Equal(t, []Obstacle{{Row: 15, Col: 10, Radius: 3}}, cfg.Obstacles)

	opts := cfg.StepOptions()
	assert.True(t, opts.AdvectSmoke)
	assert.Equal(t, fluid.DefaultIterations, opts.Iterations)

	g, err := fluid.New(cfg.Grid.NX, cfg.Grid.NY, cfg.Grid.DX)
	require.NoError(t, err)
	s, err := fluid.NewSolver(g, cfg.SolverOptions()...)
	require.NoError(t, err)
	assert.Equal(t, 1.9, s.OverRelaxation())
	assert.Equal(t, 1e-6, s.Tolerance())
}

func TestParseResizedGridDropsDefaultSources(t *testing.T) {
	cfg, err := Parse([]byte("grid: {nx: 20, ny: 20, dx: 1}\n"))
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Grid.NX)
	assert.Empty(t, cfg.Sources)

	// an unchanged grid keeps the default jet
	cfg, err = Parse([]byte("grid: {nx: 50, ny: 50}\nstep: {dt: 0.5}\n"))
	require.NoError(t, err)
	require.Len(t, cfg.Sources, 1)
	assert.Equal(t, "jet", cfg.Sources[0].Name)

	// sources listed alongside a resize are kept
	cfg, err = Parse([]byte("grid: {nx: 20, ny: 20}\nsources:\n  - {rows: [2, 4], cols: [2, 4], smoke: 1}\n"))
	require.NoError(t, err)
	require.Len(t, cfg.Sources, 1)
}

func TestValidateRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"tiny grid", func(c *Config) { c.Grid.NX = 2 }},
		{"zero spacing", func(c *Config) { c.Grid.DX = 0 }},
		{"omega too large", func(c *Config) { c.Solver.OverRelaxation = 2 }},
		{"omega zero", func(c *Config) { c.Solver.OverRelaxation = 0 }},
		{"negative iterations", func(c *Config) { c.Solver.Iterations = -1 }},
		{"negative tolerance", func(c *Config) { c.Solver.Tolerance = -1e-3 }},
		{"unknown scan order", func(c *Config) { c.Solver.ScanOrder = "spiral" }},
		{"negative dt", func(c *Config) { c.Step.DT = -0.1 }},
		{"unknown init", func(c *Config) { c.Init = "chaos" }},
		{"source without range", func(c *Config) { c.Sources[0].Rows = []int{3} }},
		{"reversed source", func(c *Config) { c.Sources[0].Cols = []int{20, 10} }},
		{"source outside grid", func(c *Config) { c.Sources[0].Rows = []int{45, 51} }},
		{"empty source", func(c *Config) { c.Sources[0].U, c.Sources[0].Smoke = nil, nil }},
		{"negative radius", func(c *Config) { c.Obstacles = []Obstacle{{Row: 5, Col: 5, Radius: -1}} }},
		{"obstacle outside grid", func(c *Config) { c.Obstacles = []Obstacle{{Row: 50, Col: 5, Radius: 1}} }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestSourceFitsFaceArrays(t *testing.T) {
	// u has one column more than the cell array, v one row more
	cfg := Default()
	cfg.Sources = []Source{{Name: "u-edge", Rows: []int{0, 50}, Cols: []int{50, 51}, U: ptr(1)}}
	require.NoError(t, cfg.Validate())

	cfg.Sources = []Source{{Name: "v-edge", Rows: []int{50, 51}, Cols: []int{0, 50}, V: ptr(1)}}
	require.NoError(t, cfg.Validate())

	cfg.Sources[0].Smoke = ptr(1)
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}

func TestLoadAndSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")

	cfg := Default()
	cfg.Grid.NX = 64
	cfg.Solver.ScanOrder = fluid.RowMajor.String()
	cfg.Obstacles = []Obstacle{{Row: 25, Col: 32, Radius: 4}}
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("grid: {nx: 1}\n"), 0o644))
	_, err = Load(bad)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "bad.yaml")

	garbled := filepath.Join(dir, "garbled.yaml")
	require.NoError(t, os.WriteFile(garbled, []byte("grid: [\n"), 0o644))
	_, err = Load(garbled)
	assert.Error(t, err)
}
