package main

import (
	"fmt"
	"math/rand/v2"

	"github.com/TheFellow/smokesim/pkg/config"
	"github.com/TheFellow/smokesim/pkg/fluid"
	"github.com/TheFellow/smokesim/pkg/settings"
)

type simulation struct {
	cfg    *config.Config
	grid   *fluid.Grid
	solver *fluid.Solver
	opts   fluid.StepOptions

	steps int
	last  fluid.SolveStats
}

func newSimulation(cfg *config.Config) (*simulation, error) {
	grid, err := fluid.New(cfg.Grid.NX, cfg.Grid.NY, cfg.Grid.DX)
	if err != nil {
		return nil, fmt.Errorf("failed to create grid: %w", err)
	}
	addObstacles(grid, cfg.Obstacles)

	solver, err := fluid.NewSolver(grid, cfg.SolverOptions()...)
	if err != nil {
		return nil, fmt.Errorf("failed to create solver: %w", err)
	}

	sim := &simulation{
		cfg:    cfg,
		grid:   grid,
		solver: solver,
		opts:   cfg.StepOptions(),
	}
	sim.reset()
	return sim, nil
}

// reset restores the initial field. Obstacles stay in place.
func (s *simulation) reset() {
	s.grid.Reset()
	initVelocity(s.grid, s.cfg.Init, rand.New(rand.NewPCG(s.cfg.Seed, 0)))
	s.steps = 0
	s.last = fluid.SolveStats{}
}

// tick re-injects the sources and advances one step.
func (s *simulation) tick() error {
	injectSources(s.grid, s.cfg.Sources)
	stats, err := fluid.Step(s.grid, s.solver, s.cfg.Step.DT, s.opts)
	if err != nil {
		return fmt.Errorf("step %d: %w", s.steps+1, err)
	}
	s.last = stats
	s.steps++
	return nil
}

func (s *simulation) setAdvectSmoke(on bool) {
	s.opts.AdvectSmoke = on
}

// field returns the grid quantity shown for d.
func (s *simulation) field(d settings.Display) fluid.ScalarField {
	switch d {
	case settings.DisplaySpeed:
		return s.grid.VelocityMagnitude()
	case settings.DisplayDivergence:
		return s.grid.Divergence()
	case settings.DisplayVorticity:
		return s.grid.Vorticity()
	default:
		return s.grid.Smoke()
	}
}

func (s *simulation) status(d settings.Display, paused bool) string {
	st := s.grid.Stats()
	state := "running"
	if paused {
		state = "paused"
	}
	return fmt.Sprintf("step %d (%s) view %s smoke-advect %v\nmax|div| %.3g  max speed %.3g  smoke %.4g  sweeps %d",
		s.steps, state, d, s.opts.AdvectSmoke,
		st.MaxDivergence, st.MaxSpeed, st.TotalSmoke, s.last.Sweeps)
}
