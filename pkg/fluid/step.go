package fluid

import (
	"fmt"
	"math"
)

// StandardGravity is the body-force magnitude used by DefaultStepOptions.
const StandardGravity = 9.81

// StepOptions configures one simulation tick.
type StepOptions struct {
	// Iterations is the number of projection sweeps.
	Iterations int
	// Gravity is subtracted, times dt, from the vertical velocity when
	// ApplyGravity is set.
	Gravity      float64
	ApplyGravity bool
	// AdvectSmoke transports smoke through the projected field. When unset
	// smoke only changes through source injection.
	AdvectSmoke bool
}

// DefaultStepOptions projects with DefaultIterations sweeps and leaves
// gravity and smoke transport off.
func DefaultStepOptions() StepOptions {
	return StepOptions{
		Iterations: DefaultIterations,
		Gravity:    StandardGravity,
	}
}

// Step advances g by dt: optional body force, projection, velocity
// advection through the projected field and optional smoke advection.
func Step(g *Grid, s *Solver, dt float64, opts StepOptions) (SolveStats, error) {
	if g == nil {
		return SolveStats{}, ErrNilGrid
	}
	if s == nil || s.grid != g {
		return SolveStats{}, ErrGridMismatch
	}
	if !(dt >= 0) || math.IsInf(dt, 0) {
		return SolveStats{}, fmt.Errorf("%w: got %v", ErrInvalidTimeStep, dt)
	}
	if opts.Iterations < 0 {
		return SolveStats{}, fmt.Errorf("%w: got %d", ErrInvalidIterations, opts.Iterations)
	}

	if opts.ApplyGravity {
		g.applyGravity(opts.Gravity, dt)
	}

	stats, err := s.Solve(opts.Iterations)
	if err != nil {
		return stats, err
	}

	g.AdvectVelocity(dt)
	if opts.AdvectSmoke {
		g.AdvectSmoke(dt)
	}
	return stats, nil
}

// GeneralStep runs one default tick with over-relaxation omega. Loops should
// keep a Solver and call Step instead.
func GeneralStep(g *Grid, omega, dt float64) error {
	s, err := NewSolver(g, WithOverRelaxation(omega))
	if err != nil {
		return err
	}
	_, err = Step(g, s, dt, DefaultStepOptions())
	return err
}

// applyGravity only touches faces between two fluid cells; solid faces keep
// their value.
func (g *Grid) applyGravity(gravity, dt float64) {
	dv := gravity * dt
	for i := 1; i < g.ny; i++ {
		for j := 0; j < g.nx; j++ {
			if g.cellAt(i-1, j) == 0.0 || g.cellAt(i, j) == 0.0 {
				continue
			}
			g.v[g.vIdx(i, j)] -= dv
		}
	}
}
