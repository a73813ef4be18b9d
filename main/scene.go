package main

import (
	"math/rand/v2"

	"github.com/TheFellow/smokesim/pkg/config"
	"github.com/TheFellow/smokesim/pkg/fluid"
)

// blockRect covers the middle fifth of the grid in both directions.
func blockRect(g *fluid.Grid) fluid.Rect {
	return fluid.Rect{
		Row0: g.NY() * 2 / 5, Row1: g.NY() * 3 / 5,
		Col0: g.NX() * 2 / 5, Col1: g.NX() * 3 / 5,
	}
}

func initVelocity(g *fluid.Grid, init string, rng *rand.Rand) {
	switch init {
	case config.InitRandom:
		g.Randomize(rng)
	case config.InitBlock:
		g.FillU(blockRect(g), 1.0)
	}
}

func addObstacles(g *fluid.Grid, obstacles []config.Obstacle) {
	for _, o := range obstacles {
		g.AddCircularObstacle(o.Row, o.Col, o.Radius)
	}
}

// injectSources overwrites every source rectangle with its literal values.
func injectSources(g *fluid.Grid, sources []config.Source) {
	for _, s := range sources {
		r := s.Rect()
		if s.U != nil {
			g.FillU(r, *s.U)
		}
		if s.V != nil {
			g.FillV(r, *s.V)
		}
		if s.Smoke != nil {
			g.FillSmoke(r, *s.Smoke)
		}
	}
}
