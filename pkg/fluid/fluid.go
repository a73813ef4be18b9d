// Package fluid simulates incompressible 2D flow on a staggered (MAC) grid
// and transports a passive smoke density through it.
//
// All arrays are row-major. Row i is the y index and column j the x index.
// u[i,j] is the face between cells (i,j-1) and (i,j); v[i,j] is the face
// between cells (i-1,j) and (i,j).
package fluid

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
)

type Grid struct {
	nx, ny int
	dx     float64

	u, v       []float64 // face velocities
	newU, newV []float64
	pressure   []float64 // reserved, never written by the solver
	cellType   []float64 // solid (0) or fluid (1)

	smoke    []float64
	newSmoke []float64
}

// New allocates an nx × ny grid of cells of size dx. All fields start at
// zero, interior cells are fluid and the outer ring is solid.
func New(nx, ny int, dx float64) (*Grid, error) {
	if nx < 3 || ny < 3 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, nx, ny)
	}
	if !(dx > 0) || math.IsInf(dx, 0) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidSpacing, dx)
	}

	numCells := nx * ny
	g := &Grid{
		nx: nx,
		ny: ny,
		dx: dx,

		u:        make([]float64, ny*(nx+1)),
		v:        make([]float64, (ny+1)*nx),
		newU:     make([]float64, ny*(nx+1)),
		newV:     make([]float64, (ny+1)*nx),
		pressure: make([]float64, numCells),
		cellType: make([]float64, numCells),
		smoke:    make([]float64, numCells),
		newSmoke: make([]float64, numCells),
	}
	for i := 1; i < ny-1; i++ {
		for j := 1; j < nx-1; j++ {
			g.cellType[g.cIdx(i, j)] = 1.0
		}
	}
	return g, nil
}

// NX returns the number of cell columns, boundary ring included.
func (g *Grid) NX() int { return g.nx }

// NY returns the number of cell rows, boundary ring included.
func (g *Grid) NY() int { return g.ny }

// DX returns the cell size.
func (g *Grid) DX() float64 { return g.dx }

func (g *Grid) uIdx(i, j int) int { return i*(g.nx+1) + j }
func (g *Grid) vIdx(i, j int) int { return i*g.nx + j }
func (g *Grid) cIdx(i, j int) int { return i*g.nx + j }

// cellAt returns the cell type, treating anything outside the grid as solid.
func (g *Grid) cellAt(i, j int) float64 {
	if i < 0 || i >= g.ny || j < 0 || j >= g.nx {
		return 0.0
	}
	return g.cellType[g.cIdx(i, j)]
}

func (g *Grid) onBoundary(i, j int) bool {
	return i == 0 || j == 0 || i == g.ny-1 || j == g.nx-1
}

func fill[T any](slice []T, val T) {
	for i := range slice {
		slice[i] = val
	}
}

// Reset zeroes velocity, pressure and smoke. The solid mask is kept.
func (g *Grid) Reset() {
	fill(g.u, 0.0)
	fill(g.v, 0.0)
	fill(g.newU, 0.0)
	fill(g.newV, 0.0)
	fill(g.pressure, 0.0)
	fill(g.smoke, 0.0)
	fill(g.newSmoke, 0.0)
}

// Randomize replaces every face velocity with a standard normal sample.
func (g *Grid) Randomize(rng *rand.Rand) {
	for k := range g.u {
		g.u[k] = rng.NormFloat64()
	}
	for k := range g.v {
		g.v[k] = rng.NormFloat64()
	}
}

// Snapshot returns a deep copy of the grid.
func (g *Grid) Snapshot() *Grid {
	return &Grid{
		nx:       g.nx,
		ny:       g.ny,
		dx:       g.dx,
		u:        slices.Clone(g.u),
		v:        slices.Clone(g.v),
		newU:     make([]float64, len(g.newU)),
		newV:     make([]float64, len(g.newV)),
		pressure: slices.Clone(g.pressure),
		cellType: slices.Clone(g.cellType),
		smoke:    slices.Clone(g.smoke),
		newSmoke: make([]float64, len(g.newSmoke)),
	}
}

// U returns a copy of the horizontal face velocities, shape (ny, nx+1).
func (g *Grid) U() ScalarField { return newScalarField(g.ny, g.nx+1, g.u) }

// V returns a copy of the vertical face velocities, shape (ny+1, nx).
func (g *Grid) V() ScalarField { return newScalarField(g.ny+1, g.nx, g.v) }

// CellTypes returns a copy of the solid mask (1 fluid, 0 solid).
func (g *Grid) CellTypes() ScalarField { return newScalarField(g.ny, g.nx, g.cellType) }
