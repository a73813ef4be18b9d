package fluid

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

func (g *Grid) divergenceAt(i, j int) float64 {
	return -g.u[g.uIdx(i, j)] + g.u[g.uIdx(i, j+1)] -
		g.v[g.vIdx(i, j)] + g.v[g.vIdx(i+1, j)]
}

// Divergence recomputes the net outflow of every cell from the current faces.
func (g *Grid) Divergence() ScalarField {
	div := make([]float64, g.ny*g.nx)
	for i := 0; i < g.ny; i++ {
		for j := 0; j < g.nx; j++ {
			div[g.cIdx(i, j)] = g.divergenceAt(i, j)
		}
	}
	return ScalarField{
		Rows:     g.ny,
		Cols:     g.nx,
		MinValue: floats.Min(div),
		MaxValue: floats.Max(div),
		values:   div,
	}
}

// MaxDivergence returns the largest |divergence| over fluid cells.
func (g *Grid) MaxDivergence() float64 {
	return floats.Norm(g.fluidDivergence(), math.Inf(1))
}

func (g *Grid) fluidDivergence() []float64 {
	div := make([]float64, 0, g.nx*g.ny)
	for i := 1; i < g.ny-1; i++ {
		for j := 1; j < g.nx-1; j++ {
			if g.cellType[g.cIdx(i, j)] == 0.0 {
				continue
			}
			div = append(div, g.divergenceAt(i, j))
		}
	}
	return div
}

// VelocityMagnitude returns |v| at cell centers. Solid cells read zero.
func (g *Grid) VelocityMagnitude() ScalarField {
	vel := g.CellVelocity()
	vals := make([]float64, g.ny*g.nx)
	for i := 1; i < g.ny-1; i++ {
		for j := 1; j < g.nx-1; j++ {
			k := g.cIdx(i, j)
			if g.cellType[k] == 0.0 {
				continue
			}
			u, v := vel.At(i, j)
			vals[k] = math.Hypot(u, v)
		}
	}
	return newScalarField(g.ny, g.nx, vals)
}

// Vorticity returns the curl dv/dx - du/dy of the cell-centered velocity,
// by central differences. Solid cells and the outer ring read zero.
func (g *Grid) Vorticity() ScalarField {
	vel := g.CellVelocity()
	h := g.dx
	vals := make([]float64, g.ny*g.nx)
	for i := 1; i < g.ny-1; i++ {
		for j := 1; j < g.nx-1; j++ {
			k := g.cIdx(i, j)
			if g.cellType[k] == 0.0 {
				continue
			}
			_, vRight := vel.At(i, j+1)
			_, vLeft := vel.At(i, j-1)
			uTop, _ := vel.At(i+1, j)
			uBottom, _ := vel.At(i-1, j)
			dvdx := (vRight - vLeft) * 0.5 / h
			dudy := (uTop - uBottom) * 0.5 / h
			vals[k] = dvdx - dudy
		}
	}
	return newScalarField(g.ny, g.nx, vals)
}

// Stats summarises the grid for monitoring. Values are reported as they are;
// a blow-up shows up here, it is never clamped.
type Stats struct {
	MaxDivergence float64
	MaxSpeed      float64
	TotalSmoke    float64
	KineticEnergy float64
}

func (g *Grid) Stats() Stats {
	speed := g.VelocityMagnitude()
	return Stats{
		MaxDivergence: g.MaxDivergence(),
		MaxSpeed:      speed.MaxValue,
		TotalSmoke:    floats.Sum(g.smoke),
		KineticEnergy: 0.5 * (floats.Dot(g.u, g.u) + floats.Dot(g.v, g.v)) * g.dx * g.dx,
	}
}
