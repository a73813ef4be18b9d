package fluid

import "fmt"

// Rect is the half-open index range [Row0, Row1) × [Col0, Col1).
type Rect struct {
	Row0, Row1 int
	Col0, Col1 int
}

// SetSolid marks cell (i, j) as solid or fluid. Turning a cell solid zeroes
// its four flanking faces. The outer ring can not be opened.
func (g *Grid) SetSolid(i, j int, solid bool) error {
	if i < 0 || i >= g.ny || j < 0 || j >= g.nx {
		return fmt.Errorf("%w: cell (%d, %d)", ErrOutOfRange, i, j)
	}
	if g.onBoundary(i, j) {
		if solid {
			return nil
		}
		return fmt.Errorf("%w: cell (%d, %d)", ErrBoundaryCell, i, j)
	}

	if !solid {
		g.cellType[g.cIdx(i, j)] = 1.0
		return nil
	}
	g.markSolid(i, j)
	return nil
}

// markSolid closes an in-range cell and clears its faces so the wall holds
// from the next tick on.
func (g *Grid) markSolid(i, j int) {
	g.cellType[g.cIdx(i, j)] = 0.0
	g.u[g.uIdx(i, j)] = 0
	g.u[g.uIdx(i, j+1)] = 0
	g.v[g.vIdx(i, j)] = 0
	g.v[g.vIdx(i+1, j)] = 0
}

// IsSolid reports whether cell (i, j) is solid. Cells outside the grid count
// as solid.
func (g *Grid) IsSolid(i, j int) bool {
	return g.cellAt(i, j) == 0.0
}

// AddCircularObstacle marks every interior cell within radius of (ci, cj)
// as solid.
func (g *Grid) AddCircularObstacle(ci, cj, radius int) {
	for i := ci - radius; i <= ci+radius; i++ {
		for j := cj - radius; j <= cj+radius; j++ {
			if i < 1 || i >= g.ny-1 || j < 1 || j >= g.nx-1 {
				continue
			}
			di := float64(i - ci)
			dj := float64(j - cj)
			if di*di+dj*dj <= float64(radius*radius) {
				g.markSolid(i, j)
			}
		}
	}
}

// The setters below are source-injection hooks. They do not look at the
// solid mask; an index outside the array panics.

func (g *Grid) SetU(i, j int, u float64) {
	if i < 0 || i >= g.ny || j < 0 || j > g.nx {
		panic(fmt.Sprintf("invalid u index: (%d, %d)", i, j))
	}
	g.u[g.uIdx(i, j)] = u
}

func (g *Grid) SetV(i, j int, v float64) {
	if i < 0 || i > g.ny || j < 0 || j >= g.nx {
		panic(fmt.Sprintf("invalid v index: (%d, %d)", i, j))
	}
	g.v[g.vIdx(i, j)] = v
}

func (g *Grid) SetSmoke(i, j int, smoke float64) {
	if i < 0 || i >= g.ny || j < 0 || j >= g.nx {
		panic(fmt.Sprintf("invalid cell index: (%d, %d)", i, j))
	}
	g.smoke[g.cIdx(i, j)] = smoke
}

func (g *Grid) AddSmoke(i, j int, smoke float64) {
	if i < 0 || i >= g.ny || j < 0 || j >= g.nx {
		panic(fmt.Sprintf("invalid cell index: (%d, %d)", i, j))
	}
	g.smoke[g.cIdx(i, j)] += smoke
}

// FillU writes u into every face of r.
func (g *Grid) FillU(r Rect, u float64) {
	checkRect(r, g.ny, g.nx+1, "u")
	for i := r.Row0; i < r.Row1; i++ {
		for j := r.Col0; j < r.Col1; j++ {
			g.u[g.uIdx(i, j)] = u
		}
	}
}

// FillV writes v into every face of r.
func (g *Grid) FillV(r Rect, v float64) {
	checkRect(r, g.ny+1, g.nx, "v")
	for i := r.Row0; i < r.Row1; i++ {
		for j := r.Col0; j < r.Col1; j++ {
			g.v[g.vIdx(i, j)] = v
		}
	}
}

// FillSmoke writes smoke into every cell of r.
func (g *Grid) FillSmoke(r Rect, smoke float64) {
	checkRect(r, g.ny, g.nx, "smoke")
	for i := r.Row0; i < r.Row1; i++ {
		for j := r.Col0; j < r.Col1; j++ {
			g.smoke[g.cIdx(i, j)] = smoke
		}
	}
}

func checkRect(r Rect, rows, cols int, name string) {
	if r.Row0 < 0 || r.Row1 > rows || r.Col0 < 0 || r.Col1 > cols {
		panic(fmt.Sprintf("invalid %s region: rows [%d, %d) cols [%d, %d)", name, r.Row0, r.Row1, r.Col0, r.Col1))
	}
}
