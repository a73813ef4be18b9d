package fluid

// CellVelocity averages each pair of opposite faces onto the cell center.
func (g *Grid) CellVelocity() VectorField {
	uc := make([]float64, g.ny*g.nx)
	vc := make([]float64, g.ny*g.nx)
	for i := 0; i < g.ny; i++ {
		for j := 0; j < g.nx; j++ {
			k := g.cIdx(i, j)
			uc[k] = 0.5 * (g.u[g.uIdx(i, j)] + g.u[g.uIdx(i, j+1)])
			vc[k] = 0.5 * (g.v[g.vIdx(i, j)] + g.v[g.vIdx(i+1, j)])
		}
	}
	return VectorField{
		Rows:    g.ny,
		Cols:    g.nx,
		valuesU: uc,
		valuesV: vc,
	}
}
