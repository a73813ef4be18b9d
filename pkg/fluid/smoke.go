package fluid

// Smoke returns a copy of the smoke density at cell centers.
func (g *Grid) Smoke() ScalarField {
	return newScalarField(g.ny, g.nx, g.smoke)
}
