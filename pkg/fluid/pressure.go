package fluid

// Pressure returns a copy of the reserved pressure array. The projection
// corrects face velocities directly and never writes it, so it stays zero
// unless a caller fills it.
func (g *Grid) Pressure() ScalarField {
	return newScalarField(g.ny, g.nx, g.pressure)
}
