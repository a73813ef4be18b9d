package fluid

// Semi-Lagrangian transport. Every pass traces each stored sample back
// through the current velocity field, samples the source array at the
// departure point and writes into a scratch buffer that is swapped in once
// the pass is complete. Faces touching a solid cell, and solid cells for
// smoke, keep their value.

// AdvectU transports the horizontal velocity component by dt.
func (g *Grid) AdvectU(dt float64) {
	g.traceU(dt, g.newU)
	g.u, g.newU = g.newU, g.u
}

// AdvectV transports the vertical velocity component by dt.
func (g *Grid) AdvectV(dt float64) {
	g.traceV(dt, g.newV)
	g.v, g.newV = g.newV, g.v
}

// AdvectVelocity transports both components through the same velocity
// field, then swaps both in.
func (g *Grid) AdvectVelocity(dt float64) {
	g.traceU(dt, g.newU)
	g.traceV(dt, g.newV)
	g.u, g.newU = g.newU, g.u
	g.v, g.newV = g.newV, g.v
}

// AdvectSmoke transports the smoke density by dt.
func (g *Grid) AdvectSmoke(dt float64) {
	copy(g.newSmoke, g.smoke)

	h := g.dx
	h2 := 0.5 * h

	for i := 1; i < g.ny-1; i++ {
		for j := 1; j < g.nx-1; j++ {
			if g.cellType[g.cIdx(i, j)] == 0.0 {
				continue
			}
			u := (g.u[g.uIdx(i, j)] + g.u[g.uIdx(i, j+1)]) * 0.5
			v := (g.v[g.vIdx(i, j)] + g.v[g.vIdx(i+1, j)]) * 0.5
			x := float64(j)*h + h2 - dt*u
			y := float64(i)*h + h2 - dt*v
			g.newSmoke[g.cIdx(i, j)] = sample(g.smoke, g.ny, g.nx, x-h2, y-h2, h)
		}
	}

	g.smoke, g.newSmoke = g.newSmoke, g.smoke
}

func (g *Grid) traceU(dt float64, dst []float64) {
	copy(dst, g.u)

	h := g.dx
	h2 := 0.5 * h

	for i := 0; i < g.ny; i++ {
		for j := 1; j < g.nx; j++ {
			if g.cellAt(i, j-1) == 0.0 || g.cellAt(i, j) == 0.0 {
				continue
			}
			x := float64(j) * h
			y := float64(i)*h + h2
			u := g.u[g.uIdx(i, j)]
			v := g.avgV(i, j)

			x = x - dt*u
			y = y - dt*v
			dst[g.uIdx(i, j)] = sample(g.u, g.ny, g.nx+1, x, y-h2, h)
		}
	}
}

func (g *Grid) traceV(dt float64, dst []float64) {
	copy(dst, g.v)

	h := g.dx
	h2 := 0.5 * h

	for i := 1; i < g.ny; i++ {
		for j := 0; j < g.nx; j++ {
			if g.cellAt(i-1, j) == 0.0 || g.cellAt(i, j) == 0.0 {
				continue
			}
			x := float64(j)*h + h2
			y := float64(i) * h
			u := g.avgU(i, j)
			v := g.v[g.vIdx(i, j)]

			x = x - dt*u
			y = y - dt*v
			dst[g.vIdx(i, j)] = sample(g.v, g.ny+1, g.nx, x-h2, y, h)
		}
	}
}

// avgU estimates u at v face (i, j) from the four surrounding u faces.
func (g *Grid) avgU(i, j int) float64 {
	return (g.u[g.uIdx(i-1, j)] + g.u[g.uIdx(i-1, j+1)] +
		g.u[g.uIdx(i, j)] + g.u[g.uIdx(i, j+1)]) * 0.25
}

// avgV estimates v at u face (i, j) from the four surrounding v faces.
func (g *Grid) avgV(i, j int) float64 {
	return (g.v[g.vIdx(i, j-1)] + g.v[g.vIdx(i, j)] +
		g.v[g.vIdx(i+1, j-1)] + g.v[g.vIdx(i+1, j)]) * 0.25
}
