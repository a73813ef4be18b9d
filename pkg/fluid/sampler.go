package fluid

import "math"

// sample bilinearly interpolates a rows × cols array whose sample (i, j)
// sits at (j*dx, i*dx). Callers shift (x, y) for staggered storage.
func sample(values []float64, rows, cols int, x, y, dx float64) float64 {
	j0, tx := clampCell(x/dx, cols)
	i0, ty := clampCell(y/dx, rows)
	j1 := min(j0+1, cols-1)
	i1 := min(i0+1, rows-1)

	bottom := lerp(values[i0*cols+j0], values[i0*cols+j1], tx)
	top := lerp(values[i1*cols+j0], values[i1*cols+j1], tx)
	return lerp(bottom, top, ty)
}

// clampCell maps a position in index units to a base index whose +1
// neighbour is in range, and the fractional weight toward that neighbour.
func clampCell(pos float64, n int) (int, float64) {
	if n < 2 {
		return 0, 0
	}
	// NaN flows through lerp instead of becoming an index.
	if math.IsNaN(pos) {
		return 0, pos
	}
	pos = max(0, min(pos, float64(n-1)))
	base := min(int(math.Floor(pos)), n-2)
	return base, pos - float64(base)
}

// lerp is written so that a == b returns a exactly.
func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}
