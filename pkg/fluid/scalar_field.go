package fluid

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/floats"
)

// ScalarField is a read-only copy of one grid array. Rows is the y extent and
// Cols the x extent; MinValue and MaxValue are precomputed for colour mapping.
type ScalarField struct {
	Rows, Cols         int
	MinValue, MaxValue float64
	values             []float64
}

func newScalarField(rows, cols int, src []float64) ScalarField {
	values := slices.Clone(src[:rows*cols])
	return ScalarField{
		Rows:     rows,
		Cols:     cols,
		MinValue: floats.Min(values),
		MaxValue: floats.Max(values),
		values:   values,
	}
}

func (s ScalarField) Value(i, j int) (float64, error) {
	if i < 0 || i >= s.Rows {
		return 0.0, fmt.Errorf("%w: row %d, must be between 0 and %d", ErrOutOfRange, i, s.Rows-1)
	}
	if j < 0 || j >= s.Cols {
		return 0.0, fmt.Errorf("%w: column %d, must be between 0 and %d", ErrOutOfRange, j, s.Cols-1)
	}

	return s.values[i*s.Cols+j], nil
}

// At returns the value at row i, column j without a range check.
func (s ScalarField) At(i, j int) float64 {
	return s.values[i*s.Cols+j]
}

// Values returns the row-major backing data. The slice belongs to the caller.
func (s ScalarField) Values() []float64 {
	return slices.Clone(s.values)
}

// Sample bilinearly interpolates the field at (x, y), where stored sample
// (i, j) sits at (j*dx, i*dx). Out-of-range positions hold the edge value.
func (s ScalarField) Sample(x, y, dx float64) float64 {
	return sample(s.values, s.Rows, s.Cols, x, y, dx)
}
