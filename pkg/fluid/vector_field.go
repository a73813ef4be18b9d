package fluid

import "fmt"

// VectorField holds a velocity sample per cell center.
type VectorField struct {
	Rows, Cols       int
	valuesU, valuesV []float64
}

func (v VectorField) Value(i, j int) (float64, float64, error) {
	if i < 0 || i >= v.Rows {
		return 0.0, 0.0, fmt.Errorf("%w: row %d, must be between 0 and %d", ErrOutOfRange, i, v.Rows-1)
	}
	if j < 0 || j >= v.Cols {
		return 0.0, 0.0, fmt.Errorf("%w: column %d, must be between 0 and %d", ErrOutOfRange, j, v.Cols-1)
	}

	return v.valuesU[i*v.Cols+j], v.valuesV[i*v.Cols+j], nil
}

// At returns both components at row i, column j without a range check.
func (v VectorField) At(i, j int) (float64, float64) {
	k := i*v.Cols + j
	return v.valuesU[k], v.valuesV[k]
}
