package fluid

import "errors"

// Sentinel errors returned by grid construction, the solver and Step.
var (
	// ErrInvalidDimensions indicates a grid too small to hold an interior cell.
	ErrInvalidDimensions = errors.New("fluid: grid needs at least 3x3 cells")
	// ErrInvalidSpacing indicates a cell size that is not finite and positive.
	ErrInvalidSpacing = errors.New("fluid: cell size must be finite and positive")
	// ErrInvalidOverRelaxation indicates an over-relaxation factor outside (0, 2).
	ErrInvalidOverRelaxation = errors.New("fluid: over-relaxation factor must be in (0, 2)")
	// ErrInvalidTolerance indicates a negative or non-finite convergence tolerance.
	ErrInvalidTolerance = errors.New("fluid: tolerance must be finite and non-negative")
	// ErrInvalidScanOrder indicates an unknown relaxation scan order.
	ErrInvalidScanOrder = errors.New("fluid: unknown scan order")
	// ErrInvalidIterations indicates a negative sweep count.
	ErrInvalidIterations = errors.New("fluid: iteration count must be non-negative")
	// ErrInvalidTimeStep indicates a negative or non-finite time step.
	ErrInvalidTimeStep = errors.New("fluid: time step must be finite and non-negative")
	// ErrOutOfRange indicates a cell index outside the grid.
	ErrOutOfRange = errors.New("fluid: index out of range")
	// ErrBoundaryCell indicates an attempt to open the solid outer ring.
	ErrBoundaryCell = errors.New("fluid: boundary cells are always solid")
	// ErrNilGrid indicates a nil *Grid argument.
	ErrNilGrid = errors.New("fluid: nil grid")
	// ErrGridMismatch indicates a solver bound to a different grid.
	ErrGridMismatch = errors.New("fluid: solver belongs to another grid")
)
