package fluid

import (
	"bytes"
	"log"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSourceGrid builds a 10x10 interior (12x12 with the ring) at rest with a
// single unit face u[5,4].
func newSourceGrid(t *testing.T) *Grid {
	t.Helper()
	g := newTestGrid(t, 12, 12)
	g.SetU(5, 4, 1.0)
	return g
}

func TestSolveClearsSingleSource(t *testing.T) {
	g := newSourceGrid(t)
	s, err := NewSolver(g, WithOverRelaxation(1.5))
	require.NoError(t, err)

	stats, err := s.Solve(50)
	require.NoError(t, err)

	assert.Equal(t, 50, stats.Sweeps)
	assert.False(t, stats.Converged)
	assert.Less(t, g.MaxDivergence(), 1e-3)

	div := g.Divergence()
	assert.Less(t, max(-div.MinValue, div.MaxValue), 1e-3)
}

func TestSingleSweepZeroesLastVisitedCell(t *testing.T) {
	for _, order := range []ScanOrder{ColumnMajor, RowMajor} {
		t.Run(order.String(), func(t *testing.T) {
			g := newTestGrid(t, 12, 12)
			g.Randomize(rand.New(rand.NewPCG(7, 11)))

			s, err := NewSolver(g, WithOverRelaxation(1.0), WithScanOrder(order))
			require.NoError(t, err)
			s.Sweep()

			// The last fluid cell in either order is the top-right interior
			// corner; nothing after it shares a face.
			div := g.Divergence()
			assert.InDelta(t, 0.0, div.At(g.NY()-2, g.NX()-2), 1e-12)
		})
	}
}

func TestSweepSkipsIsolatedCell(t *testing.T) {
	g := newTestGrid(t, 3, 3)
	g.SetU(1, 1, 0.5)

	s, err := NewSolver(g, WithOverRelaxation(1.0))
	require.NoError(t, err)

	// The only fluid cell is walled on all four sides: nsum is 0 and the
	// sweep leaves its faces alone.
	residual := s.Sweep()
	assert.Equal(t, 0.0, residual)
	assert.Equal(t, 0.5, g.U().At(1, 1))
	assert.Equal(t, 0.0, s.Connectivity().NSum.At(1, 1))
}

// Past ω ≈ 1.5 over-relaxation can overshoot and bump the max norm between
// sweeps (it still converges), so the monotone check stops at 1.5.
func TestSolveMaxDivergenceNonIncreasing(t *testing.T) {
	for _, omega := range []float64{1.0, 1.2, 1.5} {
		for _, order := range []ScanOrder{ColumnMajor, RowMajor} {
			g := newSourceGrid(t)
			s, err := NewSolver(g, WithOverRelaxation(omega), WithScanOrder(order))
			require.NoError(t, err)

			prev := g.MaxDivergence()
			for n := 1; n <= 60; n++ {
				_, err := s.Solve(1)
				require.NoError(t, err)
				cur := g.MaxDivergence()
				assert.LessOrEqual(t, cur, prev+1e-12, "omega %v, %v, sweep %d", omega, order, n)
				prev = cur
			}
		}
	}
}

func TestSolidCellFacesUntouched(t *testing.T) {
	g := newTestGrid(t, 12, 12)
	require.NoError(t, g.SetSolid(6, 6, true))
	g.SetU(4, 3, 1.0)
	g.SetV(8, 8, -1.0)
	// faces flanking the solid cell, written after it turned solid
	g.SetU(6, 7, 0.3)
	g.SetV(6, 6, -0.2)

	s, err := NewSolver(g, WithOverRelaxation(1.7))
	require.NoError(t, err)

	conn := s.Connectivity()
	assert.Equal(t, 0.0, conn.NSum.At(6, 6))
	assert.Equal(t, 3.0, conn.NSum.At(6, 5))
	assert.Equal(t, 0.0, conn.Right.At(6, 5))

	_, err = s.Solve(30)
	require.NoError(t, err)

	u, v := g.U(), g.V()
	assert.Equal(t, 0.0, u.At(6, 6))
	assert.Equal(t, 0.3, u.At(6, 7))
	assert.Equal(t, -0.2, v.At(6, 6))
	assert.Equal(t, 0.0, v.At(7, 6))
}

func TestConnectivityWeights(t *testing.T) {
	g := newTestGrid(t, 5, 5)
	s, err := NewSolver(g)
	require.NoError(t, err)

	conn := s.Connectivity()
	assert.Equal(t, 0.0, conn.NSum.At(0, 2), "ring")
	assert.Equal(t, 2.0, conn.NSum.At(1, 1), "corner")
	assert.Equal(t, 3.0, conn.NSum.At(1, 2), "edge")
	assert.Equal(t, 4.0, conn.NSum.At(2, 2), "center")
	assert.LessOrEqual(t, conn.NSum.MaxValue, 4.0)

	assert.Equal(t, 0.0, conn.Left.At(2, 1))
	assert.Equal(t, 1.0, conn.Right.At(2, 1))
	assert.Equal(t, 0.0, conn.Bottom.At(1, 2))
	assert.Equal(t, 1.0, conn.Top.At(1, 2))
}

func TestSolveToleranceEarlyExit(t *testing.T) {
	g := newSourceGrid(t)
	var buf bytes.Buffer
	s, err := NewSolver(g,
		WithOverRelaxation(1.5),
		WithTolerance(1e-4),
		WithLogger(log.New(&buf, "", 0)),
	)
	require.NoError(t, err)

	stats, err := s.Solve(1000)
	require.NoError(t, err)

	assert.True(t, stats.Converged)
	assert.Less(t, stats.Sweeps, 1000)
	assert.Less(t, stats.Residual, 1e-4)
	assert.Contains(t, buf.String(), "converged after")
}

func TestSolveZeroIterations(t *testing.T) {
	g := newSourceGrid(t)
	s, err := NewSolver(g)
	require.NoError(t, err)

	stats, err := s.Solve(0)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Sweeps)
	assert.Equal(t, 1.0, g.U().At(5, 4))

	_, err = s.Solve(-1)
	assert.ErrorIs(t, err, ErrInvalidIterations)
}

func TestNewSolverValidation(t *testing.T) {
	g := newTestGrid(t, 6, 6)

	_, err := NewSolver(nil)
	assert.ErrorIs(t, err, ErrNilGrid)

	for _, omega := range []float64{0, -1, 2, 2.5, math.NaN()} {
		_, err := NewSolver(g, WithOverRelaxation(omega))
		assert.ErrorIs(t, err, ErrInvalidOverRelaxation, "omega %v", omega)
	}

	_, err = NewSolver(g, WithTolerance(-1))
	assert.ErrorIs(t, err, ErrInvalidTolerance)

	_, err = NewSolver(g, WithScanOrder(ScanOrder(7)))
	assert.ErrorIs(t, err, ErrInvalidScanOrder)

	s, err := NewSolver(g)
	require.NoError(t, err)
	assert.Equal(t, DefaultOverRelaxation, s.OverRelaxation())
	assert.Equal(t, ColumnMajor, s.ScanOrder())
	assert.Same(t, g, s.Grid())

	assert.ErrorIs(t, s.SetOverRelaxation(2), ErrInvalidOverRelaxation)
	require.NoError(t, s.SetOverRelaxation(1.9))
	assert.Equal(t, 1.9, s.OverRelaxation())
}

func TestParseScanOrder(t *testing.T) {
	order, err := ParseScanOrder("row-major")
	require.NoError(t, err)
	assert.Equal(t, RowMajor, order)

	order, err = ParseScanOrder("")
	require.NoError(t, err)
	assert.Equal(t, ColumnMajor, order)

	_, err = ParseScanOrder("diagonal")
	assert.ErrorIs(t, err, ErrInvalidScanOrder)

	assert.Equal(t, "column-major", ColumnMajor.String())
	assert.Equal(t, "ScanOrder(9)", ScanOrder(9).String())
}
