package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/starforge/ionhydro/cell"
)

func TestNumCellsAndCoordsRoundTrip(t *testing.T) {
	g := NewUniform(r3.Vec{}, r3.Vec{X: 4, Y: 2, Z: 1}, 4, 2, 1, [3]bool{})
	require.Equal(t, 8, g.NumCells())
	for i := 0; i < g.NumCells(); i++ {
		h := g.CellAt(i)
		assert.Equal(t, i, g.idx(h))
	}
}

func TestDegenerateAxisForcedPeriodic(t *testing.T) {
	g := NewUniform(r3.Vec{}, r3.Vec{X: 4, Y: 1, Z: 1}, 4, 1, 1, [3]bool{})
	assert.True(t, g.Periodic[1])
	assert.True(t, g.Periodic[2])
	assert.False(t, g.Periodic[0])
}

func TestNeighboursNonPeriodicEdgeCellHasOneBoundaryFace(t *testing.T) {
	g := NewUniform(r3.Vec{}, r3.Vec{X: 3, Y: 1, Z: 1}, 3, 1, 1, [3]bool{})
	h := g.CellAt(0) // leftmost cell: one boundary face (x-low), one interior (x-high)
	nbs := g.Neighbours(h)
	boundaryCount := 0
	for _, nb := range nbs {
		if nb.IsBoundary() {
			boundaryCount++
		}
	}
	// y and z are degenerate (forced periodic), so only x can produce a
	// boundary face; the leftmost cell has exactly one (x-low).
	assert.Equal(t, 1, boundaryCount)
}

func TestNeighboursPeriodicWrapsAround(t *testing.T) {
	g := NewUniform(r3.Vec{}, r3.Vec{X: 3, Y: 1, Z: 1}, 3, 1, 1, [3]bool{true, false, false})
	h := g.CellAt(0)
	nbs := g.Neighbours(h)
	for _, nb := range nbs {
		assert.False(t, nb.IsBoundary())
	}
}

func TestMidpointSpansTheBox(t *testing.T) {
	g := NewUniform(r3.Vec{X: 10}, r3.Vec{X: 2}, 2, 1, 1, [3]bool{})
	first := g.Midpoint(g.CellAt(0))
	second := g.Midpoint(g.CellAt(1))
	assert.InDelta(t, 10.5, first.X, 1e-9)
	assert.InDelta(t, 11.5, second.X, 1e-9)
}

func TestAccessBitmapDetectsUnvisitedCell(t *testing.T) {
	g := NewUniform(r3.Vec{}, r3.Vec{X: 2, Y: 1, Z: 1}, 2, 1, 1, [3]bool{})
	g.ResetAccessFlags()
	assert.False(t, g.CheckAccess())

	_ = g.Hydro(g.CellAt(0))
	assert.False(t, g.CheckAccess())

	_ = g.Hydro(g.CellAt(1))
	assert.True(t, g.CheckAccess())
}

func TestSetIonisationPersistsThroughHydro(t *testing.T) {
	g := NewUniform(r3.Vec{}, r3.Vec{X: 1, Y: 1, Z: 1}, 1, 1, 1, [3]bool{})
	h := g.CellAt(0)
	g.SetIonisation(h, cell.Ionisation{XH: 0.5, Temperature: 1e4, NumberDensity: 10})
	assert.Equal(t, 0.5, g.Hydro(h).Ion.XH)
	assert.Equal(t, 0.5, g.Ionisation(h).XH)
}
