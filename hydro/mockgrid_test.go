package hydro

import (
	"sync/atomic"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/starforge/ionhydro/cell"
)

// mockGrid is a tiny 1-D line of cells (spacing 1, unit cross-section) used
// to exercise the unexported per-step passes directly, without depending on
// the reference grid package (which imports this one, so it cannot appear
// in an internal test file without an import cycle).
type mockGrid struct {
	n        int
	cells    []cell.Cell
	periodic bool
	accessed []uint32
}

func newMockGrid(n int, periodic bool) *mockGrid {
	return &mockGrid{n: n, cells: make([]cell.Cell, n), periodic: periodic, accessed: make([]uint32, n)}
}

func (g *mockGrid) NumCells() int             { return g.n }
func (g *mockGrid) CellAt(i int) cell.Handle  { return i }
func (g *mockGrid) idx(h cell.Handle) int     { return h.(int) }
func (g *mockGrid) Midpoint(h cell.Handle) r3.Vec {
	return r3.Vec{X: float64(g.idx(h)) + 0.5}
}
func (g *mockGrid) Volume(h cell.Handle) float64 { _ = h; return 1 }
func (g *mockGrid) Ionisation(h cell.Handle) cell.Ionisation {
	return g.cells[g.idx(h)].Ion
}
func (g *mockGrid) SetIonisation(h cell.Handle, ion cell.Ionisation) {
	g.cells[g.idx(h)].Ion = ion
}
func (g *mockGrid) Hydro(h cell.Handle) *cell.Cell {
	i := g.idx(h)
	atomic.AddUint32(&g.accessed[i], 1)
	return &g.cells[i]
}
func (g *mockGrid) Neighbours(h cell.Handle) []Neighbour {
	i := g.idx(h)
	var out []Neighbour
	left, hasLeft := i-1, i > 0
	right, hasRight := i+1, i < g.n-1
	if !hasLeft && g.periodic {
		left, hasLeft = g.n-1, true
	}
	if !hasRight && g.periodic {
		right, hasRight = 0, true
	}
	if hasLeft {
		out = append(out, Neighbour{Other: left, FaceMidpoint: r3.Vec{X: float64(i)}, Normal: r3.Vec{X: -1}, Area: 1, Offset: r3.Vec{X: -1}})
	} else {
		out = append(out, Neighbour{FaceMidpoint: r3.Vec{X: float64(i)}, Normal: r3.Vec{X: -1}, Area: 1})
	}
	if hasRight {
		out = append(out, Neighbour{Other: right, FaceMidpoint: r3.Vec{X: float64(i) + 1}, Normal: r3.Vec{X: 1}, Area: 1, Offset: r3.Vec{X: 1}})
	} else {
		out = append(out, Neighbour{FaceMidpoint: r3.Vec{X: float64(i) + 1}, Normal: r3.Vec{X: 1}, Area: 1})
	}
	return out
}
func (g *mockGrid) InterfaceVelocity(h cell.Handle, n Neighbour) r3.Vec { _, _ = h, n; return r3.Vec{} }
func (g *mockGrid) SetGridVelocity(gamma float64, vUnitSI float64)     { _, _ = gamma, vUnitSI }
func (g *mockGrid) Evolve(dtSI float64)                                { _ = dtSI }
func (g *mockGrid) ResetAccessFlags() {
	for i := range g.accessed {
		atomic.StoreUint32(&g.accessed[i], 0)
	}
}
func (g *mockGrid) CheckAccess() bool {
	for i := range g.accessed {
		if atomic.LoadUint32(&g.accessed[i]) == 0 {
			return false
		}
	}
	return true
}
func (g *mockGrid) Box() (origin r3.Vec, sides r3.Vec, periodic [3]bool) {
	return r3.Vec{}, r3.Vec{X: float64(g.n)}, [3]bool{g.periodic, true, true}
}
