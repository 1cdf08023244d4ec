// Package grid provides grid.Uniform, a structured Cartesian grid backing
// hydro.Grid. It owns no hydro semantics — it exists only so the core is
// exercised end to end by something other than a mock, the way
// model_problems/Euler2D wires its own regular mesh around the DG core.
package grid

import (
	"sync/atomic"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/starforge/ionhydro/cell"
	"github.com/starforge/ionhydro/hydro"
)

// Uniform is a regular Cartesian grid of Nx*Ny*Nz cells filling a box of
// size Sides anchored at Origin, with optional per-axis periodicity. Cells
// are addressed by a github.com/google/uuid.UUID handle so cell.Handle's
// nil-means-boundary convention has an unambiguous non-nil zero-value-free
// concrete type to compare with ==.
type Uniform struct {
	Nx, Ny, Nz int
	Origin     r3.Vec
	Sides      r3.Vec
	Periodic   [3]bool

	ids     []uuid.UUID
	index   map[uuid.UUID]int
	hydro   []cell.Cell
	spacing r3.Vec

	accessed []uint32

	gridVelocityUnit float64 // vUnitSI from the last SetGridVelocity call
}

// NewUniform builds a Uniform grid of nx*ny*nz cells. A degenerate axis
// (n==1) is treated as infinite in that direction: its spacing is the full
// side length and it is always periodic, matching how a 1-D or 2-D problem
// is embedded in this 3-D core.
func NewUniform(origin, sides r3.Vec, nx, ny, nz int, periodic [3]bool) *Uniform {
	if nx < 1 || ny < 1 || nz < 1 {
		panic("grid: NewUniform requires at least one cell per axis")
	}
	g := &Uniform{
		Nx: nx, Ny: ny, Nz: nz,
		Origin: origin, Sides: sides,
		Periodic: periodic,
	}
	g.spacing = r3.Vec{X: sides.X / float64(nx), Y: sides.Y / float64(ny), Z: sides.Z / float64(nz)}
	if nx == 1 {
		g.Periodic[0] = true
	}
	if ny == 1 {
		g.Periodic[1] = true
	}
	if nz == 1 {
		g.Periodic[2] = true
	}

	n := nx * ny * nz
	g.ids = make([]uuid.UUID, n)
	g.index = make(map[uuid.UUID]int, n)
	g.hydro = make([]cell.Cell, n)
	g.accessed = make([]uint32, n)
	for i := range g.ids {
		id := uuid.New()
		g.ids[i] = id
		g.index[id] = i
	}
	return g
}

func (g *Uniform) linear(ix, iy, iz int) int { return (ix*g.Ny+iy)*g.Nz + iz }

func (g *Uniform) coords(i int) (ix, iy, iz int) {
	iz = i % g.Nz
	i /= g.Nz
	iy = i % g.Ny
	ix = i / g.Ny
	return
}

func (g *Uniform) idx(h cell.Handle) int {
	id, ok := h.(uuid.UUID)
	if !ok {
		panic("grid: foreign cell.Handle passed to Uniform")
	}
	i, ok := g.index[id]
	if !ok {
		panic("grid: unknown cell.Handle passed to Uniform")
	}
	return i
}

func (g *Uniform) NumCells() int { return len(g.ids) }

func (g *Uniform) CellAt(i int) cell.Handle { return g.ids[i] }

func (g *Uniform) Midpoint(h cell.Handle) r3.Vec {
	ix, iy, iz := g.coords(g.idx(h))
	return r3.Vec{
		X: g.Origin.X + (float64(ix)+0.5)*g.spacing.X,
		Y: g.Origin.Y + (float64(iy)+0.5)*g.spacing.Y,
		Z: g.Origin.Z + (float64(iz)+0.5)*g.spacing.Z,
	}
}

func (g *Uniform) Volume(h cell.Handle) float64 {
	_ = h
	return g.spacing.X * g.spacing.Y * g.spacing.Z
}

func (g *Uniform) Ionisation(h cell.Handle) cell.Ionisation { return g.hydro[g.idx(h)].Ion }

func (g *Uniform) SetIonisation(h cell.Handle, ion cell.Ionisation) { g.hydro[g.idx(h)].Ion = ion }

// Hydro returns the mutable per-cell state and marks the cell accessed for
// the current debug pass: every lookup through this method,
// whether for the owning cell of a traversal or a neighbour read, counts.
// It never writes to the cell itself, only to the atomic access counter, so
// two goroutines resolving each other as neighbours during the parallel
// flux pass never race.
func (g *Uniform) Hydro(h cell.Handle) *cell.Cell {
	i := g.idx(h)
	atomic.AddUint32(&g.accessed[i], 1)
	return &g.hydro[i]
}

// Neighbours enumerates the six axis-aligned faces of a cell. A face at a
// non-periodic domain edge has a nil Other and zero Offset; the driver
// resolves it through the boundary oracle instead.
func (g *Uniform) Neighbours(h cell.Handle) []hydro.Neighbour {
	return g.neighbours(g.idx(h))
}

func (g *Uniform) neighbours(i int) []hydro.Neighbour {
	ix, iy, iz := g.coords(i)
	mid := g.Midpoint(g.ids[i])
	out := make([]hydro.Neighbour, 0, 6)

	axis := func(delta [3]int, normal r3.Vec, area float64) {
		nix, niy, niz := ix+delta[0], iy+delta[1], iz+delta[2]
		periodic := (delta[0] != 0 && g.Periodic[0]) || (delta[1] != 0 && g.Periodic[1]) || (delta[2] != 0 && g.Periodic[2])
		wrapped := false
		if nix < 0 {
			nix, wrapped = g.Nx-1, true
		} else if nix >= g.Nx {
			nix, wrapped = 0, true
		}
		if niy < 0 {
			niy, wrapped = g.Ny-1, true
		} else if niy >= g.Ny {
			niy, wrapped = 0, true
		}
		if niz < 0 {
			niz, wrapped = g.Nz-1, true
		} else if niz >= g.Nz {
			niz, wrapped = 0, true
		}

		inRange := nix >= 0 && nix < g.Nx && niy >= 0 && niy < g.Ny && niz >= 0 && niz < g.Nz
		if !inRange {
			return
		}
		if wrapped && !periodic {
			// domain boundary: report it with a nil neighbour
			faceMid := mid.Add(normal.Scale(0.5 * faceSpacing(g, normal)))
			out = append(out, hydro.Neighbour{Other: nil, FaceMidpoint: faceMid, Normal: normal, Area: area})
			return
		}

		otherIdx := g.linear(nix, niy, niz)
		other := g.ids[otherIdx]
		var offset r3.Vec
		if wrapped {
			// a periodic wrap always crosses exactly one face spacing away
			// in the direction of travel, never the long way around the box
			offset = normal.Scale(faceSpacing(g, normal))
		} else {
			offset = g.Midpoint(other).Sub(mid)
		}
		faceMid := mid.Add(offset.Scale(0.5))
		out = append(out, hydro.Neighbour{Other: other, FaceMidpoint: faceMid, Normal: normal, Area: area, Offset: offset})
	}

	axis([3]int{-1, 0, 0}, r3.Vec{X: -1}, g.spacing.Y*g.spacing.Z)
	axis([3]int{1, 0, 0}, r3.Vec{X: 1}, g.spacing.Y*g.spacing.Z)
	axis([3]int{0, -1, 0}, r3.Vec{Y: -1}, g.spacing.X*g.spacing.Z)
	axis([3]int{0, 1, 0}, r3.Vec{Y: 1}, g.spacing.X*g.spacing.Z)
	axis([3]int{0, 0, -1}, r3.Vec{Z: -1}, g.spacing.X*g.spacing.Y)
	axis([3]int{0, 0, 1}, r3.Vec{Z: 1}, g.spacing.X*g.spacing.Y)
	return out
}

func faceSpacing(g *Uniform, normal r3.Vec) float64 {
	switch {
	case normal.X != 0:
		return g.spacing.X
	case normal.Y != 0:
		return g.spacing.Y
	default:
		return g.spacing.Z
	}
}

// InterfaceVelocity is zero everywhere: Uniform is a fixed Eulerian grid,
// it never moves its own vertices. Mesh motion is a legitimate hydro.Grid
// implementation but not one this reference grid needs to demonstrate.
func (g *Uniform) InterfaceVelocity(h cell.Handle, n hydro.Neighbour) r3.Vec {
	_, _ = h, n
	return r3.Vec{}
}

// SetGridVelocity records the conversion factor the driver reports; Uniform
// has no mesh velocity to update but keeps the value for inspection.
func (g *Uniform) SetGridVelocity(gamma float64, vUnitSI float64) {
	_ = gamma
	g.gridVelocityUnit = vUnitSI
}

// Evolve is a no-op: Uniform's vertices never move.
func (g *Uniform) Evolve(dtSI float64) { _ = dtSI }

func (g *Uniform) ResetAccessFlags() {
	for i := range g.accessed {
		atomic.StoreUint32(&g.accessed[i], 0)
	}
}

func (g *Uniform) CheckAccess() bool {
	for i := range g.accessed {
		if atomic.LoadUint32(&g.accessed[i]) == 0 {
			return false
		}
	}
	return true
}

func (g *Uniform) Box() (origin r3.Vec, sides r3.Vec, periodic [3]bool) {
	return g.Origin, g.Sides, g.Periodic
}
