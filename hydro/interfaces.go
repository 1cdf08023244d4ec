// Package hydro implements the step driver: the collaborator contracts the
// core consumes and the orchestration of one hydro step (initialise, CFL,
// gradients, Hancock predict, parallel flux sweep, radiation source term,
// conservative update, primitive recovery, grid motion), following a
// per-partition orchestration idiom similar to a Runge-Kutta driver
// stepping a partitioned element range.
package hydro

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/starforge/ionhydro/cell"
)

// Grid is the external collaborator contract: the core never
// assumes anything about how cells are stored or connected, only that this
// interface can answer geometric and hydro-state questions about them.
type Grid interface {
	NumCells() int
	CellAt(i int) cell.Handle
	Midpoint(h cell.Handle) r3.Vec
	Volume(h cell.Handle) float64
	Ionisation(h cell.Handle) cell.Ionisation
	SetIonisation(h cell.Handle, ion cell.Ionisation)
	Hydro(h cell.Handle) *cell.Cell
	Neighbours(h cell.Handle) []Neighbour
	InterfaceVelocity(h cell.Handle, n Neighbour) r3.Vec
	SetGridVelocity(gamma float64, vUnitSI float64)
	Evolve(dtSI float64)
	ResetAccessFlags()
	CheckAccess() bool
	Box() (origin r3.Vec, sides r3.Vec, periodic [3]bool)
}

// Neighbour is one entry of a cell's face list.
type Neighbour struct {
	Other        cell.Handle // zero value => domain boundary
	FaceMidpoint r3.Vec
	Normal       r3.Vec // outward from the owning cell
	Area         float64
	Offset       r3.Vec // neighbour midpoint minus owning-cell midpoint
}

// IsBoundary reports whether this neighbour entry represents a
// domain-boundary face rather than an interior neighbour.
func (n Neighbour) IsBoundary() bool { return n.Other == nil }
