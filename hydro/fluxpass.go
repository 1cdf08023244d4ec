package hydro

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/starforge/ionhydro/boundary"
	"github.com/starforge/ionhydro/cell"
	"github.com/starforge/ionhydro/flux"
	"github.com/starforge/ionhydro/internal/partition"
	"github.com/starforge/ionhydro/units"
)

// fluxPass runs the parallel flux traversal:
// every cell enumerates its own neighbour faces, resolves the right-hand
// state, runs the flux kernel, and accumulates into its own ΔC. Two cells
// sharing an interior face each run the kernel independently from their
// own side (with the outward normal in each direction), so no locking is
// needed — this is what makes flux antisymmetry a per-pair
// property of the two independent evaluations rather than a single shared
// computation.
//
// In Debug mode the pass brackets itself with the grid's access bitmap:
// ResetAccessFlags before the sweep, CheckAccess after. The
// grid is responsible for marking a cell accessed on its own Hydro call;
// grid.Uniform counts every Hydro call, neighbour reads included, so
// CheckAccess failing here means some cell was neither visited nor read as
// a neighbour. A cell visited more than once is not detected.
func (d *Driver) fluxPass(grid Grid, pm *partition.Map, dtInternal float64) {
	if d.Debug {
		grid.ResetAccessFlags()
	}

	pm.Do(func(i int) {
		h := grid.CellAt(i)
		left := grid.Hydro(h)
		leftMidpoint := grid.Midpoint(h)

		for _, nb := range grid.Neighbours(h) {
			right := d.resolveRightState(grid, h, left, leftMidpoint, nb)
			dL, dR, dRatioL, dRatioR := faceGeometry(leftMidpoint, nb)

			d.kernel.ComputeFace(flux.Face{
				Left:    left,
				Right:   right,
				DL:      dL,
				DR:      dR,
				DRatioL: dRatioL,
				DRatioR: dRatioR,
				Normal:  nb.Normal,
				Area:    d.Units.ToInternal(units.SurfaceArea, nb.Area),
				DT:      dtInternal,
			})
		}
	})

	if d.Debug && !grid.CheckAccess() {
		panic("hydro: access-bitmap violation, a cell was skipped by the flux pass")
	}
}

// resolveRightState resolves the right-hand primitives, gradients, limiter
// reference quantities and interface-frame velocity for one face (spec
// converting the grid's SI interface velocity into internal units.
func (d *Driver) resolveRightState(grid Grid, h cell.Handle, left *cell.Cell, leftMidpoint r3.Vec, nb Neighbour) boundary.RightState {
	var right boundary.RightState
	if nb.IsBoundary() {
		right = d.oracle.ResolveBoundary(left, leftMidpoint, nb.FaceMidpoint, nb.Normal)
	} else {
		other := grid.Hydro(nb.Other)
		right = boundary.ResolveInterior(other.Prim, other.Grad, other.Cons, r3.Vec{})
	}
	frameSI := grid.InterfaceVelocity(h, nb)
	right.FrameVelocity = frameSI.Scale(d.Units.ToInternal(units.Velocity, 1))
	return right
}

// faceGeometry computes the displacement vectors from each side's cell
// centre to the face midpoint and the corresponding fractional distances
// d/r used by the reconstruction's phi_bar. At a domain
// boundary there is no real right-hand cell centre, so the right side is
// treated as a ghost mirrored across the face at the same distance as the
// left cell, matching the bondi ghost-point convention in the boundary
// oracle.
func faceGeometry(leftMidpoint r3.Vec, nb Neighbour) (dL, dR r3.Vec, dRatioL, dRatioR float64) {
	dL = nb.FaceMidpoint.Sub(leftMidpoint)
	if nb.IsBoundary() {
		dR = dL.Scale(-1)
		return dL, dR, 0.5, 0.5
	}
	rightMidpoint := leftMidpoint.Add(nb.Offset)
	dR = nb.FaceMidpoint.Sub(rightMidpoint)
	r := nb.Offset.Len()
	if r == 0 {
		return dL, dR, 0.5, 0.5
	}
	return dL, dR, dL.Len() / r, dR.Len() / r
}
