package hydro

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/starforge/ionhydro/cell"
	"github.com/starforge/ionhydro/internal/partition"
	"github.com/starforge/ionhydro/units"
)

// computeGradients runs the gradient pass: a parallel traversal over
// cells, each writing only its own gradient
// storage, reading neighbours (and the boundary oracle for domain-edge
// faces) but never writing to them. A standard cell-centred Green-Gauss
// average (face value times outward area-weighted normal, summed and
// divided by cell volume) computes the gradient of each of the five
// primitive channels independently.
func (d *Driver) computeGradients(grid Grid, pm *partition.Map) {
	pm.Do(func(i int) {
		h := grid.CellAt(i)
		c := grid.Hydro(h)
		volume := d.Units.ToInternal(units.Volume, grid.Volume(h))
		if volume <= 0 {
			c.Grad = cell.Gradients{}
			return
		}

		var sumRho, sumVx, sumVy, sumVz, sumP r3.Vec
		for _, nb := range grid.Neighbours(h) {
			rightPrim := d.rightPrimitives(grid, h, c, nb)
			areaWeightedNormal := nb.Normal.Scale(d.Units.ToInternal(units.SurfaceArea, nb.Area))

			faceRho := 0.5 * (c.Prim.Rho + rightPrim.Rho)
			faceV := c.Prim.V.Add(rightPrim.V).Scale(0.5)
			faceP := 0.5 * (c.Prim.P + rightPrim.P)

			sumRho = sumRho.Add(areaWeightedNormal.Scale(faceRho))
			sumVx = sumVx.Add(areaWeightedNormal.Scale(faceV.X))
			sumVy = sumVy.Add(areaWeightedNormal.Scale(faceV.Y))
			sumVz = sumVz.Add(areaWeightedNormal.Scale(faceV.Z))
			sumP = sumP.Add(areaWeightedNormal.Scale(faceP))
		}

		inv := 1 / volume
		c.Grad = cell.Gradients{
			Rho: sumRho.Scale(inv),
			Vx:  sumVx.Scale(inv),
			Vy:  sumVy.Scale(inv),
			Vz:  sumVz.Scale(inv),
			P:   sumP.Scale(inv),
		}
	})
}

// rightPrimitives resolves the primitive state on the far side of a face,
// interior or boundary, for use by the gradient pass and the flux pass
// alike.
func (d *Driver) rightPrimitives(grid Grid, h cell.Handle, left *cell.Cell, nb Neighbour) cell.Primitives {
	if nb.IsBoundary() {
		return d.oracle.ResolveBoundary(left, grid.Midpoint(h), nb.FaceMidpoint, nb.Normal).Prim
	}
	return grid.Hydro(nb.Other).Prim
}
