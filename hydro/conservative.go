package hydro

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/starforge/ionhydro/cell"
	"github.com/starforge/ionhydro/units"
)

// conservativeUpdate folds the accumulated flux delta into each cell's
// conserved state, applies gravity and any externally-deposited source
// terms, clamps to physically valid values, and resets the accumulator for
// the next step.
func (d *Driver) conservativeUpdate(grid Grid, dtInternal float64) {
	n := grid.NumCells()
	for i := 0; i < n; i++ {
		h := grid.CellAt(i)
		c := grid.Hydro(h)

		c.Cons.M -= c.Delta.M
		c.Cons.P = c.Cons.P.Sub(c.Delta.P)
		c.Cons.E -= c.Delta.E

		if cell.SafeHydro && c.Cons.M < 0 {
			c.Cons.M = 0
		}

		c.Cons.P = c.Cons.P.Add(c.Accel.Scale(c.Cons.M * dtInternal))
		c.Cons.E += dtInternal * r3.Dot(c.Cons.P, c.Accel)

		c.Cons.E += dtInternal*c.EnergyRate + c.Energy
		c.EnergyRate = 0
		c.Energy = 0

		if c.Cons.E < 0 {
			c.Cons.E = 0
		}
		if d.Gamma > 1 && c.Cons.E == 0 {
			c.Cons.P = r3.Vec{}
		}

		c.ResetDelta()
	}
}

// primitiveRecovery rebuilds primitives from the updated conserved state,
// holding temperature fixed from the
// ionisation variables under the isothermal EOS and deriving it from
// pressure/density otherwise, then applies the velocity and sound-speed
// caps and writes the ionisation variables back.
func (d *Driver) primitiveRecovery(grid Grid) {
	n := grid.NumCells()
	for i := 0; i < n; i++ {
		h := grid.CellAt(i)
		c := grid.Hydro(h)
		volume := d.Units.ToInternal(units.Volume, grid.Volume(h))
		if volume <= 0 {
			continue
		}

		if c.Cons.M <= 0 {
			c.SetVacuum()
			c.Ion.NumberDensity = 0
			grid.SetIonisation(h, c.Ion)
			continue
		}

		rho := c.Cons.M / volume
		v := c.Cons.P.Scale(1 / c.Cons.M)

		mu := 0.5 * (1 + c.Ion.XH)
		var p, T float64
		if d.Gamma > 1 {
			p = (d.Gamma - 1) * (c.Cons.E - 0.5*r3.Dot(v, c.Cons.P)) / volume
			T = mu * tFacInternal(d.v0Squared) * p / rho
		} else {
			T = c.Ion.Temperature
			p = pressureFactorInternal(mu, d.v0Squared) * rho * T
		}

		if cell.SafeHydro && (rho <= 0 || p <= 0) {
			c.SetVacuum()
			c.Ion.NumberDensity = 0
			grid.SetIonisation(h, c.Ion)
			continue
		}

		if speed := v.Len(); speed > d.vMaxInternal && speed > 0 {
			v = v.Scale(d.vMaxInternal / speed)
		}
		if cs := soundSpeed(rho, p, d.Gamma, d.Isothermal); cs > d.vMaxInternal && cs > 0 {
			ratio := d.vMaxInternal / cs
			p *= ratio * ratio
		}

		c.Prim = cell.Primitives{Rho: rho, V: v, P: p}

		c.Ion.NumberDensity = d.Units.ToSI(units.Density, rho) / protonMass
		if d.Gamma > 1 {
			c.Ion.Temperature = T
		}
		grid.SetIonisation(h, c.Ion)
	}
}
