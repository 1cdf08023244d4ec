package hydro

import (
	"math"

	"github.com/starforge/ionhydro/units"
)

// soundSpeed returns the ideal-gas sound speed sqrt(gamma*p/rho), or the
// isothermal sound speed sqrt(p/rho) when gamma == 1 (p = cs^2*rho for an
// isothermal gas), guarding against a vacuum cell's zero density.
func soundSpeed(rho, p, gamma float64, isothermal bool) float64 {
	if rho <= 0 {
		return 0
	}
	if isothermal {
		return math.Sqrt(p / rho)
	}
	return math.Sqrt(gamma * p / rho)
}

// MaxTimestep computes the CFL-limited stable timestep,
// computed cell-by-cell in internal units from each cell's sound speed and
// speed against the radius of a sphere with the cell's volume, then
// converted back to SI.
func (d *Driver) MaxTimestep(grid Grid) float64 {
	minStabilityTime := math.Inf(1)
	n := grid.NumCells()
	for i := 0; i < n; i++ {
		h := grid.CellAt(i)
		c := grid.Hydro(h)
		if c.IsVacuum() {
			continue
		}
		cs := soundSpeed(c.Prim.Rho, c.Prim.P, d.Gamma, d.Isothermal)
		v := c.Prim.V.Len()
		volumeInternal := d.Units.ToInternal(units.Volume, grid.Volume(h))
		R := math.Cbrt(3 * volumeInternal / (4 * math.Pi))
		denom := cs + v
		if denom <= 0 {
			continue
		}
		if t := R / denom; t < minStabilityTime {
			minStabilityTime = t
		}
	}
	if math.IsInf(minStabilityTime, 1) {
		return 0
	}
	dtInternal := d.Config.CFL * minStabilityTime
	return d.Units.ToSI(units.Time, dtInternal)
}
