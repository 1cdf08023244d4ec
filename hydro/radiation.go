package hydro

import "math"

// epsilon guards the T_old division against a near-vacuum density, matching
// the "rho + epsilon" denominator in the temperature recovery below.
const epsilon = 1e-300

// radiationSourceTerm runs a serial pass that nudges each cell's energy
// toward the temperature its ionisation state
// implies, skipping cells that are shock-heated (already hotter than
// T_shock, or carrying an unapplied external energy deposit) so radiative
// cooling never erases a shock.
func (d *Driver) radiationSourceTerm(grid Grid) {
	if !d.Config.HeatingEnabled && !d.Config.CoolingEnabled {
		return
	}
	uFac := uFacInternal(d.Gamma, d.v0Squared)
	n := grid.NumCells()
	for i := 0; i < n; i++ {
		h := grid.CellAt(i)
		c := grid.Hydro(h)
		xH := c.Ion.XH
		tTarget := d.Config.TIonised*(1-xH) + d.Config.TNeutral*xH

		if d.Isothermal || c.Prim.Rho <= 0 {
			ion := c.Ion
			ion.Temperature = tTarget
			c.Ion = ion
			grid.SetIonisation(h, ion)
			continue
		}

		mu := 0.5 * (1 + xH)
		tOld := mu * tFacInternal(d.v0Squared) * c.Prim.P / (c.Prim.Rho + epsilon)

		if c.Energy > 0 || tOld > d.Config.TShock {
			continue // shock-heated: leave the source term alone
		}

		uFacPrime := 2 * uFac / (1 + xH)
		deltaE := c.Cons.M * uFacPrime * (tTarget - tOld)

		if d.Config.HeatingEnabled && deltaE > 0 {
			c.Delta.E -= deltaE
		} else if d.Config.CoolingEnabled && deltaE < 0 {
			floor := 2 * uFacPrime * (d.Config.TNeutral - d.Config.TIonised) * c.Cons.M
			deltaE = math.Max(deltaE, floor)
			c.Delta.E -= 0.5 * deltaE
		}
	}
}
