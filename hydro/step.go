package hydro

import "github.com/starforge/ionhydro/units"

// DoStep runs one full hydro step, advancing the grid by
// dtSI seconds. Panics if Initialise has not been called (a construction
// error the caller controls, not a numerical contract violation).
func (d *Driver) DoStep(grid Grid, dtSI float64) {
	if !d.initialised {
		panic("hydro: DoStep called before Initialise")
	}

	dtInternal := d.Units.ToInternal(units.Time, dtSI)

	pm := partitionDegree(grid.NumCells())

	d.computeGradients(grid, pm)
	d.hancockPredict(grid, dtInternal)
	d.fluxPass(grid, pm, dtInternal)
	d.radiationSourceTerm(grid)
	d.conservativeUpdate(grid, dtInternal)

	grid.Evolve(dtSI)

	d.primitiveRecovery(grid)

	grid.SetGridVelocity(d.Gamma, d.Units.UnitInternal(units.Velocity))
}
