package hydro

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/starforge/ionhydro/cell"
	"github.com/starforge/ionhydro/units"
)

// InitialCondition supplies the initial hydrogen number density [m^-3],
// bulk velocity [m/s] and temperature [K] at a point, in SI units, the way
// a caller-provided initial-condition function would.
type InitialCondition func(x r3.Vec) (nH float64, v r3.Vec, T float64)

// Initialise sets every cell's primitive and conserved state from the
// initial condition in SI units, derives the
// internal unit system from the domain's averages, then rescales the
// stored state and the velocity cap into internal units.
func (d *Driver) Initialise(grid Grid, ic InitialCondition) {
	n := grid.NumCells()

	var sumRho, sumP float64
	count := 0

	for i := 0; i < n; i++ {
		h := grid.CellAt(i)
		x := grid.Midpoint(h)
		nH, v, T := ic(x)

		xH := 1.0
		if T >= d.Config.TIonised {
			xH = 0
		}
		ion := cell.Ionisation{XH: xH, Temperature: T, NumberDensity: nH}
		grid.SetIonisation(h, ion)

		rho := nH * protonMass
		p := rho * pressureFactor(ion.Mu()) * T

		if speed := v.Len(); speed > d.Config.VMax && speed > 0 {
			v = v.Scale(d.Config.VMax / speed)
		}

		volume := grid.Volume(h)
		m := rho * volume
		mom := v.Scale(m)

		var E float64
		if d.Isothermal {
			E = 0.5 * r3.Dot(mom, v)
		} else {
			E = volume*p/(d.Gamma-1) + 0.5*r3.Dot(mom, v)
		}

		c := grid.Hydro(h)
		c.Ion = ion
		c.Prim = cell.Primitives{Rho: rho, V: v, P: p}
		c.Cons = cell.Conserved{M: m, P: mom, E: E}

		if rho > 0 {
			sumRho += rho
			sumP += p
			count++
		}
	}

	_, sides, _ := grid.Box()
	L0 := (sides.X + sides.Y + sides.Z) / 3

	rho0, p0 := 1.0, 1.0
	if count > 0 {
		rho0, p0 = sumRho/float64(count), sumP/float64(count)
	}
	if L0 <= 0 {
		L0 = 1.0
	}
	d.Units = units.New(L0, rho0, p0)
	v0 := d.Units.UnitInternal(units.Velocity)
	d.v0Squared = v0 * v0

	rhoFactor := d.Units.ToInternal(units.Density, 1)
	pFactor := d.Units.ToInternal(units.Pressure, 1)
	vFactor := d.Units.ToInternal(units.Velocity, 1)
	mFactor := d.Units.ToInternal(units.Mass, 1)
	momFactor := d.Units.ToInternal(units.Momentum, 1)
	eFactor := d.Units.ToInternal(units.Energy, 1)

	for i := 0; i < n; i++ {
		h := grid.CellAt(i)
		c := grid.Hydro(h)
		c.Prim.Rho *= rhoFactor
		c.Prim.P *= pFactor
		c.Prim.V = c.Prim.V.Scale(vFactor)
		c.Cons.M *= mFactor
		c.Cons.P = c.Cons.P.Scale(momFactor)
		c.Cons.E *= eFactor
	}

	d.vMaxInternal = d.Config.VMax * vFactor
	grid.SetGridVelocity(d.Gamma, d.Units.UnitInternal(units.Velocity))

	d.initialised = true
}
