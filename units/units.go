// Package units implements the internal/SI unit system used by the hydro
// core. Internal units are chosen at initialisation from the
// average box size, density and pressure of a simulation so that the inner
// loop of the step driver only ever sees magnitudes near unity.
package units

import (
	"fmt"
	"math"
)

// Quantity names one of the physical quantities the unit system knows how
// to convert.
type Quantity uint8

const (
	Length Quantity = iota
	SurfaceArea
	Volume
	Mass
	Velocity
	Acceleration
	Density
	Pressure
	Momentum
	Energy
	Time
)

var quantityNames = []string{
	"Length", "SurfaceArea", "Volume", "Mass", "Velocity",
	"Acceleration", "Density", "Pressure", "Momentum", "Energy", "Time",
}

func (q Quantity) String() string {
	if int(q) >= len(quantityNames) {
		return fmt.Sprintf("Quantity(%d)", uint8(q))
	}
	return quantityNames[q]
}

// System holds the eleven reference scales derived from (L0, rho0, p0).
// It is immutable after construction and safe to share by value.
type System struct {
	scale [11]float64 // SI value of one internal unit, indexed by Quantity
}

// New derives a System from the average box side L0 [m], average density
// rho0 [kg/m^3] and average pressure p0 [Pa] of the domain being simulated.
func New(L0, rho0, p0 float64) System {
	if L0 <= 0 || rho0 <= 0 || p0 <= 0 {
		panic(fmt.Errorf("units.New: reference scales must be positive, got L0=%g rho0=%g p0=%g", L0, rho0, p0))
	}
	t0 := L0 * math.Sqrt(rho0/p0)
	v0 := L0 / t0
	m0 := rho0 * L0 * L0 * L0
	E0 := m0 * v0 * v0
	a0 := v0 / t0
	A0 := L0 * L0

	var s System
	s.scale[Length] = L0
	s.scale[SurfaceArea] = A0
	s.scale[Volume] = L0 * L0 * L0
	s.scale[Mass] = m0
	s.scale[Velocity] = v0
	s.scale[Acceleration] = a0
	s.scale[Density] = rho0
	s.scale[Pressure] = p0
	s.scale[Momentum] = m0 * v0
	s.scale[Energy] = E0
	s.scale[Time] = t0
	return s
}

// UnitInternal returns the SI value of one internal unit of Q.
func (s System) UnitInternal(q Quantity) float64 { return s.scale[q] }

// UnitSI returns the internal value of one SI unit of Q.
func (s System) UnitSI(q Quantity) float64 { return 1. / s.scale[q] }

// ToInternal converts a quantity expressed in SI units into internal units.
func (s System) ToInternal(q Quantity, xSI float64) float64 {
	return xSI / s.scale[q]
}

// ToSI converts a quantity expressed in internal units back into SI units.
func (s System) ToSI(q Quantity, xInternal float64) float64 {
	return xInternal * s.scale[q]
}
