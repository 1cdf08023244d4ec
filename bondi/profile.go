// Package bondi implements the BondiProfile collaborator contract (spec
// an analytic spherical accretion solution consulted at "bondi"
// boundary faces.
package bondi

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Profile is the collaborator interface the boundary oracle consumes.
type Profile interface {
	// HydrodynamicVariables returns (rho, v, p, x_H) at position x.
	HydrodynamicVariables(x r3.Vec) (rho float64, v r3.Vec, p float64, xH float64)
}

// Analytic is a steady, spherically symmetric Bondi accretion profile
// centred on Centre, parameterised by the sonic radius Rs, the density at
// the sonic point, and the mass accretion rate MDot used to
// recover velocity via continuity (rho * v * 4*pi*r^2 = MDot). Far outside
// Rs the flow relaxes to the ambient state (RhoInf, PInf).
type Analytic struct {
	Centre      r3.Vec
	Rs          float64 // sonic radius
	RhoInf      float64
	PInf        float64
	RhoSonic    float64
	MDot        float64 // mass accretion rate, kg/s equivalent in whatever unit system x is expressed
	XH          float64 // ionisation fraction assumed uniform across the profile
	MinRadius   float64 // clamp radius to avoid the r->0 singularity
}

// HydrodynamicVariables evaluates the profile at x.
func (a Analytic) HydrodynamicVariables(x r3.Vec) (rho float64, v r3.Vec, p float64, xH float64) {
	d := r3.Sub(x, a.Centre)
	r := r3.Norm(d)
	if r < a.MinRadius {
		r = a.MinRadius
	}
	if r >= a.Rs {
		// Ambient medium: at rest, uniform density and pressure.
		return a.RhoInf, r3.Vec{}, a.PInf, a.XH
	}
	// Inside the sonic radius, density rises as r^-3/2 (free-fall scaling)
	// and velocity is fixed by mass continuity through a sphere of radius r.
	rho = a.RhoSonic * math.Pow(a.Rs/r, 1.5)
	speed := a.MDot / (4 * math.Pi * r * r * rho)
	if r > 0 {
		v = r3.Scale(-speed/r, d) // inward radial infall
	}
	// Isentropic pressure scaling consistent with the density profile,
	// anchored to the ambient state (RhoInf, PInf).
	p = a.PInf * math.Pow(rho/a.RhoInf, 5./3.)
	xH = a.XH
	return
}
