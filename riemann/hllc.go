package riemann

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// HLLC is Toro's three-wave approximate Riemann solver: cheaper than Exact
// because it avoids Newton iteration, at the cost of smearing contact
// discontinuities slightly more. Grounded on the same rotate-into-normal-
// coordinates idiom a Roe-type flux function uses, generalised
// from two dimensions to three.
type HLLC struct{}

// hllcState is a side's conserved state expressed in normal/tangential
// components relative to the interface frame.
type hllcState struct {
	rho    float64
	momN   float64 // normal momentum density
	momTan r3.Vec  // tangential momentum density
	E      float64
}

func (s hllcState) u() float64 { return s.momN / s.rho }

// hllcFlux computes the physical flux of a conserved state. Its result is
// itself shaped like hllcState (mass/normal-momentum/tangential-momentum/
// energy flux densities are isomorphic to the conserved quantities they
// advect), so the same type is reused rather than adding a parallel one.
func hllcFlux(s hllcState, p float64) hllcState {
	u := s.u()
	return hllcState{
		rho:    s.momN,
		momN:   s.momN*u + p,
		momTan: r3.Scale(u, s.momTan),
		E:      u * (s.E + p),
	}
}

func (HLLC) SolveForFlux(rhoL float64, vL r3.Vec, pL float64, rhoR float64, vR r3.Vec, pR float64,
	normal, frameVelocity r3.Vec, gamma float64, isothermal bool) Flux {

	relL := r3.Sub(vL, frameVelocity)
	relR := r3.Sub(vR, frameVelocity)
	uL, tanL := decompose(relL, normal)
	uR, tanR := decompose(relR, normal)

	if isothermal {
		return hllcIsothermal(rhoL, uL, tanL, pL, rhoR, uR, tanR, pR, normal, frameVelocity)
	}

	cL := math.Sqrt(gamma * pL / rhoL)
	cR := math.Sqrt(gamma * pR / rhoR)
	left := hllcState{rho: rhoL, momN: rhoL * uL, momTan: r3.Scale(rhoL, tanL), E: pL/(gamma-1) + 0.5*rhoL*(uL*uL+r3.Dot(tanL, tanL))}
	right := hllcState{rho: rhoR, momN: rhoR * uR, momTan: r3.Scale(rhoR, tanR), E: pR/(gamma-1) + 0.5*rhoR*(uR*uR+r3.Dot(tanR, tanR))}

	SL := math.Min(uL-cL, uR-cR)
	SR := math.Max(uL+cL, uR+cR)

	if SL >= 0 {
		return finalizeHLLCFlux(left, pL, normal, frameVelocity)
	}
	if SR <= 0 {
		return finalizeHLLCFlux(right, pR, normal, frameVelocity)
	}

	sStar := (pR - pL + left.momN*(SL-uL) - right.momN*(SR-uR)) / (rhoL*(SL-uL) - rhoR*(SR-uR))

	star := func(side hllcState, p, u, S float64) hllcState {
		D := side.rho * (S - u) / (S - sStar)
		return hllcState{
			rho:    D,
			momN:   D * sStar,
			momTan: r3.Scale(D/side.rho, side.momTan),
			E:      D * (side.E/side.rho + (sStar-u)*(sStar+p/(side.rho*(S-u)))),
		}
	}

	if sStar >= 0 {
		fK := hllcFlux(left, pL)
		uStarState := star(left, pL, uL, SL)
		return hllcAssemble(fK, uStarState, left, SL, normal, frameVelocity)
	}
	fK := hllcFlux(right, pR)
	uStarState := star(right, pR, uR, SR)
	return hllcAssemble(fK, uStarState, right, SR, normal, frameVelocity)
}

// finalizeHLLCFlux converts a bulk side flux (no wave correction needed,
// used when the interface lies outside [SL, SR]) into the caller's Flux
// shape, restoring the physical (lab-frame) velocity for the momentum flux.
func finalizeHLLCFlux(side hllcState, p float64, normal, frameVelocity r3.Vec) Flux {
	f := hllcFlux(side, p)
	vPhys := r3.Add(r3.Add(r3.Scale(side.u(), normal), r3.Scale(1/side.rho, side.momTan)), frameVelocity)
	return Flux{
		Mass:     f.rho,
		Momentum: r3.Add(r3.Scale(f.rho, vPhys), r3.Scale(p, normal)),
		Energy:   f.E,
	}
}

// hllcAssemble forms F* = F_K + S_K*(U*_K - U_K) and converts the result
// into the caller's Flux shape.
func hllcAssemble(fK hllcState, uStar hllcState, uK hllcState, S float64, normal, frameVelocity r3.Vec) Flux {
	mass := fK.rho + S*(uStar.rho-uK.rho)
	momN := fK.momN + S*(uStar.momN-uK.momN)
	momTan := r3.Add(fK.momTan, r3.Scale(S, r3.Sub(uStar.momTan, uK.momTan)))
	energy := fK.E + S*(uStar.E-uK.E)

	// The normal/tangential momentum flux already accounts for the
	// interface-frame advection; add back the frame's contribution to
	// momentum flux via the mass flux (mom_phys_flux = mom_rel_flux +
	// frameVelocity * mass_flux), matching the ALE flux used elsewhere.
	momentum := r3.Add(r3.Add(r3.Scale(momN, normal), momTan), r3.Scale(mass, frameVelocity))
	return Flux{Mass: mass, Momentum: momentum, Energy: energy}
}

func hllcIsothermal(rhoL, uL float64, tanL r3.Vec, pL float64, rhoR, uR float64, tanR r3.Vec, pR float64, normal, frameVelocity r3.Vec) Flux {
	cs := isothermalSoundSpeed(pL, rhoL, pR, rhoR)
	SL := math.Min(uL-cs, uR-cs)
	SR := math.Max(uL+cs, uR+cs)

	sideFlux := func(rho, u float64, tan r3.Vec, p float64) Flux {
		v := r3.Add(r3.Add(r3.Scale(u, normal), tan), frameVelocity)
		return Flux{Mass: rho * u, Momentum: r3.Add(r3.Scale(rho*u, v), r3.Scale(p, normal))}
	}

	if SL >= 0 {
		return sideFlux(rhoL, uL, tanL, pL)
	}
	if SR <= 0 {
		return sideFlux(rhoR, uR, tanR, pR)
	}
	sStar := (pR - pL + rhoL*uL*(SL-uL) - rhoR*uR*(SR-uR)) / (rhoL*(SL-uL) - rhoR*(SR-uR))
	if sStar >= 0 {
		v := r3.Add(r3.Add(r3.Scale(sStar, normal), tanL), frameVelocity)
		return Flux{Mass: rhoL * sStar, Momentum: r3.Scale(rhoL*sStar, v)}
	}
	v := r3.Add(r3.Add(r3.Scale(sStar, normal), tanR), frameVelocity)
	return Flux{Mass: rhoR * sStar, Momentum: r3.Scale(rhoR*sStar, v)}
}
