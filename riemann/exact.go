package riemann

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Exact is the iterative exact Riemann solver for the Euler equations
// (Toro's two-shock/two-rarefaction pressure iteration), the default
// solver named by configuration.
type Exact struct {
	// MaxIter and Tol bound the Newton iteration for the star-region
	// pressure. Zero values fall back to sensible defaults.
	MaxIter int
	Tol     float64
}

func (e Exact) maxIter() int {
	if e.MaxIter > 0 {
		return e.MaxIter
	}
	return 50
}

func (e Exact) tol() float64 {
	if e.Tol > 0 {
		return e.Tol
	}
	return 1e-8
}

// SolveForFlux implements Solver for the ideal-gas exact solver. It solves
// the 1-D Riemann problem along the face normal in the frame co-moving
// with the interface, then reassembles a physical flux the way a moving-
// mesh finite-volume scheme does: the sampled state's velocity relative to
// the frame is the advection speed, while the momentum and energy fluxes
// use the full physical (lab-frame) velocity.
func (e Exact) SolveForFlux(rhoL float64, vL r3.Vec, pL float64, rhoR float64, vR r3.Vec, pR float64,
	normal, frameVelocity r3.Vec, gamma float64, isothermal bool) Flux {

	relL := r3.Sub(vL, frameVelocity)
	relR := r3.Sub(vR, frameVelocity)
	uL, tanL := decompose(relL, normal)
	uR, tanR := decompose(relR, normal)

	if isothermal {
		return e.isothermalFlux(rhoL, uL, tanL, pL, rhoR, uR, tanR, pR, normal, frameVelocity)
	}

	cL := math.Sqrt(gamma * pL / rhoL)
	cR := math.Sqrt(gamma * pR / rhoR)

	pStar := e.starPressure(rhoL, uL, pL, cL, rhoR, uR, pR, cR, gamma)
	uStar := 0.5*(uL+uR) + 0.5*(fK(pStar, rhoR, pR, cR, gamma)-fK(pStar, rhoL, pL, cL, gamma))

	rhoStar, uRel, tanRel, pSample := sampleIdealGas(pStar, uStar, rhoL, uL, pL, cL, tanL, rhoR, uR, pR, cR, tanR, gamma)

	vRel := r3.Add(r3.Scale(uRel, normal), tanRel)
	vPhys := r3.Add(vRel, frameVelocity)

	E := pSample/(gamma-1) + 0.5*rhoStar*r3.Dot(vPhys, vPhys)

	return Flux{
		Mass:     rhoStar * uRel,
		Momentum: r3.Add(r3.Scale(rhoStar*uRel, vPhys), r3.Scale(pSample, normal)),
		Energy:   uRel * (E + pSample),
	}
}

// starPressure runs Newton iteration on the pressure function to find the
// star-region pressure, starting from the linearised (primitive-variable)
// guess clamped from below to the tolerance, so the guess is always positive.
func (e Exact) starPressure(rhoL, uL, pL, cL, rhoR, uR, pR, cR, gamma float64) float64 {
	gm1 := gamma - 1
	pPV := 0.5*(pL+pR) - 0.125*(uR-uL)*(rhoL+rhoR)*(cL+cR)
	p := math.Max(e.tol(), pPV)
	// two-rarefaction guess if the linearised guess is non-physical
	if p <= 0 {
		p = math.Pow((cL+cR-0.5*gm1*(uR-uL))/(cL/math.Pow(pL, gm1/(2*gamma))+cR/math.Pow(pR, gm1/(2*gamma))), 2*gamma/gm1)
	}
	for i := 0; i < e.maxIter(); i++ {
		fL, dfL := fKAndDeriv(p, rhoL, pL, cL, gamma)
		fR, dfR := fKAndDeriv(p, rhoR, pR, cR, gamma)
		f := fL + fR + (uR - uL)
		df := dfL + dfR
		if df == 0 {
			break
		}
		pNew := p - f/df
		if pNew < e.tol() {
			pNew = e.tol()
		}
		if math.Abs(pNew-p) < e.tol()*0.5*(pNew+p) {
			p = pNew
			break
		}
		p = pNew
	}
	return p
}

func fK(p, rhoK, pK, cK, gamma float64) float64 {
	f, _ := fKAndDeriv(p, rhoK, pK, cK, gamma)
	return f
}

// fKAndDeriv evaluates the pressure function for one side and its
// derivative, switching between the shock and rarefaction branches at
// p == pK, per Toro eq. 4.6/4.7.
func fKAndDeriv(p, rhoK, pK, cK, gamma float64) (f, df float64) {
	gm1 := gamma - 1
	gp1 := gamma + 1
	if p > pK {
		aK := 2 / (gp1 * rhoK)
		bK := gm1 / gp1 * pK
		f = (p - pK) * math.Sqrt(aK/(p+bK))
		df = math.Sqrt(aK/(p+bK)) * (1 - 0.5*(p-pK)/(p+bK))
	} else {
		f = 2 * cK / gm1 * (math.Pow(p/pK, gm1/(2*gamma)) - 1)
		df = 1 / (rhoK * cK) * math.Pow(p/pK, -(gamma+1)/(2*gamma))
	}
	return
}

// sampleIdealGas samples the solution at the interface (x/t = 0) once the
// star pressure/velocity are known, returning the density, the normal
// relative velocity, the carried tangential velocity, and the pressure.
func sampleIdealGas(pStar, uStar, rhoL, uL, pL, cL float64, tanL r3.Vec,
	rhoR, uR, pR, cR float64, tanR r3.Vec, gamma float64) (rho, u float64, tan r3.Vec, p float64) {

	gm1 := gamma - 1
	gp1 := gamma + 1
	if uStar >= 0 {
		tan = tanL
		if pStar > pL {
			// left shock
			ratio := pStar / pL
			rho = rhoL * (ratio + gm1/gp1) / (gm1/gp1*ratio + 1)
		} else {
			// left rarefaction
			rho = rhoL * math.Pow(pStar/pL, 1/gamma)
			cStarL := cL * math.Pow(pStar/pL, gm1/(2*gamma))
			if uStar-cStarL >= 0 && uL-cL < 0 {
				// sample inside the fan
				c := (2 / gp1) * (cL + gm1/2*uL)
				u = c
				rho = rhoL * math.Pow(c/cL, 2/gm1)
				p = pL * math.Pow(c/cL, 2*gamma/gm1)
				return
			}
		}
		u = uStar
		p = pStar
		return
	}
	tan = tanR
	if pStar > pR {
		// right shock
		ratio := pStar / pR
		rho = rhoR * (ratio + gm1/gp1) / (gm1/gp1*ratio + 1)
	} else {
		// right rarefaction
		rho = rhoR * math.Pow(pStar/pR, 1/gamma)
		cStarR := cR * math.Pow(pStar/pR, gm1/(2*gamma))
		if uStar+cStarR <= 0 && uR+cR > 0 {
			c := (2 / gp1) * (cR - gm1/2*uR)
			u = -c
			rho = rhoR * math.Pow(c/cR, 2/gm1)
			p = pR * math.Pow(c/cR, 2*gamma/gm1)
			return
		}
	}
	u = uStar
	p = pStar
	return
}

// isothermalFlux solves the isothermal Riemann problem (gamma == 1, a
// constant sound speed derived from the two states' own p/rho) using the
// same shock/rarefaction structure as the ideal-gas solver but with the
// simpler isothermal wave relations.
func (e Exact) isothermalFlux(rhoL, uL float64, tanL r3.Vec, pL float64, rhoR, uR float64, tanR r3.Vec, pR float64,
	normal, frameVelocity r3.Vec) Flux {
	// A single-sound-speed isothermal solver: the pressure function for
	// side K is f_K(rho) = cs*log(rho/rhoK) for a rarefaction and
	// cs*(rho-rhoK)/sqrt(rho*rhoK) for a shock; iterate on density rather
	// than pressure since p = cs^2 * rho for an isothermal gas.
	csIso := isothermalSoundSpeed(pL, rhoL, pR, rhoR)
	rhoStar := e.starDensityIsothermal(rhoL, uL, rhoR, uR, csIso)
	uStar := 0.5*(uL+uR) + 0.5*(fIso(rhoStar, rhoR, csIso)-fIso(rhoStar, rhoL, csIso))

	var tan r3.Vec
	if uStar >= 0 {
		tan = tanL
	} else {
		tan = tanR
	}
	vRel := r3.Add(r3.Scale(uStar, normal), tan)
	vPhys := r3.Add(vRel, frameVelocity)
	pStar := csIso * csIso * rhoStar

	return Flux{
		Mass:     rhoStar * uStar,
		Momentum: r3.Add(r3.Scale(rhoStar*uStar, vPhys), r3.Scale(pStar, normal)),
	}
}

// isothermalSoundSpeed combines the two sides' own p/rho into a single
// representative sound speed via a density-weighted (Roe-style) average of
// sqrt(pL/rhoL) and sqrt(pR/rhoR), the local isothermal sound speed each
// side's temperature implies.
func isothermalSoundSpeed(pL, rhoL, pR, rhoR float64) float64 {
	if rhoL <= 0 && rhoR <= 0 {
		return 1
	}
	csL, csR := 0.0, 0.0
	if rhoL > 0 {
		csL = math.Sqrt(pL / rhoL)
	}
	if rhoR > 0 {
		csR = math.Sqrt(pR / rhoR)
	}
	sqrtL, sqrtR := math.Sqrt(math.Max(rhoL, 0)), math.Sqrt(math.Max(rhoR, 0))
	if sqrtL+sqrtR == 0 {
		return 1
	}
	return (sqrtL*csL + sqrtR*csR) / (sqrtL + sqrtR)
}

func fIso(rho, rhoK, cs float64) float64 {
	if rho > rhoK {
		return cs * (rho - rhoK) / math.Sqrt(rho*rhoK)
	}
	return cs * math.Log(rho/rhoK)
}

func (e Exact) starDensityIsothermal(rhoL, uL, rhoR, uR, cs float64) float64 {
	rho := 0.5 * (rhoL + rhoR)
	for i := 0; i < e.maxIter(); i++ {
		f := fIso(rho, rhoL, cs) + fIso(rho, rhoR, cs) + (uR - uL)
		h := math.Max(1e-9, rho*1e-6)
		df := (fIso(rho+h, rhoL, cs) + fIso(rho+h, rhoR, cs) - fIso(rho-h, rhoL, cs) - fIso(rho-h, rhoR, cs)) / (2 * h)
		if df == 0 {
			break
		}
		next := rho - f/df
		if next <= 0 {
			next = rho * 0.5
		}
		if math.Abs(next-rho) < e.tol() {
			rho = next
			break
		}
		rho = next
	}
	return rho
}
