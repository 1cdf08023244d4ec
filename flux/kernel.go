// Package flux implements the flux kernel: per-face slope-
// limited reconstruction, a Riemann-solver flux exchange, and the flux
// limiter that keeps a single face from draining more than a bounded
// multiple of a cell's own conserved quantities in one step.
package flux

import (
	"fmt"
	"math"
	"sync/atomic"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/starforge/ionhydro/boundary"
	"github.com/starforge/ionhydro/cell"
	"github.com/starforge/ionhydro/reconstruct"
	"github.com/starforge/ionhydro/riemann"
)

// FluxLimiter is the FLUX_LIMITER constant: no single face may
// drain more than this multiple of a cell's own mass/energy/momentum in one
// step.
const FluxLimiter = 2.0

// Kernel computes the integrated, limited flux across one face and
// accumulates it into the left cell's delta. It holds no per-face state, so
// a single Kernel is shared across the parallel flux pass's goroutines; the
// only field it writes is LimitedFaces, which is updated atomically.
type Kernel struct {
	Solver     riemann.Solver
	Gamma      float64
	Isothermal bool

	// LimitedFaces counts faces where the limiter factor was clamped below
	// 1, exposed so tests can tell "no limiting occurred" apart from
	// "limiting occurred but cancelled out numerically".
	LimitedFaces uint64
}

// Face bundles the geometric and state inputs to one face evaluation.
type Face struct {
	Left  *cell.Cell
	Right boundary.RightState

	// DL, DR are the displacement vectors from the left/right cell centres
	// to the face midpoint; DRatioL, DRatioR are the corresponding
	// fractional distances d/r used by the reconstruction's phi_bar.
	DL, DR         r3.Vec
	DRatioL, DRatioR float64

	Normal r3.Vec
	Area   float64
	DT     float64
}

// ComputeFace runs the full flux-kernel pipeline and adds the
// limited, integrated flux into f.Left.Delta.
func (k *Kernel) ComputeFace(f Face) {
	leftPrim := toReconstructPrimitives(f.Left.Prim)
	rightPrim := toReconstructPrimitives(f.Right.Prim)
	leftGrad := toReconstructGradients(f.Left.Grad)
	rightGrad := toReconstructGradients(f.Right.Grad)

	recL := reconstruct.ReconstructPrimitives(leftPrim, leftGrad, f.DL, rightPrim, f.DRatioL, leftPrim, rightPrim)
	recR := reconstruct.ReconstructPrimitives(rightPrim, rightGrad, f.DR, leftPrim, f.DRatioR, leftPrim, rightPrim)

	rhoL := math.Max(0, recL.Rho)
	pL := math.Max(0, recL.P)
	rhoR := math.Max(0, recR.Rho)
	pR := math.Max(0, recR.P)
	vL := r3.Vec{X: recL.Vx, Y: recL.Vy, Z: recL.Vz}
	vR := r3.Vec{X: recR.Vx, Y: recR.Vy, Z: recR.Vz}

	// Two vacuum states exchange no flux; the solvers divide by density.
	if rhoL == 0 && rhoR == 0 {
		return
	}

	raw := k.Solver.SolveForFlux(rhoL, vL, pL, rhoR, vR, pR, f.Normal, f.Right.FrameVelocity, k.Gamma, k.Isothermal)
	for _, x := range []float64{rhoL, pL, rhoR, pR, vL.X, vL.Y, vL.Z, vR.X, vR.Y, vR.Z, raw.Mass, raw.Momentum.X, raw.Momentum.Y, raw.Momentum.Z, raw.Energy} {
		if math.IsNaN(x) {
			panic(fmt.Errorf("flux: NaN in face states or flux: left=(%v, %v, %v) right=(%v, %v, %v) flux=%+v", rhoL, vL, pL, rhoR, vR, pR, raw))
		}
	}

	scale := f.Area * f.DT
	massFlux := raw.Mass * scale
	momFlux := raw.Momentum.Scale(scale)
	energyFlux := raw.Energy * scale

	factor := k.limiterFactor(f.Left.Cons, f.Left.Prim.Rho, f.Left.Prim.P, f.Right.Limits, f.Right.Prim.Rho, f.Right.Prim.P, massFlux, momFlux, energyFlux)
	if factor < 1 {
		atomic.AddUint64(&k.LimitedFaces, 1)
	}

	f.Left.Delta.M += factor * massFlux
	f.Left.Delta.P = f.Left.Delta.P.Add(momFlux.Scale(factor))
	if !k.Isothermal {
		f.Left.Delta.E += factor * energyFlux
	}
}

// limiterFactor computes the scalar f in [0, 1]: mass
// and (if not isothermal) energy are each bounded against FluxLimiter times
// the donating side's own conserved quantity, and momentum is bounded only
// on sides whose kinetic energy dominates thermal pressure.
func (k *Kernel) limiterFactor(left cell.Conserved, leftRho, leftP float64, right cell.Conserved, rightRho, rightP float64, massFlux float64, momFlux r3.Vec, energyFlux float64) float64 {
	f := 1.0

	mLLimit := FluxLimiter * left.M
	mRLimit := FluxLimiter * right.M
	if massFlux > mLLimit && massFlux > 0 {
		f = math.Min(f, mLLimit/massFlux)
	}
	if -massFlux > mRLimit && massFlux < 0 {
		f = math.Min(f, mRLimit/-massFlux)
	}

	if !k.Isothermal {
		eLLimit := FluxLimiter * left.E
		eRLimit := FluxLimiter * right.E
		if energyFlux > eLLimit && energyFlux > 0 {
			f = math.Min(f, eLLimit/energyFlux)
		}
		if -energyFlux > eRLimit && energyFlux < 0 {
			f = math.Min(f, eRLimit/-energyFlux)
		}
	}

	momFluxSq := r3.Dot(momFlux, momFlux)
	if momFluxSq > 0 {
		if kineticIsLarge(left, leftRho, leftP, k.Gamma) {
			pLLimit := FluxLimiter * left.P.Len()
			if momFluxSq > pLLimit*pLLimit {
				f = math.Min(f, math.Sqrt(pLLimit*pLLimit/momFluxSq))
			}
		}
		if kineticIsLarge(right, rightRho, rightP, k.Gamma) {
			pRLimit := FluxLimiter * right.P.Len()
			if momFluxSq > pRLimit*pRLimit {
				f = math.Min(f, math.Sqrt(pRLimit*pRLimit/momFluxSq))
			}
		}
	}

	if f < 0 || f > 1 {
		panic(fmt.Errorf("flux: limiter factor %v outside [0, 1] (mass flux %v, energy flux %v, left %+v, right %+v)", f, massFlux, energyFlux, left, right))
	}
	return f
}

// kineticIsLarge implements the `|p|^2 * rho > gamma * m^2 * P` indicator,
// guarding against a vacuum cell's zero mass.
func kineticIsLarge(c cell.Conserved, rho, pressure, gamma float64) bool {
	if c.M <= 0 {
		return false
	}
	return r3.Dot(c.P, c.P)*rho > gamma*c.M*c.M*pressure
}

func toReconstructPrimitives(p cell.Primitives) reconstruct.Primitives {
	return reconstruct.Primitives{Rho: p.Rho, Vx: p.V.X, Vy: p.V.Y, Vz: p.V.Z, P: p.P}
}

func toReconstructGradients(g cell.Gradients) reconstruct.Gradients {
	return reconstruct.Gradients{Rho: g.Rho, Vx: g.Vx, Vy: g.Vy, Vz: g.Vz, P: g.P}
}
