// Package riemann provides the RiemannSolver collaborator contract (spec
// two concrete implementations the flux kernel can dispatch to by
// name: an exact iterative solver and a cheaper HLLC approximation.
package riemann

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// Flux is the raw (unintegrated) face flux a Solver returns: mass, momentum
// and energy flux densities in the interface frame. Energy is left zero
// under the isothermal EOS (gamma == 1).
type Flux struct {
	Mass     float64
	Momentum r3.Vec
	Energy   float64
}

// Solver is the RiemannSolver collaborator contract.
type Solver interface {
	// SolveForFlux computes the face flux between a left and right
	// primitive state, given the outward face normal and the frame
	// (mesh) velocity of the interface, under an ideal gas EOS with the
	// given adiabatic index. When isothermal is true the caller only
	// uses Flux.Mass and Flux.Momentum.
	SolveForFlux(rhoL float64, vL r3.Vec, pL float64, rhoR float64, vR r3.Vec, pR float64,
		normal, frameVelocity r3.Vec, gamma float64, isothermal bool) Flux
}

// NewSolver constructs a Solver by configuration name, matching the
// teacher's NewFluxType keyword-lookup-or-panic convention except that
// construction-time lookups here return an error instead of panicking,
// since an unknown solver name is a configuration error, not a
// programmer error.
func NewSolver(name string) (Solver, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "exact":
		return Exact{}, nil
	case "hllc":
		return HLLC{}, nil
	default:
		return nil, fmt.Errorf("riemann: unknown solver name %q", name)
	}
}

// decompose splits a relative velocity into its normal component (signed,
// along normal) and its tangential remainder.
func decompose(v, normal r3.Vec) (normalComp float64, tangential r3.Vec) {
	normalComp = r3.Dot(v, normal)
	tangential = r3.Sub(v, r3.Scale(normalComp, normal))
	return
}
