package boundary

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/starforge/ionhydro/bondi"
	"github.com/starforge/ionhydro/cell"
)

// RightState is what the oracle hands back to the flux kernel: the
// right-hand primitives and gradients, the reference conserved quantities
// used by the flux limiter, and the interface-frame velocity.
type RightState struct {
	Prim          cell.Primitives
	Grad          cell.Gradients
	Limits        cell.Conserved
	FrameVelocity r3.Vec
}

// Oracle resolves the right-hand state at any face, interior or boundary.
type Oracle struct {
	Table   Table
	Profile bondi.Profile // nil unless the table uses Bondi anywhere
}

// ResolveInterior is the trivial case: an interior neighbour's
// own primitives, gradients and conserved state, and the interface-frame
// velocity the grid supplies.
func ResolveInterior(neighbourPrim cell.Primitives, neighbourGrad cell.Gradients, neighbourCons cell.Conserved, frameVelocity r3.Vec) RightState {
	return RightState{Prim: neighbourPrim, Grad: neighbourGrad, Limits: neighbourCons, FrameVelocity: frameVelocity}
}

// ResolveBoundary applies the per-axis policy for the face the outward
// normal identifies.
func (o Oracle) ResolveBoundary(left *cell.Cell, leftMidpoint, faceMidpoint, normal r3.Vec) RightState {
	axis, side := FaceAxisSide(normal)
	switch policy := o.Table.At(axis, side); policy {
	case Reflective, Inflow:
		// Inflow is treated as a documented synonym of reflective: no distinct
		// right-state construction exists for it.
		return o.reflective(left, axis)
	case Outflow:
		return o.outflow(left, axis, normal)
	case Bondi:
		return o.bondiState(left, leftMidpoint, faceMidpoint)
	default:
		panic(fmt.Errorf("boundary: ResolveBoundary called for a %v face at axis %d, side %v — the grid should have supplied an interior neighbour instead", policy, axis, side))
	}
}

func (o Oracle) reflective(left *cell.Cell, axis int) RightState {
	prim := left.Prim
	prim.V = mirrorComponent(prim.V, axis)

	grad := left.Grad
	grad.Rho = mirrorComponent(grad.Rho, axis)
	grad.P = mirrorComponent(grad.P, axis)
	for j := 0; j < 3; j++ {
		if j == axis {
			continue // the row along the face normal direction is preserved
		}
		grad.SetGradV(j, mirrorComponent(grad.GradV(j), axis))
	}
	return RightState{Prim: prim, Grad: grad, Limits: left.Cons}
}

func (o Oracle) outflow(left *cell.Cell, axis int, normal r3.Vec) RightState {
	prim := left.Prim
	grad := left.Grad
	if r3.Dot(left.Prim.V, normal) < 0 {
		// Flow would enter the domain: mirror the normal velocity
		// component and drop its gradient, same as an inflow-blocking
		// reflective wall for that one component.
		prim.V = mirrorComponent(prim.V, axis)
		grad.SetGradV(axis, r3.Vec{})
	}
	return RightState{Prim: prim, Grad: grad, Limits: left.Cons}
}

func (o Oracle) bondiState(left *cell.Cell, leftMidpoint, faceMidpoint r3.Vec) RightState {
	if o.Profile == nil {
		panic(fmt.Errorf("boundary: bondi policy active but no Profile is set"))
	}
	// Ghost point mirrored across the face, x_R = x_L + 2*(x_face - x_L).
	xR := r3.Add(leftMidpoint, r3.Scale(2, r3.Sub(faceMidpoint, leftMidpoint)))
	rho, v, p, xH := o.Profile.HydrodynamicVariables(xR)
	prim := cell.Primitives{Rho: rho, V: v, P: p}
	_ = xH // RightState carries no x_H; BondiXH returns it separately
	return RightState{Prim: prim, Grad: cell.Gradients{}, Limits: left.Cons}
}

// BondiXH exposes the ionisation fraction a bondi face wants to impose,
// used by callers that also need x_H (the RightState itself only carries
// hydro primitives, matching the flux kernel's inputs).
func (o Oracle) BondiXH(x r3.Vec) float64 {
	if o.Profile == nil {
		return 0
	}
	_, _, _, xH := o.Profile.HydrodynamicVariables(x)
	return xH
}

func mirrorComponent(v r3.Vec, axis int) r3.Vec {
	switch axis {
	case 0:
		v.X = -v.X
	case 1:
		v.Y = -v.Y
	default:
		v.Z = -v.Z
	}
	return v
}
