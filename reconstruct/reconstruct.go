package reconstruct

import "gonum.org/v1/gonum/spatial/r3"

// Side reconstructs the primitive state at a face midpoint for one side of
// the face, applying the per-face slope limiter independently to density,
// each velocity component and pressure.
//
// phi/phiN are this side's and the neighbouring side's raw cell-centre
// values for one scalar; phiL/phiR are the fixed left/right cell-centre
// values that bound the limiter window regardless of which side is being
// reconstructed.
func Side(phi, phiN, gradDotD, dRatio, phiL, phiR float64) float64 {
	phiPrime := Extrapolate(phi, gradDotD)
	phiBar := Bar(phi, phiN, dRatio)
	return Limit(phiPrime, phiBar, phiL, phiR)
}

// Primitives holds the five scalar channels the limiter runs over
// independently: density, the three velocity components, and pressure.
type Primitives struct {
	Rho, Vx, Vy, Vz, P float64
}

// Gradients mirrors Primitives' five channels, kept as plain r3.Vec so this
// package stays independent of the cell package.
type Gradients struct {
	Rho, Vx, Vy, Vz, P r3.Vec
}

// ReconstructPrimitives reconstructs all five scalar channels at a face
// midpoint for one side, given that side's own values/gradients, the
// opposite side's raw values (for phi_bar), the displacement to the face
// and the pair of fixed cell-centre bounding values.
func ReconstructPrimitives(own Primitives, ownGrad Gradients, d r3.Vec, neighbour Primitives, dRatio float64, boundsL, boundsR Primitives) Primitives {
	return Primitives{
		Rho: Side(own.Rho, neighbour.Rho, r3.Dot(ownGrad.Rho, d), dRatio, boundsL.Rho, boundsR.Rho),
		Vx:  Side(own.Vx, neighbour.Vx, r3.Dot(ownGrad.Vx, d), dRatio, boundsL.Vx, boundsR.Vx),
		Vy:  Side(own.Vy, neighbour.Vy, r3.Dot(ownGrad.Vy, d), dRatio, boundsL.Vy, boundsR.Vy),
		Vz:  Side(own.Vz, neighbour.Vz, r3.Dot(ownGrad.Vz, d), dRatio, boundsL.Vz, boundsR.Vz),
		P:   Side(own.P, neighbour.P, r3.Dot(ownGrad.P, d), dRatio, boundsL.P, boundsR.P),
	}
}
