// Package reconstruct implements the slope-limited interface reconstruction
// extrapolating a cell-centred primitive and its gradient to
// a face midpoint, then clipping the result into a monotone window bounded
// by the two cell-centre values.
package reconstruct

import "math"

const (
	psi1 = 0.5
	psi2 = 0.25
)

// tiny is the smallest positive normal float64, used to keep the limiter's
// fallback branch finite when phiMax or phiMin is exactly zero.
var tiny = 0x1p-1022

// Extrapolate returns phi' = phi + gradPhi . d, the linear (unlimited)
// extrapolation of a scalar from a cell centre to a face midpoint.
func Extrapolate(phi, gradDotD float64) float64 { return phi + gradDotD }

// Bar returns phi_bar = phi + dRatio*(phiNeighbour - phi), the distance-
// weighted interpolate between this cell and its neighbour used as the
// limiter's target value.
func Bar(phi, phiNeighbour, dRatio float64) float64 {
	return phi + dRatio*(phiNeighbour-phi)
}

// Limit applies the per-face slope limiter: it clips the
// linear extrapolation phiPrime into a bounded window around phiBar, using
// the two cell-centre values phiL, phiR to set the window's extent.
func Limit(phiPrime, phiBar, phiL, phiR float64) float64 {
	if phiL == phiR {
		return phiL
	}
	delta1 := psi1 * math.Abs(phiL-phiR)
	delta2 := psi2 * math.Abs(phiL-phiR)
	phiMin := math.Min(phiL, phiR)
	phiMax := math.Max(phiL, phiR)

	phiPlus := bound(phiMax, delta1, +1)
	phiMinus := bound(phiMin, delta1, -1)

	if phiL < phiR {
		return math.Max(phiMinus, math.Min(phiBar+delta2, phiPrime))
	}
	return math.Min(phiPlus, math.Max(phiBar-delta2, phiPrime))
}

// bound implements the phi+/phi- construction shared by both tails of the
// limiter window: base +/- delta if that stays on the same side of zero as
// base, otherwise a magnitude-preserving fallback that can never cross zero.
func bound(base, delta float64, dir float64) float64 {
	candidate := base + dir*delta
	if sign(candidate) == sign(base) {
		return candidate
	}
	return base * math.Abs(base) / (math.Abs(base) + delta + tiny)
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
