package flux

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/starforge/ionhydro/boundary"
	"github.com/starforge/ionhydro/cell"
	"github.com/starforge/ionhydro/riemann"
)

func uniformCell(rho, p float64) *cell.Cell {
	c := &cell.Cell{Prim: cell.Primitives{Rho: rho, P: p}}
	c.Cons = cell.Conserved{M: rho, E: p / (5./3. - 1)}
	return c
}

func TestComputeFaceSymmetricStatesProduceNoMassFlux(t *testing.T) {
	left := uniformCell(1, 1)
	right := boundary.RightState{
		Prim:   cell.Primitives{Rho: 1, P: 1},
		Limits: cell.Conserved{M: 1, E: 1 / (5./3. - 1)},
	}
	k := &Kernel{Solver: riemann.Exact{}, Gamma: 5. / 3.}
	k.ComputeFace(Face{
		Left: left, Right: right,
		Normal: r3.Vec{X: 1}, Area: 1, DT: 0.01,
		DRatioL: 0.5, DRatioR: 0.5,
	})
	assert.InDelta(t, 0, left.Delta.M, 1e-9)
}

func TestComputeFaceHighPressureLeftDrainsMass(t *testing.T) {
	left := uniformCell(1, 1)
	right := boundary.RightState{
		Prim:   cell.Primitives{Rho: 0.125, P: 0.1},
		Limits: cell.Conserved{M: 0.125, E: 0.1 / (1.4 - 1)},
	}
	k := &Kernel{Solver: riemann.HLLC{}, Gamma: 1.4}
	k.ComputeFace(Face{
		Left: left, Right: right,
		Normal: r3.Vec{X: 1}, Area: 1, DT: 0.001,
		DRatioL: 0.5, DRatioR: 0.5,
	})
	// Mass leaves the high-pressure left cell across the face (positive
	// mass flux subtracted from the left cell's ΔC accumulator).
	assert.Greater(t, left.Delta.M, 0.0)
}

func TestFluxLimiterCapsRunawayDonorMass(t *testing.T) {
	left := uniformCell(1000, 1000) // the donor, losing mass across the face
	right := boundary.RightState{
		Prim:   cell.Primitives{Rho: 1e-6, P: 1e-6},
		Limits: cell.Conserved{M: 1e-6, E: 1e-6 / (5./3. - 1)},
	}
	k := &Kernel{Solver: riemann.HLLC{}, Gamma: 5. / 3.}
	k.ComputeFace(Face{
		Left: left, Right: right,
		Normal: r3.Vec{X: 1}, Area: 1, DT: 10,
		DRatioL: 0.5, DRatioR: 0.5,
	})
	// The left cell must not lose more than FluxLimiter times its own mass
	// across a single face in one step.
	assert.LessOrEqual(t, left.Delta.M, FluxLimiter*left.Cons.M+1e-6)
	assert.Equal(t, uint64(1), k.LimitedFaces)
}
