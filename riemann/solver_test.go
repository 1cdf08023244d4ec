package riemann

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestNewSolver(t *testing.T) {
	s, err := NewSolver("Exact")
	require.NoError(t, err)
	assert.IsType(t, Exact{}, s)

	s, err = NewSolver("hllc")
	require.NoError(t, err)
	assert.IsType(t, HLLC{}, s)

	s, err = NewSolver("")
	require.NoError(t, err)
	assert.IsType(t, Exact{}, s)

	_, err = NewSolver("magic")
	assert.Error(t, err)
}

func TestEqualStatesGivePurePressureFlux(t *testing.T) {
	for _, s := range []Solver{Exact{}, HLLC{}} {
		f := s.SolveForFlux(1, r3.Vec{}, 1, 1, r3.Vec{}, 1, r3.Vec{X: 1}, r3.Vec{}, 5./3., false)
		assert.InDelta(t, 0, f.Mass, 1e-6)
		assert.InDelta(t, 1.0, f.Momentum.X, 1e-6) // pure pressure flux = p*n
	}
}

func TestSodShockDirection(t *testing.T) {
	// Classic Sod initial condition, mass should flow from high to low
	// pressure (positive x flux at the interface).
	for _, s := range []Solver{Exact{}, HLLC{}} {
		f := s.SolveForFlux(1.0, r3.Vec{}, 1.0, 0.125, r3.Vec{}, 0.1, r3.Vec{X: 1}, r3.Vec{}, 1.4, false)
		assert.Greater(t, f.Mass, 0.0)
	}
}
