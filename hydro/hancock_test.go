package hydro

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/starforge/ionhydro/cell"
)

func TestHancockPredictLeavesUniformStateUnchanged(t *testing.T) {
	d := &Driver{Gamma: 5. / 3.}
	g := newMockGrid(3, false)
	for i := range g.cells {
		g.cells[i].Prim = cell.Primitives{Rho: 1, P: 1}
	}
	d.hancockPredict(g, 0.1)

	for i := range g.cells {
		assert.InDelta(t, 1, g.cells[i].Prim.Rho, 1e-12)
		assert.InDelta(t, 1, g.cells[i].Prim.P, 1e-12)
	}
}

func TestHancockPredictSkipsVacuumCells(t *testing.T) {
	d := &Driver{Gamma: 5. / 3.}
	g := newMockGrid(1, false)
	g.cells[0].Prim = cell.Primitives{Rho: 0, P: 0}
	d.hancockPredict(g, 1.0)
	assert.Equal(t, 0.0, g.cells[0].Prim.Rho)
}

func TestHancockPredictIgnoresDensityGradientAtRest(t *testing.T) {
	d := &Driver{Gamma: 5. / 3.}
	g := newMockGrid(1, false)
	g.cells[0].Prim = cell.Primitives{Rho: 1, P: 1}
	g.cells[0].Grad.Rho.X = 1 // a density gradient with zero velocity does nothing
	d.hancockPredict(g, 1.0)
	assert.InDelta(t, 1, g.cells[0].Prim.Rho, 1e-12)
}
