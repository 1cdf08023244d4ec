package hydro

import "gonum.org/v1/gonum/spatial/r3"

// hancockPredict runs the serial Hancock half-step predictor, time-centring
// each cell's primitives using its already-computed spatial gradients
// before the Riemann flux computation.
func (d *Driver) hancockPredict(grid Grid, dtInternal float64) {
	half := 0.5 * dtInternal
	n := grid.NumCells()
	for i := 0; i < n; i++ {
		h := grid.CellAt(i)
		c := grid.Hydro(h)
		if c.Prim.Rho <= 0 {
			continue
		}

		divV := c.Grad.Divergence()
		rho, v, p := c.Prim.Rho, c.Prim.V, c.Prim.P

		newRho := rho - half*(rho*divV+r3.Dot(v, c.Grad.Rho))

		gradPOverRho := c.Grad.P.Scale(1 / rho)
		dv := v.Scale(divV).Add(gradPOverRho).Sub(c.Accel)
		newV := v.Sub(dv.Scale(half))

		newP := p - half*(d.Gamma*p*divV+r3.Dot(v, c.Grad.P))

		c.Prim.Rho = newRho
		c.Prim.V = newV
		c.Prim.P = newP
	}
}
