// Package cell defines the per-cell hydrodynamic state the core reads and
// mutates. It owns no grid topology: a Handle is an
// opaque value the Grid collaborator hands back to identify a cell.
package cell

import "gonum.org/v1/gonum/spatial/r3"

// SafeHydro gates the clamp-to-zero recovery policy.
// When true (the default) the conservative update clamps negative mass to
// zero and primitive recovery turns cells with non-positive density or
// pressure into vacuum. When false both clamps are skipped and no panic is
// raised in their place. The flux kernel clamps reconstructed face density
// and pressure to non-negative values whatever this flag says.
var SafeHydro = true

// Handle identifies a cell to the core without the core knowing anything
// about how a collaborator's grid stores cells. It is compared with ==, so
// implementations must back it with a comparable concrete type. A nil
// Handle is reserved to mean "no neighbour here" (a domain-boundary face).
type Handle any

// Primitives is P = (rho, v, p).
type Primitives struct {
	Rho float64
	V   r3.Vec
	P   float64
}

// Gradients is G = (grad rho, grad vx, grad vy, grad vz, grad p), five
// three-vectors, one per scalar component of the primitive state.
type Gradients struct {
	Rho r3.Vec
	Vx  r3.Vec
	Vy  r3.Vec
	Vz  r3.Vec
	P   r3.Vec
}

// GradV returns the gradient row for velocity component i (0=x,1=y,2=z).
func (g Gradients) GradV(i int) r3.Vec {
	switch i {
	case 0:
		return g.Vx
	case 1:
		return g.Vy
	default:
		return g.Vz
	}
}

// SetGradV sets the gradient row for velocity component i.
func (g *Gradients) SetGradV(i int, v r3.Vec) {
	switch i {
	case 0:
		g.Vx = v
	case 1:
		g.Vy = v
	default:
		g.Vz = v
	}
}

// Divergence returns dvx/dx + dvy/dy + dvz/dz.
func (g Gradients) Divergence() float64 {
	return g.Vx.X + g.Vy.Y + g.Vz.Z
}

// Conserved is C = (m, p, E): mass, momentum, total energy.
type Conserved struct {
	M float64
	P r3.Vec
	E float64
}

// Ionisation carries the radiative-transfer state the core reads (x_H) and
// writes back (Temperature, NumberDensity) each step.
type Ionisation struct {
	XH            float64 // hydrogen neutral fraction, in [0, 1]
	Temperature   float64 // K
	NumberDensity float64 // m^-3
}

// Mu is the mean molecular mass fraction, interpolating between fully
// ionised (mu ~= 1/2) and fully neutral (mu ~= 1) hydrogen.
func (ion Ionisation) Mu() float64 { return 0.5 * (1 + ion.XH) }

// Cell is the full per-cell hydrodynamic state owned by the core between
// calls into external collaborators.
type Cell struct {
	Prim  Primitives
	Grad  Gradients
	Cons  Conserved
	Delta Conserved // flux accumulator, dC

	EnergyRate float64 // power [W internal], applied over dt then zeroed
	Energy     float64 // energy [J internal], applied once then zeroed

	Accel r3.Vec // gravitational acceleration, read-only from the core

	Ion Ionisation
}

// IsVacuum reports whether the cell is the degenerate zero-mass state.
func (c *Cell) IsVacuum() bool { return c.Cons.M <= 0 }

// SetVacuum forces the cell into the vacuum state: m=0, p=0, and all
// primitives zeroed.
func (c *Cell) SetVacuum() {
	c.Cons = Conserved{}
	c.Prim = Primitives{}
}

// ResetDelta zeroes the flux accumulator, called once per step after the
// conservative update folds it in.
func (c *Cell) ResetDelta() { c.Delta = Conserved{} }
