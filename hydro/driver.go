package hydro

import (
	"fmt"

	"github.com/starforge/ionhydro/boundary"
	"github.com/starforge/ionhydro/config"
	"github.com/starforge/ionhydro/flux"
	"github.com/starforge/ionhydro/internal/partition"
	"github.com/starforge/ionhydro/riemann"
	"github.com/starforge/ionhydro/units"
)

// Driver orchestrates one hydro step, holding the configuration and
// collaborators shared read-only across a step: the Riemann solver, the
// boundary oracle, and the internal unit system derived once at
// initialisation.
type Driver struct {
	Config config.Configuration
	Units  units.System

	Gamma      float64
	Isothermal bool

	oracle boundary.Oracle
	kernel flux.Kernel

	vMaxInternal float64

	// v0Squared is p0/rho0 for the driver's unit system, the factor that
	// rescales the SI thermal constants (k_B/m_H and friends) so they can be
	// applied directly to internal-unit rho, p and m.
	v0Squared float64

	initialised bool

	// Debug enables the per-cell access bitmap the flux pass checks after
	// its parallel traversal: every cell must have been accessed at least
	// once, or the pass panics. Neighbour reads count as accesses, so a cell
	// visited more than once is not detected. Off by default.
	Debug bool
}

// NewDriver constructs a Driver, running the construction-time checks:
// unknown solver name, asymmetric periodicity, and bondi-requires-profile
// are all configuration errors returned here rather than discovered
// mid-run.
func NewDriver(cfg config.Configuration, gridPeriodic [3]bool) (*Driver, error) {
	solver, err := cfg.NewSolver()
	if err != nil {
		return nil, fmt.Errorf("hydro: %w", err)
	}
	table, err := cfg.BoundaryTable()
	if err != nil {
		return nil, fmt.Errorf("hydro: %w", err)
	}
	profile, err := cfg.BondiProfile()
	if err != nil {
		return nil, fmt.Errorf("hydro: %w", err)
	}
	if err := table.Validate(gridPeriodic, profile != nil); err != nil {
		return nil, fmt.Errorf("hydro: %w", err)
	}

	isothermal := cfg.Gamma == 1
	d := &Driver{
		Config:     cfg,
		Gamma:      cfg.Gamma,
		Isothermal: isothermal,
		oracle:     boundary.Oracle{Table: table, Profile: profile},
	}
	d.kernel = flux.Kernel{Solver: solver, Gamma: cfg.Gamma, Isothermal: isothermal}
	return d, nil
}

func (d *Driver) solver() riemann.Solver { return d.kernel.Solver }

// LimitedFaces reports how many faces the flux limiter clamped below 1
// across the driver's lifetime, exposed for the flux-antisymmetry property
// test.
func (d *Driver) LimitedFaces() uint64 { return d.kernel.LimitedFaces }

// partitionDegree picks the same runtime.NumCPU()-derived degree for both
// parallel traversals of a step, matching Euler.SetParallelDegree.
func partitionDegree(numCells int) *partition.Map { return partition.Default(numCells) }
