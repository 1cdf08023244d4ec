// Package config loads and validates the enumerated configuration options
// of a hydro run: a plain struct with yaml tags, a Parse that unmarshals
// into it, and a Print that renders a human-readable table.
package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/starforge/ionhydro/bondi"
	"github.com/starforge/ionhydro/boundary"
	"github.com/starforge/ionhydro/riemann"
)

// BoundarySpec names the six boundary policies by configuration keyword:
// "periodic", "reflective", "inflow", "outflow", "bondi".
type BoundarySpec struct {
	XLow  string `yaml:"x_low"`
	XHigh string `yaml:"x_high"`
	YLow  string `yaml:"y_low"`
	YHigh string `yaml:"y_high"`
	ZLow  string `yaml:"z_low"`
	ZHigh string `yaml:"z_high"`
}

// BondiSpec configures the analytic Bondi accretion profile consumed by any
// face whose policy is "bondi".
type BondiSpec struct {
	Centre    [3]float64 `yaml:"centre"`
	Rs        float64    `yaml:"sonic_radius"`
	RhoInf    float64    `yaml:"rho_inf"`
	PInf      float64    `yaml:"p_inf"`
	RhoSonic  float64    `yaml:"rho_sonic"`
	MDot      float64    `yaml:"mdot"`
	XH        float64    `yaml:"x_h"`
	MinRadius float64    `yaml:"min_radius"`
}

// Configuration is the enumerated set of configuration options from spec
// all optional with sensible defaults.
type Configuration struct {
	Gamma float64 `yaml:"gamma"`
	CFL   float64 `yaml:"cfl"`

	Solver string `yaml:"solver"`

	HeatingEnabled bool `yaml:"do_heating"`
	CoolingEnabled bool `yaml:"do_cooling"`

	TNeutral float64 `yaml:"t_neutral"`
	TIonised float64 `yaml:"t_ionised"`
	TShock   float64 `yaml:"t_shock"`

	VMax float64 `yaml:"v_max"`

	Boundary BoundarySpec `yaml:"boundary"`
	Bondi    *BondiSpec   `yaml:"bondi"`
}

// Default returns the configuration in effect when every option is
// left unset.
func Default() Configuration {
	return Configuration{
		Gamma:          5. / 3.,
		CFL:            0.2,
		Solver:         "Exact",
		HeatingEnabled: true,
		CoolingEnabled: false,
		TNeutral:       100,
		TIonised:       1e4,
		TShock:         3e4,
		VMax:           1e99,
		Boundary: BoundarySpec{
			XLow: "reflective", XHigh: "reflective",
			YLow: "reflective", YHigh: "reflective",
			ZLow: "reflective", ZHigh: "reflective",
		},
	}
}

// Parse unmarshals YAML on top of Default(), so an input file only needs to
// specify the options it wants to override.
func Parse(data []byte) (Configuration, error) {
	c := Default()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Configuration{}, fmt.Errorf("config: parse: %w", err)
	}
	return c, nil
}

// Print renders the configuration as a table, matching
// InputParameters.Print's fmt.Printf style.
func (c Configuration) Print() {
	fmt.Printf("%8.5f\t\t= Gamma\n", c.Gamma)
	fmt.Printf("%8.5f\t\t= CFL\n", c.CFL)
	fmt.Printf("[%s]\t\t\t= Riemann solver\n", c.Solver)
	fmt.Printf("%v\t\t\t= Heating enabled\n", c.HeatingEnabled)
	fmt.Printf("%v\t\t\t= Cooling enabled\n", c.CoolingEnabled)
	fmt.Printf("%8.2f K\t\t= T_neutral\n", c.TNeutral)
	fmt.Printf("%8.2f K\t\t= T_ionised\n", c.TIonised)
	fmt.Printf("%8.2f K\t\t= T_shock\n", c.TShock)
	fmt.Printf("%8.3e\t\t= v_max\n", c.VMax)
	fmt.Printf("boundary.x = [%s, %s]\n", c.Boundary.XLow, c.Boundary.XHigh)
	fmt.Printf("boundary.y = [%s, %s]\n", c.Boundary.YLow, c.Boundary.YHigh)
	fmt.Printf("boundary.z = [%s, %s]\n", c.Boundary.ZLow, c.Boundary.ZHigh)
	if c.Bondi != nil {
		fmt.Printf("bondi.sonic_radius = %8.5e\n", c.Bondi.Rs)
	}
}

// BoundaryTable builds the six-face policy lookup table, resolving each
// configured keyword through boundary.NewPolicy (unknown boundary
// keyword is a configuration error, fatal at construction).
func (c Configuration) BoundaryTable() (boundary.Table, error) {
	var table boundary.Table
	specs := []struct {
		axis  int
		side  boundary.Side
		label string
	}{
		{0, boundary.Low, c.Boundary.XLow}, {0, boundary.High, c.Boundary.XHigh},
		{1, boundary.Low, c.Boundary.YLow}, {1, boundary.High, c.Boundary.YHigh},
		{2, boundary.Low, c.Boundary.ZLow}, {2, boundary.High, c.Boundary.ZHigh},
	}
	for _, s := range specs {
		p, err := boundary.NewPolicy(s.label)
		if err != nil {
			return boundary.Table{}, fmt.Errorf("config: boundary axis %d side %v: %w", s.axis, s.side, err)
		}
		table.Set(s.axis, s.side, p)
	}
	return table, nil
}

// BondiProfile builds the analytic Bondi profile if the configuration names
// one, or returns nil, nil when no profile is configured.
func (c Configuration) BondiProfile() (bondi.Profile, error) {
	if c.Bondi == nil {
		return nil, nil
	}
	b := c.Bondi
	if b.Rs <= 0 || b.RhoInf <= 0 {
		return nil, fmt.Errorf("config: bondi profile requires positive sonic_radius and rho_inf")
	}
	return &bondi.Analytic{
		Centre:    r3.Vec{X: b.Centre[0], Y: b.Centre[1], Z: b.Centre[2]},
		Rs:        b.Rs,
		RhoInf:    b.RhoInf,
		PInf:      b.PInf,
		RhoSonic:  b.RhoSonic,
		MDot:      b.MDot,
		XH:        b.XH,
		MinRadius: b.MinRadius,
	}, nil
}

// NewSolver constructs the configured RiemannSolver by name (unknown
// solver name is a configuration error, fatal at construction).
func (c Configuration) NewSolver() (riemann.Solver, error) {
	return riemann.NewSolver(c.Solver)
}

// Validate runs the construction-time checks: periodicity
// symmetry against the grid's own periodicity, and bondi-requires-profile.
func (c Configuration) Validate(gridPeriodic [3]bool) error {
	table, err := c.BoundaryTable()
	if err != nil {
		return err
	}
	profile, err := c.BondiProfile()
	if err != nil {
		return err
	}
	return table.Validate(gridPeriodic, profile != nil)
}
