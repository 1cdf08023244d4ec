/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"math"
	"os"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/starforge/ionhydro/config"
	"github.com/starforge/ionhydro/grid"
	"github.com/starforge/ionhydro/hydro"
)

// RunCmd runs a preset scenario to completion, printing the density
// extrema every ten steps the way TwoDCmd's driver prints solver progress.
var RunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a hydro scenario on a uniform grid",
	Long: `Builds a structured grid and a hydro driver from the configuration,
seeds it with one of a handful of preset initial conditions, and steps it
forward by the CFL-limited timestep until the requested number of steps or
final time is reached.`,
	Run: func(cmd *cobra.Command, args []string) {
		scenario, _ := cmd.Flags().GetString("scenario")
		cells, _ := cmd.Flags().GetInt("cells")
		box, _ := cmd.Flags().GetFloat64("box")
		steps, _ := cmd.Flags().GetInt("steps")
		finalTime, _ := cmd.Flags().GetFloat64("final-time")
		doProfile, _ := cmd.Flags().GetBool("profile")
		debug, _ := cmd.Flags().GetBool("debug")

		if doProfile {
			defer profile.Start(profile.CPUProfile).Stop()
		}

		cfg := loadConfiguration()
		cfg.Print()

		runScenario(scenario, cfg, cells, box, steps, finalTime, debug)
	},
}

func init() {
	RootCmd.AddCommand(RunCmd)
	RunCmd.Flags().StringP("scenario", "s", "sod", "preset initial condition: uniform, sod, vacuum")
	RunCmd.Flags().IntP("cells", "n", 100, "number of cells along the line")
	RunCmd.Flags().Float64P("box", "b", 1.0, "domain size in metres")
	RunCmd.Flags().IntP("steps", "t", 100, "maximum number of steps to run")
	RunCmd.Flags().Float64P("final-time", "f", 0, "stop once this much simulated time (s) has elapsed, 0 = disabled")
	RunCmd.Flags().Bool("profile", false, "enable CPU profiling for the run")
	RunCmd.Flags().Bool("debug", false, "enable the per-cell access-bitmap check after every flux pass")
}

// loadConfiguration parses the layered config viper discovered (if any) as
// an ionhydro Configuration, falling back to config.Default().
func loadConfiguration() config.Configuration {
	if path := viper.ConfigFileUsed(); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Println("ionhydro: reading config:", err)
			os.Exit(1)
		}
		cfg, err := config.Parse(data)
		if err != nil {
			fmt.Println("ionhydro:", err)
			os.Exit(1)
		}
		return cfg
	}
	return config.Default()
}

const protonMass = 1.67262192369e-27 // kg
const boltzmannK = 1.380649e-23      // J/K

// temperatureFor picks T so an ideal gas with mu=1 at density rho reaches
// pressure p: p = (rho/protonMass)*boltzmannK*T.
func temperatureFor(rho, p float64) float64 {
	return p * protonMass / (rho * boltzmannK)
}

// initialCondition returns the preset InitialCondition and required grid
// periodicity for a named scenario.
func initialCondition(name string, box float64) (hydro.InitialCondition, [3]bool) {
	const rho0 = 1.0
	nH0 := rho0 / protonMass
	t0 := temperatureFor(rho0, 1.0)

	switch name {
	case "uniform":
		return func(x r3.Vec) (float64, r3.Vec, float64) {
			return nH0, r3.Vec{}, t0
		}, [3]bool{false, false, false}
	case "vacuum":
		return func(x r3.Vec) (float64, r3.Vec, float64) {
			if x.X > box*0.45 && x.X < box*0.55 {
				return nH0, r3.Vec{}, t0
			}
			return 0, r3.Vec{}, t0
		}, [3]bool{false, false, false}
	case "sod":
		fallthrough
	default:
		rhoRight, pRight := 0.125, 0.1
		nHRight := rhoRight / protonMass
		tRight := temperatureFor(rhoRight, pRight)
		return func(x r3.Vec) (float64, r3.Vec, float64) {
			if x.X < box*0.5 {
				return nH0, r3.Vec{}, t0
			}
			return nHRight, r3.Vec{}, tRight
		}, [3]bool{false, false, false}
	}
}

func runScenario(scenario string, cfg config.Configuration, cells int, box float64, steps int, finalTime float64, debug bool) {
	ic, periodic := initialCondition(scenario, box)

	g := grid.NewUniform(r3.Vec{}, r3.Vec{X: box, Y: box / float64(cells), Z: box / float64(cells)}, cells, 1, 1, periodic)
	d, err := hydro.NewDriver(cfg, periodic)
	if err != nil {
		fmt.Println("ionhydro:", err)
		os.Exit(1)
	}
	d.Debug = debug
	d.Initialise(g, ic)

	var elapsed float64
	for step := 0; step < steps; step++ {
		dt := d.MaxTimestep(g)
		if dt <= 0 {
			fmt.Println("ionhydro: timestep collapsed to zero, stopping")
			break
		}
		d.DoStep(g, dt)
		elapsed += dt

		if step%10 == 0 {
			minRho, maxRho := extrema(g)
			fmt.Printf("step %5d  t=%10.4e s  dt=%10.4e s  rho=[%8.4e, %8.4e]\n", step, elapsed, dt, minRho, maxRho)
		}
		if finalTime > 0 && elapsed >= finalTime {
			break
		}
	}
}

func extrema(g *grid.Uniform) (min, max float64) {
	min, max = math.Inf(1), math.Inf(-1)
	for i := 0; i < g.NumCells(); i++ {
		rho := g.Hydro(g.CellAt(i)).Prim.Rho
		if rho < min {
			min = rho
		}
		if rho > max {
			max = rho
		}
	}
	return
}
