// Package boundary implements the boundary oracle: resolving
// the right-hand hydro state at a domain-boundary face given a per-axis,
// per-side policy.
package boundary

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Policy is one of the five boundary-condition kinds.
type Policy uint8

const (
	Periodic Policy = iota
	Reflective
	Inflow
	Outflow
	Bondi
)

var policyNames = map[string]Policy{
	"periodic":   Periodic,
	"reflective": Reflective,
	"inflow":     Inflow,
	"outflow":    Outflow,
	"bondi":      Bondi,
}

var policyPrintNames = []string{"periodic", "reflective", "inflow", "outflow", "bondi"}

func (p Policy) String() string {
	if int(p) >= len(policyPrintNames) {
		return fmt.Sprintf("Policy(%d)", uint8(p))
	}
	return policyPrintNames[p]
}

// NewPolicy parses a configuration keyword into a Policy, matching the
// teacher's NewFluxType keyword-lookup pattern.
func NewPolicy(label string) (Policy, error) {
	if p, ok := policyNames[label]; ok {
		return p, nil
	}
	return 0, fmt.Errorf("boundary: unknown boundary keyword %q", label)
}

// Side of a face along an axis.
type Side uint8

const (
	Low Side = iota
	High
)

// Table is the 6-element policy lookup indexed by axis*2+side, avoiding a
// deep conditional chain over (axis, side) pairs.
type Table [6]Policy

// Index returns the Table slot for (axis, side).
func Index(axis int, side Side) int { return axis*2 + int(side) }

// At returns the policy for (axis, side).
func (t Table) At(axis int, side Side) Policy { return t[Index(axis, side)] }

// Set stores the policy for (axis, side).
func (t *Table) Set(axis int, side Side, p Policy) { t[Index(axis, side)] = p }

// FaceAxisSide derives which face (axis, side) an outward normal belongs to
// from the sign and dominant magnitude of its components.
func FaceAxisSide(normal r3.Vec) (axis int, side Side) {
	ax, ay, az := math.Abs(normal.X), math.Abs(normal.Y), math.Abs(normal.Z)
	switch {
	case ax >= ay && ax >= az:
		axis = 0
		if normal.X >= 0 {
			side = High
		} else {
			side = Low
		}
	case ay >= ax && ay >= az:
		axis = 1
		if normal.Y >= 0 {
			side = High
		} else {
			side = Low
		}
	default:
		axis = 2
		if normal.Z >= 0 {
			side = High
		} else {
			side = Low
		}
	}
	return
}

// Validate checks the construction rules: periodicity must be
// symmetric per axis and must match the grid's own periodicity flags, and a
// bondi face requires a profile to have been supplied. The bondi-profile
// check applies uniformly to all six faces (an x-low-only check would be
// an oversight, not a
// deliberate asymmetry).
func (t Table) Validate(gridPeriodic [3]bool, haveBondiProfile bool) error {
	for axis := 0; axis < 3; axis++ {
		lo, hi := t.At(axis, Low), t.At(axis, High)
		loPeriodic, hiPeriodic := lo == Periodic, hi == Periodic
		if loPeriodic != hiPeriodic {
			return fmt.Errorf("boundary: axis %d has asymmetric periodicity (low=%v, high=%v)", axis, lo, hi)
		}
		if loPeriodic != gridPeriodic[axis] {
			return fmt.Errorf("boundary: axis %d periodicity (%v) does not match grid periodicity (%v)", axis, loPeriodic, gridPeriodic[axis])
		}
		if (lo == Bondi || hi == Bondi) && !haveBondiProfile {
			return fmt.Errorf("boundary: axis %d uses a bondi policy but no Bondi profile was supplied", axis)
		}
	}
	return nil
}
