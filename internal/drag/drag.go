// Package drag supplies drag-coefficient curves as opaque functions of Mach
// number. The engine never sees the tables, only a Func.
package drag

import "sort"

// Func returns the drag factor for the given Mach number. The value already
// folds in the ballistic coefficient and the form-factor constant, so the
// engine can use it directly as deceleration per unit density and squared
// airspeed.
type Func func(mach float64) float64

// Zero is the drag-free curve, used for vacuum trajectories and testing.
var Zero Func = func(float64) float64 { return 0 }

// standardFactor converts a table drag coefficient divided by the ballistic
// coefficient into the fps-units drag factor.
const standardFactor = 2.08551e-04

type node struct {
	mach, cd float64
}

func fromTable(table []node, bc float64) Func {
	if bc <= 0 {
		bc = 1
	}
	return func(mach float64) float64 {
		return lookup(table, mach) * standardFactor / bc
	}
}

// lookup interpolates the table linearly in Mach, clamping at both ends.
func lookup(table []node, mach float64) float64 {
	n := len(table)
	if mach <= table[0].mach {
		return table[0].cd
	}
	if mach >= table[n-1].mach {
		return table[n-1].cd
	}
	i := sort.Search(n, func(i int) bool { return table[i].mach >= mach })
	lo, hi := table[i-1], table[i]
	f := (mach - lo.mach) / (hi.mach - lo.mach)
	return lo.cd + f*(hi.cd-lo.cd)
}

// G1 returns the standard G1 (flat-base) drag curve scaled by the ballistic
// coefficient.
func G1(bc float64) Func {
	return fromTable(g1Table, bc)
}

// G7 returns the standard G7 (boat-tail) drag curve scaled by the ballistic
// coefficient.
func G7(bc float64) Func {
	return fromTable(g7Table, bc)
}

// ByName resolves a drag model name ("g1", "g7") to a curve constructor.
func ByName(name string) (func(bc float64) Func, bool) {
	switch name {
	case "g1", "G1":
		return G1, true
	case "g7", "G7":
		return G7, true
	}
	return nil, false
}
