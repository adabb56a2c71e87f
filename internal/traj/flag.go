package traj

import "strings"

// Flag marks significant events on a trajectory sample. Flags combine as a
// bitmask; a single sample can carry several.
type Flag uint8

const (
	FlagNone Flag = 0

	// FlagZeroUp and FlagZeroDown mark the height crossing the sight line
	// on the way up and down.
	FlagZeroUp Flag = 1 << iota
	FlagZeroDown
	// FlagMach marks the crossing of Mach 1.
	FlagMach
	// FlagRange marks a requested reporting step (range or time aligned).
	FlagRange
	// FlagApex marks the highest point, where vertical velocity changes sign.
	FlagApex

	FlagZero = FlagZeroUp | FlagZeroDown
	FlagAll  = FlagZero | FlagMach | FlagRange | FlagApex
)

var flagNames = []struct {
	f    Flag
	name string
}{
	{FlagZeroUp, "zero_up"},
	{FlagZeroDown, "zero_down"},
	{FlagMach, "mach"},
	{FlagRange, "range"},
	{FlagApex, "apex"},
}

func (f Flag) String() string {
	if f == FlagNone {
		return "none"
	}
	var parts []string
	for _, fn := range flagNames {
		if f&fn.f != 0 {
			parts = append(parts, fn.name)
		}
	}
	return strings.Join(parts, "|")
}

func (f Flag) Has(other Flag) bool {
	return f&other != 0
}
