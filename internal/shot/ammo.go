package shot

import "github.com/san-kum/ballistics/internal/drag"

// powderSensitivitySpanF is the temperature span, in Fahrenheit, over which
// TempModifier expresses its percentage velocity change.
const powderSensitivitySpanF = 15.0

// Ammo describes a loaded cartridge. The drag curve is opaque to the rest of
// the system: any func(mach) float64 works.
type Ammo struct {
	Drag           drag.Func
	MuzzleVelocity float64 // fps
	BulletWeight   float64 // grains, display-layer energy math only

	// PowderTemperature is the temperature the load was developed at, F.
	PowderTemperature float64
	// TempModifier is the percent velocity change per 15 F of powder
	// temperature difference.
	TempModifier float64
	// UsePowderSensitivity enables the muzzle-velocity correction. The
	// toggle lives on the ammunition, not the run configuration.
	UsePowderSensitivity bool
}

func NewAmmo(dragFn drag.Func, muzzleVelocityFPS float64) Ammo {
	return Ammo{Drag: dragFn, MuzzleVelocity: muzzleVelocityFPS}
}

// Validate rejects ammunition the engine cannot integrate.
func (a Ammo) Validate() error {
	if a.Drag == nil {
		return ErrNoDrag
	}
	if a.MuzzleVelocity <= 0 {
		return ErrNoVelocity
	}
	return nil
}

// VelocityAtTemperature returns the effective muzzle velocity for the given
// air temperature in Fahrenheit. Without the sensitivity flag the nominal
// velocity passes through unchanged.
func (a Ammo) VelocityAtTemperature(airTempF float64) float64 {
	if !a.UsePowderSensitivity || a.TempModifier == 0 {
		return a.MuzzleVelocity
	}
	delta := airTempF - a.PowderTemperature
	return a.MuzzleVelocity * (1 + a.TempModifier/100*delta/powderSensitivitySpanF)
}
