package atmo

import "math"

// Imperial standard-atmosphere constants. The engine works in feet,
// feet-per-second and degrees Fahrenheit throughout.
const (
	SeaLevelTemperatureF    = 59.0
	SeaLevelSpeedOfSoundFPS = 1116.45
	LapseRateFPerFt         = -3.56616e-03

	rankineOffset = 459.67

	// density varies with the temperature ratio raised to this exponent in
	// the linear-lapse troposphere approximation
	densityExponent = 4.2559

	// floor for absolute temperature so extreme altitudes can't produce a
	// negative radicand
	minRankine = 1.0
)

// Atmosphere models the air column around the firing point with a linear
// lapse rate. It is a pure value: DensityAndMach derives its outputs from
// the altitude argument and the fixed fields, nothing is cached.
type Atmosphere struct {
	// Altitude is the firing-point altitude in feet.
	Altitude float64
	// Temperature is the air temperature at the firing point in Fahrenheit.
	Temperature float64
	// LapseRate is the temperature change per foot of altitude.
	LapseRate float64
	// SeaLevelTemperature and SeaLevelMach anchor the density and
	// speed-of-sound ratios.
	SeaLevelTemperature float64
	SeaLevelMach        float64
}

// New returns an atmosphere for the given firing-point altitude (ft) and
// temperature (F) with standard lapse and sea-level constants.
func New(altitude, temperature float64) Atmosphere {
	return Atmosphere{
		Altitude:            altitude,
		Temperature:         temperature,
		LapseRate:           LapseRateFPerFt,
		SeaLevelTemperature: SeaLevelTemperatureF,
		SeaLevelMach:        SeaLevelSpeedOfSoundFPS,
	}
}

// Default returns the ICAO sea-level standard atmosphere.
func Default() Atmosphere {
	return New(0, SeaLevelTemperatureF)
}

// DensityAndMach returns the density ratio (local density over sea-level
// density) and the local speed of sound in fps for the given altitude in
// feet. Callers clamp altitude to their configured minimum first; the
// absolute-temperature floor here only guards against unphysical inputs.
func (a Atmosphere) DensityAndMach(altitude float64) (densityRatio, machFPS float64) {
	localF := a.Temperature + a.LapseRate*(altitude-a.Altitude)
	localR := localF + rankineOffset
	if localR < minRankine {
		localR = minRankine
	}
	ratio := localR / (a.SeaLevelTemperature + rankineOffset)
	densityRatio = math.Pow(ratio, densityExponent)
	machFPS = a.SeaLevelMach * math.Sqrt(ratio)
	return densityRatio, machFPS
}

// TemperatureAt returns the local air temperature in Fahrenheit.
func (a Atmosphere) TemperatureAt(altitude float64) float64 {
	return a.Temperature + a.LapseRate*(altitude-a.Altitude)
}
