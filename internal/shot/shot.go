// Package shot aggregates weapon, ammunition, atmosphere and wind into the
// derived initial state one trajectory run consumes.
package shot

import (
	"math"

	"github.com/san-kum/ballistics/internal/atmo"
	"github.com/san-kum/ballistics/internal/geom"
)

// Shot is the full description of a single firing solution. It is owned by
// the caller, passed read-only into the engine, and must not be mutated
// while a run is in flight.
type Shot struct {
	Weapon Weapon
	Ammo   Ammo
	Atmo   atmo.Atmosphere
	Winds  Winds

	// LookAngle is the inclination of the sight line, radians.
	LookAngle float64
	// RelativeAngle is the additional launch angle over the sight line.
	RelativeAngle float64
	// CantAngle tilts the sight plane around the bore axis.
	CantAngle float64
}

// New assembles a shot with calm winds and a standard atmosphere.
func New(w Weapon, a Ammo) Shot {
	return Shot{
		Weapon: w,
		Ammo:   a,
		Atmo:   atmo.Default(),
		Winds:  NoWind(),
	}
}

// Validate checks the pieces the engine relies on.
func (s Shot) Validate() error {
	if err := s.Ammo.Validate(); err != nil {
		return err
	}
	return s.Winds.Validate()
}

// BarrelElevation is the vertical aim angle: the look angle plus the zeroed
// and relative corrections projected through the cant.
func (s Shot) BarrelElevation() float64 {
	return s.LookAngle + math.Cos(s.CantAngle)*(s.Weapon.ZeroElevation+s.RelativeAngle)
}

// BarrelAzimuth is the horizontal deflection the cant angle leaks out of the
// elevation corrections.
func (s Shot) BarrelAzimuth() float64 {
	return math.Sin(s.CantAngle) * (s.Weapon.ZeroElevation + s.RelativeAngle)
}

// MuzzleSpeed is the powder-temperature-adjusted muzzle velocity in fps.
func (s Shot) MuzzleSpeed() float64 {
	return s.Ammo.VelocityAtTemperature(s.Atmo.Temperature)
}

// InitialPosition is the muzzle relative to the sight line: the sight height
// below, tilted by cant.
func (s Shot) InitialPosition() geom.Vector {
	return geom.New(
		0,
		-math.Cos(s.CantAngle)*s.Weapon.SightHeight,
		-math.Sin(s.CantAngle)*s.Weapon.SightHeight,
	)
}

// InitialVelocity is the muzzle velocity vector from the spherical barrel
// direction.
func (s Shot) InitialVelocity() geom.Vector {
	el, az := s.BarrelElevation(), s.BarrelAzimuth()
	dir := geom.New(
		math.Cos(el)*math.Cos(az),
		math.Sin(el),
		math.Cos(el)*math.Sin(az),
	)
	return dir.Scale(s.MuzzleSpeed())
}

// WindAt returns the wind as a range/height/cross vector at the given
// downrange distance. The bearing decomposes against the sight line, then
// the look and cant angles rotate the components into trajectory axes.
func (s Shot) WindAt(rangeFt float64) geom.Vector {
	w := s.Winds.At(rangeFt)
	if w.Velocity == 0 {
		return geom.Vector{}
	}
	lookCos, lookSin := math.Cos(s.LookAngle), math.Sin(s.LookAngle)
	cantCos, cantSin := math.Cos(s.CantAngle), math.Sin(s.CantAngle)

	rangeComponent := w.Velocity * math.Cos(w.DirectionFrom)
	crossComponent := w.Velocity * math.Sin(w.DirectionFrom)
	rangeFactor := -rangeComponent * lookSin

	return geom.New(
		rangeComponent*lookCos,
		rangeFactor*cantCos+crossComponent*cantSin,
		crossComponent*cantCos-rangeFactor*cantSin,
	)
}
