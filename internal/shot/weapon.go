package shot

// Weapon is static launcher geometry, read-only during a run.
type Weapon struct {
	// SightHeight is the sight line height over the bore centerline, ft.
	SightHeight float64
	// TwistRate is the rifling twist in inches per turn, zero if unknown.
	TwistRate float64
	// ZeroElevation is the barrel elevation that zeroes the sight, radians.
	ZeroElevation float64
}

func NewWeapon(sightHeightFt, twistIn, zeroElevationRad float64) Weapon {
	return Weapon{
		SightHeight:   sightHeightFt,
		TwistRate:     twistIn,
		ZeroElevation: zeroElevationRad,
	}
}
