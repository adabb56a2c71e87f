package shot

// SentinelDistance marks a wind segment that covers all remaining range.
const SentinelDistance = 1e7 // ft

// Wind is one segment of the wind column along the flight path.
type Wind struct {
	// Velocity is the wind speed in fps.
	Velocity float64
	// DirectionFrom is the bearing the wind blows from, radians clockwise
	// looking down on the shooter (0 = from behind, pi/2 = from the right).
	DirectionFrom float64
	// UntilDistance is the exclusive downrange boundary of this segment, ft.
	UntilDistance float64
}

// Winds is an ordered, contiguous sequence of segments ending in a sentinel.
type Winds []Wind

// NoWind covers the whole range with calm air.
func NoWind() Winds {
	return Winds{{UntilDistance: SentinelDistance}}
}

// ConstantWind covers the whole range with one wind vector.
func ConstantWind(velocityFPS, directionFromRad float64) Winds {
	return Winds{{
		Velocity:      velocityFPS,
		DirectionFrom: directionFromRad,
		UntilDistance: SentinelDistance,
	}}
}

// Validate enforces strictly increasing boundaries and the trailing sentinel,
// so lookups always succeed with no gaps or overlaps.
func (w Winds) Validate() error {
	if len(w) == 0 {
		return ErrWindCoverage
	}
	prev := 0.0
	for _, seg := range w {
		if seg.UntilDistance <= prev {
			return ErrWindOrder
		}
		prev = seg.UntilDistance
	}
	if w[len(w)-1].UntilDistance < SentinelDistance {
		return ErrWindCoverage
	}
	return nil
}

// At returns the segment governing the given downrange distance. A range
// exactly on a boundary belongs to the next segment.
func (w Winds) At(rangeFt float64) Wind {
	for _, seg := range w {
		if seg.UntilDistance > rangeFt {
			return seg
		}
	}
	return w[len(w)-1]
}
