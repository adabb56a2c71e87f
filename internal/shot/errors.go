package shot

import "errors"

var (
	// ErrWindOrder indicates wind segments whose until-distances are not
	// strictly increasing.
	ErrWindOrder = errors.New("shot: wind segments out of order")

	// ErrWindCoverage indicates a wind list that does not end in a sentinel
	// segment covering all remaining range.
	ErrWindCoverage = errors.New("shot: wind segments do not cover full range")

	// ErrNoVelocity indicates ammunition with a non-positive muzzle velocity.
	ErrNoVelocity = errors.New("shot: muzzle velocity must be positive")

	// ErrNoDrag indicates ammunition without a drag curve.
	ErrNoDrag = errors.New("shot: ammo has no drag function")
)
