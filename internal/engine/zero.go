package engine

import (
	"fmt"
	"math"

	"github.com/san-kum/ballistics/internal/shot"
	"github.com/san-kum/ballistics/internal/traj"
)

// maxZeroIterations bounds the elevation search. The residual shrinks
// quadratically, so convergence failures mean a trajectory that never
// reaches the zero distance.
const maxZeroIterations = 10

// ZeroAngle finds the barrel elevation that puts the trajectory back on the
// sight line at zeroDistance feet. The shot's angles are ignored; the
// returned elevation is what Weapon.ZeroElevation should carry.
func (e *Engine) ZeroAngle(s shot.Shot, zeroDistance float64) (float64, error) {
	if zeroDistance <= 0 {
		return 0, fmt.Errorf("%w: zero distance %g", ErrInvalidConfig, zeroDistance)
	}

	s.LookAngle = 0
	s.RelativeAngle = 0
	s.CantAngle = 0

	elevation := 0.0
	residual := math.Inf(1)
	for i := 0; i < maxZeroIterations; i++ {
		s.Weapon.ZeroElevation = elevation

		res, err := e.Run(&s, zeroDistance, zeroDistance, 0, traj.FlagRange)
		if err != nil {
			return 0, err
		}
		if res.Status != Completed {
			return 0, fmt.Errorf("%w: trajectory %s before %g ft (%s)",
				ErrZeroNotConverged, res.Status, zeroDistance, res.Reason)
		}

		last, ok := res.Samples.Last()
		if !ok {
			return 0, fmt.Errorf("%w: no samples recorded", ErrZeroNotConverged)
		}
		residual = last.Height()
		if math.Abs(residual) < e.cfg.ZeroFindingAccuracy {
			return elevation, nil
		}
		elevation -= residual / zeroDistance
	}
	return 0, fmt.Errorf("%w: residual %g ft after %d iterations",
		ErrZeroNotConverged, residual, maxZeroIterations)
}
