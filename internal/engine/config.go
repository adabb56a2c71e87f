package engine

import "fmt"

// RunConfig holds the numeric tunables of one engine instance. It is built
// once, validated at construction, and never mutated during a run.
type RunConfig struct {
	// MaxStepSizeFt bounds the downrange distance covered by one
	// integration step.
	MaxStepSizeFt float64
	// ChartResolution is the minimum number of integration substeps per
	// reported range step; the engine may integrate more finely than it
	// records.
	ChartResolution int
	// ZeroFindingAccuracy is the acceptable residual drop at the zero
	// distance, ft. It also derives the adaptive stepper's error tolerance.
	ZeroFindingAccuracy float64
	// MinimumVelocity terminates the run once projectile speed falls
	// below it, fps.
	MinimumVelocity float64
	// MaximumDrop terminates the run once the projectile falls this far
	// below the sight line, ft (positive number).
	MaximumDrop float64
	// MaxIterations is the safety fuse guaranteeing the loop halts on
	// divergent inputs.
	MaxIterations int
	// GravityConstant is the downward acceleration, ft/s^2.
	GravityConstant float64
	// MinimumAltitude terminates the run once the projectile sinks below
	// it, ft relative to sea level.
	MinimumAltitude float64
}

// DefaultRunConfig mirrors the conventional imperial-unit constants.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		MaxStepSizeFt:       0.5,
		ChartResolution:     10,
		ZeroFindingAccuracy: 5e-6,
		MinimumVelocity:     50,
		MaximumDrop:         15000,
		MaxIterations:       50000,
		GravityConstant:     32.17405,
		MinimumAltitude:     -1410.748,
	}
}

// Validate rejects values outside their domain. Gravity is deliberately not
// range-checked: a negated constant is a legitimate (if divergent) input the
// iteration fuse handles at run time.
func (c RunConfig) Validate() error {
	switch {
	case c.MaxStepSizeFt <= 0:
		return fmt.Errorf("%w: max step size %g", ErrInvalidConfig, c.MaxStepSizeFt)
	case c.ChartResolution <= 0:
		return fmt.Errorf("%w: chart resolution %d", ErrInvalidConfig, c.ChartResolution)
	case c.ZeroFindingAccuracy <= 0:
		return fmt.Errorf("%w: zero finding accuracy %g", ErrInvalidConfig, c.ZeroFindingAccuracy)
	case c.MinimumVelocity < 0:
		return fmt.Errorf("%w: minimum velocity %g", ErrInvalidConfig, c.MinimumVelocity)
	case c.MaximumDrop <= 0:
		return fmt.Errorf("%w: maximum drop %g", ErrInvalidConfig, c.MaximumDrop)
	case c.MaxIterations <= 0:
		return fmt.Errorf("%w: max iterations %d", ErrInvalidConfig, c.MaxIterations)
	}
	return nil
}
