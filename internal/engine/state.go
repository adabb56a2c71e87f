package engine

import "github.com/san-kum/ballistics/internal/geom"

// State is the kinematic state one step advances.
type State struct {
	Time     float64
	Position geom.Vector
	Velocity geom.Vector
}

// AccelFunc evaluates net acceleration (drag plus gravity) at a trial
// position and velocity.
type AccelFunc func(pos, vel geom.Vector) geom.Vector

// Stepper advances a state by one time step. Implementations must be
// stateless so independent runs can share them.
type Stepper interface {
	Step(st State, dt float64, accel AccelFunc) State
}

// AdaptiveStepper additionally estimates local error and suggests the next
// step size to keep it under tol.
type AdaptiveStepper interface {
	Stepper
	StepAdaptive(st State, dt, tol float64, accel AccelFunc) (State, float64)
}
