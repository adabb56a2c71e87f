package engine

import "github.com/san-kum/ballistics/internal/traj"

// Status is the outcome class of a run.
type Status int

const (
	// Completed means the requested range limit was reached.
	Completed Status = iota
	// Terminated means a termination predicate stopped the run early; the
	// partial trajectory is still valid and usable.
	Terminated
)

func (s Status) String() string {
	switch s {
	case Completed:
		return "completed"
	case Terminated:
		return "terminated"
	}
	return "unknown"
}

// Reason names the termination predicate that stopped a run. It is a normal
// outcome the caller handles, not an error.
type Reason int

const (
	ReasonNone Reason = iota
	MinimumVelocityReached
	MaximumDropReached
	MinimumAltitudeReached
	MaxIterationsReached
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case MinimumVelocityReached:
		return "minimum velocity reached"
	case MaximumDropReached:
		return "maximum drop reached"
	case MinimumAltitudeReached:
		return "minimum altitude reached"
	case MaxIterationsReached:
		return "maximum iterations reached"
	}
	return "unknown"
}

// Result carries the outcome and the recorded trajectory. Ownership of the
// sequence passes to the caller on return.
type Result struct {
	Status  Status
	Reason  Reason
	Samples *traj.Sequence
}
