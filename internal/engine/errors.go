package engine

import "errors"

var (
	// ErrInvalidConfig rejects configuration or run arguments outside their
	// domain before any integration starts.
	ErrInvalidConfig = errors.New("engine: invalid configuration")

	// ErrZeroNotConverged indicates the zero-finding search ran out of
	// iterations before the residual drop fell under the accuracy bound.
	ErrZeroNotConverged = errors.New("engine: zero finding did not converge")

	// ErrNoStepper indicates engine construction without a stepping strategy.
	ErrNoStepper = errors.New("engine: no stepper")
)
