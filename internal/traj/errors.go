package traj

import "errors"

var (
	// ErrDegenerateInterval indicates an interpolation interval that
	// collapsed to zero width or lost monotonicity.
	ErrDegenerateInterval = errors.New("traj: degenerate interpolation interval")

	// ErrOutOfRange indicates a target value no adjacent sample pair brackets.
	ErrOutOfRange = errors.New("traj: target outside sampled span")

	// ErrTooFewSamples indicates a sequence too short to interpolate.
	ErrTooFewSamples = errors.New("traj: too few samples")

	// ErrOutOfOrder indicates an append that would break strict time order.
	ErrOutOfOrder = errors.New("traj: sample time not increasing")
)
