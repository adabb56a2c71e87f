package traj

import (
	"fmt"

	"gonum.org/v1/gonum/interp"
)

// Axis selects the independent variable for interpolation queries.
type Axis int

const (
	AxisTime Axis = iota
	AxisRange
	AxisHeight
	AxisMach
	AxisVerticalVelocity
)

func (a Axis) value(s Sample) float64 {
	switch a {
	case AxisTime:
		return s.Time
	case AxisRange:
		return s.Position.X
	case AxisHeight:
		return s.Position.Y
	case AxisMach:
		return s.Mach
	case AxisVerticalVelocity:
		return s.Velocity.Y
	}
	return s.Time
}

// fields enumerates every dependent quantity reconstructed at the target.
var fields = []struct {
	get func(Sample) float64
	set func(*Sample, float64)
}{
	{func(s Sample) float64 { return s.Time }, func(s *Sample, v float64) { s.Time = v }},
	{func(s Sample) float64 { return s.Position.X }, func(s *Sample, v float64) { s.Position.X = v }},
	{func(s Sample) float64 { return s.Position.Y }, func(s *Sample, v float64) { s.Position.Y = v }},
	{func(s Sample) float64 { return s.Position.Z }, func(s *Sample, v float64) { s.Position.Z = v }},
	{func(s Sample) float64 { return s.Velocity.X }, func(s *Sample, v float64) { s.Velocity.X = v }},
	{func(s Sample) float64 { return s.Velocity.Y }, func(s *Sample, v float64) { s.Velocity.Y = v }},
	{func(s Sample) float64 { return s.Velocity.Z }, func(s *Sample, v float64) { s.Velocity.Z = v }},
	{func(s Sample) float64 { return s.Mach }, func(s *Sample, v float64) { s.Mach = v }},
	{func(s Sample) float64 { return s.Density }, func(s *Sample, v float64) { s.Density = v }},
	{func(s Sample) float64 { return s.Drag }, func(s *Sample, v float64) { s.Drag = v }},
}

// InterpolateAt reconstructs the sample where the chosen axis equals target.
// With three or more locally monotonic neighbors it uses a shape-preserving
// monotone cubic so the reconstructed point cannot overshoot the bracketing
// samples; with only two it falls back to linear. A query exactly on an
// existing sample returns that sample as-is.
func (q *Sequence) InterpolateAt(axis Axis, target float64) (Sample, error) {
	n := len(q.samples)
	exact := -1
	for i, s := range q.samples {
		if axis.value(s) == target {
			if exact != -1 {
				// two samples collapse onto the same independent value
				return Sample{}, ErrDegenerateInterval
			}
			exact = i
		}
	}
	if exact != -1 {
		return q.samples[exact], nil
	}
	if n < 2 {
		return Sample{}, ErrTooFewSamples
	}

	// first adjacent pair bracketing the target
	hi := -1
	for i := 1; i < n; i++ {
		v0, v1 := axis.value(q.samples[i-1]), axis.value(q.samples[i])
		if (v0 < target && target < v1) || (v1 < target && target < v0) {
			hi = i
			break
		}
	}
	if hi == -1 {
		return Sample{}, fmt.Errorf("%w: no pair brackets %v", ErrOutOfRange, target)
	}

	x0, x1 := axis.value(q.samples[hi-1]), axis.value(q.samples[hi])
	if x0 == x1 {
		return Sample{}, ErrDegenerateInterval
	}

	lo := hi - 1
	// widen to up to four points while the axis stays strictly monotonic
	ascending := x1 > x0
	start, end := lo, hi
	if start > 0 && monotonicStep(axis.value(q.samples[start-1]), axis.value(q.samples[start]), ascending) {
		start--
	}
	if end < n-1 && monotonicStep(axis.value(q.samples[end]), axis.value(q.samples[end+1]), ascending) {
		end++
	}

	m := end - start + 1
	xs := make([]float64, m)
	for i := 0; i < m; i++ {
		xs[i] = axis.value(q.samples[start+i])
	}
	if !ascending {
		reverse(xs)
	}

	out := Sample{}
	ys := make([]float64, m)
	for _, f := range fields {
		for i := 0; i < m; i++ {
			ys[i] = f.get(q.samples[start+i])
		}
		if !ascending {
			reverse(ys)
		}
		v, err := predict(xs, ys, target)
		if err != nil {
			return Sample{}, err
		}
		f.set(&out, v)
	}
	return out, nil
}

func predict(xs, ys []float64, x float64) (float64, error) {
	if len(xs) >= 3 {
		var fb interp.FritschButland
		if err := fb.Fit(xs, ys); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrDegenerateInterval, err)
		}
		return fb.Predict(x), nil
	}
	var pl interp.PiecewiseLinear
	if err := pl.Fit(xs, ys); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDegenerateInterval, err)
	}
	return pl.Predict(x), nil
}

func monotonicStep(a, b float64, ascending bool) bool {
	if ascending {
		return b > a
	}
	return b < a
}

func reverse(v []float64) {
	for i, j := 0, len(v)-1; i < j; i, j = i+1, j-1 {
		v[i], v[j] = v[j], v[i]
	}
}
