// Package engine integrates projectile trajectories under gravity, drag,
// wind and altitude-dependent air density, and annotates the resulting
// samples with flight events.
package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/ballistics/internal/geom"
	"github.com/san-kum/ballistics/internal/log"
	"github.com/san-kum/ballistics/internal/shot"
	"github.com/san-kum/ballistics/internal/traj"
)

// sameEventEpsilon merges event samples whose interpolated times coincide.
const sameEventEpsilon = 1e-9

type Engine struct {
	cfg     RunConfig
	stepper Stepper
}

// New builds an engine around one stepping strategy. Configuration is
// validated here so a run never starts from partial state.
func New(cfg RunConfig, stepper Stepper) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if stepper == nil {
		return nil, ErrNoStepper
	}
	return &Engine{cfg: cfg, stepper: stepper}, nil
}

func (e *Engine) Config() RunConfig {
	return e.cfg
}

// Run computes one trajectory out to rangeLimit feet, recording rows every
// rangeStep feet (and every timeStep seconds when positive) plus every
// flagged event that passes the filter mask. The filter selects which flags
// get recorded; it never changes the physics. Terminations are normal
// outcomes carried in the Result; only invalid arguments and degenerate
// interpolation surface as errors.
func (e *Engine) Run(s *shot.Shot, rangeLimit, rangeStep, timeStep float64, filter traj.Flag) (*Result, error) {
	if rangeLimit <= 0 {
		return nil, fmt.Errorf("%w: range limit %g", ErrInvalidConfig, rangeLimit)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if rangeStep <= 0 || rangeStep > rangeLimit {
		rangeStep = rangeLimit
	}

	cfg := e.cfg
	gravity := geom.New(0, -cfg.GravityConstant, 0)
	alt0 := s.Atmo.Altitude

	accel := func(pos, vel geom.Vector) geom.Vector {
		alt := alt0 + pos.Y
		if alt < cfg.MinimumAltitude {
			alt = cfg.MinimumAltitude
		}
		density, machFPS := s.Atmo.DensityAndMach(alt)
		rel := vel.Sub(s.WindAt(pos.X))
		speed := rel.Magnitude()
		factor := density * speed * s.Ammo.Drag(speed/machFPS)
		return rel.Scale(-factor).Add(gravity)
	}

	calcStep := cfg.MaxStepSizeFt
	if sub := rangeStep / float64(cfg.ChartResolution); sub < calcStep {
		calcStep = sub
	}

	st := State{Position: s.InitialPosition(), Velocity: s.InitialVelocity()}
	recorded := traj.NewSequence(int(rangeLimit/rangeStep) + 8)

	first := e.sampleAt(s, st)
	window := []traj.Sample{first}
	if filter.Has(traj.FlagRange) {
		row := first
		row.Flags = traj.FlagRange
		if err := recorded.Append(row); err != nil {
			return nil, err
		}
	}

	nextRecordRange := rangeStep
	nextRecordTime := math.Inf(1)
	if timeStep > 0 {
		nextRecordTime = timeStep
	}

	adaptive, isAdaptive := e.stepper.(AdaptiveStepper)
	tol := cfg.ZeroFindingAccuracy
	dtNext := 0.0

	for iterations := 0; ; iterations++ {
		if status, reason, done := e.checkTermination(st, alt0, rangeLimit, iterations); done {
			log.Debugw("run finished",
				"status", status.String(),
				"reason", reason.String(),
				"iterations", iterations,
				"rows", recorded.Len(),
			)
			return &Result{Status: status, Reason: reason, Samples: recorded}, nil
		}

		vx := math.Abs(st.Velocity.X)
		if vx < 1 {
			vx = 1
		}
		maxDt := calcStep / vx

		prev := window[len(window)-1]
		if isAdaptive {
			dt := maxDt
			if dtNext > 0 && dtNext < dt {
				dt = dtNext
			}
			st, dtNext = adaptive.StepAdaptive(st, dt, tol, accel)
		} else {
			st = e.stepper.Step(st, maxDt, accel)
		}

		cur := e.sampleAt(s, st)
		window = append(window, cur)
		if len(window) > 4 {
			window = window[1:]
		}

		events, err := e.locateEvents(prev, cur, window, &nextRecordRange, rangeStep, &nextRecordTime, timeStep)
		if err != nil {
			return nil, err
		}
		for _, ev := range events {
			ev.Flags &= filter
			if ev.Flags == 0 {
				continue
			}
			if last, ok := recorded.Last(); ok && ev.Time <= last.Time+sameEventEpsilon {
				continue
			}
			if err := recorded.Append(ev); err != nil {
				return nil, err
			}
		}
	}
}

// checkTermination evaluates the run-ending predicates in priority order.
func (e *Engine) checkTermination(st State, alt0, rangeLimit float64, iterations int) (Status, Reason, bool) {
	cfg := e.cfg
	switch {
	case st.Velocity.Magnitude() < cfg.MinimumVelocity:
		return Terminated, MinimumVelocityReached, true
	case st.Position.Y < -cfg.MaximumDrop:
		return Terminated, MaximumDropReached, true
	case alt0+st.Position.Y < cfg.MinimumAltitude:
		return Terminated, MinimumAltitudeReached, true
	case st.Position.X >= rangeLimit:
		return Completed, ReasonNone, true
	case iterations >= cfg.MaxIterations:
		return Terminated, MaxIterationsReached, true
	}
	return Completed, ReasonNone, false
}

// sampleAt derives the recorded quantities for a raw state.
func (e *Engine) sampleAt(s *shot.Shot, st State) traj.Sample {
	alt := s.Atmo.Altitude + st.Position.Y
	if alt < e.cfg.MinimumAltitude {
		alt = e.cfg.MinimumAltitude
	}
	density, machFPS := s.Atmo.DensityAndMach(alt)
	speed := st.Velocity.Magnitude()
	mach := speed / machFPS
	return traj.Sample{
		Time:     st.Time,
		Position: st.Position,
		Velocity: st.Velocity,
		Mach:     mach,
		Density:  density,
		Drag:     density * speed * s.Ammo.Drag(mach),
	}
}

// locateEvents finds every crossing between the previous and current raw
// samples and reconstructs each one at its exact sub-step location.
func (e *Engine) locateEvents(prev, cur traj.Sample, window []traj.Sample,
	nextRange *float64, rangeStep float64, nextTime *float64, timeStep float64) ([]traj.Sample, error) {

	scratch := traj.NewSequence(len(window))
	for _, w := range window {
		if err := scratch.Append(w); err != nil {
			return nil, err
		}
	}

	var events []traj.Sample
	add := func(axis traj.Axis, target float64, flag traj.Flag) error {
		ev, err := scratch.InterpolateAt(axis, target)
		if err != nil {
			return err
		}
		ev.Flags = flag
		events = append(events, ev)
		return nil
	}

	if prev.Position.Y < 0 && cur.Position.Y >= 0 {
		if err := add(traj.AxisHeight, 0, traj.FlagZeroUp); err != nil {
			return nil, err
		}
	}
	if prev.Position.Y > 0 && cur.Position.Y <= 0 {
		if err := add(traj.AxisHeight, 0, traj.FlagZeroDown); err != nil {
			return nil, err
		}
	}
	if prev.Velocity.Y > 0 && cur.Velocity.Y <= 0 {
		if err := add(traj.AxisVerticalVelocity, 0, traj.FlagApex); err != nil {
			return nil, err
		}
	}
	if (prev.Mach-1)*(cur.Mach-1) < 0 {
		if err := add(traj.AxisMach, 1, traj.FlagMach); err != nil {
			return nil, err
		}
	}
	for *nextRange <= cur.Position.X {
		if err := add(traj.AxisRange, *nextRange, traj.FlagRange); err != nil {
			return nil, err
		}
		*nextRange += rangeStep
	}
	for timeStep > 0 && *nextTime <= cur.Time {
		if err := add(traj.AxisTime, *nextTime, traj.FlagRange); err != nil {
			return nil, err
		}
		*nextTime += timeStep
	}

	sort.SliceStable(events, func(i, j int) bool { return events[i].Time < events[j].Time })
	// merge events that land on the same instant
	merged := events[:0]
	for _, ev := range events {
		if n := len(merged); n > 0 && ev.Time-merged[n-1].Time < sameEventEpsilon {
			merged[n-1].Flags |= ev.Flags
			continue
		}
		merged = append(merged, ev)
	}
	return merged, nil
}
