package stepper

import (
	"math"

	"github.com/san-kum/ballistics/internal/engine"
	"github.com/san-kum/ballistics/internal/geom"
)

// Runge-Kutta-Fehlberg 4(5) coefficients. The force model has no explicit
// time dependence, so only the stage weights matter.
var (
	b21 = 1.0 / 4.0
	b31 = 3.0 / 32.0
	b32 = 9.0 / 32.0
	b41 = 1932.0 / 2197.0
	b42 = -7200.0 / 2197.0
	b43 = 7296.0 / 2197.0
	b51 = 439.0 / 216.0
	b52 = -8.0
	b53 = 3680.0 / 513.0
	b54 = -845.0 / 4104.0
	b61 = -8.0 / 27.0
	b62 = 2.0
	b63 = -3544.0 / 2565.0
	b64 = 1859.0 / 4104.0
	b65 = -11.0 / 40.0

	// fourth-order solution weights
	c41 = 25.0 / 216.0
	c43 = 1408.0 / 2565.0
	c44 = 2197.0 / 4104.0
	c45 = -1.0 / 5.0

	// fifth-order solution weights
	c51 = 16.0 / 135.0
	c53 = 6656.0 / 12825.0
	c54 = 28561.0 / 56430.0
	c55 = -9.0 / 50.0
	c56 = 2.0 / 55.0
)

// RKF45 is the adaptive fifth-order strategy: an embedded 4th/5th-order
// pair whose difference estimates local error and drives the step size.
type RKF45 struct {
	safety   float64
	minScale float64
	maxScale float64
}

func NewRKF45() *RKF45 {
	return &RKF45{
		safety:   0.9,
		minScale: 0.2,
		maxScale: 10.0,
	}
}

// slope is the phase-space derivative: position changes by velocity,
// velocity by acceleration.
type slope struct {
	dp, dv geom.Vector
}

func (r *RKF45) Step(st engine.State, dt float64, accel engine.AccelFunc) engine.State {
	next, _ := r.StepAdaptive(st, dt, 1e-6, accel)
	return next
}

func (r *RKF45) StepAdaptive(st engine.State, dt, tol float64, accel engine.AccelFunc) (engine.State, float64) {
	p, v := st.Position, st.Velocity

	eval := func(dp, dv geom.Vector) slope {
		tp := p.Add(dp)
		tv := v.Add(dv)
		return slope{dp: tv, dv: accel(tp, tv)}
	}

	k1 := eval(geom.Vector{}, geom.Vector{})
	k2 := eval(k1.dp.Scale(dt*b21), k1.dv.Scale(dt*b21))
	k3 := eval(
		k1.dp.Scale(dt*b31).Add(k2.dp.Scale(dt*b32)),
		k1.dv.Scale(dt*b31).Add(k2.dv.Scale(dt*b32)),
	)
	k4 := eval(
		k1.dp.Scale(dt*b41).Add(k2.dp.Scale(dt*b42)).Add(k3.dp.Scale(dt*b43)),
		k1.dv.Scale(dt*b41).Add(k2.dv.Scale(dt*b42)).Add(k3.dv.Scale(dt*b43)),
	)
	k5 := eval(
		k1.dp.Scale(dt*b51).Add(k2.dp.Scale(dt*b52)).Add(k3.dp.Scale(dt*b53)).Add(k4.dp.Scale(dt*b54)),
		k1.dv.Scale(dt*b51).Add(k2.dv.Scale(dt*b52)).Add(k3.dv.Scale(dt*b53)).Add(k4.dv.Scale(dt*b54)),
	)
	k6 := eval(
		k1.dp.Scale(dt*b61).Add(k2.dp.Scale(dt*b62)).Add(k3.dp.Scale(dt*b63)).Add(k4.dp.Scale(dt*b64)).Add(k5.dp.Scale(dt*b65)),
		k1.dv.Scale(dt*b61).Add(k2.dv.Scale(dt*b62)).Add(k3.dv.Scale(dt*b63)).Add(k4.dv.Scale(dt*b64)).Add(k5.dv.Scale(dt*b65)),
	)

	p4 := p.Add(k1.dp.Scale(dt * c41)).Add(k3.dp.Scale(dt * c43)).Add(k4.dp.Scale(dt * c44)).Add(k5.dp.Scale(dt * c45))
	v4 := v.Add(k1.dv.Scale(dt * c41)).Add(k3.dv.Scale(dt * c43)).Add(k4.dv.Scale(dt * c44)).Add(k5.dv.Scale(dt * c45))

	p5 := p.Add(k1.dp.Scale(dt * c51)).Add(k3.dp.Scale(dt * c53)).Add(k4.dp.Scale(dt * c54)).Add(k5.dp.Scale(dt * c55)).Add(k6.dp.Scale(dt * c56))
	v5 := v.Add(k1.dv.Scale(dt * c51)).Add(k3.dv.Scale(dt * c53)).Add(k4.dv.Scale(dt * c54)).Add(k5.dv.Scale(dt * c55)).Add(k6.dv.Scale(dt * c56))

	errMax := 0.0
	measure := func(hi, lo, y, k geom.Vector) {
		for _, pair := range [3][3]float64{
			{hi.X - lo.X, y.X, k.X},
			{hi.Y - lo.Y, y.Y, k.Y},
			{hi.Z - lo.Z, y.Z, k.Z},
		} {
			scale := math.Abs(pair[1]) + math.Abs(dt*pair[2]) + 1e-10
			errMax = math.Max(errMax, math.Abs(pair[0])/scale)
		}
	}
	measure(p5, p4, p, k1.dp)
	measure(v5, v4, v, k1.dv)

	errRatio := errMax / tol
	var dtNext float64
	switch {
	case errRatio > 1:
		dtNext = dt * math.Max(r.minScale, r.safety*math.Pow(errRatio, -0.25))
	case errRatio > 0:
		dtNext = dt * math.Min(r.maxScale, r.safety*math.Pow(errRatio, -0.2))
	default:
		dtNext = dt * r.maxScale
	}

	return engine.State{Time: st.Time + dt, Position: p5, Velocity: v5}, dtNext
}
