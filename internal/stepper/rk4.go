package stepper

import "github.com/san-kum/ballistics/internal/engine"

// RK4 is the fixed-step fourth-order strategy: four weighted slope stages
// per step.
type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (*RK4) Step(st engine.State, dt float64, accel engine.AccelFunc) engine.State {
	p, v := st.Position, st.Velocity
	half := dt / 2

	k1v := accel(p, v)
	k1p := v

	k2v := accel(p.Add(k1p.Scale(half)), v.Add(k1v.Scale(half)))
	k2p := v.Add(k1v.Scale(half))

	k3v := accel(p.Add(k2p.Scale(half)), v.Add(k2v.Scale(half)))
	k3p := v.Add(k2v.Scale(half))

	k4v := accel(p.Add(k3p.Scale(dt)), v.Add(k3v.Scale(dt)))
	k4p := v.Add(k3v.Scale(dt))

	sixth := dt / 6
	dv := k1v.Add(k2v.Scale(2)).Add(k3v.Scale(2)).Add(k4v).Scale(sixth)
	dp := k1p.Add(k2p.Scale(2)).Add(k3p.Scale(2)).Add(k4p).Scale(sixth)

	return engine.State{
		Time:     st.Time + dt,
		Position: p.Add(dp),
		Velocity: v.Add(dv),
	}
}
