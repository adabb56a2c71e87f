package stepper

import "github.com/san-kum/ballistics/internal/engine"

// Euler is the fixed-step first-order strategy: cheapest, least accurate.
// Velocity updates first and the position advance uses the fresh velocity.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (*Euler) Step(st engine.State, dt float64, accel engine.AccelFunc) engine.State {
	a := accel(st.Position, st.Velocity)
	v := st.Velocity.Add(a.Scale(dt))
	return engine.State{
		Time:     st.Time + dt,
		Position: st.Position.Add(v.Scale(dt)),
		Velocity: v,
	}
}
