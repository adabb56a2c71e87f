package shot

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/ballistics/internal/drag"
)

func TestWindBoundaryIsExclusive(t *testing.T) {
	winds := Winds{
		{Velocity: 10, DirectionFrom: 0, UntilDistance: 300},
		{Velocity: 20, DirectionFrom: math.Pi / 2, UntilDistance: 600},
		{Velocity: 5, DirectionFrom: math.Pi, UntilDistance: SentinelDistance},
	}
	if err := winds.Validate(); err != nil {
		t.Fatalf("valid winds rejected: %v", err)
	}

	if got := winds.At(299.9); got.Velocity != 10 {
		t.Errorf("inside first segment: got %f fps", got.Velocity)
	}
	// exactly on the boundary belongs to the next segment
	if got := winds.At(300); got.Velocity != 20 {
		t.Errorf("on boundary: got %f fps, want next segment's 20", got.Velocity)
	}
	if got := winds.At(600); got.Velocity != 5 {
		t.Errorf("on second boundary: got %f fps, want sentinel's 5", got.Velocity)
	}
}

func TestWindValidation(t *testing.T) {
	outOfOrder := Winds{
		{UntilDistance: 500},
		{UntilDistance: 400},
		{UntilDistance: SentinelDistance},
	}
	if err := outOfOrder.Validate(); !errors.Is(err, ErrWindOrder) {
		t.Errorf("out-of-order winds: got %v", err)
	}

	uncovered := Winds{{UntilDistance: 500}}
	if err := uncovered.Validate(); !errors.Is(err, ErrWindCoverage) {
		t.Errorf("missing sentinel: got %v", err)
	}

	if err := (Winds{}).Validate(); !errors.Is(err, ErrWindCoverage) {
		t.Errorf("empty winds: got %v", err)
	}
}

func TestPowderSensitivity(t *testing.T) {
	a := NewAmmo(drag.Zero, 2600)
	a.PowderTemperature = 59
	a.TempModifier = 1.5

	// flag off: nominal velocity regardless of temperature
	if got := a.VelocityAtTemperature(0); got != 2600 {
		t.Errorf("sensitivity disabled: got %f", got)
	}

	a.UsePowderSensitivity = true
	cold := a.VelocityAtTemperature(59 - 15)
	want := 2600 * (1 - 1.5/100)
	if math.Abs(cold-want) > 1e-9 {
		t.Errorf("cold powder: got %f, want %f", cold, want)
	}
	if got := a.VelocityAtTemperature(59); got != 2600 {
		t.Errorf("at powder temperature: got %f", got)
	}
	if hot := a.VelocityAtTemperature(59 + 30); hot <= 2600 {
		t.Errorf("hot powder should speed up: got %f", hot)
	}
}

func TestBarrelAngles(t *testing.T) {
	s := New(NewWeapon(0.25, 0, 0.002), NewAmmo(drag.Zero, 2600))
	s.LookAngle = 0.01
	s.RelativeAngle = 0.003

	if got := s.BarrelElevation(); math.Abs(got-(0.01+0.002+0.003)) > 1e-12 {
		t.Errorf("no cant elevation: got %f", got)
	}
	if got := s.BarrelAzimuth(); got != 0 {
		t.Errorf("no cant azimuth: got %f", got)
	}

	s.CantAngle = math.Pi / 2
	// full cant moves the whole correction into azimuth
	if got := s.BarrelElevation(); math.Abs(got-0.01) > 1e-12 {
		t.Errorf("canted elevation: got %f", got)
	}
	if got := s.BarrelAzimuth(); math.Abs(got-0.005) > 1e-12 {
		t.Errorf("canted azimuth: got %f", got)
	}
}

func TestInitialState(t *testing.T) {
	s := New(NewWeapon(0.2, 0, 0), NewAmmo(drag.Zero, 2600))

	p := s.InitialPosition()
	if math.Abs(p.Y+0.2) > 1e-12 || p.X != 0 || p.Z != 0 {
		t.Errorf("initial position: %+v", p)
	}

	v := s.InitialVelocity()
	if math.Abs(v.Magnitude()-2600) > 1e-9 {
		t.Errorf("initial speed: %f", v.Magnitude())
	}
	if v.Y != 0 || v.Z != 0 {
		t.Errorf("flat shot should fly straight downrange: %+v", v)
	}
}

func TestWindVectorComponents(t *testing.T) {
	s := New(NewWeapon(0, 0, 0), NewAmmo(drag.Zero, 2600))
	s.Winds = ConstantWind(10, 0)

	v := s.WindAt(100)
	if math.Abs(v.X-10) > 1e-12 || math.Abs(v.Y) > 1e-12 || math.Abs(v.Z) > 1e-12 {
		t.Errorf("tailwind vector: %+v", v)
	}

	s.Winds = ConstantWind(10, math.Pi/2)
	v = s.WindAt(100)
	if math.Abs(v.Z-10) > 1e-12 || math.Abs(v.X) > 1e-9 {
		t.Errorf("crosswind vector: %+v", v)
	}
}

func TestShotValidate(t *testing.T) {
	s := New(NewWeapon(0.2, 0, 0), Ammo{})
	if err := s.Validate(); !errors.Is(err, ErrNoDrag) {
		t.Errorf("missing drag: got %v", err)
	}

	s.Ammo = NewAmmo(drag.G7(0.3), 0)
	if err := s.Validate(); !errors.Is(err, ErrNoVelocity) {
		t.Errorf("zero velocity: got %v", err)
	}

	s.Ammo = NewAmmo(drag.G7(0.3), 2600)
	if err := s.Validate(); err != nil {
		t.Errorf("valid shot rejected: %v", err)
	}
}
