package engine_test

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/ballistics/internal/drag"
	"github.com/san-kum/ballistics/internal/engine"
	"github.com/san-kum/ballistics/internal/shot"
	"github.com/san-kum/ballistics/internal/stepper"
	"github.com/san-kum/ballistics/internal/traj"
)

const testGravity = 32.17

func vacuumShot(elevationRad float64) shot.Shot {
	s := shot.New(shot.NewWeapon(0, 0, 0), shot.NewAmmo(drag.Zero, 2600))
	s.RelativeAngle = elevationRad
	return s
}

func testConfig(accuracy float64) engine.RunConfig {
	cfg := engine.DefaultRunConfig()
	cfg.GravityConstant = testGravity
	cfg.ZeroFindingAccuracy = accuracy
	return cfg
}

func TestConstructionRejectsInvalidConfig(t *testing.T) {
	cases := []func(*engine.RunConfig){
		func(c *engine.RunConfig) { c.MaxStepSizeFt = 0 },
		func(c *engine.RunConfig) { c.ChartResolution = 0 },
		func(c *engine.RunConfig) { c.ZeroFindingAccuracy = -1 },
		func(c *engine.RunConfig) { c.MaxIterations = 0 },
		func(c *engine.RunConfig) { c.MaximumDrop = 0 },
	}
	for i, mutate := range cases {
		cfg := engine.DefaultRunConfig()
		mutate(&cfg)
		if _, err := engine.New(cfg, stepper.NewRK4()); !errors.Is(err, engine.ErrInvalidConfig) {
			t.Errorf("case %d: got %v", i, err)
		}
	}

	if _, err := engine.New(engine.DefaultRunConfig(), nil); !errors.Is(err, engine.ErrNoStepper) {
		t.Errorf("nil stepper: got %v", err)
	}
}

func TestRunRejectsBadRangeLimit(t *testing.T) {
	e, err := engine.New(engine.DefaultRunConfig(), stepper.NewRK4())
	if err != nil {
		t.Fatal(err)
	}
	s := vacuumShot(0.01)
	if _, err := e.Run(&s, 0, 100, 0, traj.FlagAll); !errors.Is(err, engine.ErrInvalidConfig) {
		t.Errorf("zero range limit: got %v", err)
	}
}

// With zero drag every strategy must reproduce the closed-form parabola:
// apex at vy/g, return to launch height at 2*vx*vy/g.
func TestVacuumParabolaAllSteppers(t *testing.T) {
	cases := []struct {
		name     string
		stepper  engine.Stepper
		accuracy float64
	}{
		{"euler", stepper.NewEuler(), 0.05},
		{"rk4", stepper.NewRK4(), 1e-3},
		{"rkf45", stepper.NewRKF45(), 1e-3},
	}

	const elevation = 0.01
	vx := 2600 * math.Cos(elevation)
	vy := 2600 * math.Sin(elevation)
	wantApexTime := vy / testGravity
	wantZeroRange := 2 * vx * vy / testGravity

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e, err := engine.New(testConfig(tc.accuracy), tc.stepper)
			if err != nil {
				t.Fatal(err)
			}
			s := vacuumShot(elevation)

			res, err := e.Run(&s, 5000, 5000, 0, traj.FlagApex|traj.FlagZeroDown)
			if err != nil {
				t.Fatal(err)
			}
			if res.Status != engine.Completed {
				t.Fatalf("status %s (%s)", res.Status, res.Reason)
			}

			var apex, zero *traj.Sample
			for i, smp := range res.Samples.Samples() {
				if smp.Flags.Has(traj.FlagApex) {
					apex = &res.Samples.Samples()[i]
				}
				if smp.Flags.Has(traj.FlagZeroDown) {
					zero = &res.Samples.Samples()[i]
				}
			}
			if apex == nil || zero == nil {
				t.Fatal("apex or zero-down event not recorded")
			}

			if diff := math.Abs(apex.Time - wantApexTime); diff > tc.accuracy {
				t.Errorf("apex time off by %g (got %f want %f)", diff, apex.Time, wantApexTime)
			}
			if diff := math.Abs(zero.Range() - wantZeroRange); diff > tc.accuracy*100 {
				t.Errorf("zero range off by %g (got %f want %f)", diff, zero.Range(), wantZeroRange)
			}
		})
	}
}

func TestSampleTimesStrictlyIncrease(t *testing.T) {
	e, err := engine.New(testConfig(5e-6), stepper.NewRK4())
	if err != nil {
		t.Fatal(err)
	}
	s := shot.New(shot.NewWeapon(0.25, 0, 0), shot.NewAmmo(drag.G7(0.3), 2600))
	s.RelativeAngle = 0.003
	s.Winds = shot.ConstantWind(15, math.Pi/2)

	res, err := e.Run(&s, 3000, 150, 0.05, traj.FlagAll)
	if err != nil {
		t.Fatal(err)
	}

	samples := res.Samples.Samples()
	if len(samples) < 10 {
		t.Fatalf("too few rows: %d", len(samples))
	}
	for i := 1; i < len(samples); i++ {
		if samples[i].Time <= samples[i-1].Time {
			t.Fatalf("time not increasing at row %d: %f then %f", i, samples[i-1].Time, samples[i].Time)
		}
	}
}

func TestRangeRowsLandOnGrid(t *testing.T) {
	e, err := engine.New(testConfig(5e-6), stepper.NewRK4())
	if err != nil {
		t.Fatal(err)
	}
	s := vacuumShot(0.005)

	res, err := e.Run(&s, 3000, 300, 0, traj.FlagRange)
	if err != nil {
		t.Fatal(err)
	}
	if res.Status != engine.Completed {
		t.Fatalf("status %s (%s)", res.Status, res.Reason)
	}

	rows := 0
	for _, smp := range res.Samples.Samples() {
		if !smp.Flags.Has(traj.FlagRange) {
			continue
		}
		rows++
		nearest := math.Round(smp.Range()/300) * 300
		if math.Abs(smp.Range()-nearest) > 1e-6 {
			t.Errorf("row range %f off the 300 ft grid", smp.Range())
		}
	}
	if rows != 11 {
		t.Errorf("expected 11 grid rows (0 through 3000), got %d", rows)
	}
}

func TestCrosswindProducesWindage(t *testing.T) {
	e, err := engine.New(testConfig(5e-6), stepper.NewRK4())
	if err != nil {
		t.Fatal(err)
	}
	s := shot.New(shot.NewWeapon(0.25, 0, 0), shot.NewAmmo(drag.G1(0.45), 2700))
	s.RelativeAngle = 0.002
	s.Winds = shot.ConstantWind(15, math.Pi/2) // from the shooter's right

	res, err := e.Run(&s, 1800, 1800, 0, traj.FlagRange)
	if err != nil {
		t.Fatal(err)
	}
	last, ok := res.Samples.Last()
	if !ok {
		t.Fatal("no samples")
	}
	if last.Windage() <= 0 {
		t.Errorf("wind from the right should push windage positive, got %f", last.Windage())
	}
}

func TestMinimumVelocityTermination(t *testing.T) {
	cfg := testConfig(5e-6)
	cfg.MinimumVelocity = 1200
	e, err := engine.New(cfg, stepper.NewRK4())
	if err != nil {
		t.Fatal(err)
	}
	s := shot.New(shot.NewWeapon(0.2, 0, 0), shot.NewAmmo(drag.G1(0.15), 2000))
	s.RelativeAngle = 0.002

	res, err := e.Run(&s, 1e5, 300, 0, traj.FlagRange)
	if err != nil {
		t.Fatal(err)
	}
	if res.Status != engine.Terminated || res.Reason != engine.MinimumVelocityReached {
		t.Fatalf("got %s / %s", res.Status, res.Reason)
	}
	if res.Samples.Len() == 0 {
		t.Error("terminated run should still carry the partial trajectory")
	}
}

func TestMaximumDropTermination(t *testing.T) {
	cfg := testConfig(5e-6)
	cfg.MaximumDrop = 10
	e, err := engine.New(cfg, stepper.NewRK4())
	if err != nil {
		t.Fatal(err)
	}
	s := vacuumShot(0)

	res, err := e.Run(&s, 1e5, 1000, 0, traj.FlagRange)
	if err != nil {
		t.Fatal(err)
	}
	if res.Reason != engine.MaximumDropReached {
		t.Fatalf("got %s / %s", res.Status, res.Reason)
	}
}

func TestMinimumAltitudeTermination(t *testing.T) {
	cfg := testConfig(5e-6)
	cfg.MinimumAltitude = -10
	cfg.MaximumDrop = 1e4
	e, err := engine.New(cfg, stepper.NewRK4())
	if err != nil {
		t.Fatal(err)
	}
	s := vacuumShot(0)

	res, err := e.Run(&s, 1e5, 1000, 0, traj.FlagRange)
	if err != nil {
		t.Fatal(err)
	}
	if res.Reason != engine.MinimumAltitudeReached {
		t.Fatalf("got %s / %s", res.Status, res.Reason)
	}
}

// A negated gravity constant never comes back down; the iteration fuse must
// stop it anyway.
func TestIterationFuseOnDivergentInput(t *testing.T) {
	cfg := testConfig(5e-6)
	cfg.GravityConstant = -testGravity
	cfg.MaxIterations = 500
	e, err := engine.New(cfg, stepper.NewRK4())
	if err != nil {
		t.Fatal(err)
	}
	s := vacuumShot(0.3)

	res, err := e.Run(&s, 1e9, 1e9, 0, traj.FlagRange)
	if err != nil {
		t.Fatal(err)
	}
	if res.Status != engine.Terminated || res.Reason != engine.MaxIterationsReached {
		t.Fatalf("divergent input: got %s / %s", res.Status, res.Reason)
	}
}

func TestMachCrossingFlagged(t *testing.T) {
	e, err := engine.New(testConfig(5e-6), stepper.NewRK4())
	if err != nil {
		t.Fatal(err)
	}
	s := shot.New(shot.NewWeapon(0.2, 0, 0), shot.NewAmmo(drag.G1(0.2), 1300))
	s.RelativeAngle = 0.002

	res, err := e.Run(&s, 2000, 2000, 0, traj.FlagMach)
	if err != nil {
		t.Fatal(err)
	}

	found := false
	for _, smp := range res.Samples.Samples() {
		if smp.Flags.Has(traj.FlagMach) {
			found = true
			if math.Abs(smp.Mach-1) > 1e-3 {
				t.Errorf("mach event localized at %f", smp.Mach)
			}
		}
	}
	if !found {
		t.Error("transonic shot never flagged the mach crossing")
	}
}

func TestFilterMaskOnlyAffectsRecording(t *testing.T) {
	e, err := engine.New(testConfig(5e-6), stepper.NewRK4())
	if err != nil {
		t.Fatal(err)
	}
	s := vacuumShot(0.005)

	res, err := e.Run(&s, 3000, 300, 0, traj.FlagNone)
	if err != nil {
		t.Fatal(err)
	}
	if res.Status != engine.Completed {
		t.Errorf("empty filter must not change the physics: %s / %s", res.Status, res.Reason)
	}
	if res.Samples.Len() != 0 {
		t.Errorf("empty filter recorded %d rows", res.Samples.Len())
	}
}

func TestZeroAngleVacuum(t *testing.T) {
	e, err := engine.New(testConfig(5e-6), stepper.NewRK4())
	if err != nil {
		t.Fatal(err)
	}
	s := shot.New(shot.NewWeapon(0.25, 0, 0), shot.NewAmmo(drag.Zero, 2600))

	const zeroDist = 600.0
	got, err := e.ZeroAngle(s, zeroDist)
	if err != nil {
		t.Fatal(err)
	}

	want := 0.25/zeroDist + testGravity*zeroDist/(2*2600*2600)
	if math.Abs(got-want) > 1e-5 {
		t.Errorf("zero elevation = %.7f, want about %.7f", got, want)
	}

	// the found elevation really puts the trajectory on the sight line
	s.Weapon.ZeroElevation = got
	res, err := e.Run(&s, zeroDist, zeroDist, 0, traj.FlagRange)
	if err != nil {
		t.Fatal(err)
	}
	last, _ := res.Samples.Last()
	if math.Abs(last.Height()) > 1e-4 {
		t.Errorf("residual drop at zero distance: %g ft", last.Height())
	}
}

func TestZeroAngleUnreachable(t *testing.T) {
	cfg := testConfig(5e-6)
	cfg.MinimumVelocity = 2500
	e, err := engine.New(cfg, stepper.NewRK4())
	if err != nil {
		t.Fatal(err)
	}
	s := shot.New(shot.NewWeapon(0.25, 0, 0), shot.NewAmmo(drag.G1(0.2), 2600))

	if _, err := e.ZeroAngle(s, 6000); !errors.Is(err, engine.ErrZeroNotConverged) {
		t.Errorf("unreachable zero distance: got %v", err)
	}
}

func TestRunMany(t *testing.T) {
	e, err := engine.New(testConfig(5e-6), stepper.NewRKF45())
	if err != nil {
		t.Fatal(err)
	}

	shots := make([]shot.Shot, 4)
	for i := range shots {
		shots[i] = shot.New(shot.NewWeapon(0.2, 0, 0), shot.NewAmmo(drag.G7(0.3), 2600))
		shots[i].RelativeAngle = 0.001 * float64(i+1)
	}

	results, err := e.RunMany(shots, 1500, 300, 0, traj.FlagRange)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != len(shots) {
		t.Fatalf("got %d results", len(results))
	}

	prevDrop := math.Inf(-1)
	for i, res := range results {
		if res.Status != engine.Completed {
			t.Fatalf("shot %d: %s / %s", i, res.Status, res.Reason)
		}
		last, _ := res.Samples.Last()
		if last.Height() <= prevDrop {
			t.Errorf("more elevation should land higher at the same range (shot %d)", i)
		}
		prevDrop = last.Height()
	}
}

func TestAdaptiveMatchesFixedStep(t *testing.T) {
	s := shot.New(shot.NewWeapon(0.2, 0, 0), shot.NewAmmo(drag.G7(0.35), 2700))
	s.RelativeAngle = 0.004

	run := func(st engine.Stepper) traj.Sample {
		e, err := engine.New(testConfig(5e-6), st)
		if err != nil {
			t.Fatal(err)
		}
		res, err := e.Run(&s, 2400, 2400, 0, traj.FlagRange)
		if err != nil {
			t.Fatal(err)
		}
		last, _ := res.Samples.Last()
		return last
	}

	fixed := run(stepper.NewRK4())
	adaptive := run(stepper.NewRKF45())

	if math.Abs(fixed.Height()-adaptive.Height()) > 1e-3 {
		t.Errorf("drop disagrees: rk4 %f vs rkf45 %f", fixed.Height(), adaptive.Height())
	}
	if math.Abs(fixed.Time-adaptive.Time) > 1e-4 {
		t.Errorf("flight time disagrees: %f vs %f", fixed.Time, adaptive.Time)
	}
}
