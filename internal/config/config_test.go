package config

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/san-kum/ballistics/internal/shot"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Stepper != "rk4" {
		t.Errorf("expected stepper rk4, got %s", cfg.Stepper)
	}
	if cfg.Ammo.MuzzleVelocityFPS <= 0 {
		t.Error("muzzle velocity should be positive")
	}
	if cfg.Chart.RangeYd <= 0 {
		t.Error("chart range should be positive")
	}
}

func TestBuildShotConvertsUnits(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Weapon.SightHeightIn = 2.4
	cfg.Winds = []WindConfig{{SpeedMPH: 15, DirectionDeg: 90}}
	cfg.Chart.LookAngleDeg = 30

	s, err := cfg.BuildShot()
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(s.Weapon.SightHeight-0.2) > 1e-12 {
		t.Errorf("sight height: got %f ft", s.Weapon.SightHeight)
	}
	if math.Abs(s.LookAngle-math.Pi/6) > 1e-12 {
		t.Errorf("look angle: got %f rad", s.LookAngle)
	}

	w := s.Winds.At(0)
	if math.Abs(w.Velocity-22) > 1e-9 {
		t.Errorf("15 mph should be 22 fps, got %f", w.Velocity)
	}
	if w.UntilDistance != shot.SentinelDistance {
		t.Errorf("open wind segment should reach the sentinel, got %f", w.UntilDistance)
	}
}

func TestBuildShotRejectsUnknownDragModel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Ammo.DragModel = "g12"
	if _, err := cfg.BuildShot(); err == nil {
		t.Error("expected error for unknown drag model")
	}
}

func TestRunConfigOverrides(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Engine.MinimumVelocityFPS = 900
	cfg.Engine.MaxIterations = 1000

	rc := cfg.RunConfig()
	if rc.MinimumVelocity != 900 {
		t.Errorf("minimum velocity override lost: %f", rc.MinimumVelocity)
	}
	if rc.MaxIterations != 1000 {
		t.Errorf("max iterations override lost: %d", rc.MaxIterations)
	}
	if rc.MaxStepSizeFt != 0.5 {
		t.Errorf("untouched field should keep its default: %f", rc.MaxStepSizeFt)
	}
}

func TestNewStepper(t *testing.T) {
	for _, name := range []string{"", "euler", "rk4", "rkf45", "adaptive"} {
		cfg := DefaultConfig()
		cfg.Stepper = name
		if _, err := cfg.NewStepper(); err != nil {
			t.Errorf("stepper %q: %v", name, err)
		}
	}

	cfg := DefaultConfig()
	cfg.Stepper = "leapfrog"
	if _, err := cfg.NewStepper(); err == nil {
		t.Error("expected error for unknown stepper")
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shot.yaml")

	cfg := DefaultConfig()
	cfg.Ammo.MuzzleVelocityFPS = 3100
	cfg.Winds = []WindConfig{{SpeedMPH: 10, DirectionDeg: 270, UntilYd: 400}}
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Ammo.MuzzleVelocityFPS != 3100 {
		t.Errorf("muzzle velocity: got %f", loaded.Ammo.MuzzleVelocityFPS)
	}
	if len(loaded.Winds) != 1 || loaded.Winds[0].UntilYd != 400 {
		t.Errorf("winds not preserved: %+v", loaded.Winds)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("308win", "match")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Ammo.MuzzleVelocityFPS != 2600 {
		t.Errorf("expected 2600 fps, got %f", cfg.Ammo.MuzzleVelocityFPS)
	}

	if _, err := cfg.BuildShot(); err != nil {
		t.Errorf("preset should build a valid shot: %v", err)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("308win", "nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent scenario")
	}
	if cfg := GetPreset("nonexistent", "match"); cfg != nil {
		t.Error("expected nil for nonexistent cartridge")
	}
}

func TestListPresets(t *testing.T) {
	if presets := ListPresets("22lr"); len(presets) == 0 {
		t.Error("expected presets for 22lr")
	}
	if presets := ListPresets("nonexistent"); presets != nil {
		t.Error("expected nil for nonexistent cartridge")
	}
}

func TestAllPresetsBuild(t *testing.T) {
	for cartridge, scenarios := range Presets {
		for name, cfg := range scenarios {
			if _, err := cfg.BuildShot(); err != nil {
				t.Errorf("%s/%s: BuildShot: %v", cartridge, name, err)
			}
			if _, err := cfg.BuildEngine(); err != nil {
				t.Errorf("%s/%s: BuildEngine: %v", cartridge, name, err)
			}
		}
	}
}
