// Package config is the user-facing file format. Fields carry the customary
// field units (yards, inches, mph, degrees); conversion to the engine's
// foot/radian system happens in the Build helpers.
package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/ballistics/internal/atmo"
	"github.com/san-kum/ballistics/internal/drag"
	"github.com/san-kum/ballistics/internal/engine"
	"github.com/san-kum/ballistics/internal/shot"
	"github.com/san-kum/ballistics/internal/stepper"
)

const (
	feetPerYard  = 3.0
	feetPerInch  = 1.0 / 12.0
	fpsPerMPH    = 22.0 / 15.0
	radPerDegree = math.Pi / 180
)

type Config struct {
	Stepper    string       `yaml:"stepper"`
	Weapon     WeaponConfig `yaml:"weapon"`
	Ammo       AmmoConfig   `yaml:"ammo"`
	Atmosphere AtmoConfig   `yaml:"atmosphere"`
	Winds      []WindConfig `yaml:"winds"`
	Chart      ChartConfig  `yaml:"chart"`
	Engine     EngineConfig `yaml:"engine"`
}

type WeaponConfig struct {
	SightHeightIn  float64 `yaml:"sight_height_in"`
	TwistRateIn    float64 `yaml:"twist_rate_in"`
	ZeroDistanceYd float64 `yaml:"zero_distance_yd"`
}

type AmmoConfig struct {
	DragModel         string  `yaml:"drag_model"`
	BC                float64 `yaml:"bc"`
	MuzzleVelocityFPS float64 `yaml:"muzzle_velocity_fps"`
	BulletWeightGr    float64 `yaml:"bullet_weight_gr"`
	PowderTempF       float64 `yaml:"powder_temp_f"`
	TempModifierPct   float64 `yaml:"temp_modifier_pct"`
	PowderSensitivity bool    `yaml:"powder_sensitivity"`
}

type AtmoConfig struct {
	AltitudeFt   float64 `yaml:"altitude_ft"`
	TemperatureF float64 `yaml:"temperature_f"`
}

type WindConfig struct {
	SpeedMPH     float64 `yaml:"speed_mph"`
	DirectionDeg float64 `yaml:"direction_deg"`
	// UntilYd is where the next segment takes over; zero means the rest of
	// the range.
	UntilYd float64 `yaml:"until_yd"`
}

type ChartConfig struct {
	RangeYd      float64 `yaml:"range_yd"`
	StepYd       float64 `yaml:"step_yd"`
	TimeStepS    float64 `yaml:"time_step_s"`
	LookAngleDeg float64 `yaml:"look_angle_deg"`
	CantAngleDeg float64 `yaml:"cant_angle_deg"`
}

// EngineConfig overrides individual engine tunables; zero values keep the
// defaults.
type EngineConfig struct {
	MaxStepSizeFt       float64 `yaml:"max_step_size_ft"`
	ChartResolution     int     `yaml:"chart_resolution"`
	ZeroFindingAccuracy float64 `yaml:"zero_finding_accuracy"`
	MinimumVelocityFPS  float64 `yaml:"minimum_velocity_fps"`
	MaximumDropFt       float64 `yaml:"maximum_drop_ft"`
	MaxIterations       int     `yaml:"max_iterations"`
}

func DefaultConfig() *Config {
	return &Config{
		Stepper: "rk4",
		Weapon: WeaponConfig{
			SightHeightIn:  1.9,
			TwistRateIn:    11.25,
			ZeroDistanceYd: 100,
		},
		Ammo: AmmoConfig{
			DragModel:         "g7",
			BC:                0.243,
			MuzzleVelocityFPS: 2600,
			BulletWeightGr:    175,
			PowderTempF:       59,
		},
		Atmosphere: AtmoConfig{TemperatureF: 59},
		Chart: ChartConfig{
			RangeYd: 1000,
			StepYd:  100,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// BuildShot converts the file units into an engine-ready shot.
func (c *Config) BuildShot() (shot.Shot, error) {
	curve, ok := drag.ByName(c.Ammo.DragModel)
	if !ok {
		return shot.Shot{}, fmt.Errorf("unknown drag model %q", c.Ammo.DragModel)
	}

	ammo := shot.NewAmmo(curve(c.Ammo.BC), c.Ammo.MuzzleVelocityFPS)
	ammo.BulletWeight = c.Ammo.BulletWeightGr
	ammo.PowderTemperature = c.Ammo.PowderTempF
	ammo.TempModifier = c.Ammo.TempModifierPct
	ammo.UsePowderSensitivity = c.Ammo.PowderSensitivity

	weapon := shot.NewWeapon(
		c.Weapon.SightHeightIn*feetPerInch,
		c.Weapon.TwistRateIn*feetPerInch,
		0,
	)

	s := shot.New(weapon, ammo)
	s.Atmo = atmo.New(c.Atmosphere.AltitudeFt, c.Atmosphere.TemperatureF)
	s.LookAngle = c.Chart.LookAngleDeg * radPerDegree
	s.CantAngle = c.Chart.CantAngleDeg * radPerDegree
	if len(c.Winds) > 0 {
		s.Winds = c.buildWinds()
	}
	return s, s.Validate()
}

func (c *Config) buildWinds() shot.Winds {
	winds := make(shot.Winds, 0, len(c.Winds))
	for _, w := range c.Winds {
		until := w.UntilYd * feetPerYard
		if until <= 0 {
			until = shot.SentinelDistance
		}
		winds = append(winds, shot.Wind{
			Velocity:      w.SpeedMPH * fpsPerMPH,
			DirectionFrom: w.DirectionDeg * radPerDegree,
			UntilDistance: until,
		})
	}
	if winds[len(winds)-1].UntilDistance < shot.SentinelDistance {
		winds = append(winds, shot.Wind{UntilDistance: shot.SentinelDistance})
	}
	return winds
}

// RunConfig applies the engine overrides on top of the defaults.
func (c *Config) RunConfig() engine.RunConfig {
	cfg := engine.DefaultRunConfig()
	if v := c.Engine.MaxStepSizeFt; v > 0 {
		cfg.MaxStepSizeFt = v
	}
	if v := c.Engine.ChartResolution; v > 0 {
		cfg.ChartResolution = v
	}
	if v := c.Engine.ZeroFindingAccuracy; v > 0 {
		cfg.ZeroFindingAccuracy = v
	}
	if v := c.Engine.MinimumVelocityFPS; v > 0 {
		cfg.MinimumVelocity = v
	}
	if v := c.Engine.MaximumDropFt; v > 0 {
		cfg.MaximumDrop = v
	}
	if v := c.Engine.MaxIterations; v > 0 {
		cfg.MaxIterations = v
	}
	return cfg
}

// NewStepper resolves the configured stepping strategy.
func (c *Config) NewStepper() (engine.Stepper, error) {
	switch c.Stepper {
	case "", "rk4":
		return stepper.NewRK4(), nil
	case "euler":
		return stepper.NewEuler(), nil
	case "rkf45", "adaptive":
		return stepper.NewRKF45(), nil
	}
	return nil, fmt.Errorf("unknown stepper %q", c.Stepper)
}

// BuildEngine assembles the engine from the stepper and tunable overrides.
func (c *Config) BuildEngine() (*engine.Engine, error) {
	st, err := c.NewStepper()
	if err != nil {
		return nil, err
	}
	return engine.New(c.RunConfig(), st)
}

func (c *Config) RangeFt() float64        { return c.Chart.RangeYd * feetPerYard }
func (c *Config) StepFt() float64         { return c.Chart.StepYd * feetPerYard }
func (c *Config) ZeroDistanceFt() float64 { return c.Weapon.ZeroDistanceYd * feetPerYard }
