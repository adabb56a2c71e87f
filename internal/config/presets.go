package config

// Presets are ready-made cartridge setups keyed by cartridge, then scenario.
var Presets = map[string]map[string]*Config{
	"308win": {
		"match": {
			Stepper: "rk4",
			Weapon:  WeaponConfig{SightHeightIn: 1.9, TwistRateIn: 11.25, ZeroDistanceYd: 100},
			Ammo: AmmoConfig{
				DragModel: "g7", BC: 0.243, MuzzleVelocityFPS: 2600, BulletWeightGr: 175,
			},
			Chart: ChartConfig{RangeYd: 1000, StepYd: 100},
		},
		"factory": {
			Stepper: "rk4",
			Weapon:  WeaponConfig{SightHeightIn: 1.5, TwistRateIn: 12, ZeroDistanceYd: 100},
			Ammo: AmmoConfig{
				DragModel: "g1", BC: 0.447, MuzzleVelocityFPS: 2820, BulletWeightGr: 150,
			},
			Chart: ChartConfig{RangeYd: 600, StepYd: 50},
		},
	},
	"65creedmoor": {
		"match": {
			Stepper: "rkf45",
			Weapon:  WeaponConfig{SightHeightIn: 2.0, TwistRateIn: 8, ZeroDistanceYd: 100},
			Ammo: AmmoConfig{
				DragModel: "g7", BC: 0.301, MuzzleVelocityFPS: 2750, BulletWeightGr: 140,
				PowderTempF: 59, TempModifierPct: 0.45, PowderSensitivity: true,
			},
			Chart: ChartConfig{RangeYd: 1200, StepYd: 100},
		},
		"hunting": {
			Stepper: "rk4",
			Weapon:  WeaponConfig{SightHeightIn: 1.75, TwistRateIn: 8, ZeroDistanceYd: 200},
			Ammo: AmmoConfig{
				DragModel: "g1", BC: 0.51, MuzzleVelocityFPS: 2700, BulletWeightGr: 143,
			},
			Chart: ChartConfig{RangeYd: 500, StepYd: 50},
		},
	},
	"22lr": {
		"standard": {
			Stepper: "rk4",
			Weapon:  WeaponConfig{SightHeightIn: 1.0, TwistRateIn: 16, ZeroDistanceYd: 50},
			Ammo: AmmoConfig{
				DragModel: "g1", BC: 0.138, MuzzleVelocityFPS: 1145, BulletWeightGr: 40,
			},
			Chart: ChartConfig{RangeYd: 200, StepYd: 25},
		},
		"subsonic": {
			Stepper: "rk4",
			Weapon:  WeaponConfig{SightHeightIn: 1.0, TwistRateIn: 16, ZeroDistanceYd: 50},
			Ammo: AmmoConfig{
				DragModel: "g1", BC: 0.125, MuzzleVelocityFPS: 1060, BulletWeightGr: 40,
			},
			Chart: ChartConfig{RangeYd: 150, StepYd: 25},
		},
	},
}

func GetPreset(cartridge, scenario string) *Config {
	scenarios, ok := Presets[cartridge]
	if !ok {
		return nil
	}
	cfg, ok := scenarios[scenario]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(cartridge string) []string {
	scenarios, ok := Presets[cartridge]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	return names
}
