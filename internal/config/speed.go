package config

import "fmt"

// SpeedPreset represents a named simulation speed.
type SpeedPreset string

const (
	SpeedSlow   SpeedPreset = "slow"
	SpeedNormal SpeedPreset = "normal"
	SpeedFast   SpeedPreset = "fast"
	SpeedTurbo  SpeedPreset = "turbo"
)

// TickRateForPreset returns the number of frames between automatic ticks.
func TickRateForPreset(preset SpeedPreset) (int, error) {
	switch preset {
	case SpeedSlow:
		return 30, nil
	case SpeedNormal:
		return 15, nil
	case SpeedFast:
		return 6, nil
	case SpeedTurbo:
		return 1, nil
	default:
		return 0, fmt.Errorf("unknown speed %q (want slow, normal, fast or turbo)", preset)
	}
}

// ApplySpeedPreset modifies the config based on a speed preset.
func ApplySpeedPreset(cfg *Config, preset SpeedPreset) error {
	rate, err := TickRateForPreset(preset)
	if err != nil {
		return err
	}
	cfg.Simulation.AutoTickRate = rate
	return nil
}
