package config

import (
	_ "embed"
)

//go:embed defaults/cells.yaml
var defaultYAML []byte

// DefaultConfig returns the hardcoded default configuration.
func DefaultConfig() Config {
	return Config{
		Simulation: SimulationConfig{
			Phases:       []string{"generate", "rotate", "move"},
			AutoTickRate: 15,
			MaxTicks:     500,
		},
		Sandbox: SandboxConfig{
			Width:  12,
			Height: 8,
		},
		Levels: LevelsConfig{
			Dir: "~/.cells/levels",
		},
		Server: ServerConfig{
			SSHAddr:       ":23234",
			APIAddr:       ":8080",
			StreamTickMS:  250,
			StreamMaxTick: 1000,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
