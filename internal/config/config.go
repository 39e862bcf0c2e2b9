// Package config provides YAML-based configuration loading for cells.
package config

import (
	"fmt"

	"github.com/vovakirdan/tui-cells/internal/games/cells/core"
)

// Config contains all configuration for cells.
type Config struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Sandbox    SandboxConfig    `yaml:"sandbox"`
	Levels     LevelsConfig     `yaml:"levels"`
	Server     ServerConfig     `yaml:"server"`
}

// SimulationConfig defines how ticks are run.
type SimulationConfig struct {
	Phases       []string `yaml:"phases"`         // phase order, e.g. [generate, rotate, move]
	AutoTickRate int      `yaml:"auto_tick_rate"` // frames between automatic ticks while running
	MaxTicks     int      `yaml:"max_ticks"`      // a run stops after this many ticks
}

// SandboxConfig defines the board created by the sandbox mode.
type SandboxConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// LevelsConfig points at extra level collections.
type LevelsConfig struct {
	Dir string `yaml:"dir"`
}

// ServerConfig defines the network front ends.
type ServerConfig struct {
	SSHAddr       string `yaml:"ssh_addr"`
	HostKeyPath   string `yaml:"host_key_path"`
	APIAddr       string `yaml:"api_addr"`
	StreamTickMS  int    `yaml:"stream_tick_ms"`  // default interval for /ws/run
	StreamMaxTick int    `yaml:"stream_max_tick"` // upper bound on ticks per stream
}

// Validate checks the configuration for values the game cannot run with.
func (c Config) Validate() error {
	if _, err := c.PhaseOrder(); err != nil {
		return fmt.Errorf("simulation.phases: %w", err)
	}
	if c.Simulation.AutoTickRate <= 0 {
		return fmt.Errorf("simulation.auto_tick_rate must be positive, got %d", c.Simulation.AutoTickRate)
	}
	if c.Simulation.MaxTicks <= 0 {
		return fmt.Errorf("simulation.max_ticks must be positive, got %d", c.Simulation.MaxTicks)
	}
	if c.Sandbox.Width <= 0 || c.Sandbox.Height <= 0 {
		return fmt.Errorf("sandbox size must be positive, got %dx%d", c.Sandbox.Width, c.Sandbox.Height)
	}
	if c.Sandbox.Width*c.Sandbox.Height > core.MaxCells {
		return fmt.Errorf("sandbox size %dx%d exceeds %d cells", c.Sandbox.Width, c.Sandbox.Height, core.MaxCells)
	}
	if c.Server.StreamTickMS < 0 || c.Server.StreamMaxTick < 0 {
		return fmt.Errorf("server stream limits must not be negative")
	}
	return nil
}

// PhaseOrder returns the configured phase order, or the default when none
// is set.
func (c Config) PhaseOrder() ([]core.Phase, error) {
	if len(c.Simulation.Phases) == 0 {
		return core.DefaultPhases, nil
	}
	return core.ParsePhases(c.Simulation.Phases)
}

// Stepper returns a stepper using the configured phase order.
func (c Config) Stepper() (core.Stepper, error) {
	phases, err := c.PhaseOrder()
	if err != nil {
		return core.Stepper{}, err
	}
	return core.Stepper{Phases: phases}, nil
}
