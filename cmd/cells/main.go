// cells is a terminal puzzle game about pushing cells into enemies.
//
// Usage:
//
//	cells list                  - List level collections
//	cells play [col] [level]    - Play a level (or --sandbox)
//	cells menu                  - Pick levels interactively
//	cells run <board|col/n>     - Simulate a board and print the result
//	cells progress [col]        - Show solved levels
//	cells boards ...            - Manage saved boards
//	cells serve                 - Start SSH server for remote play
//	cells api                   - Start the HTTP simulation API
//
// Global flags:
//
//	--fps <rate>         - Set UI frame rate (default: 60)
//	--db <path>          - Set database path (default: ~/.cells/cells.db)
//	--config <path>      - Use a custom config file
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-cells/internal/config"
	"github.com/vovakirdan/tui-cells/internal/core"
	"github.com/vovakirdan/tui-cells/internal/games/cells"
	"github.com/vovakirdan/tui-cells/internal/games/cells/levels"
	"github.com/vovakirdan/tui-cells/internal/platform/tui"
	"github.com/vovakirdan/tui-cells/internal/registry"
	"github.com/vovakirdan/tui-cells/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
	flagTheme    string
	flagSpeed    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cells",
	Short: "Cells - push movers into enemies in your terminal",
	Long: `Cells is a turn-based puzzle game. Arrange movers, pushers, sliders,
rotators and generators inside the build area, then run the simulation
until every enemy is destroyed.

Available commands:
  list      - Show level collections
  play      - Play a level or the sandbox
  menu      - Interactive level picker
  run       - Simulate a board without the TUI
  progress  - Show solved levels
  boards    - Manage saved sandbox boards
  serve     - Start SSH server for remote play
  api       - Start the HTTP simulation API

Examples:
  cells list
  cells play starter 3
  cells play --sandbox
  cells run starter/1 --trace
  cells serve --ssh :2222`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level: %w", err)
		}
		log.SetLevel(level)

		theme, ok := tui.ThemeByName(flagTheme)
		if !ok {
			return fmt.Errorf("unknown theme %q (want default or mono)", flagTheme)
		}
		tui.SetTheme(theme)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "UI frame rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.cells/cells.db", "Path to progress database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagTheme, "theme", "default", "Color theme: default, mono")
	rootCmd.PersistentFlags().StringVar(&flagSpeed, "speed", "", "Simulation speed: slow, normal, fast, turbo")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(boardsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(apiCmd)
}

func newLogger(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           log.GetLevel(),
	})
}

// loadConfig loads the configuration and applies the --speed preset.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagSpeed != "" {
		if err := config.ApplySpeedPreset(&cfg, config.SpeedPreset(flagSpeed)); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

// loadCatalog returns the embedded collections merged with the ones in
// the configured level directory.
func loadCatalog(cfg config.Config) (*levels.Catalog, error) {
	return levels.Load(cfg.Levels.Dir)
}

// openStore opens the progress database. The game still works without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open progress database: %v\n", err)
		return nil
	}
	return store
}

func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	return cfg
}

// gameFactory builds games for menu selections through the mode registry.
func gameFactory(cat *levels.Catalog, cfg config.Config) tui.GameFactory {
	return func(sel tui.MenuSelection, _ core.RuntimeConfig) (tui.Game, error) {
		req := registry.Request{Config: cfg, Catalog: cat, Level: sel.Level}
		switch sel.Kind {
		case tui.SelectLevel:
			return registry.Create(string(cells.ModePuzzle), req)
		case tui.SelectSandbox:
			return registry.Create(string(cells.ModeSandbox), req)
		default:
			return nil, fmt.Errorf("nothing to play for selection %d", sel.Kind)
		}
	}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
