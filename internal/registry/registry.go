// Package registry provides a global registry of game modes.
// Modes register themselves in init() functions, allowing the CLI and the
// SSH server to create games without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-cells/internal/config"
	"github.com/vovakirdan/tui-cells/internal/core"
	"github.com/vovakirdan/tui-cells/internal/games/cells/levels"
)

// Game is what the platform runs. Games contain pure logic with no
// Bubble Tea dependency; the platform handles input, timing and drawing.
type Game interface {
	ID() string
	Title() string

	// Reset initializes or restarts the game for the given screen.
	Reset(cfg core.RuntimeConfig)

	// Step advances the game by one frame.
	Step(in core.InputFrame) core.StepResult

	// Render draws into a pre-cleared screen.
	Render(dst *core.Screen)

	State() core.GameState
}

// Request carries everything a mode may need to build a game.
type Request struct {
	Config  config.Config
	Catalog *levels.Catalog
	Level   levels.Level // puzzle modes
	Board   string       // optional starting board for free-editing modes
}

// ModeInfo contains metadata about a registered mode.
type ModeInfo struct {
	ID    string
	Title string
}

// Factory creates a new game for a request.
type Factory func(req Request) (Game, error)

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a mode factory to the registry.
// Panics if a mode with the same ID is already registered.
func Register(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: mode %q already registered", id))
	}
	factories[id] = f
	titles[id] = title
}

// List returns all registered modes, sorted by ID.
func List() []ModeInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]ModeInfo, 0, len(factories))
	for id := range factories {
		result = append(result, ModeInfo{ID: id, Title: titles[id]})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create builds a game of the given mode.
func Create(id string, req Request) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown mode %q", id)
	}
	return f(req)
}

// Exists checks if a mode with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
