package cells

import (
	"errors"

	"github.com/vovakirdan/tui-cells/internal/games/cells/core"
	"github.com/vovakirdan/tui-cells/internal/registry"
)

func init() {
	registry.Register(string(ModePuzzle), "Puzzle", newPuzzleFromRequest)
	registry.Register(string(ModeSandbox), "Sandbox", newSandboxFromRequest)
}

func newPuzzleFromRequest(req registry.Request) (registry.Game, error) {
	if req.Level.Board == "" {
		return nil, errors.New("puzzle mode needs a level")
	}
	opts, err := OptionsFromConfig(req.Config)
	if err != nil {
		return nil, err
	}
	g, err := NewPuzzle(req.Catalog, req.Level, opts)
	if err != nil {
		return nil, err
	}
	return g, nil
}

func newSandboxFromRequest(req registry.Request) (registry.Game, error) {
	opts, err := OptionsFromConfig(req.Config)
	if err != nil {
		return nil, err
	}
	var b *core.Board
	if req.Board != "" {
		if b, err = core.Decode(req.Board); err != nil {
			return nil, err
		}
	}
	return NewSandbox(b, req.Config.Sandbox.Width, req.Config.Sandbox.Height, opts), nil
}
