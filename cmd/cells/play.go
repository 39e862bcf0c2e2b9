package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-cells/internal/games/cells"
	"github.com/vovakirdan/tui-cells/internal/games/cells/core"
	"github.com/vovakirdan/tui-cells/internal/platform/tui"
	"github.com/vovakirdan/tui-cells/internal/registry"
	"github.com/vovakirdan/tui-cells/internal/storage"
)

var (
	flagBoard   string
	flagSandbox bool
)

var playCmd = &cobra.Command{
	Use:   "play [collection] [level]",
	Short: "Play a level",
	Long: `Start playing a level, or the sandbox with --sandbox.

Without a level number the first unsolved level of the collection is
picked. Without a collection the level picker is shown.

Controls:
  Arrows/WASD  - Move cursor
  Space        - Grab / drop a cell
  Enter        - Start / stop the simulation
  N            - Single tick
  R            - Rewind to your arrangement
  C / O / X    - Cycle, rotate, delete (sandbox)
  B/Esc        - Back
  Q/Ctrl+C     - Quit

Examples:
  cells play starter
  cells play intermediate 4
  cells play --sandbox
  cells play --sandbox --board my-machine
  cells play --sandbox --board "1/4,1/0,0-3,0/1MR2x1E"`,
	Args: cobra.MaximumNArgs(2),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagBoard, "board", "", "Sandbox board: encoded text or saved board name")
	playCmd.Flags().BoolVar(&flagSandbox, "sandbox", false, "Play the free-editing sandbox")
}

func runPlay(_ *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fatal("%v", err)
	}
	cat, err := loadCatalog(cfg)
	if err != nil {
		fatal("loading levels: %v", err)
	}
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	rcfg := runtimeConfig()

	req := registry.Request{Config: cfg, Catalog: cat}
	mode := string(cells.ModePuzzle)
	switch {
	case flagSandbox || flagBoard != "":
		mode = string(cells.ModeSandbox)
		if flagBoard != "" {
			b, err := resolveBoard(store, flagBoard)
			if err != nil {
				fatal("%v", err)
			}
			req.Board = core.Encode(b)
		}

	case len(args) == 0:
		// No collection given: fall back to the interactive picker.
		runMenuLoop(cat, store, cfg, rcfg)
		return

	default:
		colID := args[0]
		col, ok := cat.Collection(colID)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown collection %q\n", colID)
			fmt.Fprintln(os.Stderr, "Run 'cells list' to see available collections.")
			os.Exit(1)
		}

		n := firstUnsolved(store, colID, len(col.Levels))
		if len(args) == 2 {
			if n, err = strconv.Atoi(args[1]); err != nil {
				fatal("invalid level number %q", args[1])
			}
		}
		if req.Level, err = cat.Level(colID, n); err != nil {
			fatal("%v", err)
		}
	}

	game, err := registry.Create(mode, req)
	if err != nil {
		fatal("creating game: %v", err)
	}
	if _, err := tui.Run(game, store, rcfg); err != nil {
		fatal("running game: %v", err)
	}
}

// resolveBoard decodes ref as board text, falling back to a saved board
// of that name.
func resolveBoard(store *storage.Store, ref string) (*core.Board, error) {
	b, decodeErr := core.Decode(ref)
	if decodeErr == nil {
		return b, nil
	}
	if store == nil {
		return nil, decodeErr
	}
	saved, err := store.LoadBoard(ref)
	if errors.Is(err, storage.ErrBoardNotFound) {
		return nil, fmt.Errorf("%q is neither a board nor a saved board name: %w", ref, decodeErr)
	}
	if err != nil {
		return nil, err
	}
	return core.Decode(saved.Board)
}

// firstUnsolved returns the first level the player has not solved yet, or
// 1 when everything (or nothing) is known.
func firstUnsolved(store *storage.Store, collection string, count int) int {
	if store == nil {
		return 1
	}
	done, err := store.CompletedLevels(collection)
	if err != nil {
		return 1
	}
	for n := 1; n <= count; n++ {
		if !done[n] {
			return n
		}
	}
	return 1
}
