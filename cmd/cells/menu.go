package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-cells/internal/config"
	"github.com/vovakirdan/tui-cells/internal/core"
	"github.com/vovakirdan/tui-cells/internal/games/cells/levels"
	"github.com/vovakirdan/tui-cells/internal/platform/tui"
	"github.com/vovakirdan/tui-cells/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the level picker",
	Long: `Start in interactive menu mode.

Pick a collection, then a level. After a level you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab/P        - Progress
  B/Esc        - Back
  Q            - Quit

Examples:
  cells menu
  cells menu --fps 30
  cells menu --db ./cells.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
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

	runMenuLoop(cat, store, cfg, runtimeConfig())
}

// runMenuLoop shows the menu until the user quits, running each picked
// game or the progress screen in turn.
func runMenuLoop(cat *levels.Catalog, store *storage.Store, cfg config.Config, rcfg core.RuntimeConfig) {
	newGame := gameFactory(cat, cfg)

	for {
		result, err := tui.RunMenu(cat, store, rcfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}

		// Update config with any size changes
		rcfg = result.Config

		if result.Quit {
			return
		}

		if result.Selection.Kind == tui.SelectProgress {
			goBack, err := tui.RunProgress(cat, store, rcfg.ScreenW, rcfg.ScreenH)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			if goBack {
				continue
			}
			return
		}

		game, err := newGame(result.Selection, rcfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		quit, err := tui.Run(game, store, rcfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
		if quit {
			return
		}
	}
}
