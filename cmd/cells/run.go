package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-cells/internal/games/cells/core"
)

var (
	flagRunTicks  int
	flagRunPhases string
	flagRunTrace  bool
	flagRunSave   string
)

var runCmd = &cobra.Command{
	Use:   "run <board|collection/level|name>",
	Short: "Simulate a board without the TUI",
	Long: `Decode a board and advance it until every enemy is gone, nothing
moves any more or the tick limit is reached. The argument is an encoded
board, a level reference such as starter/3, or the name of a saved board.

Examples:
  cells run "1/3,1/0,0-0,0/1MR1x1E"
  cells run starter/2 --trace
  cells run my-machine --ticks 20 --phases generate,move,rotate
  cells run "1/4,1/0,0-3,0/1GR1MR1x1E" --save twin-movers`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().IntVar(&flagRunTicks, "ticks", 0, "Maximum ticks (0 = simulation.max_ticks from config)")
	runCmd.Flags().StringVar(&flagRunPhases, "phases", "", "Phase order, e.g. generate,rotate,move")
	runCmd.Flags().BoolVar(&flagRunTrace, "trace", false, "Print the board after every tick")
	runCmd.Flags().StringVar(&flagRunSave, "save", "", "Save the starting board under this name")
}

func runRun(cmd *cobra.Command, args []string) error {
	logger := newLogger("cells-run")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cat, err := loadCatalog(cfg)
	if err != nil {
		return fmt.Errorf("loading levels: %w", err)
	}
	stepper, err := cfg.Stepper()
	if err != nil {
		return err
	}
	if flagRunPhases != "" {
		phases, err := core.ParsePhases(strings.Split(flagRunPhases, ","))
		if err != nil {
			return fmt.Errorf("--phases: %w", err)
		}
		stepper = core.Stepper{Phases: phases}
	}
	maxTicks := cfg.Simulation.MaxTicks
	if flagRunTicks > 0 {
		maxTicks = flagRunTicks
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	// Board text always carries a size like "3,1"; level references never do.
	ref := args[0]
	var b *core.Board
	if lvl, lvlErr := cat.Find(ref); lvlErr == nil && !strings.Contains(ref, ",") {
		logger.Debug("running level", "collection", lvl.Collection, "level", lvl.Number)
		b, err = lvl.NewBoard()
	} else {
		b, err = resolveBoard(store, ref)
	}
	if err != nil {
		return err
	}

	if flagRunSave != "" {
		if store == nil {
			return fmt.Errorf("--save needs the progress database")
		}
		if err := store.SaveBoard(flagRunSave, core.Encode(b)); err != nil {
			return err
		}
		logger.Info("board saved", "name", flagRunSave)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Tick 0\n%s\n", core.RenderASCII(b))

	status, tick := stepper.RunEach(b, maxTicks, func(n int, st core.Status) {
		logger.Debug("tick", "n", n, "status", st, "enemies", b.Count(core.KindEnemy))
		if flagRunTrace {
			fmt.Fprintf(out, "Tick %d (%s)\n%s\n", n, st, core.RenderASCII(b))
		}
	})

	if !flagRunTrace {
		fmt.Fprintf(out, "Tick %d\n%s\n", tick, core.RenderASCII(b))
	}
	fmt.Fprintf(out, "Result: %s after %d ticks\n", status, tick)
	fmt.Fprintf(out, "Board:  %s\n", core.Encode(b))
	return nil
}
