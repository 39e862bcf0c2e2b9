package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var flagProgressClear bool

var progressCmd = &cobra.Command{
	Use:   "progress [collection]",
	Short: "Show solved levels",
	Long: `Display the best completion of every solved level in a collection,
or a summary of all collections when none is given.

Examples:
  cells progress
  cells progress starter
  cells progress starter --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runProgress,
}

func init() {
	progressCmd.Flags().BoolVar(&flagProgressClear, "clear", false, "Forget all completions of the collection")
}

func runProgress(_ *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fatal("%v", err)
	}
	cat, err := loadCatalog(cfg)
	if err != nil {
		fatal("loading levels: %v", err)
	}

	store := openStore()
	if store == nil {
		fatal("progress needs the progress database")
	}
	defer store.Close()

	if len(args) == 0 {
		stats, err := store.GetAllCollectionStats()
		if err != nil {
			fatal("retrieving progress: %v", err)
		}
		fmt.Printf("  %-14s  %-8s  %-11s  %s\n", "Collection", "Solved", "Completions", "Last played")
		fmt.Printf("  %-14s  %-8s  %-11s  %s\n", "----------", "------", "-----------", "-----------")
		for _, c := range cat.Collections() {
			solved, runs, last := 0, 0, "-"
			if st, ok := stats[c.ID]; ok {
				solved, runs = st.LevelsSolved, st.Completions
				if !st.LastPlayed.IsZero() {
					last = st.LastPlayed.Format("2006-01-02 15:04")
				}
			}
			fmt.Printf("  %-14s  %-8s  %-11d  %s\n", c.ID, fmt.Sprintf("%d/%d", solved, len(c.Levels)), runs, last)
		}
		return
	}

	colID := args[0]
	col, ok := cat.Collection(colID)
	if !ok {
		fatal("unknown collection %q", colID)
	}

	if flagProgressClear {
		if err := store.ClearProgress(colID); err != nil {
			fatal("clearing progress: %v", err)
		}
		fmt.Printf("Progress for %s cleared.\n", col.Name)
		return
	}

	fmt.Printf("Progress - %s\n", col.Name)
	fmt.Println()

	fmt.Printf("  %-5s  %-24s  %-6s  %s\n", "Level", "Name", "Ticks", "Date")
	fmt.Printf("  %-5s  %-24s  %-6s  %s\n", "-----", "----", "-----", "----")

	solved := 0
	for _, lvl := range col.Levels {
		best, found, err := store.BestCompletion(colID, lvl.Number)
		if err != nil {
			fatal("retrieving progress: %v", err)
		}
		if !found {
			fmt.Printf("  %-5d  %-24s  %-6s  %s\n", lvl.Number, lvl.Title(), "-", "")
			continue
		}
		solved++
		fmt.Printf("  %-5d  %-24s  %-6d  %s\n", lvl.Number, lvl.Title(), best.Ticks, best.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	fmt.Printf("Solved: %d/%d\n", solved, len(col.Levels))
}
