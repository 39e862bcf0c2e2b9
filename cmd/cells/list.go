package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-cells/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List level collections",
	Long: `Shows the embedded level collections and any found in the configured
level directory, with how many levels of each you have solved.`,
	Run: runList,
}

func runList(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fatal("%v", err)
	}
	cat, err := loadCatalog(cfg)
	if err != nil {
		fatal("loading levels: %v", err)
	}

	cols := cat.Collections()
	if len(cols) == 0 {
		fmt.Println("No level collections available.")
		return
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	fmt.Println("Level collections:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, c := range cols {
		if len(c.ID) > maxIDLen {
			maxIDLen = len(c.ID)
		}
	}

	fmt.Printf("  %-*s  %-8s  %s\n", maxIDLen, "ID", "Solved", "Name")
	fmt.Printf("  %-*s  %-8s  %s\n", maxIDLen, "--", "------", "----")

	for _, c := range cols {
		solved := 0
		if store != nil {
			if done, err := store.CompletedLevels(c.ID); err == nil {
				solved = len(done)
			}
		}
		fmt.Printf("  %-*s  %-8s  %s\n", maxIDLen, c.ID, fmt.Sprintf("%d/%d", solved, len(c.Levels)), c.Name)
	}

	fmt.Println()
	fmt.Println("Modes:")
	for _, m := range registry.List() {
		fmt.Printf("  %-*s  %s\n", maxIDLen, m.ID, m.Title)
	}

	fmt.Println()
	fmt.Println("Run 'cells play <id> [level]' to play a collection, or 'cells play --sandbox'.")
}
