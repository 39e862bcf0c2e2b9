package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-cells/internal/games/cells/core"
	"github.com/vovakirdan/tui-cells/internal/storage"
)

var boardsCmd = &cobra.Command{
	Use:   "boards",
	Short: "Manage saved boards",
	Long: `Saved boards are named board strings kept in the progress database.
They can be opened in the sandbox with 'cells play --board <name>' and
simulated with 'cells run <name>'.`,
}

var boardsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved boards",
	Args:  cobra.NoArgs,
	RunE: withStore(func(store *storage.Store, _ []string) error {
		boards, err := store.ListBoards()
		if err != nil {
			return err
		}
		if len(boards) == 0 {
			fmt.Println("No saved boards.")
			return nil
		}

		maxNameLen := 4 // "Name" header
		for _, b := range boards {
			maxNameLen = max(maxNameLen, len(b.Name))
		}
		fmt.Printf("  %-*s  %-16s  %s\n", maxNameLen, "Name", "Updated", "Board")
		fmt.Printf("  %-*s  %-16s  %s\n", maxNameLen, "----", "-------", "-----")
		for _, b := range boards {
			fmt.Printf("  %-*s  %-16s  %s\n", maxNameLen, b.Name, b.UpdatedAt.Format("2006-01-02 15:04"), b.Board)
		}
		return nil
	}),
}

var boardsSaveCmd = &cobra.Command{
	Use:   "save <name> <board>",
	Short: "Save or replace a board",
	Args:  cobra.ExactArgs(2),
	RunE: withStore(func(store *storage.Store, args []string) error {
		b, err := core.Decode(args[1])
		if err != nil {
			return err
		}
		if err := store.SaveBoard(args[0], core.Encode(b)); err != nil {
			return err
		}
		fmt.Printf("Saved %s (%dx%d).\n", args[0], b.Width(), b.Height())
		return nil
	}),
}

var boardsShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a saved board",
	Args:  cobra.ExactArgs(1),
	RunE: withStore(func(store *storage.Store, args []string) error {
		saved, err := store.LoadBoard(args[0])
		if err != nil {
			return err
		}
		b, err := core.Decode(saved.Board)
		if err != nil {
			return fmt.Errorf("saved board %s: %w", saved.Name, err)
		}
		fmt.Println(saved.Board)
		fmt.Println()
		fmt.Print(core.RenderASCII(b))
		fmt.Printf("\nBuild area %s, %d enemies\n", b.BuildArea(), b.Count(core.KindEnemy))
		return nil
	}),
}

var boardsDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a saved board",
	Args:  cobra.ExactArgs(1),
	RunE: withStore(func(store *storage.Store, args []string) error {
		if err := store.DeleteBoard(args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted %s.\n", args[0])
		return nil
	}),
}

func init() {
	boardsCmd.AddCommand(boardsListCmd, boardsSaveCmd, boardsShowCmd, boardsDeleteCmd)
}

// withStore opens the database for the duration of a boards subcommand.
func withStore(fn func(*storage.Store, []string) error) func(*cobra.Command, []string) error {
	return func(_ *cobra.Command, args []string) error {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer store.Close()
		return fn(store, args)
	}
}
