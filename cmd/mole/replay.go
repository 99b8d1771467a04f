package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mole-arcade/internal/mole"
	"github.com/vovakirdan/mole-arcade/internal/storage"
)

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Re-simulate a journaled run",
	Long: `Replay a run's journaled ticks and selects against a fresh session seeded
the same way, and check that the final score matches the recorded one.
Any unique ID prefix works.

Examples:
  mole replay 3f2a9c1e`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func runReplay(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run journal: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	run, err := store.FindRun(args[0])
	if err != nil {
		if errors.Is(err, storage.ErrRunNotFound) {
			fmt.Fprintf(os.Stderr, "Error: no run matches %q\n", args[0])
			fmt.Fprintln(os.Stderr, "Run 'mole runs' to see recorded runs.")
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}

	j, err := run.Journal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	final, err := mole.Replay(j)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error replaying run: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Run %s\n", run.ID)
	fmt.Println()
	fmt.Printf("  Seed:     %d\n", run.Seed)
	fmt.Printf("  Events:   %d (%d selects)\n", len(j.Events), j.Selects())
	fmt.Printf("  Phase:    %s\n", final.Phase)
	fmt.Printf("  Recorded: %d\n", run.Score)
	fmt.Printf("  Replayed: %d\n", final.Score)
	fmt.Println()

	if final.Score != run.Score {
		fmt.Fprintln(os.Stderr, "Error: replayed score does not match the journal")
		os.Exit(1)
	}
	fmt.Println("Replay matches.")
}
