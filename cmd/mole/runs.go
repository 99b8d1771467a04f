package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mole-arcade/internal/storage"
)

var flagLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List journaled runs",
	Long: `Display the most recent journaled runs, newest first.

Examples:
  mole runs
  mole runs --limit 5`,
	Args: cobra.NoArgs,
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
}

func runRuns(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run journal: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	runs, err := store.RecentRuns(flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'mole play' to record one!")
		return
	}

	fmt.Printf("  %-8s  %-6s  %-9s  %-20s  %s\n", "ID", "Score", "Surface", "Seed", "Date")
	fmt.Printf("  %-8s  %-6s  %-9s  %-20s  %s\n", "--", "-----", "-------", "----", "----")

	for _, r := range runs {
		surface := fmt.Sprintf("%.0fx%.0f", r.SurfaceW, r.SurfaceH)
		fmt.Printf("  %-8s  %-6d  %-9s  %-20d  %s\n",
			r.ID[:8], r.Score, surface, r.Seed, r.CreatedAt.Format("2006-01-02 15:04"))
	}
}
