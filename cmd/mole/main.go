// mole is a terminal whack-a-mole game.
//
// Usage:
//
//	mole play            - Play a session
//	mole runs            - List journaled runs
//	mole replay <id>     - Re-simulate a run and check its score
//
// Global flags:
//
//	--seed <value>   - Set RNG seed for reproducible sessions
//	--db <path>      - Set run journal path (default: ~/.mole/runs.db)
//	--config <path>  - Use a custom config YAML
//	--log <path>     - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagLogPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mole",
	Short: "Whack-a-Mole - click the mole before time runs out",
	Long: `Whack-a-Mole is a timed reaction game for the terminal. After a short
countdown a mole appears at random spots; click it to score.

Available commands:
  play     - Play a session
  runs     - List journaled runs
  replay   - Re-simulate a journaled run

Examples:
  mole play
  mole play --seed 42
  mole runs
  mole replay 3f2a9c1e`,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.mole/runs.db", "Path to run journal database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Write logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(replayCmd)
}

// newLogger returns a logger writing to the --log file. Without the flag
// logs are discarded, since the game owns the terminal. The returned func
// closes the file.
func newLogger() (*log.Logger, func(), error) {
	var w io.Writer = io.Discard
	closeFn := func() {}

	if flagLogPath != "" {
		f, err := os.OpenFile(flagLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "mole",
		Level:           log.DebugLevel,
	})
	return logger, closeFn, nil
}
