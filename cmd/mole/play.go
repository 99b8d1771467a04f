package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/mole-arcade/internal/config"
	"github.com/vovakirdan/mole-arcade/internal/core"
	"github.com/vovakirdan/mole-arcade/internal/mole"
	"github.com/vovakirdan/mole-arcade/internal/platform/tui"
	"github.com/vovakirdan/mole-arcade/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a session",
	Long: `Start a whack-a-mole session in the current terminal.

Controls:
  Mouse click  - Whack the mole
  R            - New game (after game over)
  ?            - Toggle help
  Q/Ctrl+C     - Quit

Finished runs are journaled to the database and can be replayed with
'mole replay <id>'.

Examples:
  mole play
  mole play --seed 42
  mole play --config ./my-mole.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	runtime := core.RuntimeConfig{
		ScreenW: width,
		ScreenH: height,
		Seed:    flagSeed,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run journal: %v\n", err)
		// Continue without storage - the game still works
		store = nil
	}

	runErr := tui.Run(tui.Options{
		Config:  cfg,
		Runtime: runtime,
		Store:   store,
		Logger:  logger,
		Audio:   tui.NewBellCue(os.Stdout, cfg.Audio.Bell),
		Clock:   mole.TickerClock{},
	})

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
