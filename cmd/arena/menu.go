package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/neuroplay/arena/internal/core"
	"github.com/neuroplay/arena/internal/games/skyfall"
	"github.com/neuroplay/arena/internal/platform/tui"
	"github.com/neuroplay/arena/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with an arena picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select an arena.
After a session ends, you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select arena
  Tab          - Session history
  Q            - Quit

Examples:
  arena menu
  arena menu --fps 30
  arena menu --db ./sessions.db`,
	Run: runMenu,
}

func init() {
	// Uses global flags from main.go (--fps, --seed, --db)
}

func runMenu(_ *cobra.Command, _ []string) {
	store, queue := openSink()
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	// Get terminal size
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsSessions {
			goBack, sbErr := tui.RunSessionBoard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from the session board
		}

		gameID := menuResult.GameID
		if gameID == "" {
			break
		}

		switch gameID {
		case "skyfall":
			skyfall.SetConfigPath(flagConfig)
			skyfall.SetDifficultyPreset(flagDifficulty)
		}

		game, err := registry.Create(gameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating arena: %v\n", err)
			continue
		}

		if err := tui.Run(game, queue, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error running arena: %v\n", err)
			break
		}
	}
}
