package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/neuroplay/arena/internal/core"
	"github.com/neuroplay/arena/internal/games/skyfall"
	"github.com/neuroplay/arena/internal/platform/tui"
	"github.com/neuroplay/arena/internal/registry"
	"github.com/neuroplay/arena/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play <arena>",
	Short: "Run an arena session",
	Long: `Start a session in the specified arena.

Controls:
  A/D, Left/Right - Move
  Space/W/Up      - Jump
  F/Enter         - Shoot
  P               - Pause
  R               - Restart (after game over)
  Q/Ctrl+C        - Quit

Difficulty options:
  easy   - Slower, less accurate opponent
  normal - Balanced opponent
  hard   - Faster, sharper opponent

Examples:
  arena play skyfall
  arena play skyfall --difficulty hard
  arena play skyfall --seed 42
  arena play skyfall --config ./my-skyfall.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom arena config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown arena %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arena list' to see available arenas.")
		os.Exit(1)
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// Set config path and difficulty before creation
	switch gameID {
	case "skyfall":
		skyfall.SetConfigPath(flagConfig)
		skyfall.SetDifficultyPreset(flagDifficulty)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating arena: %v\n", err)
		os.Exit(1)
	}

	store, queue := openSink()

	runErr := tui.Run(game, queue, cfg)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running arena: %v\n", runErr)
		os.Exit(1)
	}
}

// openSink opens the sessions database and wraps it with the local
// pending queue. The returned store may be nil; the queue never is.
// Previously cached summaries are flushed while the database is open.
func openSink() (*storage.Store, *storage.PendingQueue) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open sessions database: %v\n", err)
		store = nil
	}

	var sink storage.Sink
	if store != nil {
		sink = store
	}

	queue := storage.NewPendingQueue(sink, pendingDir(), 0, log.Default())
	if store != nil {
		//nolint:errcheck // Best-effort flush of earlier failures
		queue.Flush()
	}
	return store, queue
}

// pendingDir is where undeliverable session summaries are cached.
func pendingDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arena", "pending")
}
