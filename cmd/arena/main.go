// arena is a terminal platform for real-time arena duels with session telemetry.
//
// Usage:
//
//	arena list               - List available arenas
//	arena play <arena>       - Run an arena session
//	arena menu               - Start menu to pick arenas interactively
//	arena serve              - Start SSH server for remote play
//	arena sessions <arena>   - Show recent sessions for an arena
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible sessions
//	--db <path>     - Set database path (default: ~/.arena/sessions.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import arenas to register them
	_ "github.com/neuroplay/arena/internal/games/skyfall"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arena",
	Short: "Arena - Real-time duels in your terminal",
	Long: `Arena is a terminal platform for fixed-tick, real-time duel simulations.
Every session records a behavioral telemetry stream and folds it into a
summary you can browse later.

Available commands:
  list      - Show all available arenas
  play      - Run a specific arena directly
  menu      - Interactive arena picker menu
  serve     - Start SSH server for remote play
  sessions  - View recent session summaries

Examples:
  arena list
  arena play skyfall
  arena play skyfall --difficulty hard --seed 42
  arena menu
  arena serve --ssh :2222
  arena sessions skyfall`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (ticks per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arena/sessions.db", "Path to sessions database")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(sessionsCmd)
}
