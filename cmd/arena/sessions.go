package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/neuroplay/arena/internal/registry"
	"github.com/neuroplay/arena/internal/storage"
)

var flagSessionsLimit int

var sessionsCmd = &cobra.Command{
	Use:   "sessions <arena>",
	Short: "Show recent sessions for an arena",
	Long: `Display recent session summaries for the specified arena,
including the behavioral profile of the most recent one.

Examples:
  arena sessions skyfall
  arena sessions skyfall --limit 25`,
	Args: cobra.ExactArgs(1),
	Run:  runSessions,
}

func init() {
	sessionsCmd.Flags().IntVar(&flagSessionsLimit, "limit", 10, "Number of sessions to show")
}

func runSessions(cmd *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown arena %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arena list' to see available arenas.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating arena: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening sessions database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	sums, err := store.RecentSummaries(gameID, flagSessionsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving sessions: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Sessions - %s\n", title)
	fmt.Println()

	if len(sums) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Printf("Run 'arena play %s' to record the first one!\n", gameID)
		return
	}

	fmt.Printf("  %-16s  %-8s  %-6s  %-6s  %-7s  %s\n", "Date", "Score", "Time", "Acc", "React", "")
	fmt.Printf("  %-16s  %-8s  %-6s  %-6s  %-7s  %s\n", "----", "-----", "----", "---", "-----", "")

	for _, s := range sums {
		partial := ""
		if s.Partial {
			partial = "partial"
		}
		total := s.DurationMS / 1000
		fmt.Printf("  %-16s  %-8d  %2d:%02d  %5.0f%%  %5dms  %s\n",
			s.StartedAt.Format("2006-01-02 15:04"),
			s.Score,
			total/60, total%60,
			s.Shots.Accuracy*100,
			s.Reactions.MeanMS,
			partial,
		)
	}

	// Profile of the most recent session
	p := sums[0].Profile
	fmt.Println()
	fmt.Println("Latest profile:")
	fmt.Printf("  reaction mean %.0fms  best %.0fms  accuracy %.1f%%\n",
		p.ReactionMeanMS, p.ReactionBestMS, p.ShotAccuracy*100)
	fmt.Printf("  shots/min %.1f  moves/min %.1f  drifts %.0f  recovery mean %.0fms\n",
		p.ShotsPerMin, p.MovesPerMin, p.DriftCount, p.RecoveryMeanMS)

	if high, err := store.HighScore(gameID); err == nil {
		fmt.Println()
		fmt.Printf("Best: %d\n", high)
	}
}
