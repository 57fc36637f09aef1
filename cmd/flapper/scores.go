package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/flapper/internal/platform/tui"
	"github.com/vovakirdan/flapper/internal/storage"
)

var (
	flagClear       bool
	flagInteractive bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard",
	Long: `Display the top 10 scores.

Examples:
  flapper scores
  flapper scores --interactive
  flapper scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show high score, games played and streaks",
	Args:  cobra.NoArgs,
	Run:   runStats,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores and stats")
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse the leaderboard in a table")
}

func runScores(_ *cobra.Command, _ []string) {
	store := mustOpenStore()
	defer store.Close()

	if flagClear {
		if err := store.Clear(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Scores cleared.")
		return
	}

	entries, err := store.Leaderboard()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	if flagInteractive {
		sum, err := store.Summary()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
			os.Exit(1)
		}
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(entries, sum, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error running scoreboard: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Println("High Scores")
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'flapper play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-16s  %-8s  %s\n", "Rank", "Name", "Score", "Date")
	fmt.Printf("  %-4s  %-16s  %-8s  %s\n", "----", "----", "-----", "----")
	for i, e := range entries {
		fmt.Printf("  %-4d  %-16s  %-8d  %s\n", i+1, e.Name, e.Score, e.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
}

func runStats(_ *cobra.Command, _ []string) {
	store := mustOpenStore()
	defer store.Close()

	sum, err := store.Summary()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("High score:      %d\n", sum.HighScore)
	fmt.Printf("Games played:    %d\n", sum.GamesPlayed)
	fmt.Printf("Best streak:     %d\n", sum.BestStreak)
	fmt.Printf("Current streak:  %d\n", sum.CurrentStreak)
}

// mustOpenStore opens the scores database or exits. Read-only commands have
// nothing to show without it.
func mustOpenStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	return store
}
