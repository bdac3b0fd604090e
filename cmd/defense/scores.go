package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the best runs recorded in the database.

Examples:
  defense scores
  defense scores --limit 25
  defense scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all recorded scores")
}

func runScores(_ *cobra.Command, _ []string) {
	s, err := loadSetup(false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer s.close()

	store := s.openStore()
	if store == nil {
		os.Exit(1)
	}
	defer store.Close()
	ctx := context.Background()

	if flagScoresClear {
		if err := store.ClearScores(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Scores cleared.")
		return
	}

	scores, err := store.TopScores(ctx, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("High Scores - Tower Defense")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'defense play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-12s  %-10s  %-4s  %-3s  %s\n", "Rank", "Player", "Score", "Wave", "Lvl", "When")
	fmt.Printf("  %-4s  %-12s  %-10s  %-4s  %-3s  %s\n", "----", "------", "-----", "----", "---", "----")
	for i, e := range scores {
		fmt.Printf("  %-4d  %-12s  %-10s  %-4d  %-3d  %s\n",
			i+1, e.Player, humanize.Comma(int64(e.Score)), e.Wave, e.Level, humanize.Time(e.CreatedAt))
	}

	if stats, err := store.GetStats(ctx); err == nil {
		fmt.Println()
		fmt.Printf("Runs: %s  Best: %s  Avg: %s  Best wave: %d  Kills: %s\n",
			humanize.Comma(int64(stats.Runs)),
			humanize.Comma(int64(stats.HighScore)),
			humanize.CommafWithDigits(stats.AvgScore, 1),
			stats.BestWave,
			humanize.Comma(stats.Kills))
	}
}
