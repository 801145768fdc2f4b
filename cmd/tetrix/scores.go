package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tetrix/internal/games/tetris"
	"github.com/vovakirdan/tetrix/internal/storage"
)

var (
	flagClearScores bool
	flagStats       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the high-score list",
	Long: `Display the top 10 scores with level, lines and date.

Examples:
  tetrix scores
  tetrix scores --stats
  tetrix scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Delete every recorded score")
	scoresCmd.Flags().BoolVar(&flagStats, "stats", false, "Also show aggregate statistics")
}

func runScores(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	if flagClearScores {
		if err := store.ClearScores(tetris.GameID); err != nil {
			return err
		}
		logger.Info("scores cleared", "db", flagDBPath)
		fmt.Fprintln(out, "High scores cleared.")
		return nil
	}

	scores, err := store.TopScores(tetris.GameID, storage.MaxScoresPerGame)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "High Scores - Tetrix")
	fmt.Fprintln(out)

	if len(scores) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Play 'tetrix play' to set the first high score!")
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-10s  %-5s  %-5s  %s\n", "Rank", "Score", "Level", "Lines", "Date")
	fmt.Fprintf(out, "  %-4s  %-10s  %-5s  %-5s  %s\n", "----", "-----", "-----", "-----", "----")
	for i, entry := range scores {
		fmt.Fprintf(out, "  %-4d  %-10d  %-5d  %-5d  %s\n",
			i+1, entry.Score, entry.Level, entry.Lines, entry.At.Local().Format("2006-01-02 15:04"))
	}

	best, err := store.HighScore(tetris.GameID)
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Best score: %d\n", best)

	if !flagStats {
		return nil
	}

	stats, err := store.GetGameStats(tetris.GameID)
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Games kept:   %d\n", stats.GamesCount)
	fmt.Fprintf(out, "Average:      %.0f\n", stats.AvgScore)
	fmt.Fprintf(out, "Total lines:  %d\n", stats.TotalLines)
	fmt.Fprintf(out, "Best level:   %d\n", stats.BestLevel)
	fmt.Fprintf(out, "Last played:  %s\n", stats.LastPlayed.Local().Format("2006-01-02 15:04"))
	return nil
}
