package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/echo-arcade/internal/config"
	"github.com/vovakirdan/echo-arcade/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresReset bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the run history",
	Long: `Display the best recorded runs with their difficulty, kills and waves.

Use --difficulty to only list runs played on one preset.
Use --reset to delete the history and the best score.

Examples:
  echo scores
  echo scores --limit 25
  echo scores --difficulty hard
  echo scores --reset`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresReset, "reset", false, "Delete the run history and best score")
}

func runScores(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening scores database: %w", err)
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	if flagScoresReset {
		if err := store.ClearScores("echo"); err != nil {
			return err
		}
		fmt.Fprintln(out, "Run history and best score cleared.")
		return nil
	}

	var filter config.DifficultyPreset
	if flagDifficulty != "" {
		filter = difficulty()
	}
	return printScores(out, store, filter, flagScoresLimit)
}

// printScores writes the top runs, optionally for one preset only.
func printScores(out io.Writer, store *storage.Store, filter config.DifficultyPreset, limit int) error {
	if limit <= 0 {
		limit = 10
	}
	fetch := limit
	if filter != "" {
		// Filtered rows are dropped after the query, so over-fetch.
		fetch = limit * 10
	}

	scores, err := store.TopScores("echo", fetch)
	if err != nil {
		return fmt.Errorf("error retrieving scores: %w", err)
	}
	rows := scores[:0]
	for _, e := range scores {
		if filter != "" && e.Difficulty != string(filter) {
			continue
		}
		rows = append(rows, e)
		if len(rows) == limit {
			break
		}
	}

	title := "Run History - Echo"
	if filter != "" {
		title += fmt.Sprintf(" (%s)", filter)
	}
	fmt.Fprintln(out, title)
	fmt.Fprintln(out)

	if len(rows) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Play 'echo play' to set the first score!")
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-8s  %-8s  %-6s  %-6s  %s\n", "Rank", "Score", "Mode", "Kills", "Waves", "Date")
	fmt.Fprintf(out, "  %-4s  %-8s  %-8s  %-6s  %-6s  %s\n", "----", "-----", "----", "-----", "-----", "----")
	for i, e := range rows {
		mode := e.Difficulty
		if mode == "" {
			mode = "-"
		}
		fmt.Fprintf(out, "  %-4d  %-8d  %-8s  %-6d  %-6d  %s\n",
			i+1, e.Score, mode, e.Kills, e.Waves, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Fprintln(out)
	if best, ok, err := store.Best("echo").BestScore(); err == nil && ok {
		fmt.Fprintf(out, "Best: %d\n", best)
	}
	if stats, err := store.GetGameStats("echo"); err == nil && stats.GamesCount > 0 {
		fmt.Fprintf(out, "Runs: %d  Average: %.1f  Kills: %d\n", stats.GamesCount, stats.AvgScore, stats.TotalKills)
	}
	return nil
}

