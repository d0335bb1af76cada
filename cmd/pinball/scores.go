package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pinball/internal/games/pinball"
	"github.com/vovakirdan/tui-pinball/internal/storage"
)

var (
	flagRecent bool
	flagLimit  int
	flagClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show best or recent runs",
	Long: `Display the best runs: cleared tables first, then by money and
play time. With --recent, list the latest runs instead.

Examples:
  pinball scores
  pinball scores --recent --limit 20
  pinball scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "List the latest runs instead of the best")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded runs and scores")
}

func runScores(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	if flagClear {
		if err := store.ClearScores(pinball.ID); err != nil {
			return err
		}
		fmt.Fprintln(out, "All runs cleared.")
		return nil
	}

	var runs []storage.Run
	title := "Best Runs"
	if flagRecent {
		title = "Recent Runs"
		runs, err = store.RecentRuns(pinball.ID, flagLimit)
	} else {
		runs, err = store.BestRuns(pinball.ID, flagLimit)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s - Pinball\n\n", title)

	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Play 'pinball play' to set the first score!")
		return nil
	}

	printRuns(cmd, runs)

	stats, err := store.GetGameStats(pinball.ID)
	if err == nil {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Runs: %d  Cleared: %d  Best: $%d\n", stats.GamesCount, stats.Wins, stats.HighScore)
	}
	return nil
}

func printRuns(cmd *cobra.Command, runs []storage.Run) {
	out := cmd.OutOrStdout()

	// Print header
	fmt.Fprintf(out, "  %-4s  %-7s  %-7s  %-5s  %-5s  %-16s  %s\n", "Rank", "Result", "Money", "Balls", "Time", "Date", "Reason")
	fmt.Fprintf(out, "  %-4s  %-7s  %-7s  %-5s  %-5s  %-16s  %s\n", "----", "------", "-----", "-----", "----", "----", "------")

	for i, r := range runs {
		result := "failed"
		if r.Won() {
			result = "cleared"
		}
		fmt.Fprintf(out, "  %-4d  %-7s  %-7s  %-5d  %-5s  %-16s  %s\n",
			i+1,
			result,
			fmt.Sprintf("$%d", r.Money),
			r.Launches,
			fmt.Sprintf("%d:%02d", r.Duration/60, r.Duration%60),
			r.CreatedAt.Format("2006-01-02 15:04"),
			r.Reason,
		)
	}
}
