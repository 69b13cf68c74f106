package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/nao1215/wordcrawl/internal/config"
	"github.com/nao1215/wordcrawl/internal/database"
	"github.com/spf13/cobra"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent crawl runs from the local database",
		Long: `History lists crawl runs recorded in the local database, newest
first. Each completed crawl is saved automatically; the database lives
in the XDG data directory (~/.local/share/wordcrawl on Linux).

Examples:
  # Show the 10 most recent runs
  wordcrawl history

  # Show the 3 most recent runs
  wordcrawl history -n 3`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", 10, "Maximum number of runs to show")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	if limit <= 0 {
		return fmt.Errorf("limit must be positive, got %d", limit)
	}

	// The history command never creates the database; an absent database
	// simply means no crawl has run yet.
	opts := database.Options{CreateIfNotExists: false, EnableWAL: true}
	db, err := database.Open(config.XDGDataDir(), opts)
	if err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), "No crawl runs recorded yet.")
		return nil
	}
	defer db.Close()

	runs, err := db.RecentRuns(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("failed to read crawl history: %w", err)
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No crawl runs recorded yet.")
		return nil
	}

	w := cmd.OutOrStdout()
	for _, run := range runs {
		fmt.Fprintf(w, "#%-5d %s  elapsed %-9s visited %d\n",
			run.ID,
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			run.Elapsed.Round(time.Millisecond),
			run.URLsVisited,
		)
		fmt.Fprintf(w, "       seeds: %s\n", strings.Join(run.Seeds, ", "))
		if top := formatTopWords(run, 3); top != "" {
			fmt.Fprintf(w, "       top words: %s\n", top)
		}
		fmt.Fprintln(w)
	}

	return nil
}

// formatTopWords renders up to n ranked words as "word(count)" pairs.
func formatTopWords(run database.RunRecord, n int) string {
	if len(run.WordCounts) == 0 {
		return ""
	}
	if n > len(run.WordCounts) {
		n = len(run.WordCounts)
	}

	parts := make([]string, 0, n)
	for _, wc := range run.WordCounts[:n] {
		parts = append(parts, fmt.Sprintf("%s(%d)", wc.Word, wc.Count))
	}
	return strings.Join(parts, ", ")
}
