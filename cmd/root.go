package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/abhisek/mockmentor/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "mockmentor",
	Short: "Adaptive mock interview coach",
	Long: "mockmentor picks interview questions with spaced repetition and topic interleaving,\n" +
		"tracks per-question mastery, and reports progress by topic.",
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides MOCKMENTOR_DB env var)")
	rootCmd.PersistentFlags().String("user", "", "Profile to act on (overrides MOCKMENTOR_USER env var)")

	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(answerCmd)
	rootCmd.AddCommand(gradeCmd)
	rootCmd.AddCommand(promptCmd)
	rootCmd.AddCommand(fitCmd)
	rootCmd.AddCommand(interviewCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(topicsCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(masteryCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the configured path (MOCKMENTOR_DB or config file), then the default
// XDG path.
func resolveDBPath(cmd *cobra.Command, configured string) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if configured != "" {
		return configured, store.EnsureDir(configured)
	}
	return store.DefaultDBPath()
}

// resolveUser returns the --user flag, falling back to the configured user.
func resolveUser(cmd *cobra.Command, configured string) string {
	if u, _ := cmd.Flags().GetString("user"); u != "" {
		return u
	}
	return configured
}
