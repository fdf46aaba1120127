package cmd

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/mockmentor/internal/ui/theme"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent answers",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		asJSON, _ := cmd.Flags().GetBool("json")

		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		events, err := a.svc.History(cmd.Context(), a.user, limit)
		if err != nil {
			return fmt.Errorf("query history: %w", err)
		}
		if asJSON {
			return writeJSON(cmd.OutOrStdout(), events)
		}

		w := cmd.OutOrStdout()
		if len(events) == 0 {
			lipgloss.Fprintln(w, theme.Hint.Render("No answers recorded."))
			return nil
		}

		lipgloss.Fprintln(w, theme.Label.Render(fmt.Sprintf("%-5s  %-16s  %-10s  %-14s  %5s  %4s  %s",
			"Seq", "Answered", "Question", "Topic", "Score", "Conf", "Level")))
		lipgloss.Fprintln(w, theme.Label.Render(strings.Repeat("─", 72)))
		for _, e := range events {
			lipgloss.Fprintf(w, "%-5d  %-16s  %-10s  %-14s  %s  %4d  %s\n",
				e.Sequence,
				e.At.Local().Format("2006-01-02 15:04"),
				e.QuestionID,
				e.Topic,
				theme.ForScore(e.Score).Render(fmt.Sprintf("%5.1f", e.Score)),
				e.Confidence,
				theme.ForLevel(e.MasteryLevel).Render(fmt.Sprint(e.MasteryLevel)),
			)
		}
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the stored profile as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		data, err := a.svc.Export(cmd.Context(), a.user)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of answers to show (0 for all)")
	historyCmd.Flags().Bool("json", false, "Print JSON instead of formatted text")
}
