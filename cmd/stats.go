package cmd

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/mockmentor/internal/catalog"
	"github.com/abhisek/mockmentor/internal/coach"
	"github.com/abhisek/mockmentor/internal/ui/components"
	"github.com/abhisek/mockmentor/internal/ui/theme"
)

const statsWidth = 60

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show mastery by topic and a practice recommendation",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		an, err := a.svc.Analytics(cmd.Context(), a.user)
		if err != nil {
			return err
		}
		if asJSON {
			return writeJSON(cmd.OutOrStdout(), an)
		}
		lipgloss.Fprintln(cmd.OutOrStdout(), renderStats(a.user, an, a.svc.Catalog()))
		return nil
	},
}

func renderStats(user string, an coach.Analytics, cat *catalog.Catalog) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Progress for " + user))
	b.WriteString("\n")
	b.WriteString(theme.Label.Render(fmt.Sprintf("%d answers over %d sessions, %d due for review",
		an.TotalAnswered, an.TotalSessions, an.DueForReview)))
	b.WriteString("\n\n")

	labels := make([]string, len(an.Topics))
	labelWidth := 0
	for i, ts := range an.Topics {
		labels[i] = ts.Topic
		if t, ok := cat.Topic(ts.Topic); ok && t.Name != "" {
			labels[i] = t.Name
		}
		labelWidth = max(labelWidth, len(labels[i]))
	}
	for i, ts := range an.Topics {
		bar := components.ProgressBar{
			Label:       labels[i],
			LabelWidth:  labelWidth,
			Percent:     ts.MasteryPercentage / 100,
			ShowPercent: true,
			Width:       statsWidth,
		}
		b.WriteString(bar.View())
		b.WriteString(theme.Label.Render(fmt.Sprintf("  %d/%d mastered, %d due", ts.Mastered, ts.TotalQuestions, ts.DueCount)))
		b.WriteString("\n")
	}

	if len(an.RecentScores) > 0 {
		b.WriteString("\n")
		b.WriteString(theme.Label.Render("recent "))
		for _, s := range an.RecentScores {
			b.WriteString(theme.ForScore(s).Render(fmt.Sprintf("%.0f ", s)))
		}
		b.WriteString("\n")
	}

	rec := an.Recommendation
	b.WriteString("\n")
	b.WriteString(theme.Heading.Render("Next: " + string(rec.Mode)))
	if rec.SuggestedTopic != "" {
		b.WriteString(theme.Body.Render(" on " + rec.SuggestedTopic))
	}
	return b.String()
}

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List question topics",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		topics := a.svc.Topics()
		if asJSON {
			return writeJSON(cmd.OutOrStdout(), topics)
		}
		w := cmd.OutOrStdout()
		for _, t := range topics {
			lipgloss.Fprintf(w, "%s %s %s\n",
				theme.Title.Render(fmt.Sprintf("%-14s", t.ID)),
				theme.Label.Render(fmt.Sprintf("%3d", t.Count)),
				theme.Body.Render(t.Description))
		}
		return nil
	},
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show answer count, average score and weakest topic",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		u, err := a.svc.Report(cmd.Context(), a.user)
		if err != nil {
			return err
		}
		if asJSON {
			return writeJSON(cmd.OutOrStdout(), u)
		}

		w := cmd.OutOrStdout()
		if u.Answered == 0 {
			lipgloss.Fprintln(w, theme.Hint.Render("No answers yet. Try `mockmentor next`."))
			return nil
		}
		lipgloss.Fprintf(w, "%s %d\n", theme.Label.Render("answered     "), u.Answered)
		lipgloss.Fprintf(w, "%s %s\n", theme.Label.Render("average score"), theme.ForScore(u.AverageScore).Render(fmt.Sprintf("%.1f", u.AverageScore)))
		if u.WeakestTopic != "" {
			lipgloss.Fprintf(w, "%s %s %s\n", theme.Label.Render("weakest topic"), theme.Warn.Render(u.WeakestTopic),
				theme.Label.Render(fmt.Sprintf("(%.0f%%)", u.WeakestScore*100)))
		}
		return nil
	},
}

var masteryCmd = &cobra.Command{
	Use:   "mastery <question-id>",
	Short: "Show the mastery record for one question",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		r, err := a.svc.Mastery(cmd.Context(), a.user, args[0])
		if err != nil {
			return err
		}
		if asJSON {
			return writeJSON(cmd.OutOrStdout(), r)
		}
		lipgloss.Fprintln(cmd.OutOrStdout(), theme.Heading.Render(args[0])+"  "+renderRecord(r, a.svc.Now()))
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{statsCmd, topicsCmd, reportCmd, masteryCmd} {
		c.Flags().Bool("json", false, "Print JSON instead of formatted text")
	}
}
