package cmd

import (
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/mockmentor/internal/match"
	"github.com/abhisek/mockmentor/internal/ui/theme"
)

var fitCmd = &cobra.Command{
	Use:   "fit",
	Short: "Score a candidate against a job description",
	Long: "Reads a document with a parsed resume under \"candidate\" and a parsed job\n" +
		"description under \"job\" from --file (JSON or YAML) or stdin (JSON).",
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := readFitInput(cmd)
		if err != nil {
			return err
		}
		asJSON, _ := cmd.Flags().GetBool("json")

		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		r := a.svc.Fit(in.Candidate, in.Job)
		if asJSON {
			return writeJSON(cmd.OutOrStdout(), r)
		}
		printFit(cmd.OutOrStdout(), r)
		return nil
	},
}

// readFitInput loads --file by extension, or JSON from stdin.
func readFitInput(cmd *cobra.Command) (match.Input, error) {
	path, _ := cmd.Flags().GetString("file")
	if path != "" && path != "-" {
		return match.LoadFile(path)
	}
	raw, err := readInput(cmd)
	if err != nil {
		return match.Input{}, err
	}
	return match.Parse(raw)
}

func printFit(w io.Writer, r match.Result) {
	lipgloss.Fprintln(w, theme.Title.Render(fmt.Sprintf("%s for %s", r.CandidateName, r.JobTitle)))
	lipgloss.Fprintf(w, "%s %s\n", theme.Label.Render("overall   "), theme.ForScore(r.OverallScore/10).Render(fmt.Sprintf("%.1f", r.OverallScore)))
	lipgloss.Fprintf(w, "%s %.1f%% required, %.1f%% preferred\n", theme.Label.Render("skills    "), r.Skills.RequiredPct, r.Skills.PreferredPct)
	exp := r.Experience.Status
	if r.Experience.Gap != "" {
		exp += " (" + r.Experience.Gap + ")"
	}
	lipgloss.Fprintf(w, "%s %s\n", theme.Label.Render("experience"), exp)
	if len(r.Strengths) > 0 {
		lipgloss.Fprintf(w, "%s %s\n", theme.Label.Render("strengths "), theme.Good.Render(strings.Join(r.Strengths, ", ")))
	}
	if len(r.Gaps) > 0 {
		lipgloss.Fprintf(w, "%s %s\n", theme.Label.Render("gaps      "), theme.Bad.Render(strings.Join(r.Gaps, ", ")))
	}
	if len(r.FocusAreas) > 0 {
		lipgloss.Fprintf(w, "%s %s\n", theme.Label.Render("focus on  "), strings.Join(r.FocusAreas, ", "))
	}
	lipgloss.Fprintln(w, "\n"+theme.Heading.Render(r.Recommendation))
}

func init() {
	fitCmd.Flags().String("file", "", "Fit input file, .json or .yaml (default stdin)")
	fitCmd.Flags().Bool("json", false, "Print JSON instead of formatted text")
}
