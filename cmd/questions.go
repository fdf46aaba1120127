package cmd

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/mockmentor/internal/ui/theme"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "List catalog questions",
	RunE: func(cmd *cobra.Command, args []string) error {
		difficulty, err := difficultyFlag(cmd)
		if err != nil {
			return err
		}
		topic, _ := cmd.Flags().GetString("topic")
		asJSON, _ := cmd.Flags().GetBool("json")

		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		qs := a.svc.Questions(topic, difficulty)
		if asJSON {
			return writeJSON(cmd.OutOrStdout(), qs)
		}

		w := cmd.OutOrStdout()
		if len(qs) == 0 {
			lipgloss.Fprintln(w, theme.Hint.Render("No questions match. See `mockmentor topics`."))
			return nil
		}
		for _, q := range qs {
			lipgloss.Fprintf(w, "%s %s %s\n",
				theme.Title.Render(fmt.Sprintf("%-10s", q.ID)),
				theme.Label.Render(fmt.Sprintf("%-6s", q.Difficulty)),
				theme.Body.Render(q.Text))
		}
		return nil
	},
}

func init() {
	questionsCmd.Flags().String("topic", "", "Restrict to one topic")
	questionsCmd.Flags().String("difficulty", "", "Restrict to "+difficultyHelp())
	questionsCmd.Flags().Bool("json", false, "Print JSON instead of formatted text")
}
