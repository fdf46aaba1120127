package cmd

import (
	"errors"
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/mockmentor/internal/catalog"
	"github.com/abhisek/mockmentor/internal/selection"
	"github.com/abhisek/mockmentor/internal/ui/theme"
)

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Pick the next question to practice",
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, topic, err := selectionFlags(cmd)
		if err != nil {
			return err
		}
		asJSON, _ := cmd.Flags().GetBool("json")
		hints, _ := cmd.Flags().GetBool("hints")

		unseen, _ := cmd.Flags().GetBool("unseen")
		switch {
		case unseen && cmd.Flags().Changed("mode"):
			return errors.New("--mode cannot be combined with --unseen")
		case !unseen && cmd.Flags().Changed("difficulty"):
			return errors.New("--difficulty requires --unseen")
		}

		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		var q catalog.Question
		if unseen {
			difficulty, err := difficultyFlag(cmd)
			if err != nil {
				return err
			}
			q, err = a.svc.NextUnseen(cmd.Context(), a.user, topic, difficulty)
			if err != nil {
				return err
			}
		} else {
			q, err = a.svc.Next(cmd.Context(), a.user, mode, topic)
			if err != nil {
				return err
			}
		}

		if asJSON {
			return writeJSON(cmd.OutOrStdout(), q)
		}
		lipgloss.Fprintln(cmd.OutOrStdout(), renderQuestion(q, hints))
		return nil
	},
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Pick a set of questions for a practice session",
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, topic, err := selectionFlags(cmd)
		if err != nil {
			return err
		}
		count, _ := cmd.Flags().GetInt("count")
		if count < 1 {
			return fmt.Errorf("--count must be at least 1")
		}
		asJSON, _ := cmd.Flags().GetBool("json")

		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		qs, err := a.svc.Plan(cmd.Context(), a.user, mode, topic, count)
		if err != nil {
			return err
		}
		if asJSON {
			return writeJSON(cmd.OutOrStdout(), qs)
		}

		w := cmd.OutOrStdout()
		lipgloss.Fprintln(w, theme.Heading.Render(fmt.Sprintf("%s plan, %d questions", mode, len(qs))))
		for i, q := range qs {
			lipgloss.Fprintf(w, "%s %s %s\n",
				theme.Label.Render(fmt.Sprintf("%2d.", i+1)),
				theme.Title.Render(fmt.Sprintf("%-10s", q.ID)),
				theme.Body.Render(fmt.Sprintf("[%s/%s] %s", q.Topic, q.Difficulty, q.Text)))
		}
		return nil
	},
}

func selectionFlags(cmd *cobra.Command) (selection.Mode, string, error) {
	raw, _ := cmd.Flags().GetString("mode")
	mode, err := selection.ParseMode(raw)
	if err != nil {
		return "", "", err
	}
	topic, _ := cmd.Flags().GetString("topic")
	return mode, topic, nil
}

func difficultyFlag(cmd *cobra.Command) (catalog.Difficulty, error) {
	raw, _ := cmd.Flags().GetString("difficulty")
	return catalog.ParseDifficulty(raw)
}

// difficultyHelp lists the accepted difficulty names.
func difficultyHelp() string {
	var names []string
	for _, d := range catalog.AllDifficulties() {
		names = append(names, string(d))
	}
	return strings.Join(names, ", ")
}

func addSelectionFlags(cmd *cobra.Command) {
	cmd.Flags().String("mode", string(selection.ModeBalanced), "Selection mode: review, focus, explore or balanced")
	cmd.Flags().String("topic", "", "Restrict to one topic")
	cmd.Flags().Bool("json", false, "Print JSON instead of formatted text")
}

func init() {
	addSelectionFlags(nextCmd)
	nextCmd.Flags().Bool("hints", false, "Show hints")
	nextCmd.Flags().Bool("unseen", false, "Pick an unseen question weighted toward weak topics; replaces --mode")
	nextCmd.Flags().String("difficulty", "", "With --unseen, restrict to "+difficultyHelp())

	addSelectionFlags(planCmd)
	planCmd.Flags().Int("count", 5, "Number of questions")
}
