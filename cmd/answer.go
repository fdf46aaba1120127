package cmd

import (
	"fmt"
	"io"
	"os"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/mockmentor/internal/ui/theme"
)

var answerCmd = &cobra.Command{
	Use:   "answer <question-id>",
	Short: "Record a graded answer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("score") {
			return fmt.Errorf("--score is required")
		}
		score, _ := cmd.Flags().GetFloat64("score")
		confidence, _ := cmd.Flags().GetInt("confidence")
		asJSON, _ := cmd.Flags().GetBool("json")

		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		out, err := a.svc.SubmitAnswer(cmd.Context(), a.user, args[0], score, confidence)
		if err != nil {
			return err
		}
		if asJSON {
			return writeJSON(cmd.OutOrStdout(), out)
		}
		printAnswer(cmd.OutOrStdout(), out)
		return nil
	},
}

var gradeCmd = &cobra.Command{
	Use:   "grade <question-id>",
	Short: "Record an answer from a grader's JSON result",
	Long: "Reads a grader result (JSON, optionally inside a markdown code fence) from --file\n" +
		"or stdin. Unusable results are recorded with a neutral fallback score.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := readInput(cmd)
		if err != nil {
			return err
		}
		confidence, _ := cmd.Flags().GetInt("confidence")
		asJSON, _ := cmd.Flags().GetBool("json")

		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		out, err := a.svc.SubmitGrade(cmd.Context(), a.user, args[0], raw, confidence)
		if err != nil {
			return err
		}
		if asJSON {
			return writeJSON(cmd.OutOrStdout(), out)
		}

		w := cmd.OutOrStdout()
		if out.Invalid {
			lipgloss.Fprintln(w, theme.Warn.Render("grader result was unusable, recorded the fallback score"))
		}
		printAnswer(w, out.Answer)
		if out.Result.Feedback != "" {
			lipgloss.Fprintln(w, "\n"+theme.Body.Render(out.Result.Feedback))
		}
		if out.Result.KeyGap != "" {
			lipgloss.Fprintln(w, theme.Hint.Render("key gap: "+out.Result.KeyGap))
		}
		return nil
	},
}

var promptCmd = &cobra.Command{
	Use:   "prompt <question-id>",
	Short: "Print the grading prompt for an answer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		answer, _ := cmd.Flags().GetString("answer")
		if answer == "" {
			raw, err := readInput(cmd)
			if err != nil {
				return err
			}
			answer = string(raw)
		}

		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		p, err := a.svc.Prompt(args[0], answer)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), p)
		return nil
	},
}

// readInput reads --file, or stdin when the flag is empty or "-".
func readInput(cmd *cobra.Command) ([]byte, error) {
	path, _ := cmd.Flags().GetString("file")
	if path == "" || path == "-" {
		raw, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return raw, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return raw, nil
}

func init() {
	answerCmd.Flags().Float64("score", 0, "Score from 0 to 10")
	answerCmd.Flags().Int("confidence", 0, "Self-rated confidence from 1 to 3 (default 2)")
	answerCmd.Flags().Bool("json", false, "Print JSON instead of formatted text")

	gradeCmd.Flags().String("file", "", "Grader result file (default stdin)")
	gradeCmd.Flags().Int("confidence", 0, "Self-rated confidence from 1 to 3 (default 2)")
	gradeCmd.Flags().Bool("json", false, "Print JSON instead of formatted text")

	promptCmd.Flags().String("answer", "", "Candidate answer text")
	promptCmd.Flags().String("file", "", "Read the answer from a file (default stdin)")
}
