package cmd

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/mockmentor/internal/catalog"
	"github.com/abhisek/mockmentor/internal/coach"
	"github.com/abhisek/mockmentor/internal/match"
	"github.com/abhisek/mockmentor/internal/session"
	"github.com/abhisek/mockmentor/internal/store"
	"github.com/abhisek/mockmentor/internal/ui/components"
	"github.com/abhisek/mockmentor/internal/ui/theme"
)

var interviewCmd = &cobra.Command{
	Use:   "interview",
	Short: "Run a mock interview one question at a time",
}

var interviewStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Plan questions and start a new interview",
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

		var fit *match.Input
		if path, _ := cmd.Flags().GetString("fit"); path != "" {
			in, err := match.LoadFile(path)
			if err != nil {
				return err
			}
			fit = &in
		}

		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		opts := coach.InterviewOptions{Mode: mode, Topic: topic, Count: count}
		if fit != nil {
			r := a.svc.Fit(fit.Candidate, fit.Job)
			opts.Fit = &r
		}

		sess, err := a.svc.StartInterview(cmd.Context(), a.user, opts)
		if err != nil {
			return err
		}
		if asJSON {
			return writeJSON(cmd.OutOrStdout(), sess)
		}
		w := cmd.OutOrStdout()
		lipgloss.Fprintln(w, theme.Heading.Render(fmt.Sprintf("Interview started, %d questions", len(sess.Questions))))
		printInterviewQuestion(w, sess)
		return nil
	},
}

var interviewCurrentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the question being asked",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		sess, err := a.svc.CurrentInterview(cmd.Context(), a.user)
		if err != nil {
			return interviewErr(err)
		}
		if asJSON {
			status := interviewStatus{
				ID:       sess.ID,
				Depth:    sess.Depth,
				Progress: sess.Progress(),
				Complete: sess.Complete(),
			}
			if q, ok := sess.Current(); ok {
				status.Question = &q
			}
			return writeJSON(cmd.OutOrStdout(), status)
		}
		printInterviewQuestion(cmd.OutOrStdout(), sess)
		return nil
	},
}

var interviewAnswerCmd = &cobra.Command{
	Use:   "answer",
	Short: "Record a scored reply to the current question",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("score") {
			return fmt.Errorf("--score is required")
		}
		reply := coach.InterviewReply{}
		reply.Score, _ = cmd.Flags().GetFloat64("score")
		reply.Text, _ = cmd.Flags().GetString("text")
		reply.Feedback, _ = cmd.Flags().GetString("feedback")
		reply.Confidence, _ = cmd.Flags().GetInt("confidence")
		reply.FollowUp, _ = cmd.Flags().GetBool("follow-up")
		asJSON, _ := cmd.Flags().GetBool("json")

		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		turn, err := a.svc.AnswerInterview(cmd.Context(), a.user, reply)
		if err != nil {
			return interviewErr(err)
		}
		if asJSON {
			return writeJSON(cmd.OutOrStdout(), turn)
		}

		w := cmd.OutOrStdout()
		if turn.Mastery != nil {
			printAnswer(w, *turn.Mastery)
		} else {
			lipgloss.Fprintln(w, theme.Heading.Render(fmt.Sprintf("Recorded follow-up %d", turn.Answer.Depth)))
		}
		switch {
		case turn.Complete:
			lipgloss.Fprintln(w, theme.Good.Render("Interview complete. See `mockmentor interview report`."))
		case turn.FollowUp:
			lipgloss.Fprintln(w, theme.Hint.Render("Follow-up on the same question."))
		case turn.Next != nil:
			lipgloss.Fprintln(w, renderQuestion(*turn.Next, false))
		}
		return nil
	},
}

var interviewReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Evaluate the latest interview",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		r, err := a.svc.InterviewReport(cmd.Context(), a.user)
		if err != nil {
			return interviewErr(err)
		}
		if asJSON {
			return writeJSON(cmd.OutOrStdout(), r)
		}
		printInterviewReport(cmd.OutOrStdout(), r)
		return nil
	},
}

// interviewErr adds the next step to errors a user can act on.
func interviewErr(err error) error {
	switch {
	case errors.Is(err, store.ErrNoSession), errors.Is(err, session.ErrComplete):
		return fmt.Errorf("%w; start one with `mockmentor interview start`", err)
	}
	return err
}

// interviewStatus is the JSON form of `interview current`.
type interviewStatus struct {
	ID       string            `json:"id"`
	Depth    int               `json:"depth"`
	Question *catalog.Question `json:"question,omitempty"`
	Progress session.Progress  `json:"progress"`
	Complete bool              `json:"complete"`
}

func printInterviewQuestion(w io.Writer, sess *session.Session) {
	q, ok := sess.Current()
	if !ok {
		lipgloss.Fprintln(w, theme.Hint.Render("Interview complete. See `mockmentor interview report`."))
		return
	}
	p := sess.Progress()
	bar := components.NewProgressBar(fmt.Sprintf("question %d/%d", p.Current, p.Total), p.Percentage/100, true, statsWidth)
	lipgloss.Fprintln(w, bar.View())
	if sess.Depth > 0 {
		lipgloss.Fprintln(w, theme.Hint.Render(fmt.Sprintf("follow-up %d of %d", sess.Depth, session.MaxDepth)))
	}
	lipgloss.Fprintln(w, renderQuestion(q, false))
}

func printInterviewReport(w io.Writer, r *session.Report) {
	title := "Interview report"
	if r.JobTitle != "" {
		title += ": " + r.JobTitle
	}
	lipgloss.Fprintln(w, theme.Title.Render(title))
	lipgloss.Fprintf(w, "%s %s\n", theme.Label.Render("overall "), theme.ForScore(r.OverallScore/10).Render(fmt.Sprintf("%.1f", r.OverallScore)))
	lipgloss.Fprintf(w, "%s %d in %.1f min\n", theme.Label.Render("answered"), r.QuestionsAnswered, r.DurationMinutes)
	if r.MatchScore != nil {
		lipgloss.Fprintf(w, "%s %.1f\n", theme.Label.Render("fit     "), *r.MatchScore)
	}

	topics := make([]string, 0, len(r.TopicBreakdown))
	labelWidth := 0
	for t := range r.TopicBreakdown {
		topics = append(topics, t)
		labelWidth = max(labelWidth, len(t))
	}
	sort.Strings(topics)
	lipgloss.Fprintln(w)
	for _, t := range topics {
		bar := components.ProgressBar{
			Label:       t,
			LabelWidth:  labelWidth,
			Percent:     r.TopicBreakdown[t] / 10,
			ShowPercent: true,
			Width:       statsWidth,
		}
		lipgloss.Fprintln(w, bar.View())
	}
	for _, t := range r.StrongAreas {
		lipgloss.Fprintln(w, theme.Good.Render("strong: "+t))
	}
	for _, t := range r.ImprovementAreas {
		lipgloss.Fprintln(w, theme.Warn.Render("improve: "+t))
	}
}

func init() {
	addSelectionFlags(interviewStartCmd)
	interviewStartCmd.Flags().Int("count", coach.DefaultInterviewLength, "Number of questions")
	interviewStartCmd.Flags().String("fit", "", "Fit input file; attaches the match score to the report")

	interviewAnswerCmd.Flags().Float64("score", 0, "Score from 0 to 10")
	interviewAnswerCmd.Flags().String("text", "", "Reply text to keep with the interview")
	interviewAnswerCmd.Flags().String("feedback", "", "Grader feedback to keep with the reply")
	interviewAnswerCmd.Flags().Int("confidence", 0, "Self-rated confidence from 1 to 3 (default 2)")
	interviewAnswerCmd.Flags().Bool("follow-up", false, "Stay on this question for a deeper follow-up")
	interviewAnswerCmd.Flags().Bool("json", false, "Print JSON instead of formatted text")

	for _, c := range []*cobra.Command{interviewCurrentCmd, interviewReportCmd} {
		c.Flags().Bool("json", false, "Print JSON instead of formatted text")
	}
	interviewCmd.AddCommand(interviewStartCmd, interviewCurrentCmd, interviewAnswerCmd, interviewReportCmd)
}
