package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mockmentor/internal/catalog"
	"github.com/abhisek/mockmentor/internal/coach"
	"github.com/abhisek/mockmentor/internal/mastery"
	"github.com/abhisek/mockmentor/internal/spacedrep"
	"github.com/abhisek/mockmentor/internal/ui/theme"
)

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// renderQuestion formats a question as a card.
func renderQuestion(q catalog.Question, showHints bool) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render(q.ID))
	b.WriteString(theme.Label.Render(fmt.Sprintf("  %s · %s", q.Topic, q.Difficulty)))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render(q.Text))
	if showHints && len(q.Hints) > 0 {
		b.WriteString("\n")
		for _, h := range q.Hints {
			b.WriteString("\n")
			b.WriteString(theme.Hint.Render("hint: " + h))
		}
	}
	return theme.Card.Render(b.String())
}

// renderRecord formats a mastery record on one line.
func renderRecord(r mastery.Record, now time.Time) string {
	level := theme.ForLevel(r.Level()).Render(fmt.Sprintf("level %d (%s)", r.Level(), mastery.LevelName(r.Level())))
	if !r.Seen() {
		return level + "  " + theme.Hint.Render("not attempted yet")
	}
	return fmt.Sprintf("%s  %s %s  %s %s  %s %s  %s %s %s",
		level,
		theme.Label.Render("attempts"), theme.Body.Render(fmt.Sprint(r.Attempts())),
		theme.Label.Render("success"), theme.Body.Render(fmt.Sprintf("%.0f%%", r.SuccessRate()*100)),
		theme.Label.Render("avg"), theme.ForScore(r.AverageScore()).Render(fmt.Sprintf("%.1f", r.AverageScore())),
		theme.Label.Render("next review"), theme.Body.Render(r.NextReview().String()),
		reviewDue(r.NextReview(), now))
}

// reviewDue describes how far a review date is from today.
func reviewDue(next spacedrep.Date, now time.Time) string {
	if n := spacedrep.DaysUntil(next, now); n > 0 {
		return theme.Label.Render(fmt.Sprintf("(in %d days)", n))
	}
	if n := spacedrep.OverdueDays(next, now); n > 0 {
		return theme.Bad.Render(fmt.Sprintf("(overdue %d days)", n))
	}
	return theme.Warn.Render("(due today)")
}

// printAnswer reports the state after an answer was recorded.
func printAnswer(w io.Writer, out coach.AnswerOutcome) {
	lipgloss.Fprintln(w, theme.Heading.Render("Recorded "+out.Question.ID))
	lipgloss.Fprintln(w, "  "+theme.Label.Render("score ")+theme.ForScore(out.Record.LastScore()).Render(fmt.Sprintf("%.1f", out.Record.LastScore())))
	lipgloss.Fprintln(w, "  "+renderRecord(out.Record, out.Event.At))
	lipgloss.Fprintln(w, "  "+theme.Label.Render(fmt.Sprintf("%s strength %.0f%%", out.Question.Topic, out.WeakArea*100)))
}
