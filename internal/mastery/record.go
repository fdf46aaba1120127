package mastery

import (
	"slices"
	"time"

	"github.com/abhisek/mockmentor/internal/jsondoc"
	"github.com/abhisek/mockmentor/internal/spacedrep"
)

// Record is the learning history for a single question.
//
// Fields are only changed through Update (or restored from JSON), which
// keeps the cached level consistent with the counters it is derived from.
// The zero Record is a question that has never been attempted.
type Record struct {
	attempts      int
	correctCount  int
	avgConfidence float64
	lastScore     float64
	scores        []float64
	lastReviewed  spacedrep.Date
	nextReview    spacedrep.Date
	level         int

	// extra keeps stored fields this version does not know about.
	extra jsondoc.Extra
}

// Attempts returns how many answers have been recorded.
func (r Record) Attempts() int { return r.attempts }

// CorrectCount returns how many answers scored at or above CorrectThreshold.
func (r Record) CorrectCount() int { return r.correctCount }

// AvgConfidence returns the mean self-reported confidence (1-3), or 0 if
// the question has never been attempted.
func (r Record) AvgConfidence() float64 { return r.avgConfidence }

// LastScore returns the most recent score (0-10).
func (r Record) LastScore() float64 { return r.lastScore }

// Scores returns up to the last ScoreWindow scores, oldest first.
func (r Record) Scores() []float64 { return slices.Clone(r.scores) }

// LastReviewed returns the date of the most recent attempt.
func (r Record) LastReviewed() spacedrep.Date { return r.lastReviewed }

// NextReview returns the date the question becomes due again.
func (r Record) NextReview() spacedrep.Date { return r.nextReview }

// Level returns the cached mastery level (0-5).
func (r Record) Level() int { return r.level }

// Seen reports whether the question has been attempted at least once.
func (r Record) Seen() bool { return r.attempts > 0 }

// SuccessRate returns CorrectCount / Attempts, or 0 if never attempted.
func (r Record) SuccessRate() float64 {
	if r.attempts == 0 {
		return 0
	}
	return float64(r.correctCount) / float64(r.attempts)
}

// IsDue reports whether the question should be reviewed on the calendar
// date of now. Never-attempted questions are always due.
func (r Record) IsDue(now time.Time) bool {
	return spacedrep.IsDue(r.nextReview, now)
}

// AverageScore returns the mean of the retained score window.
func (r Record) AverageScore() float64 {
	if len(r.scores) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range r.scores {
		sum += s
	}
	return sum / float64(len(r.scores))
}
