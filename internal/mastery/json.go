package mastery

import (
	"encoding/json"
	"math"

	"github.com/abhisek/mockmentor/internal/jsondoc"
	"github.com/abhisek/mockmentor/internal/spacedrep"
)

// recordJSON is the persisted shape of a Record.
type recordJSON struct {
	Attempts      int            `json:"attempts"`
	CorrectCount  int            `json:"correct_count"`
	AvgConfidence float64        `json:"avg_confidence"`
	LastScore     float64        `json:"last_score"`
	Scores        []float64      `json:"scores"`
	LastReviewed  spacedrep.Date `json:"last_reviewed,omitempty"`
	NextReview    spacedrep.Date `json:"next_review,omitempty"`
	MasteryLevel  int            `json:"mastery_level"`
}

var recordKeys = []string{
	"attempts", "correct_count", "avg_confidence", "last_score",
	"scores", "last_reviewed", "next_review", "mastery_level",
}

// MarshalJSON writes the record including its cached mastery level and any
// unknown fields it was read with.
func (r Record) MarshalJSON() ([]byte, error) {
	scores := r.scores
	if scores == nil {
		scores = []float64{}
	}
	return jsondoc.Merge(recordJSON{
		Attempts:      r.attempts,
		CorrectCount:  r.correctCount,
		AvgConfidence: r.avgConfidence,
		LastScore:     r.lastScore,
		Scores:        scores,
		LastReviewed:  r.lastReviewed,
		NextReview:    r.nextReview,
		MasteryLevel:  r.level,
	}, r.extra)
}

// UnmarshalJSON restores a record. The stored mastery_level is not trusted:
// the level is recomputed from the counters, and counters that violate the
// record invariants are repaired.
func (r *Record) UnmarshalJSON(data []byte) error {
	var w recordJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	extra, err := jsondoc.Leftover(data, recordKeys...)
	if err != nil {
		return err
	}

	rec := Record{
		attempts:      max(w.Attempts, 0),
		correctCount:  max(w.CorrectCount, 0),
		avgConfidence: math.Min(math.Max(w.AvgConfidence, 0), MaxConfidence),
		lastScore:     clampScore(w.LastScore),
		scores:        w.Scores,
		lastReviewed:  w.LastReviewed,
		nextReview:    w.NextReview,
		extra:         extra,
	}
	if rec.correctCount > rec.attempts {
		rec.correctCount = rec.attempts
	}
	if len(rec.scores) > ScoreWindow {
		rec.scores = append([]float64(nil), rec.scores[len(rec.scores)-ScoreWindow:]...)
	}
	rec.level = ComputeLevel(rec)

	// A review can never be scheduled before the answer it follows.
	if last, err := rec.lastReviewed.Time(); err == nil {
		if next, err := rec.nextReview.Time(); err == nil && next.Before(last) {
			rec.nextReview = spacedrep.NextReview(rec.level, rec.lastReviewed, last)
		}
	}

	*r = rec
	return nil
}
