package selection

import (
	"time"

	"github.com/abhisek/mockmentor/internal/analytics"
	"github.com/abhisek/mockmentor/internal/catalog"
	"github.com/abhisek/mockmentor/internal/mastery"
)

// Recommendation thresholds.
const (
	ReviewDueThreshold   = 5
	FocusMasteryPercent  = 50.0
	recommendWeakTopicsN = 3
)

// Recommendation is the suggested next practice mode.
type Recommendation struct {
	Mode           Mode                  `json:"mode"`
	SuggestedTopic string                `json:"suggested_topic,omitempty"`
	DueCount       int                   `json:"due_count"`
	WeakTopics     []analytics.WeakTopic `json:"weak_topics"`
}

// Recommend picks review when more than five questions are due, focus on the
// weakest topic when its mastery is under 50%, and explore otherwise.
func Recommend(questions []catalog.Question, records map[string]mastery.Record, now time.Time) Recommendation {
	rec := Recommendation{
		DueCount:   analytics.DueCount(questions, records, now),
		WeakTopics: analytics.WeakTopics(questions, records, recommendWeakTopicsN, now),
	}
	switch {
	case rec.DueCount > ReviewDueThreshold:
		rec.Mode = ModeReview
	case len(rec.WeakTopics) > 0 && rec.WeakTopics[0].MasteryPercentage < FocusMasteryPercent:
		rec.Mode = ModeFocus
		rec.SuggestedTopic = rec.WeakTopics[0].Topic
	default:
		rec.Mode = ModeExplore
	}
	return rec
}
