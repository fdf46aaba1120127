package profile

import (
	"math"
	"slices"
	"time"

	"github.com/abhisek/mockmentor/internal/jsondoc"
	"github.com/abhisek/mockmentor/internal/mastery"
	"github.com/abhisek/mockmentor/internal/spacedrep"
)

// DefaultWeakArea is the starting strength of a topic with no graded answers.
const DefaultWeakArea = 0.5

// Weak-area smoothing factors: the new strength keeps 70% of the old value
// and takes 30% from the normalized score.
const (
	weakAreaKeep = 0.7
	weakAreaGain = 0.3
)

// HistoryEntry is one graded answer in the learner's history.
type HistoryEntry struct {
	QuestionID string         `json:"question_id"`
	Score      float64        `json:"score"`
	Topic      string         `json:"topic"`
	Date       spacedrep.Date `json:"date"`

	extra jsondoc.Extra
}

// SessionStats holds coarse usage counters.
type SessionStats struct {
	TotalTimeSeconds int `json:"total_time_seconds"`
	SessionsCount    int `json:"sessions_count"`

	extra jsondoc.Extra
}

// Profile is the persisted learner state for one user.
type Profile struct {
	WeakAreas     map[string]float64
	History       []HistoryEntry
	QuestionsSeen []string
	Mastery       map[string]mastery.Record
	SessionStats  SessionStats

	// extra holds top-level fields this version does not know about so that
	// they survive a load/save round trip.
	extra jsondoc.Extra
}

// New returns an empty profile with all defaults.
func New() *Profile {
	return &Profile{
		WeakAreas: make(map[string]float64),
		Mastery:   make(map[string]mastery.Record),
	}
}

// Record returns the mastery record for a question. Unseen questions get the
// zero record.
func (p *Profile) Record(questionID string) mastery.Record {
	return p.Mastery[questionID]
}

// WeakArea returns the smoothed strength of a topic in [0, 1].
func (p *Profile) WeakArea(topic string) float64 {
	if v, ok := p.WeakAreas[topic]; ok {
		return v
	}
	return DefaultWeakArea
}

// RecordWeakArea folds a 0-10 score into the topic's exponentially smoothed
// strength and returns the new value.
func (p *Profile) RecordWeakArea(topic string, score float64) float64 {
	if p.WeakAreas == nil {
		p.WeakAreas = make(map[string]float64)
	}
	v := p.WeakArea(topic)*weakAreaKeep + (clampScore(score)/10)*weakAreaGain
	p.WeakAreas[topic] = v
	return v
}

// HasSeen reports whether the question has been answered before.
func (p *Profile) HasSeen(questionID string) bool {
	return slices.Contains(p.QuestionsSeen, questionID)
}

// SeenSet returns QuestionsSeen as a set.
func (p *Profile) SeenSet() map[string]bool {
	out := make(map[string]bool, len(p.QuestionsSeen))
	for _, id := range p.QuestionsSeen {
		out[id] = true
	}
	return out
}

// RecordAnswer applies one graded answer: the mastery record is updated,
// a history entry is appended, the topic's weak-area strength is smoothed and
// the question is marked seen. It returns the new mastery record.
func (p *Profile) RecordAnswer(questionID, topic string, score float64, confidence int, now time.Time) mastery.Record {
	if p.Mastery == nil {
		p.Mastery = make(map[string]mastery.Record)
	}
	rec := mastery.Update(p.Mastery[questionID], score, confidence, now)
	p.Mastery[questionID] = rec

	p.History = append(p.History, HistoryEntry{
		QuestionID: questionID,
		Score:      rec.LastScore(),
		Topic:      topic,
		Date:       spacedrep.DateOf(now),
	})
	p.RecordWeakArea(topic, rec.LastScore())
	if !p.HasSeen(questionID) {
		p.QuestionsSeen = append(p.QuestionsSeen, questionID)
	}
	return rec
}

// Usage is a short summary of how much the learner has practiced.
type Usage struct {
	Answered     int     `json:"answered"`
	AverageScore float64 `json:"average_score"`
	WeakestTopic string  `json:"weakest_topic,omitempty"`
	WeakestScore float64 `json:"weakest_score,omitempty"`
}

// Usage summarizes history and weak areas. Ties between equally weak topics
// resolve to the alphabetically first one.
func (p *Profile) Usage() Usage {
	u := Usage{Answered: len(p.History)}
	if u.Answered > 0 {
		var total float64
		for _, h := range p.History {
			total += h.Score
		}
		u.AverageScore = total / float64(u.Answered)
	}

	topics := make([]string, 0, len(p.WeakAreas))
	for t := range p.WeakAreas {
		topics = append(topics, t)
	}
	slices.Sort(topics)
	for _, t := range topics {
		v := p.WeakAreas[t]
		if u.WeakestTopic == "" || v < u.WeakestScore {
			u.WeakestTopic, u.WeakestScore = t, v
		}
	}
	return u
}

func clampScore(s float64) float64 {
	switch {
	case math.IsNaN(s) || s < 0:
		return 0
	case s > 10:
		return 10
	}
	return s
}
