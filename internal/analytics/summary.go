package analytics

import (
	"time"

	"github.com/abhisek/mockmentor/internal/catalog"
	"github.com/abhisek/mockmentor/internal/mastery"
	"github.com/abhisek/mockmentor/internal/profile"
)

// Summary sizes.
const (
	SummaryWeakTopics   = 3
	SummaryRecentScores = 10
)

// Summary is the learner-facing progress overview.
type Summary struct {
	TotalAnswered int          `json:"total_questions_answered"`
	TotalSessions int          `json:"total_sessions"`
	Topics        []TopicStats `json:"topic_mastery"`
	WeakTopics    []WeakTopic  `json:"weak_topics"`
	DueForReview  int          `json:"due_for_review"`
	RecentScores  []float64    `json:"recent_scores"`
}

// Summarize builds a Summary. A session is a distinct calendar date in the
// answer history.
func Summarize(questions []catalog.Question, records map[string]mastery.Record, history []profile.HistoryEntry, now time.Time) Summary {
	dates := make(map[string]struct{}, len(history))
	for _, h := range history {
		dates[string(h.Date)] = struct{}{}
	}

	start := max(0, len(history)-SummaryRecentScores)
	recent := make([]float64, 0, len(history)-start)
	for _, h := range history[start:] {
		recent = append(recent, h.Score)
	}

	return Summary{
		TotalAnswered: len(history),
		TotalSessions: len(dates),
		Topics:        AllTopicStats(questions, records, now),
		WeakTopics:    WeakTopics(questions, records, SummaryWeakTopics, now),
		DueForReview:  DueCount(questions, records, now),
		RecentScores:  recent,
	}
}
