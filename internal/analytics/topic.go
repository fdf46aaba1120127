// Package analytics aggregates per-question mastery into topic-level views.
package analytics

import (
	"sort"
	"time"

	"github.com/abhisek/mockmentor/internal/catalog"
	"github.com/abhisek/mockmentor/internal/mastery"
)

// TopicStats is the aggregate state of one topic.
type TopicStats struct {
	Topic             string  `json:"topic"`
	TotalQuestions    int     `json:"total_questions"`
	Attempted         int     `json:"attempted"`
	Mastered          int     `json:"mastered"`
	MasteryPercentage float64 `json:"mastery_percentage"`
	AvgScore          float64 `json:"avg_score"`
	DueCount          int     `json:"due_count"`
}

// WeakTopic is a topic paired with its mastery percentage.
type WeakTopic struct {
	Topic             string  `json:"topic"`
	MasteryPercentage float64 `json:"mastery_percentage"`
}

// ComputeTopicStats aggregates the records of every question in topic.
// Unseen questions count as due but not as attempted.
func ComputeTopicStats(topic string, questions []catalog.Question, records map[string]mastery.Record, now time.Time) TopicStats {
	st := TopicStats{Topic: topic}
	var totalScore float64
	for _, q := range questions {
		if q.Topic != topic {
			continue
		}
		st.TotalQuestions++

		r := records[q.ID]
		if !r.Seen() {
			st.DueCount++
			continue
		}
		st.Attempted++
		if r.Level() >= mastery.MasteredLevel {
			st.Mastered++
		}
		totalScore += r.LastScore()
		if r.IsDue(now) {
			st.DueCount++
		}
	}

	if st.TotalQuestions > 0 {
		st.MasteryPercentage = float64(st.Mastered) / float64(st.TotalQuestions) * 100
	}
	if st.Attempted > 0 {
		st.AvgScore = totalScore / float64(st.Attempted)
	}
	return st
}

// AllTopicStats returns stats for every topic present in questions, in
// alphabetical topic order.
func AllTopicStats(questions []catalog.Question, records map[string]mastery.Record, now time.Time) []TopicStats {
	topics := catalog.TopicsOf(questions)
	out := make([]TopicStats, 0, len(topics))
	for _, t := range topics {
		out = append(out, ComputeTopicStats(t, questions, records, now))
	}
	return out
}

// WeakTopics returns up to topN topics sorted by ascending mastery
// percentage. Ties keep alphabetical order. A non-positive topN returns
// every topic.
func WeakTopics(questions []catalog.Question, records map[string]mastery.Record, topN int, now time.Time) []WeakTopic {
	stats := AllTopicStats(questions, records, now)
	out := make([]WeakTopic, 0, len(stats))
	for _, s := range stats {
		out = append(out, WeakTopic{Topic: s.Topic, MasteryPercentage: s.MasteryPercentage})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MasteryPercentage < out[j].MasteryPercentage
	})
	if topN > 0 && len(out) > topN {
		out = out[:topN]
	}
	return out
}

// DueCount returns how many questions are due now. Unseen questions are due.
func DueCount(questions []catalog.Question, records map[string]mastery.Record, now time.Time) int {
	n := 0
	for _, q := range questions {
		if records[q.ID].IsDue(now) {
			n++
		}
	}
	return n
}
