package session

import (
	"errors"
	"math"
	"sort"
	"time"
)

// ErrNoAnswers is returned when a report is asked for before any reply.
var ErrNoAnswers = errors.New("no answers recorded")

// Topic average bands (0-10 scale).
const (
	strongTopicAvg = 7.0
	weakTopicAvg   = 6.0
)

// generalTopic labels answers to questions without a topic.
const generalTopic = "General"

// Report is the end-of-interview evaluation.
type Report struct {
	OverallScore      float64            `json:"overall_score"`
	QuestionsAnswered int                `json:"questions_answered"`
	TopicBreakdown    map[string]float64 `json:"topic_breakdown"`
	StrongAreas       []string           `json:"strong_areas"`
	ImprovementAreas  []string           `json:"improvement_areas"`
	MatchScore        *float64           `json:"match_score"`
	JobTitle          string             `json:"job_title,omitempty"`
	DurationMinutes   float64            `json:"duration_minutes"`
	Answers           []Answer           `json:"detailed_answers"`
}

// BuildReport summarizes the replies so far. The overall score is the mean
// reply score scaled to 0-100. Topics averaging 7 or more are strong areas,
// below 6 improvement areas.
func BuildReport(s *Session, now time.Time) (*Report, error) {
	if len(s.Answers) == 0 {
		return nil, ErrNoAnswers
	}

	var total float64
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, a := range s.Answers {
		total += a.Score
		topic := a.Topic
		if topic == "" {
			topic = generalTopic
		}
		sums[topic] += a.Score
		counts[topic]++
	}

	r := &Report{
		OverallScore:      round1(total / float64(len(s.Answers)) * 10),
		QuestionsAnswered: len(s.Answers),
		TopicBreakdown:    make(map[string]float64, len(sums)),
		StrongAreas:       []string{},
		ImprovementAreas:  []string{},
		MatchScore:        s.MatchScore,
		JobTitle:          s.JobTitle,
		DurationMinutes:   durationMinutes(s.StartedAt, now),
		Answers:           s.Answers,
	}

	topics := make([]string, 0, len(sums))
	for t := range sums {
		topics = append(topics, t)
	}
	sort.Strings(topics)
	for _, t := range topics {
		avg := sums[t] / float64(counts[t])
		r.TopicBreakdown[t] = avg
		switch {
		case avg >= strongTopicAvg:
			r.StrongAreas = append(r.StrongAreas, t)
		case avg < weakTopicAvg:
			r.ImprovementAreas = append(r.ImprovementAreas, t)
		}
	}
	return r, nil
}

func durationMinutes(start, now time.Time) float64 {
	if start.IsZero() || now.Before(start) {
		return 0
	}
	return round1(now.Sub(start).Minutes())
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
