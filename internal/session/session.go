// Package session runs a mock interview: a fixed list of questions asked in
// order, each answer scored, with follow-ups that dig deeper on the same
// question before moving on.
package session

import (
	"errors"
	"time"

	"github.com/abhisek/mockmentor/internal/catalog"
)

// MaxDepth is how many follow-ups one question can get.
const MaxDepth = 3

// ErrComplete is returned when answering an interview with no questions left.
var ErrComplete = errors.New("interview is complete")

// Answer is one scored reply within an interview.
type Answer struct {
	QuestionIndex int       `json:"question_index"`
	QuestionID    string    `json:"question_id"`
	Question      string    `json:"question"`
	Topic         string    `json:"topic"`
	Text          string    `json:"answer,omitempty"`
	Score         float64   `json:"score"`
	Feedback      string    `json:"feedback,omitempty"`
	Depth         int       `json:"depth"`
	AnsweredAt    time.Time `json:"timestamp"`
}

// Session is the state of one interview.
type Session struct {
	ID         string             `json:"id"`
	UserID     string             `json:"user_id"`
	Mode       string             `json:"mode"`
	Questions  []catalog.Question `json:"questions"`
	Index      int                `json:"current_question"`
	Depth      int                `json:"current_depth"`
	Answers    []Answer           `json:"answers"`
	MatchScore *float64           `json:"match_score,omitempty"`
	JobTitle   string             `json:"job_title,omitempty"`
	StartedAt  time.Time          `json:"started_at"`
}

// Start begins an interview over questions, asked in order.
func Start(id, userID, mode string, questions []catalog.Question, now time.Time) *Session {
	return &Session{
		ID:        id,
		UserID:    userID,
		Mode:      mode,
		Questions: questions,
		Answers:   []Answer{},
		StartedAt: now,
	}
}

// Current returns the question being asked. ok is false once every question
// has been asked.
func (s *Session) Current() (q catalog.Question, ok bool) {
	if s.Complete() {
		return catalog.Question{}, false
	}
	return s.Questions[s.Index], true
}

// Complete reports whether every question has been asked.
func (s *Session) Complete() bool {
	return s.Index >= len(s.Questions)
}

// Record stores a scored reply to the current question at the current depth.
func (s *Session) Record(text string, score float64, feedback string, now time.Time) (Answer, error) {
	q, ok := s.Current()
	if !ok {
		return Answer{}, ErrComplete
	}
	a := Answer{
		QuestionIndex: s.Index,
		QuestionID:    q.ID,
		Question:      q.Text,
		Topic:         q.Topic,
		Text:          text,
		Score:         score,
		Feedback:      feedback,
		Depth:         s.Depth,
		AnsweredAt:    now,
	}
	s.Answers = append(s.Answers, a)
	return a, nil
}

// Advance moves to the next question.
func (s *Session) Advance() {
	if s.Complete() {
		return
	}
	s.Index++
	s.Depth = 0
}

// FollowUp stays on the current question one level deeper. It returns false,
// leaving the depth unchanged, when MaxDepth has been reached or the
// interview is complete.
func (s *Session) FollowUp() bool {
	if s.Complete() || s.Depth >= MaxDepth {
		return false
	}
	s.Depth++
	return true
}
