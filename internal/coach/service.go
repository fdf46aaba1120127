// Package coach runs the practice loop for one learner: choosing questions,
// recording graded answers and reporting progress.
package coach

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/mockmentor/internal/analytics"
	"github.com/abhisek/mockmentor/internal/catalog"
	"github.com/abhisek/mockmentor/internal/grading"
	"github.com/abhisek/mockmentor/internal/logger"
	"github.com/abhisek/mockmentor/internal/mastery"
	"github.com/abhisek/mockmentor/internal/profile"
	"github.com/abhisek/mockmentor/internal/selection"
	"github.com/abhisek/mockmentor/internal/store"
)

// Input validation errors.
var (
	ErrInvalidScore      = errors.New("score must be between 0 and 10")
	ErrInvalidConfidence = errors.New("confidence must be 1, 2 or 3")
)

// Recorder receives practice events, typically for metrics.
type Recorder interface {
	ObserveSelection(mode selection.Mode, n int)
	ObserveAnswer(topic string, score float64)
}

type nopRecorder struct{}

func (nopRecorder) ObserveSelection(selection.Mode, int) {}
func (nopRecorder) ObserveAnswer(string, float64) {}

// Deps are the collaborators of a Service. Catalog, Profiles, Events and
// Sessions are required; the rest have defaults.
type Deps struct {
	Catalog  *catalog.Catalog
	Profiles store.ProfileRepo
	Events   store.EventRepo
	Sessions store.SessionRepo
	Selector *selection.Selector
	Logger   *zap.Logger
	Recorder Recorder
	Now      func() time.Time
}

// Service orchestrates selection, grading and persistence.
type Service struct {
	catalog  *catalog.Catalog
	profiles store.ProfileRepo
	events   store.EventRepo
	sessions store.SessionRepo
	selector *selection.Selector
	logger   *zap.Logger
	recorder Recorder
	now      func() time.Time
}

// New creates a Service.
func New(d Deps) *Service {
	s := &Service{
		catalog:  d.Catalog,
		profiles: d.Profiles,
		events:   d.Events,
		sessions: d.Sessions,
		selector: d.Selector,
		logger:   d.Logger,
		recorder: d.Recorder,
		now:      d.Now,
	}
	if s.selector == nil {
		s.selector = selection.New(nil)
	}
	if s.logger == nil {
		s.logger = logger.Nop()
	}
	if s.recorder == nil {
		s.recorder = nopRecorder{}
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Catalog returns the question catalog.
func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}

// Now returns the service clock.
func (s *Service) Now() time.Time {
	return s.now()
}

// Questions lists catalog questions, optionally limited to a topic and a
// difficulty.
func (s *Service) Questions(topic string, difficulty catalog.Difficulty) []catalog.Question {
	qs := s.catalog.Filter(topic, difficulty)
	if qs == nil {
		qs = []catalog.Question{}
	}
	return qs
}

// Topics lists every topic with its question count.
func (s *Service) Topics() []catalog.TopicSummary {
	return s.catalog.TopicSummaries()
}

// Next chooses the next question for the user.
func (s *Service) Next(ctx context.Context, userID string, mode selection.Mode, topic string) (catalog.Question, error) {
	qs, err := s.Plan(ctx, userID, mode, topic, 1)
	if err != nil {
		return catalog.Question{}, err
	}
	return qs[0], nil
}

// Plan chooses up to count questions for a practice session.
func (s *Service) Plan(ctx context.Context, userID string, mode selection.Mode, topic string, count int) ([]catalog.Question, error) {
	p, err := s.profiles.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	qs, err := s.selector.Select(s.catalog.All(), p.Mastery, selection.Request{
		Mode:  mode,
		Topic: topic,
		Count: count,
	}, s.now())
	if err != nil {
		return nil, err
	}

	s.recorder.ObserveSelection(mode, len(qs))
	s.logger.Debug("questions selected",
		zap.String("user_id", userID),
		zap.String("mode", string(mode)),
		zap.String("topic", topic),
		zap.Int("count", len(qs)))
	return qs, nil
}

// NextUnseen uses the weak-area selector instead of the adaptive engine.
func (s *Service) NextUnseen(ctx context.Context, userID, topic string, difficulty catalog.Difficulty) (catalog.Question, error) {
	p, err := s.profiles.Load(ctx, userID)
	if err != nil {
		return catalog.Question{}, err
	}
	return s.selector.SelectByWeakAreas(s.catalog.All(), p.WeakAreas, p.SeenSet(), topic, difficulty)
}

// AnswerOutcome is the state after an answer was recorded.
type AnswerOutcome struct {
	Question catalog.Question  `json:"question"`
	Record   mastery.Record    `json:"mastery"`
	WeakArea float64           `json:"weak_area"`
	Event    store.AnswerEvent `json:"event"`
}

// SubmitAnswer records a graded answer. Score is on the 0-10 scale.
// Confidence is 1-3, or 0 when it was not collected, which counts as
// mastery.DefaultConfidence. The profile read, update and write run as one
// unit of work.
func (s *Service) SubmitAnswer(ctx context.Context, userID, questionID string, score float64, confidence int) (AnswerOutcome, error) {
	if math.IsNaN(score) || score < 0 || score > 10 {
		return AnswerOutcome{}, fmt.Errorf("%w (got %v)", ErrInvalidScore, score)
	}
	if confidence == 0 {
		confidence = mastery.DefaultConfidence
	}
	if confidence < mastery.MinConfidence || confidence > mastery.MaxConfidence {
		return AnswerOutcome{}, fmt.Errorf("%w (got %d)", ErrInvalidConfidence, confidence)
	}

	q, err := s.catalog.Get(questionID)
	if err != nil {
		return AnswerOutcome{}, err
	}

	now := s.now()
	out := AnswerOutcome{Question: q}
	_, err = s.profiles.Update(ctx, userID, func(p *profile.Profile) error {
		out.Record = p.RecordAnswer(q.ID, q.Topic, score, confidence, now)
		out.WeakArea = p.WeakArea(q.Topic)
		return nil
	})
	if err != nil {
		return AnswerOutcome{}, fmt.Errorf("record answer: %w", err)
	}

	out.Event, err = s.events.AppendAnswer(ctx, store.AnswerEventData{
		UserID:       userID,
		QuestionID:   q.ID,
		Topic:        q.Topic,
		Score:        out.Record.LastScore(),
		Confidence:   confidence,
		MasteryLevel: out.Record.Level(),
		At:           now,
	})
	if err != nil {
		// The profile is already committed; the event log only feeds history.
		s.logger.Error("append answer event failed",
			zap.String("user_id", userID), zap.String("question_id", q.ID), zap.Error(err))
	}

	s.recorder.ObserveAnswer(q.Topic, score)
	s.logger.Info("answer recorded",
		zap.String("user_id", userID),
		zap.String("question_id", q.ID),
		zap.Float64("score", score),
		zap.Int("confidence", confidence),
		zap.Int("mastery_level", out.Record.Level()),
		zap.String("next_review", out.Record.NextReview().String()))
	return out, nil
}

// GradeOutcome pairs the grader's verdict with the recorded answer.
type GradeOutcome struct {
	Result  grading.Result `json:"result"`
	Answer  AnswerOutcome  `json:"answer"`
	Invalid bool           `json:"fallback,omitempty"`
}

// SubmitGrade parses raw grader output and records its overall score.
// Unusable output is logged and replaced by the neutral fallback result.
func (s *Service) SubmitGrade(ctx context.Context, userID, questionID string, raw []byte, confidence int) (GradeOutcome, error) {
	var out GradeOutcome
	res, err := grading.ParseResult(raw)
	if err != nil {
		s.logger.Warn("grader output rejected, using fallback",
			zap.String("user_id", userID), zap.String("question_id", questionID), zap.Error(err))
		res = grading.Fallback(err)
		out.Invalid = true
	}
	out.Result = res

	out.Answer, err = s.SubmitAnswer(ctx, userID, questionID, res.OverallScore, confidence)
	if err != nil {
		return GradeOutcome{}, err
	}
	return out, nil
}

// Prompt renders the grading prompt for a question and answer.
func (s *Service) Prompt(questionID, answer string) (string, error) {
	q, err := s.catalog.Get(questionID)
	if err != nil {
		return "", err
	}
	return grading.BuildPrompt(q, answer, grading.DefaultRubric()), nil
}

// Analytics is the progress overview plus the suggested next mode.
type Analytics struct {
	analytics.Summary
	Recommendation selection.Recommendation `json:"recommendations"`
}

// Analytics summarizes the user's progress over the whole catalog.
func (s *Service) Analytics(ctx context.Context, userID string) (Analytics, error) {
	p, err := s.profiles.Load(ctx, userID)
	if err != nil {
		return Analytics{}, err
	}
	qs := s.catalog.All()
	now := s.now()
	return Analytics{
		Summary:        analytics.Summarize(qs, p.Mastery, p.History, now),
		Recommendation: selection.Recommend(qs, p.Mastery, now),
	}, nil
}

// Report returns the short usage report.
func (s *Service) Report(ctx context.Context, userID string) (profile.Usage, error) {
	p, err := s.profiles.Load(ctx, userID)
	if err != nil {
		return profile.Usage{}, err
	}
	return p.Usage(), nil
}

// Mastery returns the user's record for one question.
func (s *Service) Mastery(ctx context.Context, userID, questionID string) (mastery.Record, error) {
	if _, err := s.catalog.Get(questionID); err != nil {
		return mastery.Record{}, err
	}
	p, err := s.profiles.Load(ctx, userID)
	if err != nil {
		return mastery.Record{}, err
	}
	return p.Record(questionID), nil
}

// History returns the newest answers first.
func (s *Service) History(ctx context.Context, userID string, limit int) ([]store.AnswerEvent, error) {
	return s.events.RecentAnswers(ctx, userID, limit)
}

// Export returns the stored profile document.
func (s *Service) Export(ctx context.Context, userID string) ([]byte, error) {
	return s.profiles.Export(ctx, userID)
}

// Reset erases the user's progress.
func (s *Service) Reset(ctx context.Context, userID string) error {
	if err := s.profiles.Reset(ctx, userID); err != nil {
		return err
	}
	s.logger.Info("profile reset", zap.String("user_id", userID))
	return nil
}
