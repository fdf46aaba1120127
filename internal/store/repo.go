package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/mockmentor/internal/profile"
	"github.com/abhisek/mockmentor/internal/session"
)

// ProfileRepo persists one profile document per user.
type ProfileRepo interface {
	// Load returns the stored profile. A missing or unreadable document
	// yields a fresh profile rather than an error.
	Load(ctx context.Context, userID string) (*profile.Profile, error)

	// Save replaces the stored profile.
	Save(ctx context.Context, userID string, p *profile.Profile) error

	// Update runs load, fn, save as a single unit of work. If fn returns an
	// error nothing is written. The saved profile is returned.
	Update(ctx context.Context, userID string, fn func(*profile.Profile) error) (*profile.Profile, error)

	// Reset deletes the stored profile, the user's answer events and their
	// interviews.
	Reset(ctx context.Context, userID string) error

	// Export returns the stored profile as indented JSON.
	Export(ctx context.Context, userID string) ([]byte, error)
}

// AnswerEventData captures one graded answer.
type AnswerEventData struct {
	UserID       string  `json:"user_id"`
	QuestionID   string  `json:"question_id"`
	Topic        string  `json:"topic"`
	Score        float64 `json:"score"`
	Confidence   int     `json:"confidence"`
	MasteryLevel int     `json:"mastery_level"`
	// At is the answer time; zero means now.
	At time.Time `json:"created_at"`
}

// AnswerEvent is a stored answer with its identity and global order.
type AnswerEvent struct {
	ID       uuid.UUID `json:"id"`
	Sequence int64     `json:"sequence"`
	AnswerEventData
}

// EventRepo provides append and query access to answer events.
type EventRepo interface {
	// AppendAnswer records an answer and returns the stored event.
	AppendAnswer(ctx context.Context, data AnswerEventData) (AnswerEvent, error)

	// RecentAnswers returns up to limit answers for a user, newest first.
	// A non-positive limit returns all of them.
	RecentAnswers(ctx context.Context, userID string, limit int) ([]AnswerEvent, error)
}

// SessionRepo persists interviews.
type SessionRepo interface {
	// Save inserts or replaces an interview.
	Save(ctx context.Context, s *session.Session) error

	// Latest returns the user's most recently started interview, or
	// ErrNoSession.
	Latest(ctx context.Context, userID string) (*session.Session, error)
}
