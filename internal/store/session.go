package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/mockmentor/internal/session"
)

// ErrNoSession is returned when a user has never started an interview.
var ErrNoSession = errors.New("no interview session")

// sortableTime keeps stored timestamps fixed-width so they order as text.
const sortableTime = "2006-01-02T15:04:05.000000000Z"

type sessionRepo struct {
	db *sql.DB
}

func (r *sessionRepo) Save(ctx context.Context, s *session.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal interview: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `INSERT INTO interview_sessions (id, user_id, data, started_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		s.ID, s.UserID, string(data),
		s.StartedAt.UTC().Format(sortableTime),
		time.Now().UTC().Format(sortableTime))
	if err != nil {
		return fmt.Errorf("save interview %s: %w", s.ID, err)
	}
	return nil
}

func (r *sessionRepo) Latest(ctx context.Context, userID string) (*session.Session, error) {
	var data string
	err := r.db.QueryRowContext(ctx, `SELECT data FROM interview_sessions
		WHERE user_id = ? ORDER BY started_at DESC, rowid DESC LIMIT 1`, userID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("load interview for %q: %w", userID, err)
	}

	var s session.Session
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return nil, fmt.Errorf("decode interview for %q: %w", userID, err)
	}
	return &s, nil
}
