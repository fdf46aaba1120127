package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/mockmentor/internal/profile"
)

type profileRepo struct {
	db     *sql.DB
	logger *zap.Logger

	// mu serializes Update so read-modify-write cycles never interleave.
	mu sync.Mutex
}

// querier is the subset of *sql.DB and *sql.Tx the repo needs.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *profileRepo) Load(ctx context.Context, userID string) (*profile.Profile, error) {
	return r.load(ctx, r.db, userID)
}

func (r *profileRepo) load(ctx context.Context, q querier, userID string) (*profile.Profile, error) {
	var data string
	err := q.QueryRowContext(ctx, `SELECT data FROM profiles WHERE user_id = ?`, userID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return profile.New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load profile %q: %w", userID, err)
	}

	p := profile.New()
	if err := json.Unmarshal([]byte(data), p); err != nil {
		r.logger.Warn("stored profile is unreadable, starting fresh",
			zap.String("user_id", userID), zap.Error(err))
		return profile.New(), nil
	}
	return p, nil
}

func (r *profileRepo) Save(ctx context.Context, userID string, p *profile.Profile) error {
	return r.save(ctx, r.db, userID, p)
}

func (r *profileRepo) save(ctx context.Context, q querier, userID string, p *profile.Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	_, err = q.ExecContext(ctx, `INSERT INTO profiles (user_id, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		userID, string(data), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save profile %q: %w", userID, err)
	}
	return nil
}

func (r *profileRepo) Update(ctx context.Context, userID string, fn func(*profile.Profile) error) (*profile.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin profile update: %w", err)
	}
	defer tx.Rollback()

	p, err := r.load(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	if err := fn(p); err != nil {
		return nil, err
	}
	if err := r.save(ctx, tx, userID, p); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit profile update: %w", err)
	}
	return p, nil
}

func (r *profileRepo) Reset(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reset: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM profiles WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("delete profile %q: %w", userID, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM answer_events WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("delete answer events %q: %w", userID, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM interview_sessions WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("delete interviews %q: %w", userID, err)
	}
	return tx.Commit()
}

func (r *profileRepo) Export(ctx context.Context, userID string) ([]byte, error) {
	p, err := r.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(p, "", "  ")
}
