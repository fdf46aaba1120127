package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// sequenceCounter hands out a global monotonic sequence number for events.
// The mutex serializes within the process; the RETURNING clause makes the
// increment atomic at the database level.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

// newSequenceCounter creates a counter and ensures the tracking table exists.
func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	_, err = db.Exec(`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`)
	if err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}

	return &sequenceCounter{db: db}, nil
}

// Next atomically returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *eventRepo) AppendAnswer(ctx context.Context, data AnswerEventData) (AnswerEvent, error) {
	if data.At.IsZero() {
		data.At = time.Now()
	}
	data.At = data.At.UTC()

	seq, err := r.seq.Next(ctx)
	if err != nil {
		return AnswerEvent{}, err
	}
	ev := AnswerEvent{ID: uuid.New(), Sequence: seq, AnswerEventData: data}

	_, err = r.db.ExecContext(ctx, `INSERT INTO answer_events
		(id, sequence, user_id, question_id, topic, score, confidence, mastery_level, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.ID.String(), ev.Sequence, data.UserID, data.QuestionID, data.Topic,
		data.Score, data.Confidence, data.MasteryLevel, data.At.Format(time.RFC3339Nano),
	)
	if err != nil {
		return AnswerEvent{}, fmt.Errorf("append answer event: %w", err)
	}
	return ev, nil
}

func (r *eventRepo) RecentAnswers(ctx context.Context, userID string, limit int) ([]AnswerEvent, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := r.db.QueryContext(ctx, `SELECT
		id, sequence, user_id, question_id, topic, score, confidence, mastery_level, created_at
		FROM answer_events WHERE user_id = ? ORDER BY sequence DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query answer events: %w", err)
	}
	defer rows.Close()

	var out []AnswerEvent
	for rows.Next() {
		var (
			ev      AnswerEvent
			id      string
			created string
		)
		if err := rows.Scan(&id, &ev.Sequence, &ev.UserID, &ev.QuestionID, &ev.Topic,
			&ev.Score, &ev.Confidence, &ev.MasteryLevel, &created); err != nil {
			return nil, fmt.Errorf("scan answer event: %w", err)
		}
		if ev.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse answer event id %q: %w", id, err)
		}
		if ev.At, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("parse answer event time %q: %w", created, err)
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}
