package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/abhisek/mockmentor/internal/logger"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// EnvDBPath overrides the database location.
const EnvDBPath = "MOCKMENTOR_DB"

const schema = `
CREATE TABLE IF NOT EXISTS profiles (
	user_id    TEXT PRIMARY KEY,
	data       TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS answer_events (
	id            TEXT PRIMARY KEY,
	sequence      INTEGER NOT NULL UNIQUE,
	user_id       TEXT NOT NULL,
	question_id   TEXT NOT NULL,
	topic         TEXT NOT NULL,
	score         REAL NOT NULL,
	confidence    INTEGER NOT NULL,
	mastery_level INTEGER NOT NULL,
	created_at    TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_answer_events_user ON answer_events (user_id, sequence);

CREATE TABLE IF NOT EXISTS interview_sessions (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL,
	data       TEXT NOT NULL,
	started_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_interview_sessions_user ON interview_sessions (user_id, started_at);
`

// Store owns the SQLite connection and hands out repositories.
type Store struct {
	db     *sql.DB
	seq    *sequenceCounter
	logger *zap.Logger
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and creates the tables if needed.
// A nil logger discards log output.
func Open(dsn string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = logger.Nop()
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Pragmas are per connection; keep a single one.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	seq, err := newSequenceCounter(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, seq: seq, logger: log}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ProfileRepo returns a ProfileRepo backed by this store.
func (s *Store) ProfileRepo() ProfileRepo {
	return &profileRepo{db: s.db, logger: s.logger.Named("profiles")}
}

// SessionRepo returns a SessionRepo backed by this store.
func (s *Store) SessionRepo() SessionRepo {
	return &sessionRepo{db: s.db}
}

// EventRepo returns an EventRepo backed by this store.
func (s *Store) EventRepo() EventRepo {
	return &eventRepo{db: s.db, seq: s.seq}
}

// applyPragmas configures SQLite for single-user use.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. MOCKMENTOR_DB environment variable
// 2. $XDG_DATA_HOME/mockmentor/mockmentor.db
// 3. ~/.local/share/mockmentor/mockmentor.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv(EnvDBPath); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "mockmentor", "mockmentor.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
