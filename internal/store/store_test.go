package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/mockmentor/internal/profile"
)

var testTime = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	return openTestStoreWithLogger(t, nil)
}

func openTestStoreWithLogger(t *testing.T, logger *zap.Logger) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name), logger)
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.db

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestOpen_FileDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "mm.db")
	if err := EnsureDir(path); err != nil {
		t.Fatalf("EnsureDir: %v", err)
	}
	s, err := Open(path, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	var mode string
	if err := s.db.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}

func TestDefaultDBPath_Env(t *testing.T) {
	want := filepath.Join(t.TempDir(), "custom", "x.db")
	t.Setenv(EnvDBPath, want)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	if got != want {
		t.Errorf("DefaultDBPath() = %q, want %q", got, want)
	}
	if _, err := os.Stat(filepath.Dir(want)); err != nil {
		t.Errorf("parent dir not created: %v", err)
	}
}

func TestDefaultDBPath_XDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvDBPath, "")
	t.Setenv("XDG_DATA_HOME", dir)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	if want := filepath.Join(dir, "mockmentor", "mockmentor.db"); got != want {
		t.Errorf("DefaultDBPath() = %q, want %q", got, want)
	}
}

func TestProfile_LoadMissingIsFresh(t *testing.T) {
	repo := openTestStore(t).ProfileRepo()
	p, err := repo.Load(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(p.History) != 0 || len(p.Mastery) != 0 {
		t.Error("expected fresh profile")
	}
}

func TestProfile_SaveLoad(t *testing.T) {
	ctx := context.Background()
	repo := openTestStore(t).ProfileRepo()

	p := profile.New()
	p.RecordAnswer("sql_001", "sql", 8, 3, testTime)
	if err := repo.Save(ctx, "u1", p); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.Load(ctx, "u1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Record("sql_001").Level() != 3 {
		t.Errorf("level = %d, want 3", got.Record("sql_001").Level())
	}
	if len(got.History) != 1 {
		t.Errorf("history len = %d, want 1", len(got.History))
	}

	other, err := repo.Load(ctx, "u2")
	if err != nil {
		t.Fatalf("Load(u2): %v", err)
	}
	if len(other.History) != 0 {
		t.Error("profiles leaked across users")
	}
}

func TestProfile_CorruptFallsBackAndWarns(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	s := openTestStoreWithLogger(t, zap.New(core))
	ctx := context.Background()

	_, err := s.db.Exec(`INSERT INTO profiles (user_id, data, updated_at) VALUES ('u1', '{not json', '')`)
	if err != nil {
		t.Fatalf("seed corrupt row: %v", err)
	}

	p, err := s.ProfileRepo().Load(ctx, "u1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(p.History) != 0 {
		t.Error("expected fresh profile")
	}
	if logs.Len() != 1 {
		t.Fatalf("warn logs = %d, want 1", logs.Len())
	}
	if got := logs.All()[0].ContextMap()["user_id"]; got != "u1" {
		t.Errorf("user_id field = %v", got)
	}
}

func TestProfile_UpdateIsAtomic(t *testing.T) {
	ctx := context.Background()
	repo := openTestStore(t).ProfileRepo()

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Update(ctx, "u1", func(p *profile.Profile) error {
				p.RecordAnswer("sql_001", "sql", 7, 2, testTime)
				return nil
			})
			if err != nil {
				t.Errorf("Update: %v", err)
			}
		}()
	}
	wg.Wait()

	p, err := repo.Load(ctx, "u1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := p.Record("sql_001").Attempts(); got != n {
		t.Errorf("attempts = %d, want %d (lost updates)", got, n)
	}
}

func TestProfile_UpdateErrorWritesNothing(t *testing.T) {
	ctx := context.Background()
	repo := openTestStore(t).ProfileRepo()
	boom := errors.New("boom")

	_, err := repo.Update(ctx, "u1", func(p *profile.Profile) error {
		p.RecordAnswer("sql_001", "sql", 7, 2, testTime)
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Update err = %v, want boom", err)
	}

	p, err := repo.Load(ctx, "u1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Record("sql_001").Seen() {
		t.Error("failed update was persisted")
	}
}

func TestProfile_ResetAndExport(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	repo := s.ProfileRepo()
	events := s.EventRepo()

	if _, err := repo.Update(ctx, "u1", func(p *profile.Profile) error {
		p.RecordAnswer("sql_001", "sql", 9, 3, testTime)
		return nil
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if _, err := events.AppendAnswer(ctx, AnswerEventData{UserID: "u1", QuestionID: "sql_001", Topic: "sql", Score: 9}); err != nil {
		t.Fatalf("AppendAnswer: %v", err)
	}

	out, err := repo.Export(ctx, "u1")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !strings.Contains(string(out), `"question_mastery"`) || !strings.Contains(string(out), `"sql_001"`) {
		t.Errorf("export missing mastery: %s", out)
	}

	if err := repo.Reset(ctx, "u1"); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	p, err := repo.Load(ctx, "u1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.HasSeen("sql_001") {
		t.Error("profile survived reset")
	}
	evs, err := events.RecentAnswers(ctx, "u1", 0)
	if err != nil {
		t.Fatalf("RecentAnswers: %v", err)
	}
	if len(evs) != 0 {
		t.Errorf("events after reset = %d, want 0", len(evs))
	}
}
