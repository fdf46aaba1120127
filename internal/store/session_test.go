package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/abhisek/mockmentor/internal/catalog"
	"github.com/abhisek/mockmentor/internal/profile"
	"github.com/abhisek/mockmentor/internal/session"
)

func TestSession_LatestMissing(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.SessionRepo().Latest(context.Background(), "u1"); !errors.Is(err, ErrNoSession) {
		t.Errorf("Latest() err = %v, want ErrNoSession", err)
	}
}

func TestSession_SaveAndLatest(t *testing.T) {
	ctx := context.Background()
	repo := openTestStore(t).SessionRepo()
	qs := []catalog.Question{{ID: "sql_001", Topic: "sql", Text: "Explain window functions."}}

	first := session.Start("s1", "u1", "balanced", qs, testTime)
	if err := repo.Save(ctx, first); err != nil {
		t.Fatalf("Save: %v", err)
	}
	second := session.Start("s2", "u1", "review", qs, testTime.Add(time.Hour))
	if err := repo.Save(ctx, second); err != nil {
		t.Fatalf("Save: %v", err)
	}
	other := session.Start("s3", "u2", "review", qs, testTime.Add(2*time.Hour))
	if err := repo.Save(ctx, other); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Saving again updates in place.
	if _, err := second.Record("OVER()", 8, "", testTime.Add(time.Hour)); err != nil {
		t.Fatal(err)
	}
	second.Advance()
	if err := repo.Save(ctx, second); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.Latest(ctx, "u1")
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if got.ID != "s2" || got.Mode != "review" {
		t.Errorf("Latest() = %s/%s, want s2/review", got.ID, got.Mode)
	}
	if len(got.Answers) != 1 || !got.Complete() {
		t.Errorf("Latest() answers = %d complete = %v, want 1, true", len(got.Answers), got.Complete())
	}
	if !got.StartedAt.Equal(testTime.Add(time.Hour)) {
		t.Errorf("StartedAt = %v", got.StartedAt)
	}
}

func TestSession_ResetDeletesInterviews(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	repo := s.SessionRepo()

	if err := repo.Save(ctx, session.Start("s1", "u1", "balanced", nil, testTime)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := s.ProfileRepo().Update(ctx, "u1", func(p *profile.Profile) error { return nil }); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := s.ProfileRepo().Reset(ctx, "u1"); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if _, err := repo.Latest(ctx, "u1"); !errors.Is(err, ErrNoSession) {
		t.Errorf("Latest() after reset err = %v, want ErrNoSession", err)
	}
}
