package session

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestBuildReport_NoAnswers(t *testing.T) {
	s := Start("s1", "u1", "balanced", testQuestions(), t0)
	if _, err := BuildReport(s, t0); !errors.Is(err, ErrNoAnswers) {
		t.Errorf("err = %v, want ErrNoAnswers", err)
	}
}

func TestBuildReport(t *testing.T) {
	score := 72.5
	s := Start("s1", "u1", "balanced", testQuestions(), t0)
	s.MatchScore = &score
	s.JobTitle = "Data Engineer"

	// sql: 8 and 9, python: 4, cloud: 6.5
	s.Record("a", 8, "", t0)
	s.FollowUp()
	s.Record("b", 9, "", t0)
	s.Advance()
	s.Advance()
	s.Record("c", 4, "", t0)
	s.Advance()
	s.Record("d", 6.5, "", t0)

	r, err := BuildReport(s, t0.Add(12*time.Minute+30*time.Second))
	if err != nil {
		t.Fatal(err)
	}

	if r.OverallScore != 68.8 {
		t.Errorf("OverallScore = %v, want 68.8", r.OverallScore)
	}
	if r.QuestionsAnswered != 4 {
		t.Errorf("QuestionsAnswered = %d, want 4", r.QuestionsAnswered)
	}
	wantBreakdown := map[string]float64{"sql": 8.5, "python": 4, "cloud": 6.5}
	if !reflect.DeepEqual(r.TopicBreakdown, wantBreakdown) {
		t.Errorf("TopicBreakdown = %v, want %v", r.TopicBreakdown, wantBreakdown)
	}
	if !reflect.DeepEqual(r.StrongAreas, []string{"sql"}) {
		t.Errorf("StrongAreas = %v, want [sql]", r.StrongAreas)
	}
	if !reflect.DeepEqual(r.ImprovementAreas, []string{"python"}) {
		t.Errorf("ImprovementAreas = %v, want [python]", r.ImprovementAreas)
	}
	if r.MatchScore == nil || *r.MatchScore != 72.5 {
		t.Errorf("MatchScore = %v, want 72.5", r.MatchScore)
	}
	if r.JobTitle != "Data Engineer" {
		t.Errorf("JobTitle = %q", r.JobTitle)
	}
	if r.DurationMinutes != 12.5 {
		t.Errorf("DurationMinutes = %v, want 12.5", r.DurationMinutes)
	}
	if len(r.Answers) != 4 {
		t.Errorf("len(Answers) = %d, want 4", len(r.Answers))
	}
}

func TestBuildReport_ZeroScoresCount(t *testing.T) {
	s := Start("s1", "u1", "balanced", testQuestions(), t0)
	s.Record("", 0, "", t0)
	s.Advance()
	s.Record("", 10, "", t0)

	r, err := BuildReport(s, t0)
	if err != nil {
		t.Fatal(err)
	}
	if r.OverallScore != 50 {
		t.Errorf("OverallScore = %v, want 50", r.OverallScore)
	}
}

func TestBuildReport_UntopicedAnswersAreGeneral(t *testing.T) {
	s := &Session{Answers: []Answer{{Score: 7}}}
	r, err := BuildReport(s, t0)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := r.TopicBreakdown["General"]; !ok {
		t.Errorf("TopicBreakdown = %v, want a General entry", r.TopicBreakdown)
	}
	if r.DurationMinutes != 0 {
		t.Errorf("DurationMinutes = %v, want 0 without a start time", r.DurationMinutes)
	}
}
