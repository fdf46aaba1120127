package profile

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

func TestRecordWeakArea_Smoothing(t *testing.T) {
	p := New()

	// 0.5*0.7 + 1.0*0.3
	assert.InDelta(t, 0.65, p.RecordWeakArea("sql", 10), 1e-9)
	// 0.65*0.7 + 0.2*0.3
	assert.InDelta(t, 0.515, p.RecordWeakArea("sql", 2), 1e-9)
	assert.InDelta(t, DefaultWeakArea, p.WeakArea("cloud"), 1e-9)
}

func TestRecordWeakArea_ClampsScore(t *testing.T) {
	p := New()
	assert.InDelta(t, 0.65, p.RecordWeakArea("sql", 42), 1e-9)
	assert.InDelta(t, 0.35, p.RecordWeakArea("cloud", -3), 1e-9)
}

func TestRecordAnswer(t *testing.T) {
	p := New()
	rec := p.RecordAnswer("sql_001", "sql", 8, 3, now)

	assert.Equal(t, 1, rec.Attempts())
	assert.Equal(t, 3, rec.Level())
	assert.Equal(t, rec, p.Record("sql_001"))
	require.Len(t, p.History, 1)
	assert.Equal(t, HistoryEntry{QuestionID: "sql_001", Score: 8, Topic: "sql", Date: "2024-06-01"}, p.History[0])
	assert.Equal(t, []string{"sql_001"}, p.QuestionsSeen)
	assert.InDelta(t, 0.59, p.WeakArea("sql"), 1e-9)

	p.RecordAnswer("sql_001", "sql", 6, 2, now.AddDate(0, 0, 1))
	assert.Equal(t, []string{"sql_001"}, p.QuestionsSeen, "seen list has no duplicates")
	assert.Len(t, p.History, 2)
	assert.Equal(t, 2, p.Record("sql_001").Attempts())
}

func TestRecordAnswer_ZeroValueProfile(t *testing.T) {
	var p Profile
	p.RecordAnswer("py_001", "python", 9, 3, now)
	assert.True(t, p.HasSeen("py_001"))
	assert.True(t, p.SeenSet()["py_001"])
}

func TestUsage(t *testing.T) {
	p := New()
	assert.Equal(t, Usage{}, p.Usage())

	p.RecordAnswer("a", "sql", 4, 2, now)
	p.RecordAnswer("b", "cloud", 8, 2, now)
	p.RecordAnswer("c", "python", 4, 2, now)

	u := p.Usage()
	assert.Equal(t, 3, u.Answered)
	assert.InDelta(t, 16.0/3, u.AverageScore, 1e-9)
	// sql and python tie; alphabetical order wins.
	assert.Equal(t, "python", u.WeakestTopic)
	assert.InDelta(t, 0.47, u.WeakestScore, 1e-9)
}

func TestJSON_RoundTripPreservesUnknownFields(t *testing.T) {
	in := `{
		"weak_areas": {"sql": 0.42},
		"history": [{"question_id": "sql_001", "score": 7, "topic": "sql", "date": "2024-06-01"}],
		"questions_seen": ["sql_001"],
		"question_mastery": {
			"sql_001": {"attempts": 3, "correct_count": 2, "avg_confidence": 2.3,
				"last_score": 7, "scores": [5, 6, 7], "last_reviewed": "2024-06-01",
				"next_review": "2024-06-08", "mastery_level": 3}
		},
		"session_stats": {"total_time_seconds": 120, "sessions_count": 4},
		"display_name": "Sam",
		"preferences": {"voice": true}
	}`

	var p Profile
	require.NoError(t, json.Unmarshal([]byte(in), &p))
	assert.InDelta(t, 0.42, p.WeakAreas["sql"], 1e-9)
	assert.Equal(t, 3, p.Record("sql_001").Attempts())
	assert.Equal(t, 4, p.SessionStats.SessionsCount)

	out, err := json.Marshal(p)
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &doc))
	assert.JSONEq(t, `"Sam"`, string(doc["display_name"]))
	assert.JSONEq(t, `{"voice": true}`, string(doc["preferences"]))
	assert.Contains(t, doc, "question_mastery")
}

func TestJSON_RoundTripPreservesNestedUnknownFields(t *testing.T) {
	in := `{
		"history": [{"question_id": "sql_001", "score": 7, "topic": "sql",
			"date": "2024-06-01", "answer_text": "use an index"}],
		"question_mastery": {"sql_001": {"attempts": 1, "correct_count": 1,
			"avg_confidence": 2, "last_score": 7, "scores": [7], "ease": 2.5}},
		"session_stats": {"total_time_seconds": 60, "sessions_count": 1, "streak": 3}
	}`

	var p Profile
	require.NoError(t, json.Unmarshal([]byte(in), &p))

	// A new answer must not disturb what was already stored.
	p.RecordAnswer("sql_001", "sql", 9, 3, now)
	p.SessionStats.SessionsCount++

	out, err := json.Marshal(p)
	require.NoError(t, err)

	var doc struct {
		History  []map[string]json.RawMessage          `json:"history"`
		Mastery  map[string]map[string]json.RawMessage `json:"question_mastery"`
		Sessions map[string]json.RawMessage            `json:"session_stats"`
	}
	require.NoError(t, json.Unmarshal(out, &doc))
	require.Len(t, doc.History, 2)
	assert.JSONEq(t, `"use an index"`, string(doc.History[0]["answer_text"]))
	assert.NotContains(t, doc.History[1], "answer_text")
	assert.JSONEq(t, `2.5`, string(doc.Mastery["sql_001"]["ease"]))
	assert.JSONEq(t, `2`, string(doc.Mastery["sql_001"]["attempts"]))
	assert.JSONEq(t, `3`, string(doc.Sessions["streak"]))
	assert.JSONEq(t, `2`, string(doc.Sessions["sessions_count"]))
}

func TestJSON_MissingSectionsGetDefaults(t *testing.T) {
	var p Profile
	require.NoError(t, json.Unmarshal([]byte(`{"history": null}`), &p))
	assert.NotNil(t, p.WeakAreas)
	assert.NotNil(t, p.Mastery)
	assert.Empty(t, p.History)

	out, err := json.Marshal(New())
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"weak_areas": {}, "history": [], "questions_seen": [], "question_mastery": {},
		"session_stats": {"total_time_seconds": 0, "sessions_count": 0}
	}`, string(out))
}

func TestJSON_Corrupt(t *testing.T) {
	var p Profile
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &p))
	assert.Error(t, json.Unmarshal([]byte(`{"weak_areas": "high"}`), &p))
}
