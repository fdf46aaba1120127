package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mockmentor/internal/catalog"
	"github.com/abhisek/mockmentor/internal/coach"
	"github.com/abhisek/mockmentor/internal/selection"
	"github.com/abhisek/mockmentor/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router  *gin.Engine
	metrics *Metrics
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	st, err := store.Open(fmt.Sprintf("file:api_%s?mode=memory&cache=shared", name), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	cat, err := catalog.New(nil, []catalog.Question{
		{ID: "sql_001", Topic: "sql", Difficulty: catalog.DifficultyEasy, Text: "Explain window functions.", IdealPoints: []string{"partition"}},
		{ID: "sql_002", Topic: "sql", Difficulty: catalog.DifficultyHard, Text: "Tune a slow join.", IdealPoints: []string{"indexes"}},
		{ID: "py_001", Topic: "python", Difficulty: catalog.DifficultyMedium, Text: "Generators vs lists.", IdealPoints: []string{"laziness"}},
	})
	require.NoError(t, err)

	m := NewMetrics()
	svc := coach.New(coach.Deps{
		Catalog:  cat,
		Profiles: st.ProfileRepo(),
		Events:   st.EventRepo(),
		Sessions: st.SessionRepo(),
		Selector: selection.NewSeeded(42),
		Recorder: m,
		Now:      func() time.Time { return time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC) },
	})
	h := NewHandler(svc, "default_user", nil)
	return &testServer{router: NewRouter(h, m, nil), metrics: m}
}

func (s *testServer) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestTopics(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/api/topics", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var topics []catalog.TopicSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &topics))
	require.Len(t, topics, 2)
	counts := map[string]int{}
	for _, ts := range topics {
		counts[ts.ID] = ts.Count
	}
	assert.Equal(t, map[string]int{"sql": 2, "python": 1}, counts)
}

func TestQuestions(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/questions?topic=sql&difficulty=hard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var qs []catalog.Question
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &qs))
	require.Len(t, qs, 1)
	assert.Equal(t, "sql_002", qs[0].ID)

	w = s.do(t, http.MethodGet, "/api/questions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &qs))
	assert.Len(t, qs, 3)

	w = s.do(t, http.MethodGet, "/api/questions?topic=kubernetes", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/questions?difficulty=brutal", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNextQuestion(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/questions/next?topic=sql", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var q catalog.Question
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &q))
	assert.Equal(t, "sql", q.Topic)

	w = s.do(t, http.MethodGet, "/api/questions/next?topic=kubernetes", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodGet, "/api/questions/next?mode=cram", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlan(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/plan?count=3&mode=explore", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Mode      string             `json:"mode"`
		Questions []catalog.Question `json:"questions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "explore", resp.Mode)
	assert.Len(t, resp.Questions, 3)

	for _, bad := range []string{"0", "abc", "51"} {
		w = s.do(t, http.MethodGet, "/api/plan?count="+bad, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, "count=%s", bad)
	}
}

func TestSubmitAnswer(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/answers", map[string]any{
		"question_id": "sql_001",
		"score":       8,
		"confidence":  3,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/report", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var report map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.EqualValues(t, 1, report["answered"])

	// Another user sees an empty profile.
	w = s.do(t, http.MethodGet, "/api/report?user=someone_else", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.EqualValues(t, 0, report["answered"])
}

func TestSubmitAnswer_Errors(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"missing score", map[string]any{"question_id": "sql_001"}, http.StatusBadRequest},
		{"missing question", map[string]any{"score": 5}, http.StatusBadRequest},
		{"score out of range", map[string]any{"question_id": "sql_001", "score": 11}, http.StatusBadRequest},
		{"bad confidence", map[string]any{"question_id": "sql_001", "score": 5, "confidence": 9}, http.StatusBadRequest},
		{"unknown question", map[string]any{"question_id": "nope", "score": 5}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, http.MethodPost, "/api/answers", tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}
}

func TestAnalytics(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/analytics", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var a map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &a))
	assert.EqualValues(t, 0, a["total_questions_answered"])
	assert.EqualValues(t, 3, a["due_for_review"])
	assert.Contains(t, a, "topic_mastery")
	assert.Contains(t, a, "recommendations")
}

func TestMetrics(t *testing.T) {
	s := newTestServer(t)

	s.do(t, http.MethodGet, "/api/questions/next?mode=review", nil)
	s.do(t, http.MethodPost, "/api/answers", map[string]any{"question_id": "py_001", "score": 6})

	w := s.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `mockmentor_questions_selected_total{mode="review"} 1`)
	assert.Contains(t, body, `mockmentor_answers_total{topic="python"} 1`)
	assert.Contains(t, body, `mockmentor_http_requests_total{endpoint="/api/answers",method="POST",status="201"} 1`)
}

func TestSubmitGrade(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/grades", map[string]any{
		"question_id": "sql_002",
		"result":      "```json\n{\"overall_score\": 7, \"feedback\": \"Good on indexes.\"}\n```",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var out coach.GradeOutcome
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.False(t, out.Invalid)
	assert.InDelta(t, 7.0, out.Result.OverallScore, 1e-9)

	w = s.do(t, http.MethodPost, "/api/grades", map[string]any{
		"question_id": "sql_002",
		"result":      map[string]any{"feedback": "no scores"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.True(t, out.Invalid)
}

func TestPrompt(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/prompt", map[string]any{
		"question_id": "py_001",
		"answer":      "Generators are lazy.",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Generators are lazy.")

	w = s.do(t, http.MethodPost, "/api/prompt", map[string]any{"question_id": "nope", "answer": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

var fitInput = map[string]any{
	"candidate": map[string]any{
		"name":             "Robin",
		"skills":           []string{"python", "sql", "airflow"},
		"experience_years": 3,
	},
	"job": map[string]any{
		"title":               "Data Engineer",
		"required_skills":     []string{"Python", "SQL", "Kafka", "dbt"},
		"preferred_skills":    []string{"Airflow"},
		"experience_required": map[string]any{"min": 2, "max": 5},
		"interview_topics":    []string{"pipelines"},
	},
}

func TestFit(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/fit", fitInput)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var r struct {
		OverallScore float64  `json:"overall_score"`
		Gaps         []string `json:"gaps"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &r))
	assert.Equal(t, 70.0, r.OverallScore)
	assert.Equal(t, []string{"Kafka", "dbt"}, r.Gaps)

	w = s.do(t, http.MethodPost, "/api/fit", map[string]any{"candidate": map[string]any{"skills": "sql"}})
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
}

func TestInterview(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/interviews/current", nil)
	assert.Equal(t, http.StatusNotFound, w.Code, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/interviews", map[string]any{
		"topic": "sql",
		"count": 2,
		"fit":   fitInput,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/interviews/current/report", nil)
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/interviews/current/answers", map[string]any{"score": 9, "follow_up": true})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var turn struct {
		FollowUp bool            `json:"follow_up"`
		Mastery  json.RawMessage `json:"recorded"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &turn))
	assert.True(t, turn.FollowUp)
	assert.NotEmpty(t, turn.Mastery)

	w = s.do(t, http.MethodGet, "/api/interviews/current", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var status struct {
		Depth    int `json:"depth"`
		Progress struct {
			Current int `json:"current"`
			Total   int `json:"total"`
		} `json:"progress"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, 1, status.Depth)
	assert.Equal(t, 1, status.Progress.Current)
	assert.Equal(t, 2, status.Progress.Total)

	for _, score := range []int{7, 5} {
		w = s.do(t, http.MethodPost, "/api/interviews/current/answers", map[string]any{"score": score})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}
	w = s.do(t, http.MethodPost, "/api/interviews/current/answers", map[string]any{"score": 5})
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/interviews/current/report", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var report struct {
		OverallScore float64  `json:"overall_score"`
		MatchScore   *float64 `json:"match_score"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, 70.0, report.OverallScore)
	require.NotNil(t, report.MatchScore)
	assert.Equal(t, 70.0, *report.MatchScore)

	// Follow-ups stay out of the mastery record.
	w = s.do(t, http.MethodGet, "/api/report", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var usage map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &usage))
	assert.EqualValues(t, 2, usage["answered"])
}

func TestInterview_Errors(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/interviews", map[string]any{"mode": "chaos"})
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	w = s.do(t, http.MethodPost, "/api/interviews", map[string]any{"count": 51})
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	w = s.do(t, http.MethodPost, "/api/interviews", map[string]any{"topic": "rust"})
	assert.Equal(t, http.StatusNotFound, w.Code, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/interviews", map[string]any{})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = s.do(t, http.MethodPost, "/api/interviews/current/answers", map[string]any{"answer": "no score"})
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	w = s.do(t, http.MethodPost, "/api/interviews/current/answers", map[string]any{"score": 12})
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
}
