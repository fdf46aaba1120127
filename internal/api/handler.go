package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abhisek/mockmentor/internal/catalog"
	"github.com/abhisek/mockmentor/internal/coach"
	"github.com/abhisek/mockmentor/internal/logger"
	"github.com/abhisek/mockmentor/internal/selection"
	"github.com/abhisek/mockmentor/internal/session"
	"github.com/abhisek/mockmentor/internal/store"
)

// userHeader names the request header carrying the user id.
const userHeader = "X-User-ID"

// maxPlanCount bounds plan requests.
const maxPlanCount = 50

// Handler serves the JSON API on top of a coach.Service.
type Handler struct {
	svc         *coach.Service
	defaultUser string
	logger      *zap.Logger
}

// NewHandler creates a Handler. Requests without a user id act for
// defaultUser.
func NewHandler(svc *coach.Service, defaultUser string, log *zap.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{svc: svc, defaultUser: defaultUser, logger: log}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) userID(c *gin.Context) string {
	if u := c.Query("user"); u != "" {
		return u
	}
	if u := c.GetHeader(userHeader); u != "" {
		return u
	}
	return h.defaultUser
}

// fail maps domain errors onto HTTP status codes.
func (h *Handler) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, selection.ErrNoMatch),
		errors.Is(err, selection.ErrNoQuestions),
		errors.Is(err, catalog.ErrQuestionNotFound),
		errors.Is(err, store.ErrNoSession):
		status = http.StatusNotFound
	case errors.Is(err, session.ErrComplete),
		errors.Is(err, session.ErrNoAnswers):
		status = http.StatusConflict
	case errors.Is(err, selection.ErrUnknownMode),
		errors.Is(err, catalog.ErrUnknownDifficulty),
		errors.Is(err, coach.ErrInvalidScore),
		errors.Is(err, coach.ErrInvalidConfidence):
		status = http.StatusBadRequest
	}

	msg := err.Error()
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		msg = "internal error"
	}
	c.AbortWithStatusJSON(status, errorResponse{Error: msg})
}

func (h *Handler) badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: msg})
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Topics lists topics with question counts.
func (h *Handler) Topics(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Topics())
}

// Questions lists catalog questions. Query: topic, difficulty.
func (h *Handler) Questions(c *gin.Context) {
	difficulty, err := catalog.ParseDifficulty(c.Query("difficulty"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.svc.Questions(c.Query("topic"), difficulty))
}

// NextQuestion selects one question. Query: mode, topic.
func (h *Handler) NextQuestion(c *gin.Context) {
	mode, err := selection.ParseMode(c.Query("mode"))
	if err != nil {
		h.fail(c, err)
		return
	}
	q, err := h.svc.Next(c.Request.Context(), h.userID(c), mode, c.Query("topic"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

// Plan selects several questions. Query: mode, topic, count (default 5).
func (h *Handler) Plan(c *gin.Context) {
	mode, err := selection.ParseMode(c.Query("mode"))
	if err != nil {
		h.fail(c, err)
		return
	}
	count, err := strconv.Atoi(c.DefaultQuery("count", "5"))
	if err != nil || count < 1 || count > maxPlanCount {
		h.badRequest(c, "count must be an integer between 1 and 50")
		return
	}
	qs, err := h.svc.Plan(c.Request.Context(), h.userID(c), mode, c.Query("topic"), count)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mode": mode, "questions": qs})
}

type answerRequest struct {
	QuestionID string   `json:"question_id" binding:"required"`
	Score      *float64 `json:"score" binding:"required"`
	Confidence int      `json:"confidence"`
}

// SubmitAnswer records a graded answer.
func (h *Handler) SubmitAnswer(c *gin.Context) {
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err.Error())
		return
	}
	out, err := h.svc.SubmitAnswer(c.Request.Context(), h.userID(c), req.QuestionID, *req.Score, req.Confidence)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// Analytics returns the progress summary and recommendation.
func (h *Handler) Analytics(c *gin.Context) {
	a, err := h.svc.Analytics(c.Request.Context(), h.userID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// Report returns the short usage report.
func (h *Handler) Report(c *gin.Context) {
	u, err := h.svc.Report(c.Request.Context(), h.userID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

type gradeRequest struct {
	QuestionID string          `json:"question_id" binding:"required"`
	Result     json.RawMessage `json:"result" binding:"required"`
	Confidence int             `json:"confidence"`
}

// SubmitGrade records an answer scored by an external grader. Malformed
// grader output is recorded with the fallback score.
func (h *Handler) SubmitGrade(c *gin.Context) {
	var req gradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err.Error())
		return
	}
	raw := []byte(req.Result)
	// A JSON string carries the grader's raw text reply.
	var text string
	if json.Unmarshal(raw, &text) == nil {
		raw = []byte(text)
	}
	out, err := h.svc.SubmitGrade(c.Request.Context(), h.userID(c), req.QuestionID, raw, req.Confidence)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

type promptRequest struct {
	QuestionID string `json:"question_id" binding:"required"`
	Answer     string `json:"answer" binding:"required"`
}

// Prompt builds the grading prompt for an answer.
func (h *Handler) Prompt(c *gin.Context) {
	var req promptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err.Error())
		return
	}
	p, err := h.svc.Prompt(req.QuestionID, req.Answer)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"prompt": p})
}
