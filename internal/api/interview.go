package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/mockmentor/internal/catalog"
	"github.com/abhisek/mockmentor/internal/coach"
	"github.com/abhisek/mockmentor/internal/match"
	"github.com/abhisek/mockmentor/internal/selection"
	"github.com/abhisek/mockmentor/internal/session"
)

// Fit scores a candidate against a job. Body: {"candidate": ..., "job": ...}.
func (h *Handler) Fit(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		h.badRequest(c, err.Error())
		return
	}
	in, err := match.Parse(raw)
	if err != nil {
		h.badRequest(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, h.svc.Fit(in.Candidate, in.Job))
}

type startInterviewRequest struct {
	Mode  string       `json:"mode"`
	Topic string       `json:"topic"`
	Count int          `json:"count"`
	Fit   *match.Input `json:"fit"`
}

// StartInterview begins a new interview for the user.
func (h *Handler) StartInterview(c *gin.Context) {
	var req startInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err.Error())
		return
	}
	mode, err := selection.ParseMode(req.Mode)
	if err != nil {
		h.fail(c, err)
		return
	}
	if req.Count < 0 || req.Count > maxPlanCount {
		h.badRequest(c, "count must be at most 50")
		return
	}

	opts := coach.InterviewOptions{Mode: mode, Topic: req.Topic, Count: req.Count}
	if req.Fit != nil {
		r := h.svc.Fit(req.Fit.Candidate, req.Fit.Job)
		opts.Fit = &r
	}
	sess, err := h.svc.StartInterview(c.Request.Context(), h.userID(c), opts)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, sess)
}

type interviewStatus struct {
	ID       string            `json:"id"`
	Depth    int               `json:"depth"`
	Question *catalog.Question `json:"question,omitempty"`
	Progress session.Progress  `json:"progress"`
	Complete bool              `json:"complete"`
}

// CurrentInterview returns the question being asked and the progress.
func (h *Handler) CurrentInterview(c *gin.Context) {
	sess, err := h.svc.CurrentInterview(c.Request.Context(), h.userID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	status := interviewStatus{
		ID:       sess.ID,
		Depth:    sess.Depth,
		Progress: sess.Progress(),
		Complete: sess.Complete(),
	}
	if q, ok := sess.Current(); ok {
		status.Question = &q
	}
	c.JSON(http.StatusOK, status)
}

type interviewAnswerRequest struct {
	Answer     string   `json:"answer"`
	Score      *float64 `json:"score" binding:"required"`
	Feedback   string   `json:"feedback"`
	Confidence int      `json:"confidence"`
	FollowUp   bool     `json:"follow_up"`
}

// AnswerInterview records a reply to the current interview question.
func (h *Handler) AnswerInterview(c *gin.Context) {
	var req interviewAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err.Error())
		return
	}
	turn, err := h.svc.AnswerInterview(c.Request.Context(), h.userID(c), coach.InterviewReply{
		Text:       req.Answer,
		Score:      *req.Score,
		Feedback:   req.Feedback,
		Confidence: req.Confidence,
		FollowUp:   req.FollowUp,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, turn)
}

// InterviewReport evaluates the user's latest interview.
func (h *Handler) InterviewReport(c *gin.Context) {
	r, err := h.svc.InterviewReport(c.Request.Context(), h.userID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}
