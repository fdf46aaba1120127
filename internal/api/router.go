package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abhisek/mockmentor/internal/logger"
)

// NewRouter wires the handler and metrics into a gin engine.
func NewRouter(h *Handler, m *Metrics, log *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(log), m.Middleware())

	router.GET("/healthz", h.Health)
	router.GET("/metrics", m.Handler())

	api := router.Group("/api")
	{
		api.GET("/topics", h.Topics)
		api.GET("/questions", h.Questions)
		api.GET("/questions/next", h.NextQuestion)
		api.GET("/plan", h.Plan)
		api.POST("/answers", h.SubmitAnswer)
		api.POST("/grades", h.SubmitGrade)
		api.POST("/prompt", h.Prompt)
		api.GET("/analytics", h.Analytics)
		api.GET("/report", h.Report)
		api.POST("/fit", h.Fit)
		api.POST("/interviews", h.StartInterview)
		api.GET("/interviews/current", h.CurrentInterview)
		api.POST("/interviews/current/answers", h.AnswerInterview)
		api.GET("/interviews/current/report", h.InterviewReport)
	}
	return router
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = logger.Nop()
	}
	return func(c *gin.Context) {
		c.Next()
		log.Debug("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()))
	}
}
