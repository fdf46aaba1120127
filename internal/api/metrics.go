package api

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/abhisek/mockmentor/internal/selection"
)

// Metrics holds the server's Prometheus collectors. It implements
// coach.Recorder.
type Metrics struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	selections      *prometheus.CounterVec
	answers         *prometheus.CounterVec
	scores          prometheus.Histogram
}

// NewMetrics creates and registers the collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mockmentor_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mockmentor_http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"method", "endpoint"},
		),
		selections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mockmentor_questions_selected_total",
				Help: "Questions selected, by selection mode",
			},
			[]string{"mode"},
		),
		answers: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mockmentor_answers_total",
				Help: "Graded answers recorded, by topic",
			},
			[]string{"topic"},
		),
		scores: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "mockmentor_answer_score",
			Help:    "Distribution of answer scores (0-10)",
			Buckets: prometheus.LinearBuckets(1, 1, 10),
		}),
	}
	m.registry.MustRegister(m.requests, m.requestDuration, m.selections, m.answers, m.scores)
	return m
}

// ObserveSelection counts selected questions.
func (m *Metrics) ObserveSelection(mode selection.Mode, n int) {
	if mode == "" {
		mode = selection.ModeBalanced
	}
	m.selections.WithLabelValues(string(mode)).Add(float64(n))
}

// ObserveAnswer counts an answer and records its score.
func (m *Metrics) ObserveAnswer(topic string, score float64) {
	m.answers.WithLabelValues(topic).Inc()
	m.scores.Observe(score)
}

// Middleware records request counts and latencies.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		m.requests.WithLabelValues(c.Request.Method, endpoint, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestDuration.WithLabelValues(c.Request.Method, endpoint).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
