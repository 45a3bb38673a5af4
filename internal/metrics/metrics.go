package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"route", "method"},
	)

	AIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ai_requests_total",
			Help: "Total number of AI requests by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)
	AIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ai_request_duration_seconds",
			Help:    "AI request duration in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"operation"},
	)

	PlagiarismVerdictsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plagiarism_verdicts_total",
			Help: "Plagiarism checks by verdict",
		},
		[]string{"verdict"},
	)
	PlagiarismSimilarity = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "plagiarism_max_similarity_percent",
			Help:    "Distribution of the best cosine similarity found per checked answer",
			Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 95, 100},
		},
	)

	WebSocketConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connections",
			Help: "Number of open interview room connections",
		},
	)
	WebSocketMessagesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "websocket_messages_total",
			Help: "Interview room messages handled by type",
		},
		[]string{"type"},
	)
	PasteEventsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "paste_events_total",
			Help: "Large pastes detected in interview rooms",
		},
	)
)

var registerOnce sync.Once

// registers every collector with the default registry. safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			HTTPRequestsTotal,
			HTTPRequestDuration,
			AIRequestsTotal,
			AIRequestDuration,
			PlagiarismVerdictsTotal,
			PlagiarismSimilarity,
			WebSocketConnections,
			WebSocketMessagesTotal,
			PasteEventsTotal,
		)
	})
}

// records Prometheus metrics for each request
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		HTTPRequestsTotal.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		HTTPRequestDuration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

// serves the default registry
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// times one AI call and records its outcome
func ObserveAI(operation string, start time.Time, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}

	AIRequestsTotal.WithLabelValues(operation, outcome).Inc()
	AIRequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// records one plagiarism verdict and its best similarity
func ObservePlagiarism(plagiarized bool, similarity float64) {
	verdict := "original"
	if plagiarized {
		verdict = "plagiarized"
	}

	PlagiarismVerdictsTotal.WithLabelValues(verdict).Inc()
	PlagiarismSimilarity.Observe(similarity)
}
