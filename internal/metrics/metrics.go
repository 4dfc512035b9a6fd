package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Pass fetch outcomes. Users see one message for every failure; the
// distinction lives here and in the logs.
const (
	OutcomeOK        = "ok"
	OutcomeTransport = "transport"
	OutcomeStatus    = "status"
	OutcomeDecode    = "decode"
	OutcomeOther     = "other"
)

var (
	passFetchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skypass_pass_fetch_total",
			Help: "Pass prediction requests by outcome.",
		},
		[]string{"outcome"},
	)

	passFetchDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "skypass_pass_fetch_duration_seconds",
			Help:    "Pass prediction request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
	)

	locationRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skypass_location_requests_total",
			Help: "Device location requests by outcome.",
		},
		[]string{"outcome"},
	)

	activeSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "skypass_active_sessions",
			Help: "Sessions currently held in memory.",
		},
	)

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skypass_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"route", "method", "code"},
	)

	httpDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "skypass_http_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
)

func init() {
	prometheus.MustRegister(passFetchTotal)
	prometheus.MustRegister(passFetchDurationSeconds)
	prometheus.MustRegister(locationRequestsTotal)
	prometheus.MustRegister(activeSessions)
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(httpDurationSeconds)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

func ObservePassFetch(outcome string, d time.Duration) {
	passFetchTotal.WithLabelValues(outcome).Inc()
	passFetchDurationSeconds.Observe(d.Seconds())
}

func ObserveLocation(outcome string) {
	locationRequestsTotal.WithLabelValues(outcome).Inc()
}

func SetActiveSessions(n int) {
	activeSessions.Set(float64(n))
}

// Middleware records request count and duration. Routes are labelled by
// their registered pattern so session IDs do not explode cardinality.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "other"
		}
		code := strconv.Itoa(c.Writer.Status())

		httpRequestsTotal.WithLabelValues(route, c.Request.Method, code).Inc()
		httpDurationSeconds.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}
