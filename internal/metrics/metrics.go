// Package metrics exposes Prometheus counters for the gateway.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	PapersBuilt = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "prepdeck",
		Name:      "papers_built_total",
		Help:      "Question papers assembled.",
	})

	SubmissionsScored = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "prepdeck",
		Name:      "submissions_scored_total",
		Help:      "Test submissions scored and persisted.",
	})

	SubmissionErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "prepdeck",
		Name:      "submission_errors_total",
		Help:      "Test submissions that failed.",
	})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "prepdeck",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "status"})
)

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler { return promhttp.Handler() }

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware records request latency per method and status code.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		httpDuration.WithLabelValues(r.Method, strconv.Itoa(rec.status)).
			Observe(time.Since(start).Seconds())
	})
}
