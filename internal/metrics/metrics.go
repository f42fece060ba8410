package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "noor_http_requests_total",
		Help: "HTTP requests served, by method, route and status",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "noor_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	PrayerCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "noor_prayer_cache_hits_total",
		Help: "Prayer schedule lookups answered from the day cache",
	})

	PrayerCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "noor_prayer_cache_misses_total",
		Help: "Prayer schedule lookups that went to the upstream provider",
	})

	PrayerUpstreamErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "noor_prayer_upstream_errors_total",
		Help: "Failed calls to the prayer times provider",
	})

	QuizGenerations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "noor_quiz_generations_total",
		Help: "Quiz question generation attempts, by outcome",
	}, []string{"outcome"})
)

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// statusRecorder captures the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware records request counts and latency per route. The route label
// uses the mux path template so per-user URLs do not explode cardinality.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := r.URL.Path
		if current := mux.CurrentRoute(r); current != nil {
			if template, err := current.GetPathTemplate(); err == nil {
				route = template
			}
		}
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
	})
}
