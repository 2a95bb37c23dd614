package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the directory server and worker.
// All methods are safe on a nil *Metrics so tests can omit it.
type Metrics struct {
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPPanics          *prometheus.CounterVec
	Searches            *prometheus.CounterVec
	SearchDuration      *prometheus.HistogramVec
	SearchFallbacks     prometheus.Counter
	QuotesSubmitted     prometheus.Counter
	Claims              *prometheus.CounterVec
	IdentityCalls       *prometheus.CounterVec
	WorkerTasks         *prometheus.CounterVec
	WorkerTaskDuration  *prometheus.HistogramVec
	WorkerReclaimed     prometheus.Counter
	RateLimited         *prometheus.CounterVec
}

var latencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}

// New registers every directory metric with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "directory_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by route and status",
			Buckets: latencyBuckets,
		}, []string{"method", "route", "status"}),
		HTTPPanics: f.NewCounterVec(prometheus.CounterOpts{
			Name: "directory_http_panics_total",
			Help: "Handler panics recovered by route",
		}, []string{"route"}),
		Searches: f.NewCounterVec(prometheus.CounterOpts{
			Name: "directory_searches_total",
			Help: "Directory searches by backend that served them",
		}, []string{"backend"}),
		SearchDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "directory_search_duration_seconds",
			Help:    "Duration of directory searches including facets",
			Buckets: latencyBuckets,
		}, []string{"backend"}),
		SearchFallbacks: f.NewCounter(prometheus.CounterOpts{
			Name: "directory_search_fallbacks_total",
			Help: "Searches that fell back from Typesense to PostgreSQL",
		}),
		QuotesSubmitted: f.NewCounter(prometheus.CounterOpts{
			Name: "directory_quotes_submitted_total",
			Help: "Quote requests accepted",
		}),
		Claims: f.NewCounterVec(prometheus.CounterOpts{
			Name: "directory_claims_total",
			Help: "Claim requests by outcome (submitted, approved, rejected, failed)",
		}, []string{"outcome"}),
		IdentityCalls: f.NewCounterVec(prometheus.CounterOpts{
			Name: "directory_identity_provider_calls_total",
			Help: "Identity provider calls by operation and result",
		}, []string{"operation", "result"}),
		WorkerTasks: f.NewCounterVec(prometheus.CounterOpts{
			Name: "directory_worker_tasks_total",
			Help: "Queue tasks processed by type and result",
		}, []string{"type", "result"}),
		WorkerTaskDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "directory_worker_task_duration_seconds",
			Help:    "Duration of queue task processing",
			Buckets: latencyBuckets,
		}, []string{"type"}),
		WorkerReclaimed: f.NewCounter(prometheus.CounterOpts{
			Name: "directory_worker_reclaimed_total",
			Help: "Stale queue tasks taken over from dead consumers",
		}),
		RateLimited: f.NewCounterVec(prometheus.CounterOpts{
			Name: "directory_rate_limited_total",
			Help: "Requests rejected by the submission rate limiter",
		}, []string{"route"}),
	}
}

func (m *Metrics) IncrementPanic(route string) {
	if m == nil {
		return
	}
	m.HTTPPanics.WithLabelValues(route).Inc()
}

// ObserveHTTPRequest records one served request. Call with time.Now() at the start.
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, start time.Time) {
	if m == nil {
		return
	}
	m.HTTPRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
}

// ObserveSearch records a search served by backend.
func (m *Metrics) ObserveSearch(backend string, start time.Time) {
	if m == nil {
		return
	}
	m.Searches.WithLabelValues(backend).Inc()
	m.SearchDuration.WithLabelValues(backend).Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncrementSearchFallback() {
	if m == nil {
		return
	}
	m.SearchFallbacks.Inc()
}

func (m *Metrics) IncrementQuoteSubmitted() {
	if m == nil {
		return
	}
	m.QuotesSubmitted.Inc()
}

func (m *Metrics) IncrementClaim(outcome string) {
	if m == nil {
		return
	}
	m.Claims.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncrementIdentityCall(operation, result string) {
	if m == nil {
		return
	}
	m.IdentityCalls.WithLabelValues(operation, result).Inc()
}

// ObserveWorkerTask records a processed task. Call with time.Now() at the start.
func (m *Metrics) ObserveWorkerTask(taskType, result string, start time.Time) {
	if m == nil {
		return
	}
	m.WorkerTasks.WithLabelValues(taskType, result).Inc()
	m.WorkerTaskDuration.WithLabelValues(taskType).Observe(time.Since(start).Seconds())
}

func (m *Metrics) AddReclaimed(n int) {
	if m == nil || n == 0 {
		return
	}
	m.WorkerReclaimed.Add(float64(n))
}

func (m *Metrics) IncrementRateLimited(route string) {
	if m == nil {
		return
	}
	m.RateLimited.WithLabelValues(route).Inc()
}
