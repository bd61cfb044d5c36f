package observability

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
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
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"route", "method"},
	)

	AIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ai_requests_total",
			Help: "Total number of AI requests by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)
	AIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ai_request_duration_seconds",
			Help:    "AI request duration in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 45, 90},
		},
		[]string{"provider"},
	)
	AIPromptTokens = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ai_prompt_tokens",
			Help:    "Estimated prompt size in tokens",
			Buckets: []float64{50, 100, 200, 400, 800, 1600},
		},
		[]string{"provider"},
	)
	AICacheHitsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ai_cache_hits_total",
			Help: "Completions served from the in-memory cache",
		},
	)

	QueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "queries_total",
			Help: "Total number of navigator queries by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)
	QueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "query_duration_seconds",
			Help:    "End to end query duration including parsing",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 45, 90},
		},
		[]string{"kind"},
	)

	SessionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "sessions_active",
			Help: "Number of live navigator sessions",
		},
	)
	SessionTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_transitions_total",
			Help: "Orchestrator stage transitions by target stage",
		},
		[]string{"stage"},
	)
	StaleCompletionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "session_stale_completions_total",
			Help: "Query completions discarded because a newer action superseded them",
		},
	)
)

var registerOnce sync.Once

// InitMetrics registers all collectors with the default registry. Safe to call more than once.
func InitMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(HTTPRequestsTotal)
		prometheus.MustRegister(HTTPRequestDuration)
		prometheus.MustRegister(AIRequestsTotal)
		prometheus.MustRegister(AIRequestDuration)
		prometheus.MustRegister(AIPromptTokens)
		prometheus.MustRegister(AICacheHitsTotal)
		prometheus.MustRegister(QueriesTotal)
		prometheus.MustRegister(QueryDuration)
		prometheus.MustRegister(SessionsActive)
		prometheus.MustRegister(SessionTransitionsTotal)
		prometheus.MustRegister(StaleCompletionsTotal)
	})
}

// HTTPMetricsMiddleware records Prometheus metrics for each request.
func HTTPMetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		dur := time.Since(start).Seconds()
		// Route pattern may be unavailable outside chi router; guard nil
		var route string
		if rc := chi.RouteContext(r.Context()); rc != nil {
			route = rc.RoutePattern()
		}
		if route == "" {
			route = r.URL.Path
		}
		status := ww.Status()
		HTTPRequestsTotal.WithLabelValues(route, r.Method, http.StatusText(status)).Inc()
		HTTPRequestDuration.WithLabelValues(route, r.Method).Observe(dur)
	})
}

// ObserveAIRequest records one completion call.
func ObserveAIRequest(provider, outcome string, dur time.Duration, promptTokens int) {
	AIRequestsTotal.WithLabelValues(provider, outcome).Inc()
	AIRequestDuration.WithLabelValues(provider).Observe(dur.Seconds())
	if promptTokens > 0 {
		AIPromptTokens.WithLabelValues(provider).Observe(float64(promptTokens))
	}
}

// ObserveQuery records the outcome of a navigator query.
func ObserveQuery(kind, outcome string, dur time.Duration) {
	QueriesTotal.WithLabelValues(kind, outcome).Inc()
	QueryDuration.WithLabelValues(kind).Observe(dur.Seconds())
}

// ObserveTransition counts an orchestrator move into stage.
func ObserveTransition(stage string) {
	SessionTransitionsTotal.WithLabelValues(stage).Inc()
}
