// Package metrics exposes Prometheus metrics for the analysis pipeline,
// the model gateway, service use cases and the HTTP API.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/alexanderramin/nuclea/internal/analysis"
	"github.com/alexanderramin/nuclea/internal/llm"
	"github.com/alexanderramin/nuclea/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Analysis latencies are in seconds and routinely exceed the default buckets.
var defaultBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 40, 60}

// Manager owns a private registry. It implements llm.Observer,
// analysis.StageObserver and service.UseCaseObserver.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	llmCalls        *prometheus.CounterVec
	llmLatency      *prometheus.HistogramVec
	stages          *prometheus.CounterVec
	defaultedScores prometheus.Counter
	useCases        *prometheus.CounterVec
	useCaseLatency  *prometheus.HistogramVec
	httpRequests    *prometheus.CounterVec
	httpLatency     *prometheus.HistogramVec
	streamsInFlight prometheus.Gauge
}

var (
	_ llm.Observer            = (*Manager)(nil)
	_ analysis.StageObserver  = (*Manager)(nil)
	_ service.UseCaseObserver = (*Manager)(nil)
)

// NewManager creates a Manager. Without WithRegistry a fresh registry with
// the Go and process collectors is used.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "nuclea",
		histogramBuckets: defaultBuckets,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.llmCalls = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "llm_calls_total",
		Help:      "Generation calls by task, model and outcome.",
	}, []string{"task", "model", "outcome"})

	m.llmLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "llm_call_duration_seconds",
		Help:      "Generation call latency by task.",
		Buckets:   m.histogramBuckets,
	}, []string{"task"})

	m.stages = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pipeline_stages_total",
		Help:      "Completed pipeline stages by stage, mode and whether the output decoded cleanly.",
	}, []string{"stage", "mode", "decoded"})

	m.defaultedScores = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rubric_scores_defaulted_total",
		Help:      "Rubric dimensions replaced by the neutral default.",
	})

	m.useCases = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "use_cases_total",
		Help:      "Service use case executions by name and success.",
	}, []string{"use_case", "success"})

	m.useCaseLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "use_case_duration_seconds",
		Help:      "Service use case latency.",
		Buckets:   m.histogramBuckets,
	}, []string{"use_case"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests by route, method and status.",
	}, []string{"route", "method", "status"})

	m.httpLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route and method.",
		Buckets:   m.histogramBuckets,
	}, []string{"route", "method"})

	m.streamsInFlight = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "analysis_streams_in_flight",
		Help:      "Analysis event streams currently open.",
	})
}

func (m *Manager) OnCallComplete(e llm.LLMCallEvent) {
	outcome := "success"
	if !e.Success {
		outcome = e.ErrorCode
		if outcome == "" {
			outcome = "error"
		}
	}
	m.llmCalls.WithLabelValues(string(e.Task), e.Model, outcome).Inc()
	m.llmLatency.WithLabelValues(string(e.Task)).Observe(float64(e.LatencyMs) / 1000)
}

func (m *Manager) OnStageComplete(e analysis.StageEvent) {
	m.stages.WithLabelValues(string(e.Stage), string(e.Mode), strconv.FormatBool(e.Decoded)).Inc()
	if e.DefaultedScores > 0 {
		m.defaultedScores.Add(float64(e.DefaultedScores))
	}
}

func (m *Manager) ObserveUseCase(_ context.Context, e service.UseCaseEvent) {
	m.useCases.WithLabelValues(e.Name, strconv.FormatBool(e.Success)).Inc()
	m.useCaseLatency.WithLabelValues(e.Name).Observe(e.Duration.Seconds())
}

// ObserveHTTP records one finished request. route is the matched pattern,
// not the raw path.
func (m *Manager) ObserveHTTP(route, method string, status int, d time.Duration) {
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpLatency.WithLabelValues(route, method).Observe(d.Seconds())
}

// StreamStarted marks an analysis stream as open and returns the func that closes it.
func (m *Manager) StreamStarted() (done func()) {
	m.streamsInFlight.Inc()
	return m.streamsInFlight.Dec
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}
