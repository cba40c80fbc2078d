package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the process-local Prometheus collectors. All topology
// instrumentation goes through this single registry so the /metrics
// endpoint exposes a consistent view.
type Metrics struct {
	registry *prometheus.Registry

	commandDuration   *prometheus.HistogramVec
	commandErrors     *prometheus.CounterVec
	queryDuration     *prometheus.HistogramVec
	queryErrors       *prometheus.CounterVec
	observerCallbacks *prometheus.CounterVec
	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
}

// NewMetrics creates and registers all collectors on a fresh registry
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		commandDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "topology",
			Name:      "command_duration_seconds",
			Help:      "Command execution duration by command type",
			Buckets:   prometheus.DefBuckets,
		}, []string{"command"}),
		commandErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "topology",
			Name:      "command_errors_total",
			Help:      "Failed command executions by command type",
		}, []string{"command"}),
		queryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "topology",
			Name:      "query_duration_seconds",
			Help:      "Query execution duration by query type",
			Buckets:   prometheus.DefBuckets,
		}, []string{"query"}),
		queryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "topology",
			Name:      "query_errors_total",
			Help:      "Failed query executions by query type",
		}, []string{"query"}),
		observerCallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "topology",
			Name:      "observer_callbacks_total",
			Help:      "Observer notifications delivered by hook",
		}, []string{"hook"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "topology",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, path and status",
		}, []string{"method", "path", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "topology",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration by method and path",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}

	registry.MustRegister(
		m.commandDuration,
		m.commandErrors,
		m.queryDuration,
		m.queryErrors,
		m.observerCallbacks,
		m.httpRequests,
		m.httpDuration,
	)
	return m
}

// Handler returns the HTTP handler serving the registry in the
// Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveCommand records one command execution; satisfies the command
// bus Recorder interface
func (m *Metrics) ObserveCommand(commandType string, duration time.Duration, err error) {
	m.commandDuration.WithLabelValues(commandType).Observe(duration.Seconds())
	if err != nil {
		m.commandErrors.WithLabelValues(commandType).Inc()
	}
}

// ObserveQuery records one query execution; satisfies the query bus
// Recorder interface
func (m *Metrics) ObserveQuery(queryType string, duration time.Duration, err error) {
	m.queryDuration.WithLabelValues(queryType).Observe(duration.Seconds())
	if err != nil {
		m.queryErrors.WithLabelValues(queryType).Inc()
	}
}

// CountObserverCallback records one delivered observer notification
func (m *Metrics) CountObserverCallback(hook string) {
	m.observerCallbacks.WithLabelValues(hook).Inc()
}

// ObserveHTTPRequest records one served HTTP request
func (m *Metrics) ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	m.httpRequests.WithLabelValues(method, path, status).Inc()
	m.httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}
