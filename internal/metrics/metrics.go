// Package metrics exposes Prometheus counters for catalog operations,
// cover lookups and HTTP requests.
//
// All recording methods are safe to call on a nil *Metrics, so components
// can be constructed without metrics in tests and CLI commands.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Cover lookup outcomes.
const (
	LookupFound  = "found"
	LookupMissed = "missed"
	LookupCached = "cached"
)

type Metrics struct {
	registry *prometheus.Registry

	operations   *prometheus.CounterVec
	coverLookups *prometheus.CounterVec
	cascades     prometheus.Counter
	requests     *prometheus.HistogramVec
}

// New creates a Metrics instance backed by its own registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "library",
			Name:      "catalog_operations_total",
			Help:      "Catalog service operations by name and result.",
		}, []string{"operation", "result"}),
		coverLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "library",
			Name:      "cover_lookups_total",
			Help:      "Cover lookups by outcome.",
		}, []string{"outcome"}),
		cascades: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "library",
			Name:      "authors_cascade_deleted_total",
			Help:      "Authors removed because their last book was deleted.",
		}),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "library",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method, route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	reg.MustRegister(m.operations, m.coverLookups, m.cascades, m.requests)
	return m
}

// ObserveOperation counts a catalog operation as ok or error.
func (m *Metrics) ObserveOperation(operation string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.operations.WithLabelValues(operation, result).Inc()
}

// ObserveCoverLookup counts a cover lookup outcome.
func (m *Metrics) ObserveCoverLookup(outcome string) {
	if m == nil {
		return
	}
	m.coverLookups.WithLabelValues(outcome).Inc()
}

// ObserveCascade counts an author removed by the cascading delete.
func (m *Metrics) ObserveCascade() {
	if m == nil {
		return
	}
	m.cascades.Inc()
}

// ObserveRequest records the latency of one HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
