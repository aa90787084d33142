// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
// All recording methods are safe to call on a nil *Metrics.
type Metrics struct {
	registry *prometheus.Registry

	// Universe metrics
	UniverseSize          prometheus.Gauge
	UniverseRegenerations prometheus.Counter
	FilterDuration        prometheus.Histogram

	// Portfolio metrics
	AllocatorOperations *prometheus.CounterVec
	TotalAllocation     prometheus.Gauge
	SelectedStrategies  prometheus.Gauge
	DeployRequests      *prometheus.CounterVec

	// HTTP metrics
	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// NewMetrics creates a new Metrics instance registered on its own registry.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "strategy_builder"
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		UniverseSize: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "universe",
			Name:      "strategies",
			Help:      "Number of strategies in the current universe",
		}),
		UniverseRegenerations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "universe",
			Name:      "regenerations_total",
			Help:      "Total number of universe regenerations",
		}),
		FilterDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "universe",
			Name:      "filter_duration_seconds",
			Help:      "Time spent filtering the universe",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1},
		}),

		AllocatorOperations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "portfolio",
			Name:      "allocator_operations_total",
			Help:      "Total number of allocator operations by type",
		}, []string{"operation"}),
		TotalAllocation: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "portfolio",
			Name:      "total_allocation_percent",
			Help:      "Sum of allocations across selected strategies",
		}),
		SelectedStrategies: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "portfolio",
			Name:      "selected_strategies",
			Help:      "Number of strategies in the portfolio",
		}),
		DeployRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "portfolio",
			Name:      "deploy_requests_total",
			Help:      "Deploy requests by outcome",
		}, []string{"outcome"}),

		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// Registry returns the registry the metrics are registered on
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns the /metrics HTTP handler
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordUniverseRegenerated records a new universe of the given size
func (m *Metrics) RecordUniverseRegenerated(size int) {
	if m == nil {
		return
	}
	m.UniverseSize.Set(float64(size))
	m.UniverseRegenerations.Inc()
}

// ObserveFilter records the duration of one filter pass
func (m *Metrics) ObserveFilter(d time.Duration) {
	if m == nil {
		return
	}
	m.FilterDuration.Observe(d.Seconds())
}

// RecordAllocatorOperation counts an allocator operation and updates the portfolio gauges
func (m *Metrics) RecordAllocatorOperation(operation string, totalAllocation float64, count int) {
	if m == nil {
		return
	}
	m.AllocatorOperations.WithLabelValues(operation).Inc()
	m.TotalAllocation.Set(totalAllocation)
	m.SelectedStrategies.Set(float64(count))
}

// RecordDeployRequest counts a deploy request by whether the gate allowed it
func (m *Metrics) RecordDeployRequest(allowed bool) {
	if m == nil {
		return
	}
	outcome := "rejected"
	if allowed {
		outcome = "accepted"
	}
	m.DeployRequests.WithLabelValues(outcome).Inc()
}

// RecordHTTPRequest records one served request
func (m *Metrics) RecordHTTPRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
