package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "photo_app"

// Provider outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeEmpty   = "empty"
	OutcomeError   = "error"
)

// Metrics holds the Prometheus collectors for the HTTP layer, the outbound
// providers and the conditions cache. All methods are safe on a nil receiver.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests   *prometheus.CounterVec   // labels: method, route, status
	HTTPDuration   *prometheus.HistogramVec // labels: method, route
	HTTPActive     prometheus.Gauge
	ProviderCalls  *prometheus.CounterVec   // labels: provider, outcome={success,empty,error}
	ProviderTiming *prometheus.HistogramVec // labels: provider
	CacheLookups   *prometheus.CounterVec   // labels: cache, result={hit,miss}
	Uploads        *prometheus.CounterVec   // labels: kind={gallery,trip}
}

// New creates the collectors on a private registry that also carries the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		HTTPActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_active_requests",
			Help:      "Number of in-flight HTTP requests.",
		}),
		ProviderCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_requests_total",
			Help:      "Outbound provider lookups by provider and outcome.",
		}, []string{"provider", "outcome"}),
		ProviderTiming: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_request_duration_seconds",
			Help:      "Outbound provider lookup duration.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"provider"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Conditions cache lookups by cache type and result.",
		}, []string{"cache", "result"}),
		Uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "image_uploads_total",
			Help:      "Stored image uploads by kind.",
		}, []string{"kind"}),
	}

	reg.MustRegister(
		m.HTTPRequests,
		m.HTTPDuration,
		m.HTTPActive,
		m.ProviderCalls,
		m.ProviderTiming,
		m.CacheLookups,
		m.Uploads,
	)

	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) RecordCacheHit(_ context.Context, cacheType string) {
	if m == nil {
		return
	}
	m.CacheLookups.WithLabelValues(cacheType, "hit").Inc()
}

func (m *Metrics) RecordCacheMiss(_ context.Context, cacheType string) {
	if m == nil {
		return
	}
	m.CacheLookups.WithLabelValues(cacheType, "miss").Inc()
}

func (m *Metrics) RecordProviderCall(provider, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.ProviderCalls.WithLabelValues(provider, outcome).Inc()
	m.ProviderTiming.WithLabelValues(provider).Observe(elapsed.Seconds())
}

func (m *Metrics) RecordUpload(kind string) {
	if m == nil {
		return
	}
	m.Uploads.WithLabelValues(kind).Inc()
}

func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) IncActive() {
	if m == nil {
		return
	}
	m.HTTPActive.Inc()
}

func (m *Metrics) DecActive() {
	if m == nil {
		return
	}
	m.HTTPActive.Dec()
}
