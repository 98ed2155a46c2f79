package service

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the console.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	cacheLatency    prometheus.Histogram
	mutationTotal   *prometheus.CounterVec
}

// NewMetricsService registers the console collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "snapshot_cache_hits_total",
		Help: "Snapshot cache hits",
	})

	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "snapshot_cache_misses_total",
		Help: "Snapshot cache misses",
	})

	cacheLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "snapshot_cache_latency_seconds",
		Help:    "Latency for snapshot cache reads",
		Buckets: prometheus.DefBuckets,
	})

	mutationTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "console_mutations_total",
		Help: "Mutations submitted through the console by surface and outcome",
	}, []string{"surface", "outcome"})

	registry.MustRegister(requestDuration, requestTotal, cacheHits, cacheMisses, cacheLatency, mutationTotal)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		cacheHits:       cacheHits,
		cacheMisses:     cacheMisses,
		cacheLatency:    cacheLatency,
		mutationTotal:   mutationTotal,
	}
}

// Handler exposes the Prometheus scrape endpoint.
func (s *MetricsService) Handler() http.Handler {
	return s.handler
}

// ObserveHTTPRequest records one served request.
func (s *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	labels := prometheus.Labels{"method": method, "path": path, "status": strconv.Itoa(status)}
	s.requestDuration.With(labels).Observe(duration.Seconds())
	s.requestTotal.With(labels).Inc()
}

// RecordCacheOperation records a snapshot-cache read.
func (s *MetricsService) RecordCacheOperation(hit bool, duration time.Duration) {
	if hit {
		s.cacheHits.Inc()
	} else {
		s.cacheMisses.Inc()
	}
	s.cacheLatency.Observe(duration.Seconds())
}

// RecordMutation counts a mutation attempt per decision surface.
func (s *MetricsService) RecordMutation(surface string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	s.mutationTotal.With(prometheus.Labels{"surface": surface, "outcome": outcome}).Inc()
}
