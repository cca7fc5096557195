// Package prom exports observability events as Prometheus metrics.
//
// The CLI has no long-running server, so metrics are written once at the end
// of a run in the node_exporter textfile format (see [Hooks.WriteTextfile]).
package prom

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/coalition/pkg/observability"
)

const namespace = "coalition"

// Hooks implements [observability.SearchHooks] and [observability.CacheHooks]
// on a dedicated registry.
type Hooks struct {
	registry *prometheus.Registry

	searches     *prometheus.CounterVec
	attempts     *prometheus.CounterVec
	duration     prometheus.Histogram
	coalition    prometheus.Gauge
	cacheOps     *prometheus.CounterVec
	cacheWritten prometheus.Counter
}

var (
	_ observability.SearchHooks = (*Hooks)(nil)
	_ observability.CacheHooks  = (*Hooks)(nil)
)

// New creates hooks whose collectors are registered on a fresh registry.
func New() *Hooks {
	h := &Hooks{
		registry: prometheus.NewRegistry(),
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Completed searches by result (found, exhausted, error).",
		}, []string{"result"}),
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "attempts_total",
			Help:      "Manipulation attempts by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Wall time spent on one coalition size.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 4, 8),
		}),
		coalition: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "coalition_size",
			Help:      "Coalition size currently or last searched.",
		}),
		cacheOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_operations_total",
			Help:      "Cache lookups and writes by backend and operation.",
		}, []string{"backend", "op"}),
		cacheWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_written_bytes_total",
			Help:      "Bytes written to the cache.",
		}),
	}
	h.registry.MustRegister(h.searches, h.attempts, h.duration, h.coalition, h.cacheOps, h.cacheWritten)
	return h
}

// Registry returns the registry holding the hook collectors.
func (h *Hooks) Registry() *prometheus.Registry { return h.registry }

func (h *Hooks) OnSearchStart(_ context.Context, size, _ int) {
	h.coalition.Set(float64(size))
}

func (h *Hooks) OnAttempt(_ context.Context, _ int, outcome observability.AttemptOutcome) {
	h.attempts.WithLabelValues(string(outcome)).Inc()
}

func (h *Hooks) OnSearchComplete(_ context.Context, _ int, found bool, d time.Duration, err error) {
	result := "exhausted"
	switch {
	case err != nil:
		result = "error"
	case found:
		result = "found"
	}
	h.searches.WithLabelValues(result).Inc()
	h.duration.Observe(d.Seconds())
}

func (h *Hooks) OnCacheHit(_ context.Context, backend string) {
	h.cacheOps.WithLabelValues(backend, "hit").Inc()
}

func (h *Hooks) OnCacheMiss(_ context.Context, backend string) {
	h.cacheOps.WithLabelValues(backend, "miss").Inc()
}

func (h *Hooks) OnCacheSet(_ context.Context, backend string, size int) {
	h.cacheOps.WithLabelValues(backend, "set").Inc()
	h.cacheWritten.Add(float64(size))
}

// WriteTextfile writes all collected metrics to path atomically.
func (h *Hooks) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, h.registry)
}
