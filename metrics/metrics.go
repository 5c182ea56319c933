// Package metrics exposes the Prometheus collectors recorded by the HTTP and
// service layers.
package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type Registry struct {
	requests     *prometheus.CounterVec
	latency      *prometheus.HistogramVec
	computations *prometheus.CounterVec
	cacheLookups *prometheus.CounterVec
	rateLimited  prometheus.Counter
}

var (
	registryOnce sync.Once
	registry     *Registry
)

// Default returns the lazily-initialised registry registered with the
// default Prometheus registerer.
func Default() *Registry {
	registryOnce.Do(func() {
		registry = New()
		prometheus.MustRegister(registry.Collectors()...)
	})
	return registry
}

// New builds an unregistered set of collectors.
func New() *Registry {
	return &Registry{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lotus",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests segmented by route and status code.",
		}, []string{"route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "lotus",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latency distribution for HTTP handlers.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		computations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lotus",
			Subsystem: "engine",
			Name:      "computations_total",
			Help:      "Engine computations segmented by operation.",
		}, []string{"operation"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lotus",
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Result cache lookups segmented by hit or miss.",
		}, []string{"result"}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "lotus",
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the per-client rate limiter.",
		}),
	}
}

func (r *Registry) Collectors() []prometheus.Collector {
	return []prometheus.Collector{r.requests, r.latency, r.computations, r.cacheLookups, r.rateLimited}
}

// ObserveRequest records one served HTTP request.
func (r *Registry) ObserveRequest(route string, status int, elapsed time.Duration) {
	if r == nil {
		return
	}
	if route == "" {
		route = "unknown"
	}
	r.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	r.latency.WithLabelValues(route).Observe(elapsed.Seconds())
}

func (r *Registry) Computation(operation string) {
	if r == nil {
		return
	}
	r.computations.WithLabelValues(operation).Inc()
}

// CacheLookup records a cache hit or miss.
func (r *Registry) CacheLookup(hit bool) {
	if r == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cacheLookups.WithLabelValues(result).Inc()
}

func (r *Registry) RateLimited() {
	if r == nil {
		return
	}
	r.rateLimited.Inc()
}
