package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRegistryCounters(t *testing.T) {
	r := New()

	r.ObserveRequest("/v1/tranches/compute", 200, 5*time.Millisecond)
	r.ObserveRequest("/v1/tranches/compute", 200, time.Millisecond)
	r.ObserveRequest("", 404, time.Millisecond)
	r.Computation("compute_all_tranches")
	r.CacheLookup(true)
	r.CacheLookup(false)
	r.CacheLookup(false)
	r.RateLimited()

	assert.Equal(t, 2.0, testutil.ToFloat64(r.requests.WithLabelValues("/v1/tranches/compute", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.requests.WithLabelValues("unknown", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.computations.WithLabelValues("compute_all_tranches")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.cacheLookups.WithLabelValues("hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.cacheLookups.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.rateLimited))
}

func TestNilRegistryIsNoop(t *testing.T) {
	var r *Registry
	assert.NotPanics(t, func() {
		r.ObserveRequest("/x", 200, time.Millisecond)
		r.Computation("x")
		r.CacheLookup(true)
		r.RateLimited()
	})
}

func TestDefaultIsSingleton(t *testing.T) {
	assert.Same(t, Default(), Default())
}
