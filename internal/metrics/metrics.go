// Package metrics provides the application's Prometheus collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector bundles the application metrics. All record methods are
// nil-safe so callers never have to guard for a disabled collector.
type Collector struct {
	APIRequestsTotal   *prometheus.CounterVec
	APIRequestDuration *prometheus.HistogramVec

	UpstreamRequestsTotal *prometheus.CounterVec
	UpstreamDuration      *prometheus.HistogramVec

	CacheLookupsTotal *prometheus.CounterVec

	StoriesTotal *prometheus.CounterVec
}

// NewCollector creates and registers the collectors under namespace.
func NewCollector(namespace string) *Collector {
	return &Collector{
		APIRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "api_requests_total",
				Help:      "Total number of API requests by endpoint and status",
			},
			[]string{"endpoint", "status"},
		),

		APIRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "api_request_duration_seconds",
				Help:      "API request duration in seconds",
				Buckets:   []float64{0.005, 0.02, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"endpoint"},
		),

		UpstreamRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "upstream_requests_total",
				Help:      "Upstream provider calls by provider and outcome",
			},
			[]string{"provider", "outcome"},
		),

		UpstreamDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "upstream_request_duration_seconds",
				Help:      "Upstream provider call duration in seconds",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15, 30},
			},
			[]string{"provider"},
		),

		CacheLookupsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_lookups_total",
				Help:      "Cache lookups by key kind and outcome",
			},
			[]string{"kind", "outcome"},
		),

		StoriesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "stories_generated_total",
				Help:      "Stories generated by providing strategy",
			},
			[]string{"provider"},
		),
	}
}

// RecordAPIRequest increments the API request counter.
func (c *Collector) RecordAPIRequest(endpoint, status string) {
	if c == nil {
		return
	}
	c.APIRequestsTotal.WithLabelValues(endpoint, status).Inc()
}

// ObserveAPIDuration records one request's duration.
func (c *Collector) ObserveAPIDuration(endpoint string, d time.Duration) {
	if c == nil {
		return
	}
	c.APIRequestDuration.WithLabelValues(endpoint).Observe(d.Seconds())
}

// RecordUpstream records an upstream call's outcome and duration.
func (c *Collector) RecordUpstream(provider, outcome string, d time.Duration) {
	if c == nil {
		return
	}
	c.UpstreamRequestsTotal.WithLabelValues(provider, outcome).Inc()
	c.UpstreamDuration.WithLabelValues(provider).Observe(d.Seconds())
}

// RecordCacheLookup records a cache hit or miss for a key kind.
func (c *Collector) RecordCacheLookup(kind, outcome string) {
	if c == nil {
		return
	}
	c.CacheLookupsTotal.WithLabelValues(kind, outcome).Inc()
}

// RecordStory records which strategy produced a story.
func (c *Collector) RecordStory(provider string) {
	if c == nil {
		return
	}
	c.StoriesTotal.WithLabelValues(provider).Inc()
}
