// Package metrics exposes Prometheus counters for the entity stores, the
// key-value layer and the HTTP API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the metrics surface used by stores and middleware
type Recorder interface {
	RecordStorageFailure(op string)
	RecordStoreOperation(kind, op string, err error)
	RecordHTTPRequest(method, route string, status int, d time.Duration)
}

// Collector records metrics into a Prometheus registry
type Collector struct {
	storageFailures *prometheus.CounterVec
	storeOps        *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
	httpLatency     *prometheus.HistogramVec
}

// NewCollector creates a Collector and registers its metrics with reg
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		storageFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "blog_storage_failures_total",
			Help: "Key-value operations that failed and were recovered with a fallback",
		}, []string{"op"}),
		storeOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "blog_store_operations_total",
			Help: "Entity store operations by kind, operation and result",
		}, []string{"kind", "op", "result"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "blog_http_requests_total",
			Help: "HTTP requests by method, route and status code",
		}, []string{"method", "route", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "blog_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		c.storageFailures,
		c.storeOps,
		c.httpRequests,
		c.httpLatency,
	)

	return c
}

// RecordStorageFailure counts a swallowed key-value failure
func (c *Collector) RecordStorageFailure(op string) {
	c.storageFailures.WithLabelValues(op).Inc()
}

// RecordStoreOperation counts an entity store operation; err selects the result label
func (c *Collector) RecordStoreOperation(kind, op string, err error) {
	c.storeOps.WithLabelValues(kind, op, Result(err)).Inc()
}

// RecordHTTPRequest counts a request and observes its latency
func (c *Collector) RecordHTTPRequest(method, route string, status int, d time.Duration) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpLatency.WithLabelValues(method, route).Observe(d.Seconds())
}

// Result maps an operation error to a label value
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// Handler returns the Prometheus scrape handler for gatherer
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop discards all metrics
type Nop struct{}

func (Nop) RecordStorageFailure(string) {}
func (Nop) RecordStoreOperation(string, string, error) {}
func (Nop) RecordHTTPRequest(string, string, int, time.Duration) {}
