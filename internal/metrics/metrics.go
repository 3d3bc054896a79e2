// Package metrics exposes Prometheus instrumentation for the HTTP surface
// and the data store.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's collectors.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	webhooksTotal   *prometheus.CounterVec
	storeAvailable  prometheus.Gauge
}

// New creates the collectors on a dedicated registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "opsbrain_http_requests_total",
			Help: "HTTP requests by method, path and status.",
		}, []string{"method", "path", "status"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "opsbrain_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		webhooksTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "opsbrain_webhook_deliveries_total",
			Help: "Inbound webhook deliveries by source and outcome.",
		}, []string{"source", "outcome"}),
		storeAvailable: factory.NewGauge(prometheus.GaugeOpts{
			Name: "opsbrain_store_available",
			Help: "Whether the data store is reachable (1) or degraded (0).",
		}),
	}
}

// GinMiddleware records request counts and latency per route.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.requestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the scrape endpoint for this registry.
func (m *Metrics) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return gin.WrapH(h)
}

// ObserveWebhook counts an inbound delivery outcome (stored, duplicate,
// error).
func (m *Metrics) ObserveWebhook(source, outcome string) {
	m.webhooksTotal.WithLabelValues(source, outcome).Inc()
}

// SetStoreAvailable records store reachability.
func (m *Metrics) SetStoreAvailable(available bool) {
	if available {
		m.storeAvailable.Set(1)
		return
	}
	m.storeAvailable.Set(0)
}
