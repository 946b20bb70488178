// Package metrics provides Prometheus instrumentation for the console
// client and the bundled demo server.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder registers and exposes the collectors used by the SDK.
type Recorder struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	refreshTotal    *prometheus.CounterVec
}

// NewRecorder registers core Prometheus collectors.
func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "console_request_duration_seconds",
		Help:    "Duration of HTTP requests issued or served by the console",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "console_requests_total",
		Help: "Total number of HTTP requests issued or served by the console",
	}, []string{"method", "path", "status"})

	refreshTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "console_token_refresh_total",
		Help: "Token refresh attempts by outcome",
	}, []string{"outcome"})

	registry.MustRegister(requestDuration, requestTotal, refreshTotal)

	return &Recorder{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		refreshTotal:    refreshTotal,
	}
}

// ObserveRequest records one HTTP round trip.
func (r *Recorder) ObserveRequest(method, path string, status int, duration time.Duration) {
	if r == nil {
		return
	}
	labels := []string{method, path, strconv.Itoa(status)}
	r.requestTotal.WithLabelValues(labels...).Inc()
	r.requestDuration.WithLabelValues(labels...).Observe(duration.Seconds())
}

// RecordRefresh counts a token refresh attempt. Outcome is "success" or "failure".
func (r *Recorder) RecordRefresh(outcome string) {
	if r == nil {
		return
	}
	r.refreshTotal.WithLabelValues(outcome).Inc()
}

// Handler exposes the registry for a /metrics endpoint.
func (r *Recorder) Handler() http.Handler {
	return r.handler
}

// GinMiddleware captures request metrics on the demo server.
func GinMiddleware(r *Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		if r == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		r.ObserveRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
