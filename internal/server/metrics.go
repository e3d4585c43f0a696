package server

import (
	"bytes"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"

	"github.com/rtreacy87/http-server/internal/request"
	"github.com/rtreacy87/http-server/internal/response"
)

// Metrics holds the server's Prometheus collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal     *prometheus.CounterVec
	activeConnections prometheus.Gauge
	requestDuration   prometheus.Histogram
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "httpserver",
				Name:      "requests_total",
				Help:      "Requests served, by response status code.",
			},
			[]string{"status"},
		),
		activeConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "httpserver",
				Name:      "active_connections",
				Help:      "Connections currently being served.",
			},
		),
		requestDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "httpserver",
				Name:      "request_duration_seconds",
				Help:      "Time spent handling a request.",
				Buckets:   prometheus.DefBuckets,
			},
		),
	}
}

// RecordRequest records a completed request.
func (m *Metrics) RecordRequest(status response.StatusCode, duration time.Duration) {
	m.requestsTotal.WithLabelValues(strconv.Itoa(int(status))).Inc()
	m.requestDuration.Observe(duration.Seconds())
}

func (m *Metrics) ConnOpened() {
	m.activeConnections.Inc()
}

func (m *Metrics) ConnClosed() {
	m.activeConnections.Dec()
}

// Registry exposes the backing registry for tests and custom collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// MetricsHandler renders the registry in the Prometheus text format
// through the server's own serializer.
type MetricsHandler struct {
	metrics *Metrics
}

func NewMetricsHandler(m *Metrics) *MetricsHandler {
	return &MetricsHandler{metrics: m}
}

func (h *MetricsHandler) Handle(*request.Request) *response.Response {
	families, err := h.metrics.registry.Gather()
	if err != nil {
		return response.Error(response.StatusInternalServerError, "metrics unavailable")
	}

	format := expfmt.NewFormat(expfmt.TypeTextPlain)
	var buf bytes.Buffer
	enc := expfmt.NewEncoder(&buf, format)
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return response.Error(response.StatusInternalServerError, "metrics unavailable")
		}
	}

	resp := response.New()
	resp.Body = buf.Bytes()
	resp.Headers.Add("Content-Type", string(format))
	return resp
}
