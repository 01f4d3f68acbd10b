// Package metrics exposes Prometheus collectors for the HTTP layer and the
// quotation service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a dedicated registry and the collectors registered on it.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	estimates      *prometheus.CounterVec
	estimateTotals *prometheus.HistogramVec
	rejections     *prometheus.CounterVec
}

// New creates the collectors and registers them, with Go and process collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
			[]string{"method", "path", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		estimates: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "freight_estimates_total", Help: "Freight estimates computed."},
			[]string{"vehicle_class", "urgency"},
		),
		estimateTotals: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "freight_estimate_total_brl",
				Help:    "Quoted freight totals in BRL.",
				Buckets: []float64{100, 250, 500, 1000, 2500, 5000, 10000, 25000, 50000},
			},
			[]string{"vehicle_class"},
		),
		rejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "freight_input_rejections_total", Help: "Trip inputs rejected by field."},
			[]string{"field"},
		),
	}

	m.registry.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.estimates,
		m.estimateTotals,
		m.rejections,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Registry returns the registry backing /metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(method, path string, status int, elapsed time.Duration) {
	code := strconv.Itoa(status)
	m.httpRequests.WithLabelValues(method, path, code).Inc()
	m.httpDuration.WithLabelValues(method, path, code).Observe(elapsed.Seconds())
}

// ObserveEstimate implements domain.QuotationRecorder.
func (m *Metrics) ObserveEstimate(vehicleClass, urgency string, total float64) {
	m.estimates.WithLabelValues(vehicleClass, urgency).Inc()
	m.estimateTotals.WithLabelValues(vehicleClass).Observe(total)
}

// ObserveRejection implements domain.QuotationRecorder.
func (m *Metrics) ObserveRejection(field string) {
	m.rejections.WithLabelValues(field).Inc()
}
