// Package metrics holds the Prometheus collectors billdesk exports.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the collectors on a private registry.
type Metrics struct {
	Registry *prometheus.Registry

	BillsSaved       prometheus.Counter
	BillsRejected    *prometheus.CounterVec
	InvoicesRendered prometheus.Counter
	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		BillsSaved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "billdesk",
			Name:      "bills_saved_total",
			Help:      "Bills persisted with their items.",
		}),
		BillsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "billdesk",
			Name:      "bills_rejected_total",
			Help:      "Save attempts rejected before reaching the store, by reason.",
		}, []string{"reason"}),
		InvoicesRendered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "billdesk",
			Name:      "invoices_rendered_total",
			Help:      "PDF invoices rendered to disk or to an HTTP response.",
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "billdesk",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern and status code.",
		}, []string{"route", "code"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "billdesk",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}

	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.BillsSaved,
		m.BillsRejected,
		m.InvoicesRendered,
		m.HTTPRequests,
		m.HTTPDuration,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
