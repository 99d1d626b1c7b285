package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Auth event outcomes.
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
)

// Metrics owns a private registry so several routers can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	HTTPInFlight        prometheus.Gauge
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	AuthEvents         *prometheus.CounterVec
	DisputesCreated    prometheus.Counter
	LitigationUploaded prometheus.Counter
	DocumentsStored    prometheus.Counter
	DocumentBytes      prometheus.Counter
}

// New creates and registers every collector, plus the Go and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "http_in_flight_requests",
			Help: "In-flight HTTP requests.",
		}),
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		AuthEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "casedesk_auth_events_total",
			Help: "Authentication events by kind and outcome.",
		}, []string{"event", "outcome"}),
		DisputesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "casedesk_disputes_created_total",
			Help: "Disputes created.",
		}),
		LitigationUploaded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "casedesk_litigation_cases_uploaded_total",
			Help: "Litigation cases inserted through bulk upload.",
		}),
		DocumentsStored: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "casedesk_documents_stored_total",
			Help: "Dispute documents written to storage.",
		}),
		DocumentBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "casedesk_document_bytes_total",
			Help: "Bytes of dispute documents written to storage.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPInFlight,
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.AuthEvents,
		m.DisputesCreated,
		m.LitigationUploaded,
		m.DocumentsStored,
		m.DocumentBytes,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// AuthEvent counts one authentication event. Safe on a nil receiver.
func (m *Metrics) AuthEvent(event, outcome string) {
	if m == nil {
		return
	}
	m.AuthEvents.WithLabelValues(event, outcome).Inc()
}

func (m *Metrics) DisputeCreated() {
	if m == nil {
		return
	}
	m.DisputesCreated.Inc()
}

func (m *Metrics) LitigationCasesUploaded(n int) {
	if m == nil {
		return
	}
	m.LitigationUploaded.Add(float64(n))
}

func (m *Metrics) DocumentStored(size int64) {
	if m == nil {
		return
	}
	m.DocumentsStored.Inc()
	m.DocumentBytes.Add(float64(size))
}
