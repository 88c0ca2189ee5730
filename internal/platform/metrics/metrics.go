package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels shared by the counters.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeSkipped = "skipped"
)

// Metrics holds the Prometheus collectors of the backoffice.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Registry owns the collectors below and backs the /metrics endpoint.
	Registry *prometheus.Registry

	ledgerOperations *prometheus.CounterVec
	errorRecords     *prometheus.CounterVec
	jobRuns          *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
}

// New creates a private registry and registers all collectors in it, so tests can build
// as many instances as they like without duplicate registration panics.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		ledgerOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_operations_total",
				Help: "Ledger operations by type and outcome.",
			},
			[]string{"operation", "outcome"},
		),
		errorRecords: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_error_records_total",
				Help: "Failure records written out of band, by result.",
			},
			[]string{"result"},
		),
		jobRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "job_runs_total",
				Help: "Background job runs by job and outcome.",
			},
			[]string{"job", "outcome"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
	}
}

func (m *Metrics) IncLedgerOperation(operation, outcome string) {
	if m == nil {
		return
	}
	m.ledgerOperations.WithLabelValues(operation, outcome).Inc()
}

func (m *Metrics) IncErrorRecord(result string) {
	if m == nil {
		return
	}
	m.errorRecords.WithLabelValues(result).Inc()
}

func (m *Metrics) IncJobRun(job, outcome string) {
	if m == nil {
		return
	}
	m.jobRuns.WithLabelValues(job, outcome).Inc()
}

func (m *Metrics) ObserveRequest(method, route, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(method, route, status).Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
