// Package telemetry holds the Prometheus collectors for the service.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups HTTP and domain collectors.
type Metrics struct {
	// HTTP
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Imports
	ImportRows        *prometheus.CounterVec
	ImportSubmissions *prometheus.CounterVec
	SubmittedRecords  *prometheus.CounterVec
	SubmitDuration    prometheus.Histogram

	// Tax
	Breakdowns      *prometheus.CounterVec
	SettingsUpdates *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if namespace == "" {
		namespace = "petledger"
	}
	f := promauto.With(reg)

	return &Metrics{
		RequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		ImportRows: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "import",
				Name:      "rows_total",
				Help:      "Validated import rows by classification",
			},
			[]string{"class"}, // class: valid, invalid, warned
		),
		ImportSubmissions: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "import",
				Name:      "submissions_total",
				Help:      "Import submissions by outcome",
			},
			[]string{"outcome"}, // outcome: completed, failed
		),
		SubmittedRecords: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "import",
				Name:      "submitted_records_total",
				Help:      "Records reported by the submitter",
			},
			[]string{"result"}, // result: successful, failed
		),
		SubmitDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "import",
				Name:      "submit_duration_seconds",
				Help:      "Time spent in the submitter",
				Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
			},
		),
		Breakdowns: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "tax",
				Name:      "breakdowns_total",
				Help:      "Tax breakdown computations by regime",
			},
			[]string{"regime"},
		),
		SettingsUpdates: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "tax",
				Name:      "settings_updates_total",
				Help:      "Tax settings saves by outcome",
			},
			[]string{"outcome"}, // outcome: saved, rejected
		),
	}
}

// ObserveImport counts one validated batch.
func (m *Metrics) ObserveImport(valid, invalid, warned int) {
	if m == nil {
		return
	}
	m.ImportRows.WithLabelValues("valid").Add(float64(valid))
	m.ImportRows.WithLabelValues("invalid").Add(float64(invalid))
	m.ImportRows.WithLabelValues("warned").Add(float64(warned))
}

// ObserveSubmission counts one submission attempt.
func (m *Metrics) ObserveSubmission(outcome string, successful, failed int, seconds float64) {
	if m == nil {
		return
	}
	m.ImportSubmissions.WithLabelValues(outcome).Inc()
	m.SubmittedRecords.WithLabelValues("successful").Add(float64(successful))
	m.SubmittedRecords.WithLabelValues("failed").Add(float64(failed))
	m.SubmitDuration.Observe(seconds)
}

// ObserveBreakdown counts one breakdown computation.
func (m *Metrics) ObserveBreakdown(regime string) {
	if m == nil {
		return
	}
	if regime == "" {
		regime = "none"
	}
	m.Breakdowns.WithLabelValues(regime).Inc()
}

// ObserveSettingsUpdate counts one tax settings save.
func (m *Metrics) ObserveSettingsUpdate(outcome string) {
	if m == nil {
		return
	}
	m.SettingsUpdates.WithLabelValues(outcome).Inc()
}
