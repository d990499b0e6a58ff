package telemetry

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveImport(t *testing.T) {
	m := NewMetrics("test", prometheus.NewRegistry())

	m.ObserveImport(3, 1, 2)
	m.ObserveImport(1, 0, 0)

	assert.Equal(t, float64(4), testutil.ToFloat64(m.ImportRows.WithLabelValues("valid")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ImportRows.WithLabelValues("invalid")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.ImportRows.WithLabelValues("warned")))
}

func TestObserveSubmission(t *testing.T) {
	m := NewMetrics("test", prometheus.NewRegistry())

	m.ObserveSubmission("completed", 5, 1, 0.2)
	m.ObserveSubmission("failed", 0, 0, 1.5)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.ImportSubmissions.WithLabelValues("completed")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ImportSubmissions.WithLabelValues("failed")))
	assert.Equal(t, float64(5), testutil.ToFloat64(m.SubmittedRecords.WithLabelValues("successful")))
}

func TestObserveBreakdown_EmptyRegime(t *testing.T) {
	m := NewMetrics("test", prometheus.NewRegistry())
	m.ObserveBreakdown("")
	m.ObserveBreakdown("intrastate_dual")

	assert.Equal(t, float64(1), testutil.ToFloat64(m.Breakdowns.WithLabelValues("none")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Breakdowns.WithLabelValues("intrastate_dual")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveImport(1, 1, 1)
		m.ObserveSubmission("completed", 1, 0, 0.1)
		m.ObserveBreakdown("exempt")
		m.ObserveSettingsUpdate("saved")
	})
}
