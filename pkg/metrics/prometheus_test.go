package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusMetrics_RecordEvaluation(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPrometheusMetrics(reg)

	m.RecordEvaluation(
		"auth", "has-token", "passed", 5*time.Millisecond,
	)
	m.RecordEvaluation(
		"auth", "has-token", "passed", 7*time.Millisecond,
	)
	m.RecordEvaluation(
		"payment", "card-valid", "failed", time.Millisecond,
	)

	assert.InDelta(t, 2.0, testutil.ToFloat64(
		m.evaluations.WithLabelValues(
			"auth", "has-token", "passed",
		),
	), 1e-9)
	assert.InDelta(t, 1.0, testutil.ToFloat64(
		m.evaluations.WithLabelValues(
			"payment", "card-valid", "failed",
		),
	), 1e-9)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make([]string, len(families))
	for i, f := range families {
		names[i] = f.GetName()
	}
	assert.Contains(t, names, "condition_evaluations_total")
	assert.Contains(t, names, "condition_evaluation_seconds")
}

func TestPrometheusMetrics_RecordNotification(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPrometheusMetrics(reg)

	m.RecordNotification("condition_met")
	m.RecordNotification("condition_met")
	m.RecordNotification("condition_failed")

	assert.InDelta(t, 2.0, testutil.ToFloat64(
		m.notifications.WithLabelValues("condition_met"),
	), 1e-9)
	assert.InDelta(t, 1.0, testutil.ToFloat64(
		m.notifications.WithLabelValues("condition_failed"),
	), 1e-9)
}

func TestNoop_Implements(t *testing.T) {
	var m Metrics = Noop{}

	require.NotPanics(t, func() {
		m.RecordEvaluation("a", "b", "c", time.Second)
		m.RecordNotification("d")
	})
}
