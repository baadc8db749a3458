package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusMetrics implements Metrics on prometheus
// client_golang collectors.
type PrometheusMetrics struct {
	evaluations   *prometheus.CounterVec
	durations     *prometheus.HistogramVec
	notifications *prometheus.CounterVec
}

// NewPrometheusMetrics creates and registers the engine's
// collectors against the given registerer. Pass
// prometheus.DefaultRegisterer to use the process-wide default.
func NewPrometheusMetrics(
	reg prometheus.Registerer,
) *PrometheusMetrics {
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		evaluations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "condition_evaluations_total",
				Help: "Total condition evaluations by kind, " +
					"condition name, and status.",
			},
			[]string{"kind", "condition", "status"},
		),
		durations: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "condition_evaluation_seconds",
				Help:    "Condition evaluation duration.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind"},
		),
		notifications: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "condition_notifications_total",
				Help: "Condition notifications emitted by type.",
			},
			[]string{"type"},
		),
	}
}

// RecordEvaluation records a single condition evaluation.
func (m *PrometheusMetrics) RecordEvaluation(
	kind, name, status string,
	duration time.Duration,
) {
	m.evaluations.WithLabelValues(kind, name, status).Inc()
	m.durations.WithLabelValues(kind).Observe(
		duration.Seconds(),
	)
}

// RecordNotification records an emitted notification.
func (m *PrometheusMetrics) RecordNotification(eventType string) {
	m.notifications.WithLabelValues(eventType).Inc()
}
