// Package metrics provides instrumentation hooks for condition
// evaluations, with a no-op default and a Prometheus-backed
// implementation.
package metrics

import "time"

// Metrics defines the interface for recording condition engine
// metrics.
type Metrics interface {
	// RecordEvaluation records a single condition evaluation
	// with its kind label, condition name, resulting status,
	// and wall-clock duration.
	RecordEvaluation(
		kind, name, status string,
		duration time.Duration,
	)

	// RecordNotification records an emitted condition-met or
	// condition-failed notification.
	RecordNotification(eventType string)
}

// Noop is a no-op implementation of Metrics useful for testing
// or when metrics collection is disabled.
type Noop struct{}

func (Noop) RecordEvaluation(_, _, _ string, _ time.Duration) {}
func (Noop) RecordNotification(_ string)                      {}
