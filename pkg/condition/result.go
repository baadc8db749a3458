package condition

import (
	"fmt"
	"time"
)

// Status constants for condition evaluation outcomes. Unknown
// is a valid tri-state outcome but is treated as not passed by
// every aggregation.
const (
	StatusPassed  = "passed"
	StatusFailed  = "failed"
	StatusUnknown = "unknown"
)

// Result captures the outcome of a single condition evaluation.
// A Result is immutable once created; callers must not modify
// it after it has been returned.
type Result struct {
	// ConditionName identifies the condition that produced
	// this result. Diagnostic only.
	ConditionName string `json:"condition_name,omitempty"`

	// Status is one of the Status* constants.
	Status string `json:"status"`

	// Value is the value the condition examined or produced,
	// kept for diagnostics.
	Value any `json:"value,omitempty"`

	// Message is a human-readable explanation. Required when
	// the status is not passed.
	Message string `json:"message,omitempty"`

	// EvaluatedAt is when the evaluation completed.
	EvaluatedAt time.Time `json:"evaluated_at"`
}

// Pass creates a passed Result carrying the examined value.
func Pass(value any) *Result {
	return &Result{
		Status:      StatusPassed,
		Value:       value,
		EvaluatedAt: time.Now(),
	}
}

// Fail creates a failed Result with the given message.
func Fail(message string) *Result {
	return &Result{
		Status:      StatusFailed,
		Message:     message,
		EvaluatedAt: time.Now(),
	}
}

// Failf creates a failed Result with a formatted message.
func Failf(format string, args ...any) *Result {
	return Fail(fmt.Sprintf(format, args...))
}

// Unknown creates a Result whose outcome could not be
// determined. Aggregations treat it as not passed.
func Unknown(message string) *Result {
	return &Result{
		Status:      StatusUnknown,
		Message:     message,
		EvaluatedAt: time.Now(),
	}
}

// Passed reports whether the result is a success. Unknown
// counts as not passed.
func (r *Result) Passed() bool {
	return r != nil && r.Status == StatusPassed
}

// named returns a shallow copy carrying the given condition
// name, leaving the original untouched.
func (r *Result) named(name string) *Result {
	if r == nil || r.ConditionName == name {
		return r
	}
	cp := *r
	cp.ConditionName = name
	return &cp
}
