// Package checker provides the condition checker: the
// aggregator owning one condition provider per kind-enumeration
// type and exposing the full query surface over them.
//
// Go methods cannot introduce type parameters, so every
// kind-parameterized operation is a package-level generic
// function taking the *Checker as its first argument.
package checker

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"time"

	"digital.vasic.conditions/pkg/condition"
	"digital.vasic.conditions/pkg/events"
	"digital.vasic.conditions/pkg/logging"
	"digital.vasic.conditions/pkg/metrics"
	"digital.vasic.conditions/pkg/provider"
)

// ErrNotSupported is returned by operations that are declared
// on the checker surface but intentionally left unimplemented.
var ErrNotSupported = errors.New("operation not supported")

// MessageConditionNotFound is the fixed message carried by
// failure results for kinds with no registered condition, and
// by failed-condition details for unregistered members.
const MessageConditionNotFound = "condition not found"

// Checker owns one provider per kind-enumeration type. Every
// query operation is read-only over registered state; the only
// side effects are the notifications fired by
// ExecuteWithCallbacks and the log/metric records.
type Checker struct {
	mu        sync.RWMutex
	providers map[reflect.Type]any

	bus     *events.Bus
	logger  logging.Logger
	metrics metrics.Metrics
}

// Option configures a Checker.
type Option func(*Checker)

// WithLogger sets the structured logger used by the checker.
func WithLogger(logger logging.Logger) Option {
	return func(c *Checker) {
		c.logger = logger
	}
}

// WithMetrics sets the metrics sink used by the checker.
func WithMetrics(m metrics.Metrics) Option {
	return func(c *Checker) {
		c.metrics = m
	}
}

// WithBus sets the event bus used for condition notifications.
func WithBus(bus *events.Bus) Option {
	return func(c *Checker) {
		c.bus = bus
	}
}

// New creates a Checker with the supplied options. By default
// it has its own event bus, a null logger, and no-op metrics.
func New(opts ...Option) *Checker {
	c := &Checker{
		providers: make(map[reflect.Type]any),
		bus:       events.NewBus(),
		logger:    logging.NullLogger{},
		metrics:   metrics.Noop{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Bus returns the checker's event bus for subscriptions to the
// condition-met and condition-failed channels.
func (c *Checker) Bus() *events.Bus { return c.bus }

// ResetConditionState is declared but intentionally
// unimplemented; it always fails with ErrNotSupported.
func (c *Checker) ResetConditionState() error {
	return fmt.Errorf("reset condition state: %w", ErrNotSupported)
}

// ProviderCount returns the number of registered providers.
func (c *Checker) ProviderCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.providers)
}

// RegisterProvider registers the provider for kind type K.
// Re-registering for a type already present replaces the
// previous provider wholesale; there is no merge.
func RegisterProvider[K comparable](
	c *Checker,
	p provider.Provider[K],
) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.providers[reflect.TypeFor[K]()] = p
}

// ProviderFor returns the provider registered for kind type K,
// or false when none is registered.
func ProviderFor[K comparable](
	c *Checker,
) (provider.Provider[K], bool) {
	c.mu.RLock()
	v, ok := c.providers[reflect.TypeFor[K]()]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	p, ok := v.(provider.Provider[K])
	return p, ok
}

// observe records one evaluation on the metrics sink and the
// debug log.
func (c *Checker) observe(
	kind string,
	r *condition.Result,
	duration time.Duration,
) {
	c.metrics.RecordEvaluation(
		kind, r.ConditionName, r.Status, duration,
	)
	c.logger.Debug("condition_evaluated",
		logging.F("kind", kind),
		logging.F("condition", r.ConditionName),
		logging.F("status", r.Status),
		logging.F("duration_ms", duration.Milliseconds()),
	)
}

// publish emits a notification event and records it.
func (c *Checker) publish(
	t events.Type,
	kind string,
	r *condition.Result,
) {
	c.bus.Publish(t, kind, r)
	c.metrics.RecordNotification(string(t))
	c.logger.Info("condition_notification",
		logging.F("type", string(t)),
		logging.F("kind", kind),
		logging.F("status", r.Status),
	)
}

// kindLabel renders a kind member as a stable string label for
// events, logs, and metrics.
func kindLabel(kind any) string {
	return fmt.Sprintf("%v", kind)
}
