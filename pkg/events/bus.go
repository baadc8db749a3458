// Package events provides the process-wide notification
// channels for condition outcomes. Any number of listeners may
// subscribe to condition-met and condition-failed events.
package events

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"digital.vasic.conditions/pkg/condition"
)

// Type identifies a notification channel.
type Type string

const (
	// ConditionMet is published when an evaluation passes.
	ConditionMet Type = "condition_met"

	// ConditionFailed is published when an evaluation fails or
	// remains unknown.
	ConditionFailed Type = "condition_failed"
)

// Event is the notification payload: the evaluation result plus
// the kind it was evaluated for.
type Event struct {
	ID            string    `json:"id"`
	Type          Type      `json:"type"`
	Kind          string    `json:"kind"`
	ConditionName string    `json:"condition_name,omitempty"`
	Status        string    `json:"status"`
	Message       string    `json:"message,omitempty"`
	Value         any       `json:"value,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// Handler receives published events. Handlers run synchronously
// on the publishing goroutine; a panicking handler is isolated
// and cannot corrupt the evaluation that triggered it.
type Handler func(Event)

// Subscription identifies a registered handler so it can be
// removed later.
type Subscription struct {
	eventType Type
	id        string
}

// Bus fans events out to subscribed handlers. The zero value is
// not usable; create one with NewBus.
type Bus struct {
	mu       sync.RWMutex
	handlers map[Type]map[string]Handler
}

// NewBus creates an empty event bus.
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[Type]map[string]Handler),
	}
}

// Subscribe registers a handler for the given event type and
// returns a Subscription for later removal. A nil handler is
// ignored and yields an inert subscription.
func (b *Bus) Subscribe(t Type, h Handler) Subscription {
	sub := Subscription{eventType: t, id: uuid.NewString()}
	if h == nil {
		return sub
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.handlers[t] == nil {
		b.handlers[t] = make(map[string]Handler)
	}
	b.handlers[t][sub.id] = h
	return sub
}

// Unsubscribe removes a previously registered handler. Unknown
// subscriptions are ignored.
func (b *Bus) Unsubscribe(sub Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if hs := b.handlers[sub.eventType]; hs != nil {
		delete(hs, sub.id)
	}
}

// Publish builds an event from the kind label and result, then
// delivers it to every handler subscribed to t. Handlers are
// invoked on a snapshot of the subscription set, each under its
// own recover, so listener failures stay isolated.
func (b *Bus) Publish(
	t Type,
	kind string,
	r *condition.Result,
) Event {
	event := Event{
		ID:        uuid.NewString(),
		Type:      t,
		Kind:      kind,
		Timestamp: time.Now(),
	}
	if r != nil {
		event.ConditionName = r.ConditionName
		event.Status = r.Status
		event.Message = r.Message
		event.Value = r.Value
	}

	b.mu.RLock()
	snapshot := make([]Handler, 0, len(b.handlers[t]))
	for _, h := range b.handlers[t] {
		snapshot = append(snapshot, h)
	}
	b.mu.RUnlock()

	for _, h := range snapshot {
		deliver(h, event)
	}
	return event
}

// deliver invokes one handler, swallowing any panic it raises.
func deliver(h Handler, e Event) {
	defer func() {
		_ = recover()
	}()
	h(e)
}

// SubscriberCount returns the number of handlers registered for
// the given type.
func (b *Bus) SubscriberCount(t Type) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[t])
}
