// Package monitor provides live observation of condition
// evaluations: an event collector with aggregate statistics and
// a WebSocket server broadcasting notifications to dashboards.
package monitor

import (
	"sync"
	"time"

	"digital.vasic.conditions/pkg/events"
)

// maxRecentEvents bounds the collector's in-memory event window.
const maxRecentEvents = 256

// CollectorStats holds aggregate statistics over observed
// notifications.
type CollectorStats struct {
	Total     int           `json:"total"`
	Met       int           `json:"met"`
	Failed    int           `json:"failed"`
	StartTime time.Time     `json:"start_time"`
	Duration  time.Duration `json:"duration"`
}

// Snapshot is a point-in-time view of the collector state.
type Snapshot struct {
	Stats   CollectorStats `json:"stats"`
	PerKind map[string]int `json:"per_kind"`
	Recent  []events.Event `json:"recent"`
}

// Collector captures condition notifications from an event bus
// and keeps bounded recent history plus per-kind tallies.
type Collector struct {
	mu       sync.RWMutex
	recent   []events.Event
	perKind  map[string]int
	stats    CollectorStats
	handlers []func(events.Event)
	subs     []events.Subscription
	bus      *events.Bus
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{
		recent:  make([]events.Event, 0, 64),
		perKind: make(map[string]int),
		stats:   CollectorStats{StartTime: time.Now()},
	}
}

// Attach subscribes the collector to both notification channels
// of the bus.
func (c *Collector) Attach(bus *events.Bus) {
	c.bus = bus
	c.subs = append(c.subs,
		bus.Subscribe(events.ConditionMet, c.observe),
		bus.Subscribe(events.ConditionFailed, c.observe),
	)
}

// Detach removes the collector's subscriptions.
func (c *Collector) Detach() {
	if c.bus == nil {
		return
	}
	for _, sub := range c.subs {
		c.bus.Unsubscribe(sub)
	}
	c.subs = nil
	c.bus = nil
}

// OnEvent registers a handler called for each observed event,
// after the collector's own bookkeeping.
func (c *Collector) OnEvent(handler func(events.Event)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers = append(c.handlers, handler)
}

// observe records one notification and notifies handlers.
func (c *Collector) observe(event events.Event) {
	c.mu.Lock()

	c.recent = append(c.recent, event)
	if len(c.recent) > maxRecentEvents {
		c.recent = c.recent[len(c.recent)-maxRecentEvents:]
	}

	c.perKind[event.Kind]++
	c.stats.Total++
	switch event.Type {
	case events.ConditionMet:
		c.stats.Met++
	case events.ConditionFailed:
		c.stats.Failed++
	}
	c.stats.Duration = time.Since(c.stats.StartTime)

	handlers := make([]func(events.Event), len(c.handlers))
	copy(handlers, c.handlers)
	c.mu.Unlock()

	for _, h := range handlers {
		h(event)
	}
}

// Stats returns a copy of the aggregate statistics.
func (c *Collector) Stats() CollectorStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}

// Snapshot returns a point-in-time copy of the collector state.
func (c *Collector) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	perKind := make(map[string]int, len(c.perKind))
	for k, v := range c.perKind {
		perKind[k] = v
	}
	recent := make([]events.Event, len(c.recent))
	copy(recent, c.recent)

	return Snapshot{
		Stats:   c.stats,
		PerKind: perKind,
		Recent:  recent,
	}
}
