// Package provider implements the per-kind-enumeration
// condition registry: an ordered mapping from each member of a
// closed kind set to the conditions registered for it.
package provider

import (
	"context"
	"fmt"
	"iter"
	"sync"

	"digital.vasic.conditions/pkg/condition"
)

// Provider defines the registry interface for one kind
// enumeration. K is the enumeration's member type.
type Provider[K comparable] interface {
	// Register appends a condition to the ordered list for
	// kind. Returns an error for a nil condition or a kind
	// outside the member set.
	Register(kind K, c *condition.Condition) error

	// Get returns the first registered condition for kind, or
	// false when none is registered.
	Get(kind K) (*condition.Condition, bool)

	// GetAll returns all conditions registered for kind, in
	// registration order.
	GetAll(kind K) []*condition.Condition

	// Conditions returns every registered condition across all
	// kinds, grouped by kind.
	Conditions() map[K][]*condition.Condition

	// Kinds returns the kinds that have at least one
	// registered condition, in first-registration order.
	Kinds() []K

	// Members returns the full closed member set of the
	// enumeration, in declaration order.
	Members() []K

	// Check evaluates the registered conditions for kind in
	// registration order and returns the first passing result.
	// When none pass (including zero registered conditions) it
	// returns a failure result reporting that no condition of
	// the kind passed.
	Check(
		ctx context.Context,
		kind K,
		cc *condition.Context,
	) *condition.Result

	// AnyPass lazily yields the passing results of every
	// registered condition across every kind, evaluated
	// against cc. The sequence is restartable.
	AnyPass(
		ctx context.Context,
		cc *condition.Context,
	) iter.Seq[*condition.Result]

	// AnyPassContexts is AnyPass evaluated against each of the
	// given contexts in turn.
	AnyPassContexts(
		ctx context.Context,
		ccs []*condition.Context,
	) iter.Seq[*condition.Result]

	// Count returns the total number of registered conditions.
	Count() int
}

// DefaultProvider is the standard Provider implementation. It
// is safe for concurrent readers; registering while evaluations
// are in flight must be serialized by the embedding application.
type DefaultProvider[K comparable] struct {
	mu         sync.RWMutex
	members    []K
	memberSet  map[K]struct{}
	conditions map[K][]*condition.Condition
	kindOrder  []K
}

// New creates a DefaultProvider for the given closed member
// set. The member order is the enumeration's declaration order
// and is significant for checker-level aggregations.
func New[K comparable](members ...K) *DefaultProvider[K] {
	set := make(map[K]struct{}, len(members))
	for _, m := range members {
		set[m] = struct{}{}
	}
	return &DefaultProvider[K]{
		members:    members,
		memberSet:  set,
		conditions: make(map[K][]*condition.Condition),
	}
}

// Register appends a condition to the ordered list for kind.
// The list is created on first use. Registering a nil condition
// or a kind outside the member set is a wiring fault and
// returns an error.
func (p *DefaultProvider[K]) Register(
	kind K,
	c *condition.Condition,
) error {
	if c == nil {
		return fmt.Errorf(
			"cannot register nil condition for kind %v", kind,
		)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.memberSet) > 0 {
		if _, ok := p.memberSet[kind]; !ok {
			return fmt.Errorf(
				"kind %v is not a member of this provider's "+
					"enumeration", kind,
			)
		}
	}

	if _, exists := p.conditions[kind]; !exists {
		p.kindOrder = append(p.kindOrder, kind)
	}
	p.conditions[kind] = append(p.conditions[kind], c)
	return nil
}

// Get returns the first registered condition for kind. Absence
// is a normal, representable state, not an error.
func (p *DefaultProvider[K]) Get(
	kind K,
) (*condition.Condition, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	list := p.conditions[kind]
	if len(list) == 0 {
		return nil, false
	}
	return list[0], true
}

// GetAll returns a copy of the ordered condition list for kind.
func (p *DefaultProvider[K]) GetAll(
	kind K,
) []*condition.Condition {
	p.mu.RLock()
	defer p.mu.RUnlock()

	list := p.conditions[kind]
	out := make([]*condition.Condition, len(list))
	copy(out, list)
	return out
}

// Conditions returns every registered condition grouped by
// kind. The returned map is a copy.
func (p *DefaultProvider[K]) Conditions() map[K][]*condition.Condition {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make(
		map[K][]*condition.Condition, len(p.conditions),
	)
	for k, list := range p.conditions {
		cp := make([]*condition.Condition, len(list))
		copy(cp, list)
		out[k] = cp
	}
	return out
}

// Kinds returns the kinds with registered conditions, in
// first-registration order.
func (p *DefaultProvider[K]) Kinds() []K {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]K, len(p.kindOrder))
	copy(out, p.kindOrder)
	return out
}

// Members returns the closed member set in declaration order.
func (p *DefaultProvider[K]) Members() []K {
	out := make([]K, len(p.members))
	copy(out, p.members)
	return out
}

// Check evaluates the conditions registered under kind in
// registration order, short-circuiting on the first passing
// result. Zero registered conditions or zero passes yields a
// failure result; Check never returns nil.
func (p *DefaultProvider[K]) Check(
	ctx context.Context,
	kind K,
	cc *condition.Context,
) *condition.Result {
	for _, c := range p.GetAll(kind) {
		if r := c.Evaluate(ctx, cc); r.Passed() {
			return r
		}
	}
	return condition.Failf(
		"no conditions of kind %v passed", kind,
	)
}

// AnyPass lazily evaluates every registered condition across
// every kind against cc and yields only the passing results.
// Kinds are visited in first-registration order, conditions in
// registration order. The sequence can be ranged over multiple
// times; each range restarts the evaluation.
func (p *DefaultProvider[K]) AnyPass(
	ctx context.Context,
	cc *condition.Context,
) iter.Seq[*condition.Result] {
	return p.AnyPassContexts(ctx, []*condition.Context{cc})
}

// AnyPassContexts lazily yields the passing results of every
// registered condition evaluated against each context in turn.
func (p *DefaultProvider[K]) AnyPassContexts(
	ctx context.Context,
	ccs []*condition.Context,
) iter.Seq[*condition.Result] {
	return func(yield func(*condition.Result) bool) {
		for _, kind := range p.Kinds() {
			for _, c := range p.GetAll(kind) {
				for _, cc := range ccs {
					r := c.Evaluate(ctx, cc)
					if !r.Passed() {
						continue
					}
					if !yield(r) {
						return
					}
				}
			}
		}
	}
}

// Count returns the total number of registered conditions
// across all kinds.
func (p *DefaultProvider[K]) Count() int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	n := 0
	for _, list := range p.conditions {
		n += len(list)
	}
	return n
}
