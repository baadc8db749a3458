// Package validator provides the declarative registration
// layer: descriptor tables that wire handler functions into
// condition registrations at construction time, with deferred
// resolution of the subject under validation.
package validator

import (
	"context"
	"fmt"

	"digital.vasic.conditions/pkg/condition"
	"digital.vasic.conditions/pkg/provider"
)

// resolvedExtraKey marks a context whose subject resolution has
// already been attempted, so resolution runs at most once per
// context even when it comes back empty.
const resolvedExtraKey = "_subject_resolved"

// Handler is the function shape a descriptor binds to a kind.
// It receives the prepared evaluation context (subject resolved,
// static value injected) and produces the condition result.
type Handler func(
	ctx context.Context,
	cc *condition.Context,
) (*condition.Result, error)

// Resolver fetches the subject under validation by identifier.
// An absent or unresolvable identifier yields ok == false and
// leaves the subject absent; it must not be treated as a fault.
type Resolver[S any] func(
	ctx context.Context,
	id string,
) (S, bool)

// Descriptor declares one condition registration: the kind it
// registers under, its diagnostic name, the default failure
// message, an optional static comparison value, whether
// deferred subject resolution should be attempted, and the
// handler to delegate to.
type Descriptor[K comparable] struct {
	// Kind is the enumeration member to register under.
	Kind K

	// Name is the condition's diagnostic name. Required.
	Name string

	// Message is the default failure message applied when the
	// handler's failing result carries none.
	Message string

	// Value is an optional static comparison operand injected
	// into contexts that carry no value of their own.
	Value any

	// Resolve requests deferred subject resolution before the
	// handler runs, for contexts without an attached subject.
	Resolve bool

	// Handler is the function delegated to. Required.
	Handler Handler
}

// Validator wires descriptors into a provider and performs
// deferred, per-context-memoized subject resolution. Embed it
// in concrete validators the way the engine's own validators
// do.
type Validator[K comparable, S any] struct {
	provider provider.Provider[K]
	resolve  Resolver[S]
}

// Option configures validator construction.
type Option[K comparable] func(*options[K])

type options[K comparable] struct {
	setup []func(provider.Provider[K]) error
}

// WithSetup adds an explicitly coded registration step that
// runs after declarative wiring, in the order given. It is the
// place for hand-written registrations beyond the descriptor
// table.
func WithSetup[K comparable](
	fn func(provider.Provider[K]) error,
) Option[K] {
	return func(o *options[K]) {
		o.setup = append(o.setup, fn)
	}
}

// New wires every descriptor into the provider, in table order,
// before anything else. A descriptor with a nil handler, an
// empty name, or a kind the provider rejects aborts
// construction with an error naming the offender: these are
// programmer errors, not runtime conditions. Setup steps run
// after the declarative pass.
func New[K comparable, S any](
	p provider.Provider[K],
	resolve Resolver[S],
	descriptors []Descriptor[K],
	opts ...Option[K],
) (*Validator[K, S], error) {
	if p == nil {
		return nil, fmt.Errorf("validator: provider must not be nil")
	}

	v := &Validator[K, S]{
		provider: p,
		resolve:  resolve,
	}

	for i, d := range descriptors {
		if d.Handler == nil {
			return nil, fmt.Errorf(
				"validator: descriptor %d (%q) has no handler",
				i, d.Name,
			)
		}
		if d.Name == "" {
			return nil, fmt.Errorf(
				"validator: descriptor %d for kind %v has no name",
				i, d.Kind,
			)
		}

		cond := condition.New(d.Name, d.Message, v.wrap(d))
		if err := p.Register(d.Kind, cond); err != nil {
			return nil, fmt.Errorf(
				"validator: descriptor %d (%q): %w",
				i, d.Name, err,
			)
		}
	}

	var o options[K]
	for _, opt := range opts {
		opt(&o)
	}
	for _, setup := range o.setup {
		if err := setup(p); err != nil {
			return nil, fmt.Errorf("validator: setup: %w", err)
		}
	}

	return v, nil
}

// Provider returns the provider this validator registers into.
func (v *Validator[K, S]) Provider() provider.Provider[K] {
	return v.provider
}

// ResolveSubject attaches the subject fetched by id to the
// context, unless one is already attached or resolution was
// already attempted for this context. Contexts are
// per-evaluation, so mutating the supplied context is the
// memoization. An unresolvable identifier leaves the subject
// absent; downstream checks then fail with their not-found
// messages rather than faulting.
func (v *Validator[K, S]) ResolveSubject(
	ctx context.Context,
	cc *condition.Context,
) {
	if cc == nil || cc.Subject != nil || v.resolve == nil {
		return
	}
	if _, attempted := cc.Extra(resolvedExtraKey); attempted {
		return
	}
	cc.WithExtra(resolvedExtraKey, true)

	if cc.ID == "" {
		return
	}
	if s, ok := v.resolve(ctx, cc.ID); ok {
		cc.Subject = s
	}
}

// wrap builds the condition function for one descriptor: it
// resolves the subject when requested, injects the static
// comparison value into contexts lacking one, and delegates to
// the handler.
func (v *Validator[K, S]) wrap(d Descriptor[K]) condition.Func {
	return func(
		ctx context.Context,
		cc *condition.Context,
	) (*condition.Result, error) {
		if d.Resolve {
			v.ResolveSubject(ctx, cc)
		}
		if d.Value != nil && cc.Value == nil {
			cc.Value = d.Value
		}
		return d.Handler(ctx, cc)
	}
}
