package condition

import (
	"context"
	"fmt"
)

// Func is the evaluation contract every condition is normalized
// into: a context-aware predicate producing a full Result. A
// returned error is converted into a failure Result by Evaluate.
type Func func(ctx context.Context, cc *Context) (*Result, error)

// Predicate is the boolean-returning predicate shape. It is
// normalized into a Func by NewPredicate.
type Predicate func(ctx context.Context, cc *Context) (bool, error)

// Condition is a named, evaluatable predicate over a Context.
// The name is diagnostic only; lookup happens by kind in the
// provider. The same Condition may be registered under multiple
// kinds.
type Condition struct {
	name         string
	errorMessage string
	eval         Func
}

// New creates a Condition from a result-returning evaluation
// function. errorMessage is the static fallback used when a
// failing result carries no message of its own.
func New(name, errorMessage string, eval Func) *Condition {
	return &Condition{
		name:         name,
		errorMessage: errorMessage,
		eval:         eval,
	}
}

// NewPredicate creates a Condition from a boolean predicate.
// A true outcome passes with the context value as diagnostic; a
// false outcome fails with the static error message.
func NewPredicate(
	name, errorMessage string,
	pred Predicate,
) *Condition {
	return New(
		name, errorMessage,
		func(ctx context.Context, cc *Context) (*Result, error) {
			ok, err := pred(ctx, cc)
			if err != nil {
				return nil, err
			}
			if !ok {
				return Fail(errorMessage), nil
			}
			var value any
			if cc != nil {
				value = cc.Value
			}
			return Pass(value), nil
		},
	)
}

// Name returns the diagnostic name of the condition.
func (c *Condition) Name() string { return c.name }

// ErrorMessage returns the static failure message, which may be
// empty.
func (c *Condition) ErrorMessage() string { return c.errorMessage }

// Evaluate runs the condition against the given context. It is
// total: a nil context is synthesized into an empty one, and a
// predicate error, panic, or nil result is converted into a
// failure Result stating the fault. Callers never see an error
// or a panic escape an evaluation.
func (c *Condition) Evaluate(
	ctx context.Context,
	cc *Context,
) (result *Result) {
	defer func() {
		if rec := recover(); rec != nil {
			result = Failf(
				"condition %s panicked: %v", c.name, rec,
			).named(c.name)
		}
	}()

	if c.eval == nil {
		return Failf(
			"condition %s has no evaluation function", c.name,
		).named(c.name)
	}

	if cc == nil {
		cc = &Context{}
	}

	r, err := c.eval(ctx, cc)
	if err != nil {
		return Failf(
			"condition %s failed: %v", c.name, err,
		).named(c.name)
	}
	if r == nil {
		return Failf(
			"condition %s returned no result", c.name,
		).named(c.name)
	}

	if !r.Passed() && r.Message == "" && c.errorMessage != "" {
		cp := *r
		cp.Message = c.errorMessage
		r = &cp
	}

	return r.named(c.name)
}

// String implements fmt.Stringer for diagnostics.
func (c *Condition) String() string {
	return fmt.Sprintf("condition(%s)", c.name)
}
