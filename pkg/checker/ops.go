package checker

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"digital.vasic.conditions/pkg/condition"
	"digital.vasic.conditions/pkg/events"
	"digital.vasic.conditions/pkg/logging"
)

// Check reports whether the kind's first-success-wins provider
// check passes. A missing provider or kind is not an error; it
// simply reports false.
func Check[K comparable](
	ctx context.Context,
	c *Checker,
	kind K,
	cc *condition.Context,
) bool {
	p, ok := ProviderFor[K](c)
	if !ok {
		return false
	}

	start := time.Now()
	r := p.Check(ctx, kind, cc)
	c.observe(kindLabel(kind), r, time.Since(start))
	return r.Passed()
}

// CheckAll evaluates every member of the kind enumeration, in
// declaration order, through the provider's first registered
// condition. Members with no registered condition are excluded
// from aggregation, not treated as failures: CheckAll over a
// partially registered enumeration can report true even though
// some members were never checked.
func CheckAll[K comparable](
	ctx context.Context,
	c *Checker,
	cc *condition.Context,
) bool {
	p, ok := ProviderFor[K](c)
	if !ok {
		return false
	}

	for _, member := range p.Members() {
		cond, registered := p.Get(member)
		if !registered {
			continue
		}

		start := time.Now()
		r := cond.Evaluate(ctx, cc)
		c.observe(kindLabel(member), r, time.Since(start))

		if !r.Passed() {
			return false
		}
	}
	return true
}

// CheckAny iterates the kind enumeration in declaration order
// and reports true on the first passing member. Unlike
// CheckAll, a member with no registered condition stops the
// iteration and reports false immediately, even when a later
// member would have passed. The asymmetry matches the original
// contract and is deliberate.
func CheckAny[K comparable](
	ctx context.Context,
	c *Checker,
	cc *condition.Context,
) bool {
	p, ok := ProviderFor[K](c)
	if !ok {
		return false
	}

	for _, member := range p.Members() {
		cond, registered := p.Get(member)
		if !registered {
			return false
		}

		start := time.Now()
		r := cond.Evaluate(ctx, cc)
		c.observe(kindLabel(member), r, time.Since(start))

		if r.Passed() {
			return true
		}
	}
	return false
}

// CheckAndResult returns the full result of the kind's
// first-success-wins check. When no provider is registered for
// K, or the kind has no registered conditions, it returns a
// failure result with the fixed not-found message instead of an
// error.
func CheckAndResult[K comparable](
	ctx context.Context,
	c *Checker,
	kind K,
	cc *condition.Context,
) *condition.Result {
	p, ok := ProviderFor[K](c)
	if !ok || len(p.GetAll(kind)) == 0 {
		return condition.Fail(MessageConditionNotFound)
	}

	start := time.Now()
	r := p.Check(ctx, kind, cc)
	c.observe(kindLabel(kind), r, time.Since(start))
	return r
}

// CheckWithError wraps CheckAndResult and returns the result's
// message alongside a boolean. The boolean reports "a result
// with a message was obtained", NOT "the condition passed": it
// is true even when the underlying result is a failure. This is
// a one-shot helper for fetching the message, not a pass/fail
// oracle; use Check or CheckAndResult to learn the outcome.
func CheckWithError[K comparable](
	ctx context.Context,
	c *Checker,
	kind K,
	cc *condition.Context,
) (bool, string) {
	r := CheckAndResult(ctx, c, kind, cc)
	if r == nil {
		return false, ""
	}
	return true, r.Message
}

// CheckWithMultipleContexts reports whether the kind's first
// registered condition passes for every supplied context,
// short-circuiting on the first failure. Note it evaluates via
// the provider's Get, not the full first-success-wins check.
func CheckWithMultipleContexts[K comparable](
	ctx context.Context,
	c *Checker,
	kind K,
	ccs []*condition.Context,
) bool {
	return checkEveryContext(ctx, c, kind, ccs)
}

// CheckWithContextualDependencies has the identical contract to
// CheckWithMultipleContexts. The duplicate operation exists in
// the original surface and is kept for compatibility.
func CheckWithContextualDependencies[K comparable](
	ctx context.Context,
	c *Checker,
	kind K,
	ccs []*condition.Context,
) bool {
	return checkEveryContext(ctx, c, kind, ccs)
}

func checkEveryContext[K comparable](
	ctx context.Context,
	c *Checker,
	kind K,
	ccs []*condition.Context,
) bool {
	cond, ok := firstCondition(c, kind)
	if !ok {
		return false
	}

	for _, cc := range ccs {
		start := time.Now()
		r := cond.Evaluate(ctx, cc)
		c.observe(kindLabel(kind), r, time.Since(start))

		if !r.Passed() {
			return false
		}
	}
	return true
}

// CheckContexts is the concurrent form of
// CheckWithMultipleContexts: the kind's first registered
// condition is evaluated against every context with at most
// maxConcurrency evaluations in flight. The first failure
// cancels the remaining evaluations.
func CheckContexts[K comparable](
	ctx context.Context,
	c *Checker,
	kind K,
	ccs []*condition.Context,
	maxConcurrency int,
) bool {
	cond, ok := firstCondition(c, kind)
	if !ok {
		return false
	}

	if maxConcurrency <= 0 {
		maxConcurrency = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrency)

	for _, cc := range ccs {
		g.Go(func() error {
			start := time.Now()
			r := cond.Evaluate(gctx, cc)
			c.observe(kindLabel(kind), r, time.Since(start))

			if !r.Passed() {
				return fmt.Errorf(
					"condition %s failed: %s",
					r.ConditionName, r.Message,
				)
			}
			return nil
		})
	}

	return g.Wait() == nil
}

// CheckWithTimeout races the kind's check against the given
// timeout. Exceeding the timeout yields false rather than a
// fault. The evaluation context is cancelled on expiry, but a
// predicate that ignores its context may still complete later;
// such a late result is discarded and fires no notifications.
func CheckWithTimeout[K comparable](
	ctx context.Context,
	c *Checker,
	kind K,
	cc *condition.Context,
	timeout time.Duration,
) bool {
	tctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan bool, 1)
	go func() {
		done <- Check(tctx, c, kind, cc)
	}()

	select {
	case ok := <-done:
		return ok
	case <-tctx.Done():
		c.logger.Warn("condition_check_timeout",
			logging.F("kind", kindLabel(kind)),
			logging.F("timeout_ms", timeout.Milliseconds()),
		)
		return false
	}
}

// EvaluateWithRetry repeats the kind's check up to maxRetries
// attempts with a fixed delay between attempts (maxRetries
// attempts mean maxRetries-1 waits). It reports true on the
// first pass and false once attempts are exhausted or the
// caller's context ends.
func EvaluateWithRetry[K comparable](
	ctx context.Context,
	c *Checker,
	kind K,
	cc *condition.Context,
	maxRetries int,
	delay time.Duration,
) bool {
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if Check(ctx, c, kind, cc) {
			return true
		}
		if attempt == maxRetries {
			break
		}

		select {
		case <-ctx.Done():
			return false
		case <-time.After(delay):
		}
	}
	return false
}

// FailedConditionDetails evaluates every enumeration member and
// collects kind-to-message details for the ones that did not
// pass. Members with no registered condition are reported with
// the fixed not-found message; failing members carry their
// result's message. A nil map is returned when no provider is
// registered for K.
func FailedConditionDetails[K comparable](
	ctx context.Context,
	c *Checker,
	cc *condition.Context,
) map[K]string {
	p, ok := ProviderFor[K](c)
	if !ok {
		return nil
	}

	details := make(map[K]string)
	for _, member := range p.Members() {
		cond, registered := p.Get(member)
		if !registered {
			details[member] = MessageConditionNotFound
			continue
		}

		start := time.Now()
		r := cond.Evaluate(ctx, cc)
		c.observe(kindLabel(member), r, time.Since(start))

		if !r.Passed() {
			details[member] = r.Message
		}
	}
	return details
}

// ConditionHistory evaluates every registered member once and
// accumulates the results per kind. Each call produces at most
// one entry per kind: the returned map is a single-shot
// snapshot, not a persistent multi-call history. Persistent
// accumulation across calls is provided by the report package's
// Recorder.
func ConditionHistory[K comparable](
	ctx context.Context,
	c *Checker,
	cc *condition.Context,
) map[K][]*condition.Result {
	p, ok := ProviderFor[K](c)
	if !ok {
		return nil
	}

	history := make(map[K][]*condition.Result)
	for _, member := range p.Members() {
		cond, registered := p.Get(member)
		if !registered {
			continue
		}

		start := time.Now()
		r := cond.Evaluate(ctx, cc)
		c.observe(kindLabel(member), r, time.Since(start))

		history[member] = append(history[member], r)
	}
	return history
}

// ExecuteWithCallbacks evaluates a single kind, publishes the
// condition-met or condition-failed notification, then invokes
// the matching callback with the result. Nil callbacks are
// skipped. The result is returned for convenience.
func ExecuteWithCallbacks[K comparable](
	ctx context.Context,
	c *Checker,
	kind K,
	cc *condition.Context,
	onSuccess func(*condition.Result),
	onFailure func(*condition.Result),
) *condition.Result {
	r := CheckAndResult(ctx, c, kind, cc)

	if r.Passed() {
		c.publish(events.ConditionMet, kindLabel(kind), r)
		if onSuccess != nil {
			onSuccess(r)
		}
	} else {
		c.publish(events.ConditionFailed, kindLabel(kind), r)
		if onFailure != nil {
			onFailure(r)
		}
	}
	return r
}

// AreAllConditionsMetWithRetry is declared but intentionally
// unimplemented; it always fails with ErrNotSupported.
func AreAllConditionsMetWithRetry[K comparable](
	_ context.Context,
	_ *Checker,
	_ *condition.Context,
	_ int,
	_ time.Duration,
) (bool, error) {
	return false, fmt.Errorf(
		"all conditions met with retry: %w", ErrNotSupported,
	)
}

// firstCondition fetches the first registered condition for
// kind through the checker's provider.
func firstCondition[K comparable](
	c *Checker,
	kind K,
) (*condition.Condition, bool) {
	p, ok := ProviderFor[K](c)
	if !ok {
		return nil, false
	}
	return p.Get(kind)
}
