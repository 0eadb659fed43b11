package transfer

import (
	"context"
	"errors"
	"time"
)

// callOutcome tags the result of a deadline-bounded upstream call.
type callOutcome[T any] struct {
	value    T
	timedOut bool
	err      error
}

func (o callOutcome[T]) ok() bool {
	return !o.timedOut && o.err == nil
}

// callWithDeadline runs fn under a timeout. The context passed to fn is
// cancelled at the bound, aborting the underlying call; the outcome is
// returned no later than the bound even if fn ignores its context.
func callWithDeadline[T any](ctx context.Context, timeout time.Duration, fn func(ctx context.Context) (T, error)) callOutcome[T] {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan callOutcome[T], 1)
	go func() {
		value, err := fn(ctx)
		done <- callOutcome[T]{value: value, err: err}
	}()

	select {
	case out := <-done:
		if out.err != nil && errors.Is(out.err, context.DeadlineExceeded) {
			return callOutcome[T]{timedOut: true, err: out.err}
		}
		return out
	case <-ctx.Done():
		return callOutcome[T]{timedOut: true, err: ctx.Err()}
	}
}
