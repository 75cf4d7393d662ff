// Package adapters runs calls to external collaborators (LLM extraction,
// fraud scoring, notification) under a time bound and reports every
// failure as an *AdapterError so callers can apply their fallback.
package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrTimeout marks an adapter call that exceeded its time bound.
var ErrTimeout = errors.New("adapter call timed out")

// AdapterError is the failure result of an external call.
type AdapterError struct {
	Adapter string
	Op      string
	Err     error
}

func (e *AdapterError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Adapter, e.Op, e.Err)
}

func (e *AdapterError) Unwrap() error {
	return e.Err
}

// Call runs fn with a context bounded by timeout (no bound when timeout <= 0)
// and returns as soon as fn finishes or the bound expires, whichever is first.
// A panic inside fn is reported as an error.
func Call[T any](ctx context.Context, adapter, op string, timeout time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	callCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	type result struct {
		val T
		err error
	}
	done := make(chan result, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: fmt.Errorf("panic: %v", r)}
			}
		}()
		v, err := fn(callCtx)
		done <- result{val: v, err: err}
	}()

	var zero T
	select {
	case r := <-done:
		if r.err != nil {
			return zero, &AdapterError{Adapter: adapter, Op: op, Err: r.err}
		}
		return r.val, nil
	case <-callCtx.Done():
		err := callCtx.Err()
		if errors.Is(err, context.DeadlineExceeded) {
			err = ErrTimeout
		}
		return zero, &AdapterError{Adapter: adapter, Op: op, Err: err}
	}
}
