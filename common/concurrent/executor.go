package concurrent

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	QueryTimeout     = 15 * time.Second
	ConnectTimeout   = 15 * time.Second
	BroadcastTimeout = 60 * time.Second

	// DefaultTimeout is used when a non-positive timeout is passed.
	DefaultTimeout = QueryTimeout
)

var ErrTimeout = errors.New("operation timed out")

// TimeoutError is returned by ExecuteWithTimeout when the timer fires first.
type TimeoutError struct {
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("operation timed out after %s", e.Timeout)
}

func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}

type result[T any] struct {
	value T
	err   error
}

// ExecuteWithTimeout runs call in its own goroutine and returns whichever settles first:
// the call or the timer. On timeout the call is not awaited; the context passed to it is
// cancelled, and its late result is discarded.
func ExecuteWithTimeout[T any](
	ctx context.Context, timeout time.Duration, call func(context.Context) (T, error),
) (T, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	callCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// buffered so the goroutine never blocks after we stop listening
	done := make(chan result[T], 1)
	go func() {
		v, err := call(callCtx)
		done <- result[T]{value: v, err: err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	var zero T
	select {
	case r := <-done:
		return r.value, r.err
	case <-timer.C:
		return zero, &TimeoutError{Timeout: timeout}
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// Execute is ExecuteWithTimeout for calls that return only an error.
func Execute(ctx context.Context, timeout time.Duration, call func(context.Context) error) error {
	_, err := ExecuteWithTimeout(ctx, timeout, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, call(ctx)
	})
	return err
}
