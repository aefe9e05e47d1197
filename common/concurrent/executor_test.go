package concurrent

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func sleepCall(d time.Duration, v int) func(context.Context) (int, error) {
	return func(ctx context.Context) (int, error) {
		select {
		case <-time.After(d):
			return v, nil
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
}

func TestExecuteWithTimeout_ReturnsValue(t *testing.T) {
	t.Parallel()

	v, err := ExecuteWithTimeout(context.Background(), time.Second, sleepCall(0, 42))
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestExecuteWithTimeout_PropagatesError(t *testing.T) {
	t.Parallel()

	callErr := errors.New("boom")
	_, err := ExecuteWithTimeout(context.Background(), time.Second, func(context.Context) (string, error) {
		return "", callErr
	})
	require.ErrorIs(t, err, callErr)
	assert.NotErrorIs(t, err, ErrTimeout)
}

func TestExecuteWithTimeout_DoesNotWaitForSlowCall(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	defer close(release)

	start := time.Now()
	_, err := ExecuteWithTimeout(context.Background(), 20*time.Millisecond, func(context.Context) (int, error) {
		// ignores cancellation on purpose
		<-release
		return 1, nil
	})
	elapsed := time.Since(start)

	require.ErrorIs(t, err, ErrTimeout)
	var timeoutErr *TimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	assert.Equal(t, 20*time.Millisecond, timeoutErr.Timeout)
	assert.Less(t, elapsed, time.Second)
}

func TestExecuteWithTimeout_CancelsCallContext(t *testing.T) {
	t.Parallel()

	cancelled := make(chan struct{})
	_, err := ExecuteWithTimeout(context.Background(), 10*time.Millisecond, func(ctx context.Context) (int, error) {
		<-ctx.Done()
		close(cancelled)
		return 0, ctx.Err()
	})
	require.ErrorIs(t, err, ErrTimeout)

	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("call context was not cancelled")
	}
}

func TestExecuteWithTimeout_ParentCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ExecuteWithTimeout(ctx, time.Minute, sleepCall(time.Minute, 1))
	require.ErrorIs(t, err, context.Canceled)
}

func TestExecuteWithTimeout_NonPositiveTimeoutUsesDefault(t *testing.T) {
	t.Parallel()

	v, err := ExecuteWithTimeout(context.Background(), 0, sleepCall(time.Millisecond, 7))
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestExecute(t *testing.T) {
	t.Parallel()

	require.NoError(t, Execute(context.Background(), time.Second, func(context.Context) error { return nil }))
	require.ErrorIs(t,
		Execute(context.Background(), time.Millisecond, func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		}),
		ErrTimeout)
}

// A call slower than the timeout always fails with ErrTimeout, and the executor returns
// within the timeout plus scheduling slack.
func TestExecuteWithTimeout_SlowCallsTimeOut(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		timeout := time.Duration(rapid.IntRange(1, 20).Draw(t, "timeoutMs")) * time.Millisecond
		extra := time.Duration(rapid.IntRange(30, 200).Draw(t, "extraMs")) * time.Millisecond

		start := time.Now()
		_, err := ExecuteWithTimeout(context.Background(), timeout, sleepCall(timeout+extra, 1))
		elapsed := time.Since(start)

		if !errors.Is(err, ErrTimeout) {
			t.Fatalf("expected timeout, got %v", err)
		}
		if elapsed >= timeout+extra {
			t.Fatalf("executor waited for the call: %s >= %s", elapsed, timeout+extra)
		}
	})
}

func TestExecuteWithTimeout_FastCallsSucceed(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		v := rapid.Int().Draw(t, "value")
		got, err := ExecuteWithTimeout(context.Background(), time.Second, sleepCall(0, v))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != v {
			t.Fatalf("got %d, want %d", got, v)
		}
	})
}
