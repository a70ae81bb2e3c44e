package interactive

import (
	"context"
	"errors"
	"swimrank-backend/internal/chrono"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// scriptedSignal returns the given visibility values in order, repeating the last one.
func scriptedSignal(values ...bool) (Signal, *int) {
	calls := 0
	return func(ctx context.Context) (bool, error) {
		idx := calls
		calls++
		if idx >= len(values) {
			idx = len(values) - 1
		}
		return values[idx], nil
	}, &calls
}

func testPolicy(clock chrono.API) WaitPolicy {
	return WaitPolicy{
		Probe:       2 * time.Second,
		Load:        15 * time.Second,
		Poll:        100 * time.Millisecond,
		SettleDelay: time.Second,
		Clock:       clock,
	}
}

func TestAwaitIndicatorNeverAppears(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := chrono.NewFakeClock(start)
	signal, _ := scriptedSignal(false)

	err := testPolicy(clock).Await(context.Background(), signal)
	require.NoError(t, err)
	// only the short probe was spent
	require.Equal(t, 2*time.Second, clock.Now().Sub(start))
}

func TestAwaitIndicatorAppearsThenClears(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := chrono.NewFakeClock(start)
	signal, calls := scriptedSignal(false, false, true, true, true, false)

	err := testPolicy(clock).Await(context.Background(), signal)
	require.NoError(t, err)
	require.Equal(t, 6, *calls)
	require.Equal(t, 400*time.Millisecond, clock.Now().Sub(start))
}

func TestAwaitIndicatorNeverClears(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := chrono.NewFakeClock(start)
	signal, _ := scriptedSignal(true)

	err := testPolicy(clock).Await(context.Background(), signal)
	require.ErrorIs(t, err, ErrStillLoading)
	require.Equal(t, 15*time.Second, clock.Now().Sub(start))
}

func TestAwaitSignalError(t *testing.T) {
	clock := chrono.NewFakeClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	boom := errors.New("devtools disconnected")

	err := testPolicy(clock).Await(context.Background(), func(ctx context.Context) (bool, error) {
		return false, boom
	})
	require.ErrorIs(t, err, boom)
}

func TestAwaitCancelled(t *testing.T) {
	clock := chrono.NewFakeClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	signal, _ := scriptedSignal(false)

	err := testPolicy(clock).Await(ctx, signal)
	require.ErrorIs(t, err, context.Canceled)
}
