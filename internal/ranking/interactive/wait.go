package interactive

import (
	"context"
	"errors"
	"fmt"
	"swimrank-backend/internal/chrono"
	"time"
)

// ErrStillLoading is returned by WaitPolicy.Await when the load indicator
// appeared and did not clear within the load timeout.
var ErrStillLoading = errors.New("load indicator did not clear")

// WaitPolicy is the two-tier bounded polling used after every mutation of the
// remote view: a short probe for "has loading started", and only when that
// probe sees the indicator, a longer wait for "has loading finished".
//
// The indicator never showing up within Probe counts as success.
type WaitPolicy struct {
	Probe time.Duration
	Load  time.Duration
	Poll  time.Duration
	// SettleDelay is slept once after all filters are applied, it absorbs
	// client-side updates the indicator does not reflect.
	SettleDelay time.Duration
	Clock       chrono.API
}

func DefaultWaitPolicy(clock chrono.API) WaitPolicy {
	return WaitPolicy{
		Probe:       2 * time.Second,
		Load:        15 * time.Second,
		Poll:        100 * time.Millisecond,
		SettleDelay: time.Second,
		Clock:       clock,
	}
}

// Signal reports whether the load indicator is currently visible.
type Signal func(ctx context.Context) (bool, error)

// Await runs probe-then-wait against `visible`.
func (p WaitPolicy) Await(ctx context.Context, visible Signal) error {
	appeared, err := p.poll(ctx, p.Probe, visible, true)
	if err != nil {
		return err
	}
	if !appeared {
		return nil
	}

	cleared, err := p.poll(ctx, p.Load, visible, false)
	if err != nil {
		return err
	}
	if !cleared {
		return fmt.Errorf("%w after %s", ErrStillLoading, p.Load)
	}
	return nil
}

// poll checks `visible` until it returns `want` or `timeout` passes on the
// policy's clock, reporting whether `want` was observed.
func (p WaitPolicy) poll(ctx context.Context, timeout time.Duration, visible Signal, want bool) (bool, error) {
	deadline := p.Clock.Now().Add(timeout)
	for {
		current, err := visible(ctx)
		if err != nil {
			return false, err
		}
		if current == want {
			return true, nil
		}
		if !p.Clock.Now().Before(deadline) {
			return false, nil
		}
		err = p.Clock.Sleep(ctx, p.Poll)
		if err != nil {
			return false, err
		}
	}
}
