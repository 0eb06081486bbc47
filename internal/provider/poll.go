package provider

import (
	"context"
	"time"
)

const (
	defaultPollRetries = 2
	defaultPollDelay   = 300 * time.Millisecond
)

// PollPolicy bounds the completion poll on the upstream price endpoints.
// MaxRetries counts extra attempts after the initial call; Delay is the
// fixed wait between attempts. The sleep function is injectable so tests
// run without real time delays.
type PollPolicy struct {
	MaxRetries int
	Delay      time.Duration

	sleep func(ctx context.Context, d time.Duration) error
}

// DefaultPollPolicy returns the production defaults: 2 retries, 300ms apart.
func DefaultPollPolicy() PollPolicy {
	return PollPolicy{
		MaxRetries: defaultPollRetries,
		Delay:      defaultPollDelay,
		sleep:      sleepCtx,
	}
}

// NewPollPolicy returns a policy with the given bounds. Negative retries
// are clamped to zero.
func NewPollPolicy(maxRetries int, delay time.Duration) PollPolicy {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return PollPolicy{MaxRetries: maxRetries, Delay: delay, sleep: sleepCtx}
}

// WithSleep returns a copy of the policy using fn instead of a real sleep.
func (p PollPolicy) WithSleep(fn func(ctx context.Context, d time.Duration) error) PollPolicy {
	p.sleep = fn
	return p
}

// Wait blocks for the policy's delay, aborting early if ctx is done.
func (p PollPolicy) Wait(ctx context.Context) error {
	if p.sleep == nil {
		return sleepCtx(ctx, p.Delay)
	}
	return p.sleep(ctx, p.Delay)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
