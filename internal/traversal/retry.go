package traversal

import (
	"context"
	"time"
)

const (
	// DefaultMaxAttempts is the namespace-level budget for busy retries
	DefaultMaxAttempts = 5
	// DefaultBackoff is the fixed wait between busy retries
	DefaultBackoff = 500 * time.Millisecond
)

// SleepFunc blocks for d or until ctx is done
type SleepFunc func(ctx context.Context, d time.Duration) error

// RetryPolicy bounds how often a busy host is retried and how long to wait in between.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     time.Duration
	// Sleep defaults to a context-aware timer when nil
	Sleep SleepFunc
}

// DefaultRetryPolicy allows five attempts, 500ms apart
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: DefaultMaxAttempts,
		Backoff:     DefaultBackoff,
		Sleep:       SleepContext,
	}
}

func (p RetryPolicy) attempts() int {
	if p.MaxAttempts <= 0 {
		return 1
	}
	return p.MaxAttempts
}

func (p RetryPolicy) wait(ctx context.Context) error {
	if p.Sleep == nil {
		return SleepContext(ctx, p.Backoff)
	}
	return p.Sleep(ctx, p.Backoff)
}

// SleepContext waits for d, returning early with the context error on cancellation
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
