// Package poll runs a check function at a fixed interval until it
// succeeds, fails, or is cancelled. Callers own cancellation through
// the context; there is no retry of failed checks and at most one
// check runs at a time.
package poll

import (
	"context"
	"errors"
	"time"
)

// ErrTimeout is returned when the deadline elapses before the check
// reports done.
var ErrTimeout = errors.New("poll: timed out")

// DefaultInterval is used when Options.Interval is zero.
const DefaultInterval = 2 * time.Second

// Func performs one check. Returning done stops the poller; returning a
// non-nil error stops it immediately with that error.
type Func func(ctx context.Context) (done bool, err error)

// Options configure a poll loop.
type Options struct {
	// Interval between checks. Defaults to DefaultInterval.
	Interval time.Duration

	// Timeout bounds the whole loop. Zero means only the context
	// limits it.
	Timeout time.Duration
}

// Until runs fn immediately and then once per interval until fn reports
// done, fn fails, the timeout elapses, or ctx is cancelled.
func Until(ctx context.Context, opts Options, fn Func) error {
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeoutCause(ctx, opts.Timeout, ErrTimeout)
		defer cancel()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		done, err := fn(ctx)
		if err != nil {
			return err
		}
		if done {
			return nil
		}

		select {
		case <-ctx.Done():
			if cause := context.Cause(ctx); cause != nil {
				return cause
			}
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
