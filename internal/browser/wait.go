// File: internal/browser/wait.go
package browser

import (
	"context"
	"time"
)

// Condition is one readiness check evaluated by waitFor. It returns true when
// the awaited state holds. An error is treated as "not yet": conditions are
// frequently evaluated mid-navigation, when the document is being replaced
// and queries fail transiently.
type Condition func(ctx context.Context) (bool, error)

// WaitOption overrides per-call wait behavior.
type WaitOption func(*waitParams)

type waitParams struct {
	timeout  time.Duration
	interval time.Duration
}

// WithTimeout overrides the default timeout for a single wait.
func WithTimeout(d time.Duration) WaitOption {
	return func(p *waitParams) { p.timeout = d }
}

// waitFor implements the shared polling contract: evaluate cond immediately,
// then every interval, until it holds or the timeout elapses. Returns a
// *TimeoutError naming op and target on expiry, or the context error if the
// caller's context is cancelled first.
func waitFor(ctx context.Context, op, target string, p waitParams, cond Condition) error {
	start := time.Now()
	deadline := start.Add(p.timeout)

	for {
		if ok, err := cond(ctx); err == nil && ok {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !time.Now().Before(deadline) {
			return &TimeoutError{
				Op:      op,
				Target:  target,
				Timeout: p.timeout,
				Elapsed: time.Since(start),
			}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.interval):
		}
	}
}
