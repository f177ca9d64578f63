// Package retry runs an operation with exactly one extra attempt.
package retry

import (
	"context"
	"time"
)

// Once calls op; if it fails, waits for delay and calls it exactly once more.
// The second error is returned as is. A context cancelled while waiting
// returns the first error; with no delay the second attempt always runs.
func Once(ctx context.Context, delay time.Duration, op func() error) error {
	err := op()
	if err == nil {
		return nil
	}
	if delay > 0 {
		t := time.NewTimer(delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return err
		case <-t.C:
		}
	}
	return op()
}
