package clock

import (
	"context"
	"time"
)

// SleepWithContext waits for the duration or returns early if the context is canceled.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Retry calls fn until it succeeds, doubling the wait between attempts up to
// maxWait. It gives up after attempts tries or when ctx ends.
func Retry(ctx context.Context, attempts int, wait, maxWait time.Duration, fn func(context.Context) error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		if sleepErr := SleepWithContext(ctx, wait); sleepErr != nil {
			return sleepErr
		}
		wait = min(wait*2, maxWait)
	}
	return err
}
