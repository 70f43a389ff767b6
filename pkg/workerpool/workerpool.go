// Package workerpool runs independent tasks on a bounded set of goroutines.
package workerpool

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// Process calls fn for every item on at most workers goroutines and returns
// all failures joined. A failing item does not stop the others. Once ctx is
// done no new item starts and ctx.Err is part of the result.
func Process[T any](ctx context.Context, workers int, items []T, fn func(context.Context, T) error) error {
	if len(items) == 0 {
		return ctx.Err()
	}
	workers = min(max(workers, 1), len(items))

	var (
		next atomic.Int64
		mu   sync.Mutex
		errs []error
		wg   sync.WaitGroup
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ctx.Err() == nil {
				i := int(next.Add(1)) - 1
				if i >= len(items) {
					return
				}
				if err := fn(ctx, items[i]); err != nil {
					mu.Lock()
					errs = append(errs, err)
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
