// Package batcher groups items from many producers and hands them to a flush
// callback once a size or interval bound is reached.
package batcher

import (
	"context"
	"errors"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

// Options bound a Batcher.
type Options struct {
	Size     int
	Interval time.Duration
	// RPS caps flushes per second; zero leaves flushes unlimited.
	RPS int
	// Capacity is the queue length; zero means twice Size.
	Capacity int
}

// Batcher queues items and flushes them from one background goroutine.
type Batcher[T any] struct {
	flush   func(context.Context, []T) error
	items   chan T
	opts    Options
	rl      ratelimit.Limiter
	logger  *zap.Logger
	dropped atomic.Uint64

	wg       sync.WaitGroup
	stop     chan struct{}
	stopOnce sync.Once
}

// New constructs a Batcher. The callback receives a slice it may keep.
func New[T any](logger *zap.Logger, flush func(context.Context, []T) error, opts Options) (*Batcher[T], error) {
	if flush == nil {
		return nil, errors.New("flush callback is required")
	}
	if opts.Size <= 0 || opts.Interval <= 0 {
		return nil, errors.New("batch size and interval must be positive")
	}
	if opts.Capacity <= 0 {
		opts.Capacity = opts.Size * 2
	}
	rl := ratelimit.NewUnlimited()
	if opts.RPS > 0 {
		rl = ratelimit.New(opts.RPS)
	}
	return &Batcher[T]{
		flush:  flush,
		items:  make(chan T, opts.Capacity),
		opts:   opts,
		rl:     rl,
		logger: logger,
		stop:   make(chan struct{}),
	}, nil
}

// Start begins the background flushing loop.
func (b *Batcher[T]) Start(ctx context.Context) {
	b.wg.Add(1)
	go b.run(ctx)
}

// Stop flushes what is queued and waits for the loop to exit.
func (b *Batcher[T]) Stop() {
	b.stopOnce.Do(func() { close(b.stop) })
	b.wg.Wait()
}

// TryAdd queues item without waiting. A full queue or a stopped batcher
// drops the item and counts it.
func (b *Batcher[T]) TryAdd(item T) bool {
	select {
	case <-b.stop:
		b.dropped.Add(1)
		return false
	default:
	}

	select {
	case b.items <- item:
		return true
	default:
		b.dropped.Add(1)
		return false
	}
}

// Dropped returns how many items TryAdd refused.
func (b *Batcher[T]) Dropped() uint64 {
	return b.dropped.Load()
}

func (b *Batcher[T]) run(ctx context.Context) {
	defer b.wg.Done()

	ticker := time.NewTicker(b.opts.Interval)
	defer ticker.Stop()

	buf := make([]T, 0, b.opts.Size)
	flush := func(ctx context.Context) {
		if len(buf) == 0 {
			return
		}
		b.rl.Take()
		if err := b.flush(ctx, slices.Clone(buf)); err != nil {
			b.logger.Error("batch not flushed", zap.Int("size", len(buf)), zap.Error(err))
		} else {
			b.logger.Debug("batch flushed", zap.Int("size", len(buf)))
		}
		buf = buf[:0]
	}
	drain := func() {
		for {
			select {
			case item := <-b.items:
				buf = append(buf, item)
				if len(buf) >= b.opts.Size {
					flush(context.WithoutCancel(ctx))
				}
			default:
				flush(context.WithoutCancel(ctx))
				return
			}
		}
	}

	for {
		select {
		case <-ctx.Done():
			drain()
			return

		case <-b.stop:
			drain()
			return

		case item := <-b.items:
			buf = append(buf, item)
			if len(buf) >= b.opts.Size {
				flush(ctx)
			}

		case <-ticker.C:
			flush(ctx)
		}
	}
}
