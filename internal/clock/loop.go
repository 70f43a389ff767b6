package clock

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrLoopStopped is returned when work is handed to a loop that has exited.
var ErrLoopStopped = errors.New("event loop stopped")

// Loop is a wall-clock Scheduler. Every callback, timer or posted task, runs
// on the goroutine that called Run, so components driven by a Loop keep the
// single-threaded model. Same-instant ordering is best effort.
type Loop struct {
	logger *zap.Logger
	tasks  chan func()
	done   chan struct{}

	mu     sync.Mutex
	next   Handle
	timers map[Handle]*time.Timer
}

// NewLoop builds a loop with a task queue of the given capacity.
func NewLoop(logger *zap.Logger, capacity int) *Loop {
	if capacity <= 0 {
		capacity = 1024
	}
	return &Loop{
		logger: logger,
		tasks:  make(chan func(), capacity),
		done:   make(chan struct{}),
		timers: make(map[Handle]*time.Timer),
	}
}

func (l *Loop) Now() time.Time {
	return time.Now()
}

func (l *Loop) ScheduleAfter(d time.Duration, fn func()) Handle {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.next++
	h := l.next
	l.timers[h] = time.AfterFunc(d, func() {
		_ = l.Post(func() {
			l.mu.Lock()
			_, live := l.timers[h]
			delete(l.timers, h)
			l.mu.Unlock()
			if live {
				fn()
			}
		})
	})
	return h
}

func (l *Loop) Cancel(h Handle) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	t, ok := l.timers[h]
	if !ok {
		return false
	}
	t.Stop()
	delete(l.timers, h)
	return true
}

// Post queues fn to run on the loop goroutine. It must not be called from
// the loop goroutine while the queue is full.
func (l *Loop) Post(fn func()) error {
	select {
	case <-l.done:
		return ErrLoopStopped
	default:
	}
	select {
	case l.tasks <- fn:
		return nil
	case <-l.done:
		return ErrLoopStopped
	}
}

// Do runs fn on the loop goroutine and waits for it to finish.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	if err := l.Post(func() {
		defer close(finished)
		fn()
	}); err != nil {
		return err
	}
	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		return ErrLoopStopped
	}
}

// Run executes queued work until ctx is canceled, then stops pending timers.
func (l *Loop) Run(ctx context.Context) error {
	defer l.shutdown()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.tasks:
			l.execute(fn)
		}
	}
}

func (l *Loop) execute(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("event loop task panicked", zap.Any("panic", r))
		}
	}()
	fn()
}

func (l *Loop) shutdown() {
	close(l.done)
	l.mu.Lock()
	defer l.mu.Unlock()
	for h, t := range l.timers {
		t.Stop()
		delete(l.timers, h)
	}
}
