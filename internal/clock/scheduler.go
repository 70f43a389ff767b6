// Package clock provides the schedulers that drive validator callbacks and
// helpers for time-related operations.
package clock

import "time"

// Handle identifies a scheduled callback. The zero Handle is never issued.
type Handle uint64

// Scheduler runs callbacks on a single logical event queue.
type Scheduler interface {
	Now() time.Time
	// ScheduleAfter runs fn once after d. Callbacks due at the same instant
	// run in the order they were scheduled.
	ScheduleAfter(d time.Duration, fn func()) Handle
	// Cancel drops a pending callback. It reports false if the callback
	// already ran or was canceled before.
	Cancel(h Handle) bool
}
