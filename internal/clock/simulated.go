package clock

import (
	"container/heap"
	"time"
)

// Simulated is a deterministic virtual-time scheduler. Time only moves when
// callbacks are stepped. It is not safe for concurrent use.
type Simulated struct {
	now   time.Time
	seq   uint64
	queue eventQueue
	live  map[Handle]*event
}

type event struct {
	at     time.Time
	seq    uint64
	handle Handle
	fn     func()
	index  int
}

// NewSimulated returns a scheduler whose clock starts at start.
func NewSimulated(start time.Time) *Simulated {
	return &Simulated{
		now:  start,
		live: make(map[Handle]*event),
	}
}

func (s *Simulated) Now() time.Time {
	return s.now
}

func (s *Simulated) ScheduleAfter(d time.Duration, fn func()) Handle {
	if d < 0 {
		d = 0
	}
	s.seq++
	e := &event{
		at:     s.now.Add(d),
		seq:    s.seq,
		handle: Handle(s.seq),
		fn:     fn,
	}
	heap.Push(&s.queue, e)
	s.live[e.handle] = e
	return e.handle
}

func (s *Simulated) Cancel(h Handle) bool {
	e, ok := s.live[h]
	if !ok {
		return false
	}
	heap.Remove(&s.queue, e.index)
	delete(s.live, h)
	return true
}

// Pending returns the number of scheduled callbacks.
func (s *Simulated) Pending() int {
	return len(s.queue)
}

// Step runs the earliest callback, advancing the clock to its time.
func (s *Simulated) Step() bool {
	if len(s.queue) == 0 {
		return false
	}
	e := heap.Pop(&s.queue).(*event)
	delete(s.live, e.handle)
	if e.at.After(s.now) {
		s.now = e.at
	}
	e.fn()
	return true
}

// RunUntil runs every callback due at or before t and leaves the clock at t.
// It returns the number of callbacks run.
func (s *Simulated) RunUntil(t time.Time) int {
	n := 0
	for len(s.queue) > 0 && !s.queue[0].at.After(t) {
		s.Step()
		n++
	}
	if t.After(s.now) {
		s.now = t
	}
	return n
}

// RunFor advances the clock by d, running everything that falls due.
func (s *Simulated) RunFor(d time.Duration) int {
	return s.RunUntil(s.now.Add(d))
}

// Run steps until the queue drains or limit callbacks have run.
// A non-positive limit means no limit.
func (s *Simulated) Run(limit int) int {
	n := 0
	for (limit <= 0 || n < limit) && s.Step() {
		n++
	}
	return n
}

type eventQueue []*event

func (q eventQueue) Len() int { return len(q) }

func (q eventQueue) Less(i, j int) bool {
	if q[i].at.Equal(q[j].at) {
		return q[i].seq < q[j].seq
	}
	return q[i].at.Before(q[j].at)
}

func (q eventQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *eventQueue) Push(x any) {
	e := x.(*event)
	e.index = len(*q)
	*q = append(*q, e)
}

func (q *eventQueue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*q = old[:n-1]
	return e
}
