// Package loop serializes timer callbacks onto the goroutine that owns the UI.
//
// Deadlines are tracked by the runtime on background goroutines, but the
// callbacks themselves are only ever posted to Tasks and executed by whoever
// drains it. With a single drainer every callback runs to completion before
// the next input event is processed.
package loop

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/vanish/timer"
)

// DefaultBuffer is the task channel capacity used by New when size <= 0
const DefaultBuffer = 64

// Loop is a queue of callbacks for a single-goroutine event loop
type Loop struct {
	tasks     chan func()
	done      chan struct{}
	closeOnce sync.Once
}

// New creates a loop with the given task buffer size
func New(size int) *Loop {
	if size <= 0 {
		size = DefaultBuffer
	}
	return &Loop{
		tasks: make(chan func(), size),
		done:  make(chan struct{}),
	}
}

// Tasks is drained by the event loop; each received func must be called there
func (l *Loop) Tasks() <-chan func() {
	return l.tasks
}

// Post enqueues fn, returns false once the loop is closed
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}

	select {
	case l.tasks <- fn:
		return true
	case <-l.done:
		return false
	}
}

// AfterFunc posts fn to the loop after d
func (l *Loop) AfterFunc(d time.Duration, fn func()) *Timer {
	t := &Timer{}
	t.timer = time.AfterFunc(d, func() {
		l.Post(func() {
			if t.stopped.Load() {
				return
			}
			t.ran.Store(true)
			fn()
		})
	})
	return t
}

// Close stops accepting tasks; queued tasks are left for the drainer to discard
func (l *Loop) Close() {
	l.closeOnce.Do(func() {
		close(l.done)
	})
}

// Done is closed by Close
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Timer is a cancellable AfterFunc handle
type Timer struct {
	timer   *time.Timer
	stopped atomic.Bool
	ran     atomic.Bool
}

// Stop cancels the callback. It is effective even if the deadline already
// passed and the callback is queued but not yet run.
func (t *Timer) Stop() bool {
	if t.ran.Load() {
		return false
	}
	if !t.stopped.CompareAndSwap(false, true) {
		return false
	}
	t.timer.Stop()
	return true
}

// Scheduler adapts a Loop to timer.Scheduler
type Scheduler struct {
	Loop *Loop
}

func (s Scheduler) AfterFunc(d time.Duration, fn func()) timer.Cancel {
	return s.Loop.AfterFunc(d, fn)
}
