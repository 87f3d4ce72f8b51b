package timer

import (
	"sort"
	"time"
)

// Cancel is a handle to a scheduled callback
type Cancel interface {
	// Stop prevents the callback from running, reports whether it was still pending
	Stop() bool
}

// Scheduler runs a callback once after a delay on the host's event loop
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Cancel
}

// ManualScheduler is a Scheduler driven by a ManualClock for deterministic tests.
// Callbacks run synchronously inside Advance. Not safe for concurrent use.
type ManualScheduler struct {
	clock   *ManualClock
	seq     uint64
	pending []*manualTask
}

type manualTask struct {
	due     time.Time
	seq     uint64
	fn      func()
	stopped bool
	fired   bool
}

func (t *manualTask) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// NewManualScheduler creates a scheduler bound to the given clock
func NewManualScheduler(clock *ManualClock) *ManualScheduler {
	return &ManualScheduler{clock: clock}
}

// AfterFunc queues fn to run once the clock passes now+d
func (s *ManualScheduler) AfterFunc(d time.Duration, fn func()) Cancel {
	s.seq++
	task := &manualTask{
		due: s.clock.Now().Add(d),
		seq: s.seq,
		fn:  fn,
	}
	s.pending = append(s.pending, task)
	return task
}

// Pending returns the number of callbacks that are neither stopped nor fired
func (s *ManualScheduler) Pending() int {
	n := 0
	for _, t := range s.pending {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d, firing due callbacks in deadline order.
// Callbacks scheduled while advancing fire too if they fall inside the window.
func (s *ManualScheduler) Advance(d time.Duration) {
	target := s.clock.Now().Add(d)
	for {
		task := s.next(target)
		if task == nil {
			break
		}
		if task.due.After(s.clock.Now()) {
			s.clock.Set(task.due)
		}
		task.fired = true
		task.fn()
	}
	s.clock.Set(target)
}

// next pops the earliest live task due at or before target
func (s *ManualScheduler) next(target time.Time) *manualTask {
	live := s.pending[:0]
	for _, t := range s.pending {
		if !t.stopped && !t.fired {
			live = append(live, t)
		}
	}
	s.pending = live

	sort.SliceStable(s.pending, func(i, j int) bool {
		if s.pending[i].due.Equal(s.pending[j].due) {
			return s.pending[i].seq < s.pending[j].seq
		}
		return s.pending[i].due.Before(s.pending[j].due)
	})

	if len(s.pending) == 0 || s.pending[0].due.After(target) {
		return nil
	}
	task := s.pending[0]
	s.pending = s.pending[1:]
	return task
}
