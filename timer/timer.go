// Package timer implements the inactivity timer behind the disappearing text app.
//
// A run starts on the first keystroke and is polled on a fixed tick. When the
// gap since the last keystroke exceeds the threshold the run ends: the entry is
// wiped and the high score absorbs the run's elapsed seconds. All methods must
// be called from the single goroutine that owns the host's event loop.
package timer

import (
	"time"

	"github.com/lixenwraith/vanish/constants"
)

// State is the run state of an InactivityTimer
type State int

const (
	Idle State = iota
	Running
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	default:
		return "unknown"
	}
}

// Passage selects which text the host shows above the entry
type Passage int

const (
	PassageInstructional Passage = iota // Multi-line help, shown before typing and after reset
	PassageTest                         // "Good luck" line, shown while typing and after timeout
)

// Display receives every visible effect of a transition
type Display interface {
	ShowPassage(p Passage)
	SetElapsed(text string)
	SetHighScore(text string)
	ClearEntry()
}

// EndReason records why a run ended
type EndReason int

const (
	EndTimeout EndReason = iota
	EndReset
)

func (r EndReason) String() string {
	if r == EndReset {
		return "reset"
	}
	return "timeout"
}

// RunResult describes a finished run
type RunResult struct {
	Start     time.Time
	End       time.Time
	Duration  time.Duration
	Seconds   int // Truncated duration
	Reason    EndReason
	NewRecord bool // Seconds exceeded the previous high score
}

// RunListener is notified after a run has ended and the timer is idle again
type RunListener func(RunResult)

// TimerState is the mutable run bookkeeping, zeroed whenever the timer is idle
type TimerState struct {
	Running          bool
	StartTime        time.Time
	LastKeypressTime time.Time
}

// Options tunes an InactivityTimer, zero values take the package defaults
type Options struct {
	TickInterval time.Duration
	Threshold    time.Duration
	OnRunEnd     RunListener
}

// InactivityTimer is the idle/running state machine
type InactivityTimer struct {
	clock   Clock
	sched   Scheduler
	display Display

	tickInterval time.Duration
	threshold    time.Duration
	onRunEnd     RunListener

	state     TimerState
	highScore int

	// generation advances on every timeout and reset; ticks captured under an
	// older generation are ignored even if their cancellation lost a race
	generation uint64
	pending    Cancel
}

// New creates an idle timer and paints its initial state onto display
func New(clock Clock, sched Scheduler, display Display, opts Options) *InactivityTimer {
	if opts.TickInterval <= 0 {
		opts.TickInterval = constants.TickInterval
	}
	if opts.Threshold <= 0 {
		opts.Threshold = constants.InactivityTimeout
	}

	t := &InactivityTimer{
		clock:        clock,
		sched:        sched,
		display:      display,
		tickInterval: opts.TickInterval,
		threshold:    opts.Threshold,
		onRunEnd:     opts.OnRunEnd,
	}

	display.ShowPassage(PassageInstructional)
	display.SetElapsed(FormatElapsed(0))
	display.SetHighScore(FormatElapsed(0))
	return t
}

// OnKeystroke starts a run from idle, or refreshes the last keypress time
func (t *InactivityTimer) OnKeystroke() {
	now := t.clock.Now()

	if t.state.Running {
		t.state.LastKeypressTime = now
		return
	}

	t.state = TimerState{
		Running:          true,
		StartTime:        now,
		LastKeypressTime: now,
	}
	t.display.ShowPassage(PassageTest)

	// First tick is immediate so the label resets to 00:00 and polling begins
	t.OnTick(now)
}

// OnTick updates the elapsed label and either times out or schedules the next tick.
// Ignored while idle.
func (t *InactivityTimer) OnTick(now time.Time) {
	if !t.state.Running {
		return
	}

	elapsed := now.Sub(t.state.StartTime)
	t.display.SetElapsed(FormatElapsed(WholeSeconds(elapsed)))

	if now.Sub(t.state.LastKeypressTime) > t.threshold {
		t.timeout(now)
		return
	}

	t.scheduleTick()
}

// Reset ends any active run and restores the instructional text.
// The high score only absorbs the run when one was active.
func (t *InactivityTimer) Reset() {
	now := t.clock.Now()
	run := t.state
	t.cancelTick()

	t.display.SetElapsed(FormatElapsed(0))
	t.display.ClearEntry()
	t.display.ShowPassage(PassageInstructional)

	if !run.Running {
		t.display.SetHighScore(FormatElapsed(t.highScore))
		t.generation++
		return
	}

	seconds := WholeSeconds(now.Sub(run.StartTime))
	record := t.raiseHighScore(seconds)
	t.display.SetHighScore(FormatElapsed(t.highScore))
	t.endRun(run, now, seconds, EndReset, record)
}

// State returns a copy of the run bookkeeping
func (t *InactivityTimer) State() TimerState {
	return t.state
}

// Current returns Idle or Running
func (t *InactivityTimer) Current() State {
	if t.state.Running {
		return Running
	}
	return Idle
}

// HighScore returns the longest run in whole seconds since process start
func (t *InactivityTimer) HighScore() int {
	return t.highScore
}

// Generation returns the current tick generation
func (t *InactivityTimer) Generation() uint64 {
	return t.generation
}

func (t *InactivityTimer) timeout(now time.Time) {
	run := t.state
	t.cancelTick()

	seconds := WholeSeconds(now.Sub(run.StartTime))
	t.display.ClearEntry()
	t.display.ShowPassage(PassageTest)
	record := t.raiseHighScore(seconds)
	t.display.SetHighScore(FormatElapsed(t.highScore))
	t.endRun(run, now, seconds, EndTimeout, record)
}

func (t *InactivityTimer) endRun(run TimerState, now time.Time, seconds int, reason EndReason, record bool) {
	t.state = TimerState{}
	t.generation++

	if t.onRunEnd == nil {
		return
	}
	t.onRunEnd(RunResult{
		Start:     run.StartTime,
		End:       now,
		Duration:  now.Sub(run.StartTime),
		Seconds:   seconds,
		Reason:    reason,
		NewRecord: record,
	})
}

func (t *InactivityTimer) raiseHighScore(seconds int) bool {
	if seconds > t.highScore {
		t.highScore = seconds
		return true
	}
	return false
}

func (t *InactivityTimer) scheduleTick() {
	t.cancelTick()

	gen := t.generation
	t.pending = t.sched.AfterFunc(t.tickInterval, func() {
		if gen != t.generation || !t.state.Running {
			return
		}
		t.pending = nil
		t.OnTick(t.clock.Now())
	})
}

func (t *InactivityTimer) cancelTick() {
	if t.pending != nil {
		t.pending.Stop()
		t.pending = nil
	}
}
