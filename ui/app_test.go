package ui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vanish/constants"
	"github.com/lixenwraith/vanish/history"
	"github.com/lixenwraith/vanish/timer"
)

type fakeSounds struct {
	vanish, record int
}

func (f *fakeSounds) PlayVanish() { f.vanish++ }
func (f *fakeSounds) PlayRecord() { f.record++ }

type fakeJournal struct {
	runs []timer.RunResult
	err  error
}

func (f *fakeJournal) Record(r timer.RunResult) (history.Run, error) {
	if f.err != nil {
		return history.Run{}, f.err
	}
	f.runs = append(f.runs, r)
	return history.Run{Seconds: r.Seconds}, nil
}

type harness struct {
	app     *App
	screen  tcell.SimulationScreen
	clock   *timer.ManualClock
	sched   *timer.ManualScheduler
	sounds  *fakeSounds
	journal *fakeJournal
}

func newHarness(t *testing.T, w, h int) *harness {
	t.Helper()

	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(w, h)
	t.Cleanup(s.Fini)

	hs := &harness{
		screen:  s,
		clock:   timer.NewManualClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
		sounds:  &fakeSounds{},
		journal: &fakeJournal{},
	}
	hs.sched = timer.NewManualScheduler(hs.clock)
	hs.app = New(s, Options{
		Clock:     hs.clock,
		Scheduler: hs.sched,
		Sounds:    hs.sounds,
		Journal:   hs.journal,
	})
	hs.app.render()
	return hs
}

func (hs *harness) typeString(text string) {
	for _, r := range text {
		hs.app.HandleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
	hs.app.render()
}

func (hs *harness) advance(d time.Duration) {
	hs.sched.Advance(d)
	hs.app.render()
}

// screenText returns the simulated screen as lines of runes
func (hs *harness) screenText() string {
	cells, w, h := hs.screen.GetContents()
	var b strings.Builder
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := cells[y*w+x]
			if len(c.Runes) > 0 {
				b.WriteRune(c.Runes[0])
			} else {
				b.WriteRune(' ')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func TestInitialScreen(t *testing.T) {
	hs := newHarness(t, 100, 30)
	text := hs.screenText()

	assert.Contains(t, text, constants.InstructionalText[0])
	assert.Contains(t, text, constants.InstructionalText[2])
	assert.Contains(t, text, "Time: 00:00")
	assert.Contains(t, text, "High Score: 00:00")
	assert.Contains(t, text, constants.ResetButtonText)
	assert.Contains(t, text, constants.EntryPrompt)
	assert.NotContains(t, text, constants.TestPassage)
}

func TestTypingShowsTestPassage(t *testing.T) {
	hs := newHarness(t, 100, 30)

	hs.typeString("hello")

	assert.Equal(t, "hello", hs.app.EntryText())
	assert.Equal(t, timer.Running, hs.app.Timer().Current())
	text := hs.screenText()
	assert.Contains(t, text, constants.TestPassage)
	assert.Contains(t, text, "hello")
	assert.NotContains(t, text, constants.InstructionalText[0])
}

func TestEditingKeys(t *testing.T) {
	hs := newHarness(t, 100, 30)
	hs.typeString("ab")

	hs.app.HandleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	hs.typeString("cd")
	hs.app.HandleEvent(tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone))

	assert.Equal(t, "ab\nc", hs.app.EntryText())
}

func TestPauseWipesEntry(t *testing.T) {
	hs := newHarness(t, 100, 30)

	hs.typeString("a")
	hs.advance(500 * time.Millisecond)
	hs.typeString("b")
	hs.advance(1100 * time.Millisecond)

	assert.Equal(t, timer.Idle, hs.app.Timer().Current())
	assert.Empty(t, hs.app.EntryText())
	assert.Equal(t, 1, hs.app.Timer().HighScore())

	text := hs.screenText()
	assert.Contains(t, text, constants.TestPassage, "timeout keeps the test passage")
	assert.Contains(t, text, "High Score: 00:01")
	assert.Contains(t, text, "Last run: 00:01 (timeout)")

	assert.Equal(t, 1, hs.sounds.vanish)
	assert.Equal(t, 1, hs.sounds.record)
	require.Len(t, hs.journal.runs, 1)
	assert.Equal(t, timer.EndTimeout, hs.journal.runs[0].Reason)
}

func TestCtrlRResets(t *testing.T) {
	hs := newHarness(t, 100, 30)
	hs.typeString("abc")
	hs.advance(300 * time.Millisecond)

	hs.app.HandleEvent(tcell.NewEventKey(tcell.KeyCtrlR, 0, tcell.ModCtrl))
	hs.app.render()

	assert.Equal(t, timer.Idle, hs.app.Timer().Current())
	assert.Empty(t, hs.app.EntryText())
	assert.Zero(t, hs.sched.Pending())

	text := hs.screenText()
	assert.Contains(t, text, constants.InstructionalText[0])
	assert.Contains(t, text, "Time: 00:00")
	assert.Zero(t, hs.sounds.vanish, "reset is silent")
	require.Len(t, hs.journal.runs, 1)
	assert.Equal(t, timer.EndReset, hs.journal.runs[0].Reason)
}

func TestResetButtonClick(t *testing.T) {
	hs := newHarness(t, 100, 30)
	hs.typeString("abc")

	b := hs.app.layout.button
	hs.app.HandleEvent(tcell.NewEventMouse(b.x+1, b.y, tcell.Button1, tcell.ModNone))
	hs.app.HandleEvent(tcell.NewEventMouse(b.x+1, b.y, tcell.ButtonNone, tcell.ModNone))

	assert.Equal(t, timer.Idle, hs.app.Timer().Current())
	assert.Empty(t, hs.app.EntryText())
}

func TestHeldButtonResetsOnce(t *testing.T) {
	hs := newHarness(t, 100, 30)
	hs.typeString("abc")

	b := hs.app.layout.button
	hs.app.HandleEvent(tcell.NewEventMouse(b.x, b.y, tcell.Button1, tcell.ModNone))
	hs.typeString("d")
	hs.app.HandleEvent(tcell.NewEventMouse(b.x+2, b.y, tcell.Button1, tcell.ModNone))

	assert.Equal(t, timer.Running, hs.app.Timer().Current(), "drag with button held must not reset again")
	assert.Equal(t, "d", hs.app.EntryText())
}

func TestClickOutsideButtonIgnored(t *testing.T) {
	hs := newHarness(t, 100, 30)
	hs.typeString("abc")

	e := hs.app.layout.entry
	hs.app.HandleEvent(tcell.NewEventMouse(e.x+1, e.y+1, tcell.Button1, tcell.ModNone))

	assert.Equal(t, timer.Running, hs.app.Timer().Current())
	assert.Equal(t, "abc", hs.app.EntryText())
}

func TestEscapeQuits(t *testing.T) {
	hs := newHarness(t, 100, 30)

	assert.False(t, hs.app.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
	assert.True(t, hs.app.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)))
}

func TestJournalFailureIsNotFatal(t *testing.T) {
	hs := newHarness(t, 100, 30)
	hs.journal.err = errors.New("disk full")

	hs.typeString("a")
	hs.advance(2 * time.Second)

	assert.Equal(t, timer.Idle, hs.app.Timer().Current())
	assert.Equal(t, 1, hs.sounds.vanish)
}

func TestLongEntryScrolls(t *testing.T) {
	hs := newHarness(t, 80, 24)

	hs.typeString(strings.Repeat("word ", 200) + "tail")

	assert.Contains(t, hs.screenText(), "tail")
}

func TestTooSmallTerminal(t *testing.T) {
	hs := newHarness(t, 30, 10)

	assert.Contains(t, hs.screenText(), "Terminal too small")

	// Layout is empty, so a click at the origin cannot reset
	hs.typeString("a")
	hs.app.HandleEvent(tcell.NewEventMouse(0, 0, tcell.Button1, tcell.ModNone))
	assert.Equal(t, timer.Running, hs.app.Timer().Current())
}

func TestRunStopsOnContextCancel(t *testing.T) {
	hs := newHarness(t, 100, 30)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- hs.app.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRunProcessesInjectedKeys(t *testing.T) {
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(100, 30)
	defer s.Fini()

	app := New(s, Options{Timer: timer.Options{Threshold: time.Hour}})

	done := make(chan error, 1)
	go func() { done <- app.Run(context.Background()) }()

	s.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	s.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Escape")
	}
	assert.Equal(t, "q", app.EntryText())
}

func TestCtrlModifiedRuneResets(t *testing.T) {
	hs := newHarness(t, 100, 30)
	hs.typeString("abc")

	hs.app.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModCtrl))

	assert.Equal(t, timer.Idle, hs.app.Timer().Current())
	assert.Empty(t, hs.app.EntryText())
	assert.False(t, hs.app.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'c', tcell.ModCtrl)))
}

func TestRunTimesOutOnRealLoop(t *testing.T) {
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(100, 30)
	defer s.Fini()

	ended := make(chan timer.RunResult, 1)
	app := New(s, Options{Timer: timer.Options{
		TickInterval: 20 * time.Millisecond,
		OnRunEnd:     func(r timer.RunResult) { ended <- r },
	}})

	done := make(chan error, 1)
	go func() { done <- app.Run(context.Background()) }()

	s.InjectKey(tcell.KeyRune, 'a', tcell.ModNone)

	select {
	case r := <-ended:
		assert.Equal(t, timer.EndTimeout, r.Reason)
		assert.Equal(t, 1, r.Seconds)
		assert.Greater(t, r.Duration, time.Second)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not time out")
	}

	s.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Escape")
	}

	assert.Equal(t, timer.Idle, app.Timer().Current())
	assert.Empty(t, app.EntryText())
	assert.Equal(t, 1, app.Timer().HighScore())
}
