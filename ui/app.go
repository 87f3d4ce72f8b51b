// Package ui is the terminal front end: a passage panel, elapsed and high
// score labels, a reset button and a typing area, all driven from one event
// loop goroutine.
package ui

import (
	"context"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vanish/constants"
	"github.com/lixenwraith/vanish/history"
	"github.com/lixenwraith/vanish/log"
	"github.com/lixenwraith/vanish/loop"
	"github.com/lixenwraith/vanish/timer"
)

// Sounder plays the audio cues
type Sounder interface {
	PlayVanish()
	PlayRecord()
}

// Journal records finished runs
type Journal interface {
	Record(r timer.RunResult) (history.Run, error)
}

// Options wires collaborators into the App, nil fields take defaults
type Options struct {
	Clock     timer.Clock
	Scheduler timer.Scheduler // Defaults to the App's own loop
	Timer     timer.Options
	Sounds    Sounder
	Journal   Journal
}

// App owns the screen and every piece of UI state
type App struct {
	screen tcell.Screen
	loop   *loop.Loop
	timer  *timer.InactivityTimer

	sounds  Sounder
	journal Journal

	passage   timer.Passage
	elapsed   string
	highScore string
	entry     Entry
	lastRun   string

	layout    layout
	mouseDown bool
}

// New builds the App on an initialized screen
func New(screen tcell.Screen, opts Options) *App {
	a := &App{
		screen:  screen,
		loop:    loop.New(0),
		sounds:  opts.Sounds,
		journal: opts.Journal,
	}

	clock := opts.Clock
	if clock == nil {
		clock = timer.SystemClock{}
	}
	sched := opts.Scheduler
	if sched == nil {
		sched = loop.Scheduler{Loop: a.loop}
	}

	timerOpts := opts.Timer
	userListener := timerOpts.OnRunEnd
	timerOpts.OnRunEnd = func(r timer.RunResult) {
		a.onRunEnd(r)
		if userListener != nil {
			userListener(r)
		}
	}

	a.timer = timer.New(clock, sched, a, timerOpts)

	screen.SetTitle(constants.AppTitle)
	screen.EnableMouse()
	return a
}

// Timer exposes the state machine, mainly for tests
func (a *App) Timer() *timer.InactivityTimer {
	return a.timer
}

// Run processes input and timer callbacks until quit or ctx is done
func (a *App) Run(ctx context.Context) error {
	defer a.loop.Close()

	events := make(chan tcell.Event, 100)
	Go(a.screen, func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return // Screen finalized
			}
			select {
			case events <- ev:
			case <-a.loop.Done():
				return
			}
		}
	})

	a.render()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !a.HandleEvent(ev) {
				return nil
			}
		case fn := <-a.loop.Tasks():
			fn()
		}
		a.render()
	}
}

// HandleEvent applies one screen event, returns false when the user quits
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventMouse:
		a.handleMouse(ev)
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	// Some terminals report Ctrl+letter as a modified rune
	if ev.Key() == tcell.KeyRune && ev.Modifiers()&tcell.ModCtrl != 0 {
		switch unicode.ToLower(ev.Rune()) {
		case 'c':
			return false
		case 'r':
			a.reset()
			return true
		}
	}

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyCtrlR:
		a.reset()
		return true
	case tcell.KeyRune:
		a.entry.Insert(ev.Rune())
	case tcell.KeyEnter:
		a.entry.Insert('\n')
	case tcell.KeyTab:
		a.entry.Insert(' ')
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		a.entry.Backspace()
	case tcell.KeyCtrlW:
		a.entry.DeleteWord()
	}

	// Any key reaching the entry counts as activity, even navigation keys
	a.timer.OnKeystroke()
	return true
}

func (a *App) handleMouse(ev *tcell.EventMouse) {
	pressed := ev.Buttons()&tcell.Button1 != 0
	if pressed && !a.mouseDown {
		x, y := ev.Position()
		if a.layout.button.contains(x, y) {
			a.reset()
		}
	}
	a.mouseDown = pressed
}

func (a *App) reset() {
	log.Debug("reset requested", "state", a.timer.Current().String())
	a.timer.Reset()
}

func (a *App) onRunEnd(r timer.RunResult) {
	a.lastRun = "Last run: " + timer.FormatElapsed(r.Seconds) + " (" + r.Reason.String() + ")"
	log.Info("run ended",
		"reason", r.Reason.String(),
		"seconds", r.Seconds,
		"duration_ms", r.Duration.Milliseconds(),
		"new_record", r.NewRecord,
	)

	if a.sounds != nil {
		if r.Reason == timer.EndTimeout {
			a.sounds.PlayVanish()
		}
		if r.NewRecord {
			a.sounds.PlayRecord()
		}
	}

	if a.journal != nil {
		if _, err := a.journal.Record(r); err != nil {
			log.Warn("recording run failed", "error", err)
		}
	}
}

// ShowPassage implements timer.Display
func (a *App) ShowPassage(p timer.Passage) {
	a.passage = p
}

// SetElapsed implements timer.Display
func (a *App) SetElapsed(text string) {
	a.elapsed = text
}

// SetHighScore implements timer.Display
func (a *App) SetHighScore(text string) {
	a.highScore = text
}

// ClearEntry implements timer.Display
func (a *App) ClearEntry() {
	a.entry.Clear()
}

// EntryText returns the typed text
func (a *App) EntryText() string {
	return a.entry.Text()
}

func passageLines(p timer.Passage) []string {
	if p == timer.PassageTest {
		return []string{constants.TestPassage}
	}
	return constants.InstructionalText
}
