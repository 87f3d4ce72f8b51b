package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/vanish/constants"
)

// Palette
var (
	colorBackground = tcell.NewHexColor(0x2C3E50)
	colorPanel      = tcell.NewHexColor(0x34495E)
	colorButton     = tcell.NewHexColor(0xE74C3C)

	styleBase   = tcell.StyleDefault.Background(colorBackground).Foreground(tcell.ColorWhite)
	stylePanel  = tcell.StyleDefault.Background(colorPanel).Foreground(tcell.ColorWhite)
	styleButton = tcell.StyleDefault.Background(colorButton).Foreground(tcell.ColorWhite).Bold(true)
	styleLabel  = styleBase.Bold(true)
	styleDim    = styleBase.Foreground(tcell.ColorSilver)
)

type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// layout holds the regions computed for the current screen size
type layout struct {
	passage   rect
	elapsed   rect
	highScore rect
	button    rect
	prompt    rect
	entry     rect
	status    rect
}

func computeLayout(width, height int) layout {
	inner := width - 2*constants.PadX
	y := constants.PadY

	var l layout
	l.passage = rect{constants.PadX, y, inner, constants.PassageLines}
	y += constants.PassageLines + 1

	half := inner / 2
	l.elapsed = rect{constants.PadX, y, half, 1}
	l.highScore = rect{constants.PadX + half, y, inner - half, 1}
	y += 2

	l.button = rect{constants.PadX, y, runewidth.StringWidth(constants.ResetButtonText), 1}
	y += 2

	l.prompt = rect{constants.PadX, y, inner, 1}
	y++

	statusY := height - 1
	l.entry = rect{constants.PadX, y, inner, statusY - y - 1}
	l.status = rect{constants.PadX, statusY, inner, 1}
	return l
}

func (a *App) render() {
	a.screen.SetStyle(styleBase)
	a.screen.Clear()

	width, height := a.screen.Size()
	if width < constants.MinWidth || height < constants.MinHeight {
		a.layout = layout{}
		a.screen.HideCursor()
		drawText(a.screen, 0, 0, width, styleBase, "Terminal too small")
		a.screen.Show()
		return
	}

	a.layout = computeLayout(width, height)
	l := a.layout

	// Passage panel, padded by one cell inside the box
	fill(a.screen, l.passage, stylePanel)
	row := l.passage.y
	for _, line := range passageLines(a.passage) {
		for _, wrapped := range Wrap(line, l.passage.w-2) {
			if row >= l.passage.y+l.passage.h {
				break
			}
			drawText(a.screen, l.passage.x+1, row, l.passage.w-2, stylePanel, wrapped)
			row++
		}
	}

	drawText(a.screen, l.elapsed.x, l.elapsed.y, l.elapsed.w, styleLabel, constants.TimeLabelPrefix+a.elapsed)
	drawText(a.screen, l.highScore.x, l.highScore.y, l.highScore.w, styleLabel, constants.HighScoreLabelPrefix+a.highScore)

	drawText(a.screen, l.button.x, l.button.y, l.button.w, styleButton, constants.ResetButtonText)
	drawText(a.screen, l.prompt.x, l.prompt.y, l.prompt.w, styleBase, constants.EntryPrompt)

	a.renderEntry(l.entry)

	status := constants.HelpLine
	if a.lastRun != "" {
		status += "  |  " + a.lastRun
	}
	drawText(a.screen, l.status.x, l.status.y, l.status.w, styleDim, status)

	a.screen.Show()
}

// renderEntry draws the tail of the wrapped entry and places the cursor after the last rune
func (a *App) renderEntry(r rect) {
	fill(a.screen, r, stylePanel)
	if r.h <= 0 || r.w <= 2 {
		a.screen.HideCursor()
		return
	}

	textW := r.w - 2
	lines := Wrap(a.entry.Text(), textW)
	cursorLine := len(lines) - 1
	cursorCol := runewidth.StringWidth(lines[cursorLine])
	if cursorCol >= textW {
		lines = append(lines, "")
		cursorLine++
		cursorCol = 0
	}

	first := 0
	if len(lines) > r.h {
		first = len(lines) - r.h
	}
	for i, line := range lines[first:] {
		drawText(a.screen, r.x+1, r.y+i, textW, stylePanel, line)
	}

	a.screen.ShowCursor(r.x+1+cursorCol, r.y+cursorLine-first)
}

func fill(s tcell.Screen, r rect, style tcell.Style) {
	for y := r.y; y < r.y+r.h; y++ {
		for x := r.x; x < r.x+r.w; x++ {
			s.SetContent(x, y, ' ', nil, style)
		}
	}
}

// drawText writes text from (x, y), clipped to maxW cells
func drawText(s tcell.Screen, x, y, maxW int, style tcell.Style, text string) {
	col := 0
	for _, r := range strings.ReplaceAll(text, "\t", " ") {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col+w > maxW {
			return
		}
		s.SetContent(x+col, y, r, nil, style)
		col += w
	}
}
