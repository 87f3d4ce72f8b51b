package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Entry is an append-only text buffer with backspace, edited at its end
type Entry struct {
	text []rune
}

// Insert appends r
func (e *Entry) Insert(r rune) {
	e.text = append(e.text, r)
}

// Backspace removes the last rune, reports whether anything was removed
func (e *Entry) Backspace() bool {
	if len(e.text) == 0 {
		return false
	}
	e.text = e.text[:len(e.text)-1]
	return true
}

// DeleteWord removes trailing spaces and the word before them
func (e *Entry) DeleteWord() {
	i := len(e.text)
	for i > 0 && e.text[i-1] == ' ' {
		i--
	}
	for i > 0 && e.text[i-1] != ' ' && e.text[i-1] != '\n' {
		i--
	}
	e.text = e.text[:i]
}

// Clear empties the buffer
func (e *Entry) Clear() {
	e.text = e.text[:0]
}

// Text returns the buffer contents
func (e *Entry) Text() string {
	return string(e.text)
}

// Wrap breaks text into lines no wider than width cells.
// Hard newlines always break; soft breaks prefer the last space on the line.
func Wrap(text string, width int) []string {
	if width <= 0 {
		return nil
	}

	var lines []string
	for _, para := range strings.Split(text, "\n") {
		lines = append(lines, wrapParagraph([]rune(para), width)...)
	}
	return lines
}

func wrapParagraph(para []rune, width int) []string {
	if len(para) == 0 {
		return []string{""}
	}

	var lines []string
	for len(para) > 0 {
		cells := 0
		cut := len(para)
		lastSpace := -1
		for i, r := range para {
			w := runewidth.RuneWidth(r)
			if cells+w > width {
				cut = i
				break
			}
			cells += w
			if r == ' ' {
				lastSpace = i
			}
		}

		if cut == len(para) {
			lines = append(lines, string(para))
			break
		}
		soft := true
		switch {
		case cut == 0:
			// Single rune wider than the line, emit it alone
			cut = 1
			soft = false
		case para[cut] == ' ':
			// Line is exactly full and a space follows
		case lastSpace > 0:
			cut = lastSpace + 1
		default:
			soft = false
		}

		lines = append(lines, strings.TrimRight(string(para[:cut]), " "))
		para = para[cut:]
		if soft {
			for len(para) > 0 && para[0] == ' ' {
				para = para[1:]
			}
		}
	}
	return lines
}
