// Package editor implements the command input line: a cursor-addressable
// edit buffer plus the submitted-command history.
package editor

import "strings"

// notBrowsing marks the history cursor as inactive (fresh input).
const notBrowsing = -1

// Editor holds the current input line and the session's command history.
// History is append-only and never deduplicated; browsing it only moves
// the cursor and the displayed text, never the log itself.
type Editor struct {
	text   []rune
	cursor int // rune index in [0, len(text)]

	history []string
	browse  int
}

// New returns an empty editor with no history.
func New() *Editor {
	return &Editor{browse: notBrowsing}
}

// Text returns the current input line.
func (e *Editor) Text() string {
	return string(e.text)
}

// Cursor returns the rune index of the cursor within Text.
func (e *Editor) Cursor() int {
	return e.cursor
}

// HistoryLen returns the number of submitted commands.
func (e *Editor) HistoryLen() int {
	return len(e.history)
}

// Browsing reports whether a history entry is currently recalled.
func (e *Editor) Browsing() bool {
	return e.browse != notBrowsing
}

// Insert places r at the cursor and advances past it.
func (e *Editor) Insert(r rune) {
	e.text = append(e.text[:e.cursor], append([]rune{r}, e.text[e.cursor:]...)...)
	e.cursor++
}

// Backspace removes the rune before the cursor; no-op at position zero.
func (e *Editor) Backspace() {
	if e.cursor == 0 {
		return
	}
	e.text = append(e.text[:e.cursor-1], e.text[e.cursor:]...)
	e.cursor--
}

// Left moves the cursor one rune left, clamped at zero.
func (e *Editor) Left() {
	if e.cursor > 0 {
		e.cursor--
	}
}

// Right moves the cursor one rune right, clamped at end-of-text.
func (e *Editor) Right() {
	if e.cursor < len(e.text) {
		e.cursor++
	}
}

// Submit returns the current line and true when it is non-blank, pushing
// it onto history and clearing the input. Blank submissions are ignored:
// no history entry, no state change, ok is false.
func (e *Editor) Submit() (cmd string, ok bool) {
	cmd = string(e.text)
	if strings.TrimSpace(cmd) == "" {
		return "", false
	}
	e.history = append(e.history, cmd)
	e.text = nil
	e.cursor = 0
	e.browse = notBrowsing
	return cmd, true
}

// HistoryUp recalls the previous command: the most recent entry when not
// yet browsing, otherwise one step older, clamped at the oldest.
func (e *Editor) HistoryUp() {
	if len(e.history) == 0 {
		return
	}
	switch {
	case e.browse == notBrowsing:
		e.browse = len(e.history) - 1
	case e.browse > 0:
		e.browse--
	}
	e.recall()
}

// HistoryDown walks toward newer entries; past the newest it exits
// browsing and restores a fresh empty line.
func (e *Editor) HistoryDown() {
	if e.browse == notBrowsing {
		return
	}
	if e.browse+1 < len(e.history) {
		e.browse++
		e.recall()
		return
	}
	e.browse = notBrowsing
	e.text = nil
	e.cursor = 0
}

func (e *Editor) recall() {
	e.text = []rune(e.history[e.browse])
	e.cursor = len(e.text)
}
