package ui

import (
	"strings"
)

// Editor is the raw-markup pane's editing model: a line/rune buffer with
// a cursor. It has no screen dependency, so edit operations are testable
// headlessly. Every mutation corresponds to a full-document snapshot
// handed to the session.
type Editor struct {
	lines [][]rune
	line  int // cursor line
	col   int // cursor column, in runes
}

// NewEditor creates an editor holding the given document.
func NewEditor(content string) *Editor {
	e := &Editor{}
	e.SetContent(content)
	return e
}

// SetContent replaces the buffer, clamping the cursor into range.
// Used when the document changes underneath the view (undo/redo,
// external edits).
func (e *Editor) SetContent(content string) {
	raw := strings.Split(content, "\n")
	e.lines = make([][]rune, len(raw))
	for i, l := range raw {
		e.lines[i] = []rune(l)
	}
	e.clampCursor()
}

// Content returns the buffer as a single snapshot string.
func (e *Editor) Content() string {
	parts := make([]string, len(e.lines))
	for i, l := range e.lines {
		parts[i] = string(l)
	}
	return strings.Join(parts, "\n")
}

// Lines returns the buffer lines for rendering.
func (e *Editor) Lines() []string {
	parts := make([]string, len(e.lines))
	for i, l := range e.lines {
		parts[i] = string(l)
	}
	return parts
}

// LineCount returns the number of lines.
func (e *Editor) LineCount() int {
	return len(e.lines)
}

// Cursor returns the cursor position as (line, column) in runes.
func (e *Editor) Cursor() (int, int) {
	return e.line, e.col
}

// InsertRune inserts a rune at the cursor and advances it.
func (e *Editor) InsertRune(r rune) {
	line := e.lines[e.line]
	line = append(line[:e.col], append([]rune{r}, line[e.col:]...)...)
	e.lines[e.line] = line
	e.col++
}

// InsertNewline splits the current line at the cursor.
func (e *Editor) InsertNewline() {
	line := e.lines[e.line]
	rest := append([]rune(nil), line[e.col:]...)
	e.lines[e.line] = line[:e.col]

	e.lines = append(e.lines[:e.line+1], append([][]rune{rest}, e.lines[e.line+1:]...)...)
	e.line++
	e.col = 0
}

// Backspace deletes the rune before the cursor, joining lines at a line
// start. A no-op at the very beginning of the document.
func (e *Editor) Backspace() {
	if e.col > 0 {
		line := e.lines[e.line]
		e.lines[e.line] = append(line[:e.col-1], line[e.col:]...)
		e.col--
		return
	}
	if e.line == 0 {
		return
	}

	prev := e.lines[e.line-1]
	e.col = len(prev)
	e.lines[e.line-1] = append(prev, e.lines[e.line]...)
	e.lines = append(e.lines[:e.line], e.lines[e.line+1:]...)
	e.line--
}

// Delete removes the rune under the cursor, joining lines at a line end.
// A no-op at the very end of the document.
func (e *Editor) Delete() {
	line := e.lines[e.line]
	if e.col < len(line) {
		e.lines[e.line] = append(line[:e.col], line[e.col+1:]...)
		return
	}
	if e.line == len(e.lines)-1 {
		return
	}

	e.lines[e.line] = append(line, e.lines[e.line+1]...)
	e.lines = append(e.lines[:e.line+1], e.lines[e.line+2:]...)
}

// CursorLeft moves one rune left, wrapping to the previous line end.
func (e *Editor) CursorLeft() {
	if e.col > 0 {
		e.col--
		return
	}
	if e.line > 0 {
		e.line--
		e.col = len(e.lines[e.line])
	}
}

// CursorRight moves one rune right, wrapping to the next line start.
func (e *Editor) CursorRight() {
	if e.col < len(e.lines[e.line]) {
		e.col++
		return
	}
	if e.line < len(e.lines)-1 {
		e.line++
		e.col = 0
	}
}

// CursorUp moves one line up, clamping the column.
func (e *Editor) CursorUp() {
	if e.line == 0 {
		return
	}
	e.line--
	if e.col > len(e.lines[e.line]) {
		e.col = len(e.lines[e.line])
	}
}

// CursorDown moves one line down, clamping the column.
func (e *Editor) CursorDown() {
	if e.line == len(e.lines)-1 {
		return
	}
	e.line++
	if e.col > len(e.lines[e.line]) {
		e.col = len(e.lines[e.line])
	}
}

// CursorHome moves to the start of the current line.
func (e *Editor) CursorHome() {
	e.col = 0
}

// CursorEnd moves to the end of the current line.
func (e *Editor) CursorEnd() {
	e.col = len(e.lines[e.line])
}

// clampCursor keeps the cursor inside the buffer.
func (e *Editor) clampCursor() {
	if len(e.lines) == 0 {
		e.lines = [][]rune{{}}
	}
	if e.line >= len(e.lines) {
		e.line = len(e.lines) - 1
	}
	if e.col > len(e.lines[e.line]) {
		e.col = len(e.lines[e.line])
	}
}
