// Package ui renders the two-panel Splitmark frontend: a raw-markup
// editing pane on the left and a rendered preview on the right, both
// views of the same document session.
package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/splitmark/splitmark/internal/markup"
	"github.com/splitmark/splitmark/internal/session"
)

// Options configures the frontend.
type Options struct {
	// FileName is shown in the status line.
	FileName string

	// Theme selects the color scheme ("dark" or "light").
	Theme string

	// TabWidth is the display width of a tab character.
	TabWidth int

	// Save persists the current snapshot. Called on Ctrl+S after the
	// pending history commit is flushed. May be nil.
	Save func() error
}

// UI owns the terminal screen and the two panes. All drawing happens on
// the event-loop goroutine; cross-goroutine updates arrive as interrupt
// events.
type UI struct {
	screen tcell.Screen
	sess   *session.Session
	editor *Editor
	theme  Theme

	fileName string
	tabWidth int
	save     func() error

	scroll int // first visible document line
	dirty  bool
	status string
}

// New creates the frontend for a session. The screen is not initialized
// until Run.
func New(sess *session.Session, opts Options) (*UI, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}

	tabWidth := opts.TabWidth
	if tabWidth <= 0 {
		tabWidth = 4
	}

	u := &UI{
		screen:   screen,
		sess:     sess,
		editor:   NewEditor(sess.CurrentSnapshot()),
		theme:    ThemeByName(opts.Theme),
		fileName: opts.FileName,
		tabWidth: tabWidth,
		save:     opts.Save,
	}
	return u, nil
}

// Run initializes the screen and processes events until the user quits.
func (u *UI) Run() error {
	if err := u.screen.Init(); err != nil {
		return err
	}
	defer u.screen.Fini()

	// Re-sync the editing pane whenever the document changes underneath
	// it: undo/redo restorations and external file edits alike. The
	// notification may arrive off the event loop, so it only posts a
	// wakeup; the re-sync happens while handling the interrupt.
	sub := u.sess.Subscribe(func(string) {
		_ = u.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer sub.Unsubscribe()

	u.draw()

	for {
		event := u.screen.PollEvent()
		if event == nil {
			return nil
		}

		switch ev := event.(type) {
		case *tcell.EventKey:
			if quit := u.handleKey(ev); quit {
				return nil
			}
		case *tcell.EventResize:
			u.screen.Sync()
		case *tcell.EventInterrupt:
			if _, ok := ev.Data().(quitRequest); ok {
				return nil
			}
			u.syncFromSession()
		}

		u.draw()
	}
}

// Stop wakes the event loop and ends Run.
func (u *UI) Stop() {
	_ = u.screen.PostEvent(tcell.NewEventInterrupt(quitRequest{}))
}

type quitRequest struct{}

// handleKey routes a key event. Reports true when the user quits.
func (u *UI) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlQ, tcell.KeyEscape:
		return true

	case tcell.KeyCtrlZ:
		if u.sess.Undo() {
			u.status = "undo"
		}
		return false

	case tcell.KeyCtrlY:
		if u.sess.Redo() {
			u.status = "redo"
		}
		return false

	case tcell.KeyCtrlS:
		u.doSave()
		return false

	case tcell.KeyRune:
		u.editor.InsertRune(ev.Rune())
		u.contentEdited()
	case tcell.KeyTab:
		u.editor.InsertRune('\t')
		u.contentEdited()
	case tcell.KeyEnter:
		u.editor.InsertNewline()
		u.contentEdited()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		u.editor.Backspace()
		u.contentEdited()
	case tcell.KeyDelete:
		u.editor.Delete()
		u.contentEdited()

	case tcell.KeyLeft:
		u.editor.CursorLeft()
	case tcell.KeyRight:
		u.editor.CursorRight()
	case tcell.KeyUp:
		u.editor.CursorUp()
	case tcell.KeyDown:
		u.editor.CursorDown()
	case tcell.KeyHome:
		u.editor.CursorHome()
	case tcell.KeyEnd:
		u.editor.CursorEnd()
	}

	return false
}

// contentEdited pushes the editing pane's snapshot into the session.
func (u *UI) contentEdited() {
	u.dirty = true
	u.status = ""
	u.sess.OnContentChange(u.editor.Content())
}

// syncFromSession re-reads the session snapshot if it diverged from the
// editing pane (undo/redo or external change), and handles quit wakeups.
func (u *UI) syncFromSession() {
	current := u.sess.CurrentSnapshot()
	if current != u.editor.Content() {
		u.editor.SetContent(current)
		u.dirty = true
	}
}

// doSave flushes the pending history commit and persists the snapshot.
func (u *UI) doSave() {
	u.sess.Flush()
	if u.save == nil {
		return
	}
	if err := u.save(); err != nil {
		u.status = "save failed: " + err.Error()
		return
	}
	u.dirty = false
	u.status = "saved"
}

// draw renders both panes and the status line.
func (u *UI) draw() {
	u.screen.Clear()

	width, height := u.screen.Size()
	if width < 4 || height < 2 {
		u.screen.Show()
		return
	}

	paneHeight := height - 1
	leftWidth := width / 2
	rightStart := leftWidth + 1

	u.scrollToCursor(paneHeight)

	u.drawSeparator(leftWidth, paneHeight)
	u.drawRawPane(leftWidth, paneHeight)
	u.drawPreviewPane(rightStart, width-rightStart, paneHeight)
	u.drawStatusLine(width, height-1)

	u.screen.Show()
}

// scrollToCursor keeps the cursor line visible in the raw pane.
func (u *UI) scrollToCursor(paneHeight int) {
	line, _ := u.editor.Cursor()
	if line < u.scroll {
		u.scroll = line
	}
	if line >= u.scroll+paneHeight {
		u.scroll = line - paneHeight + 1
	}
}

func (u *UI) drawSeparator(x, paneHeight int) {
	for y := 0; y < paneHeight; y++ {
		u.screen.SetContent(x, y, '│', nil, u.theme.Separator)
	}
}

// drawRawPane renders the editing buffer and places the hardware cursor.
func (u *UI) drawRawPane(width, paneHeight int) {
	lines := u.editor.Lines()

	for y := 0; y < paneHeight; y++ {
		idx := u.scroll + y
		if idx >= len(lines) {
			break
		}
		u.drawText(0, y, width, lines[idx], u.theme.Base)
	}

	line, col := u.editor.Cursor()
	screenCol := u.displayWidth([]rune(u.editor.Lines()[line])[:col])
	if line >= u.scroll && line < u.scroll+paneHeight && screenCol < width {
		u.screen.ShowCursor(screenCol, line-u.scroll)
	} else {
		u.screen.HideCursor()
	}
}

// drawPreviewPane renders the classified document.
func (u *UI) drawPreviewPane(x, width, paneHeight int) {
	lines := markup.Render(u.sess.CurrentSnapshot())

	for y := 0; y < paneHeight; y++ {
		idx := u.scroll + y
		if idx >= len(lines) {
			break
		}
		u.drawMarkupLine(x, y, width, lines[idx])
	}
}

// drawMarkupLine renders one classified line's spans.
func (u *UI) drawMarkupLine(x, y, width int, line markup.Line) {
	block := u.theme.blockStyle(line.Kind)
	col := x

	for _, span := range line.Spans {
		style := u.theme.spanStyle(block, span.Style)
		for _, r := range span.Text {
			if col >= x+width {
				return
			}
			col = u.putRune(col, y, r, style)
		}
	}
}

// drawStatusLine renders file name, dirty marker and control hints.
func (u *UI) drawStatusLine(width, y int) {
	name := u.fileName
	if name == "" {
		name = "[no file]"
	}
	marker := ""
	if u.dirty {
		marker = " [+]"
	}

	left := " " + name + marker
	if u.status != "" {
		left += "  " + u.status
	}

	undo, redo := "-", "-"
	if u.sess.CanUndo() {
		undo = "undo"
	}
	if u.sess.CanRedo() {
		redo = "redo"
	}
	right := "^Z " + undo + "  ^Y " + redo + "  ^S save  ^Q quit "

	for x := 0; x < width; x++ {
		u.screen.SetContent(x, y, ' ', nil, u.theme.Status)
	}
	u.drawText(0, y, width-len(right), left, u.theme.Status)
	u.drawText(width-len(right), y, len(right), right, u.theme.Status)
}

// drawText renders a string clipped to width, expanding tabs.
func (u *UI) drawText(x, y, width int, text string, style tcell.Style) {
	col := x
	for _, r := range text {
		if col >= x+width {
			return
		}
		col = u.putRune(col, y, r, style)
	}
}

// putRune draws one rune and returns the next column, expanding tabs.
func (u *UI) putRune(col, y int, r rune, style tcell.Style) int {
	if r == '\t' {
		for i := 0; i < u.tabWidth; i++ {
			u.screen.SetContent(col+i, y, ' ', nil, style)
		}
		return col + u.tabWidth
	}
	u.screen.SetContent(col, y, r, nil, style)
	return col + 1
}

// displayWidth returns the screen width of a rune slice with tabs
// expanded.
func (u *UI) displayWidth(runes []rune) int {
	width := 0
	for _, r := range runes {
		if r == '\t' {
			width += u.tabWidth
		} else {
			width++
		}
	}
	return width
}
