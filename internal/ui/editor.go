package ui

import (
	"github.com/gdamore/tcell/v2"
)

// RenameEditor manages inline editing of a node label. Escape cancels and
// restores the original text; Enter commits. Every edit is undoable inside
// the editing session.
type RenameEditor struct {
	original  string
	text      string
	cursorPos int
	active    bool
	firstKey  bool

	undo []string
	redo []string
}

// NewRenameEditor creates an editor primed with the current label
func NewRenameEditor(label string) *RenameEditor {
	return &RenameEditor{
		original:  label,
		text:      label,
		cursorPos: len(label),
		firstKey:  true,
	}
}

// Start enters editing mode
func (e *RenameEditor) Start() {
	e.active = true
	e.cursorPos = len(e.text)
}

// IsActive returns whether the editor is active
func (e *RenameEditor) IsActive() bool {
	return e.active
}

// Text returns the edited text
func (e *RenameEditor) Text() string {
	return e.text
}

func (e *RenameEditor) pushUndo() {
	e.undo = append(e.undo, e.text)
	e.redo = nil
}

// Undo steps back one edit
func (e *RenameEditor) Undo() {
	if len(e.undo) == 0 {
		return
	}
	e.redo = append(e.redo, e.text)
	e.text = e.undo[len(e.undo)-1]
	e.undo = e.undo[:len(e.undo)-1]
	e.cursorPos = len(e.text)
}

// Redo re-applies an undone edit
func (e *RenameEditor) Redo() {
	if len(e.redo) == 0 {
		return
	}
	e.undo = append(e.undo, e.text)
	e.text = e.redo[len(e.redo)-1]
	e.redo = e.redo[:len(e.redo)-1]
	e.cursorPos = len(e.text)
}

// HandleKey handles a key press during editing. done reports the session
// ended; committed reports whether the text should be applied.
func (e *RenameEditor) HandleKey(ev *tcell.EventKey) (done, committed bool) {
	if !e.active {
		return true, false
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		e.active = false
		e.text = e.original
		return true, false
	case tcell.KeyEnter:
		e.active = false
		return true, true
	case tcell.KeyCtrlZ:
		e.Undo()
	case tcell.KeyCtrlY:
		e.Redo()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if e.cursorPos > 0 {
			e.pushUndo()
			e.text = e.text[:e.cursorPos-1] + e.text[e.cursorPos:]
			e.cursorPos--
		}
	case tcell.KeyDelete:
		if e.cursorPos < len(e.text) {
			e.pushUndo()
			e.text = e.text[:e.cursorPos] + e.text[e.cursorPos+1:]
		}
	case tcell.KeyLeft:
		if e.cursorPos > 0 {
			e.cursorPos--
		}
	case tcell.KeyRight:
		if e.cursorPos < len(e.text) {
			e.cursorPos++
		}
	case tcell.KeyHome, tcell.KeyCtrlA:
		e.cursorPos = 0
	case tcell.KeyEnd, tcell.KeyCtrlE:
		e.cursorPos = len(e.text)
	case tcell.KeyCtrlU:
		e.pushUndo()
		e.text = e.text[e.cursorPos:]
		e.cursorPos = 0
	case tcell.KeyCtrlK:
		e.pushUndo()
		e.text = e.text[:e.cursorPos]
	default:
		ch := ev.Rune()
		if ch > 0 && ch != '\t' {
			e.pushUndo()
			// Typing over a freshly created placeholder replaces it.
			if e.firstKey {
				e.text = string(ch)
				e.cursorPos = 1
			} else {
				e.text = e.text[:e.cursorPos] + string(ch) + e.text[e.cursorPos:]
				e.cursorPos++
			}
		}
	}
	e.firstKey = false

	return false, false
}

// Render renders the editor at the given position
func (e *RenameEditor) Render(screen *Screen, x, y, maxWidth int) {
	if maxWidth <= 0 {
		return
	}

	text := e.text
	if len(text) > maxWidth-1 {
		start := len(text) - (maxWidth - 1)
		if e.cursorPos < start {
			start = e.cursorPos
		}
		text = text[start:]
	}

	screen.DrawString(x, y, text+" ", screen.CommandStyle())

	cursorX := x + e.cursorPos
	if cursorX <= x+len(text) {
		ch := " "
		if e.cursorPos < len(e.text) {
			ch = string(e.text[e.cursorPos])
		}
		screen.DrawString(cursorX, y, ch, screen.CursorStyle())
	}
}
