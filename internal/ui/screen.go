package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/pstruik/phraser/internal/theme"
)

// Screen manages the tcell screen and rendering
type Screen struct {
	tcellScreen tcell.Screen
	Theme       *theme.Theme
}

// FuncEvent carries a closure posted from another goroutine to the UI event
// loop, which runs it on the UI goroutine.
type FuncEvent struct {
	tcell.EventTime
	Fn func()
}

// NewScreen creates a new Screen instance with a specific theme
func NewScreen(t *theme.Theme) (*Screen, error) {
	tcellScreen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}

	if err := tcellScreen.Init(); err != nil {
		return nil, fmt.Errorf("failed to init screen: %w", err)
	}

	return &Screen{
		tcellScreen: tcellScreen,
		Theme:       t,
	}, nil
}

// Close closes the screen
func (s *Screen) Close() error {
	s.tcellScreen.Fini()
	return nil
}

// PollEvent waits for the next input event
func (s *Screen) PollEvent() tcell.Event {
	return s.tcellScreen.PollEvent()
}

// Post hands a closure to the UI goroutine. Safe to call from any
// goroutine; this is the log mirror's hand-off.
func (s *Screen) Post(fn func()) {
	ev := &FuncEvent{Fn: fn}
	ev.SetEventNow()
	// PostEvent only fails when the queue is full; dropping a log line is
	// acceptable, blocking a worker goroutine is not.
	_ = s.tcellScreen.PostEvent(ev)
}

// Clear clears the screen
func (s *Screen) Clear() {
	s.tcellScreen.Clear()
}

// Show makes pending drawing visible
func (s *Screen) Show() {
	s.tcellScreen.Show()
}

// GetWidth returns the current screen width
func (s *Screen) GetWidth() int {
	w, _ := s.tcellScreen.Size()
	return w
}

// GetHeight returns the current screen height
func (s *Screen) GetHeight() int {
	_, h := s.tcellScreen.Size()
	return h
}

// DrawString draws text at the given position, clipped to the screen
func (s *Screen) DrawString(x, y int, text string, style tcell.Style) {
	w, h := s.tcellScreen.Size()
	if y < 0 || y >= h {
		return
	}
	col := x
	for _, r := range text {
		if col >= w {
			break
		}
		s.tcellScreen.SetContent(col, y, r, nil, style)
		col++
	}
}

// DefaultStyle returns the default text style
func (s *Screen) DefaultStyle() tcell.Style {
	return tcell.StyleDefault.Foreground(s.Theme.Colors.TreeNormalText)
}

// SelectedStyle is the style of the cursor row in the tree
func (s *Screen) SelectedStyle() tcell.Style {
	return tcell.StyleDefault.Foreground(s.Theme.Colors.TreeSelectedItem).Reverse(true)
}

// MarkedStyle is the style of multi-selected rows
func (s *Screen) MarkedStyle() tcell.Style {
	return tcell.StyleDefault.Foreground(s.Theme.Colors.TreeSelectedItem).Bold(true)
}

// FolderStyle is the style of folder labels
func (s *Screen) FolderStyle() tcell.Style {
	return tcell.StyleDefault.Foreground(s.Theme.Colors.TreeFolder)
}

// ScriptStyle is the style of script labels
func (s *Screen) ScriptStyle() tcell.Style {
	return tcell.StyleDefault.Foreground(s.Theme.Colors.TreeScript)
}

// LogStyle returns the style for one log line
func (s *Screen) LogStyle(elevated bool) tcell.Style {
	if elevated {
		return tcell.StyleDefault.Foreground(s.Theme.Colors.LogElevated)
	}
	return tcell.StyleDefault.Foreground(s.Theme.Colors.LogNormal)
}

// HeaderStyle is the style of the title line
func (s *Screen) HeaderStyle() tcell.Style {
	return tcell.StyleDefault.Foreground(s.Theme.Colors.HeaderTitle).Bold(true)
}

// StatusStyle is the style of the status line
func (s *Screen) StatusStyle() tcell.Style {
	return tcell.StyleDefault.Foreground(s.Theme.Colors.StatusMessage)
}

// ModifiedStyle marks unsaved state in the status line
func (s *Screen) ModifiedStyle() tcell.Style {
	return tcell.StyleDefault.Foreground(s.Theme.Colors.StatusModified)
}

// CommandStyle is the style of command line input
func (s *Screen) CommandStyle() tcell.Style {
	return tcell.StyleDefault.Foreground(s.Theme.Colors.CommandText)
}

// CursorStyle is the inverted cell under the text cursor
func (s *Screen) CursorStyle() tcell.Style {
	return tcell.StyleDefault.Foreground(s.Theme.Colors.EditorCursor).Reverse(true)
}

// Beep sounds the terminal bell.
func (s *Screen) Beep() {
	_ = s.tcellScreen.Beep()
}
