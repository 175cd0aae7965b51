package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/pstruik/phraser/internal/history"
)

// CommandMode manages command line input (`:command`)
type CommandMode struct {
	active    bool
	input     string
	cursorPos int
	history   *History
}

// NewCommandMode creates a CommandMode without history persistence
func NewCommandMode() *CommandMode {
	return &CommandMode{
		history: NewHistory(50),
	}
}

// NewCommandModeWithHistory creates a CommandMode with persisted history
func NewCommandModeWithHistory(manager *history.Manager) *CommandMode {
	h, err := NewHistoryWithManager(50, manager, "command.toml")
	if err != nil {
		// If history loading fails, continue with empty history
		h = NewHistory(50)
	}
	return &CommandMode{history: h}
}

// Start enters command mode
func (c *CommandMode) Start() {
	c.active = true
	c.input = ""
	c.cursorPos = 0
	c.history.Reset()
}

// Stop exits command mode
func (c *CommandMode) Stop() {
	c.active = false
}

// IsActive returns whether command mode is active
func (c *CommandMode) IsActive() bool {
	return c.active
}

// HandleKey processes a key press in command mode. done reports the mode
// ended; command is the entered line, empty on cancel.
func (c *CommandMode) HandleKey(ev *tcell.EventKey) (command string, done bool) {
	switch ev.Key() {
	case tcell.KeyEscape:
		c.Stop()
		return "", true
	case tcell.KeyEnter:
		cmd := strings.TrimSpace(c.input)
		c.history.Add(cmd)
		c.Stop()
		return cmd, true
	case tcell.KeyUp:
		if !c.history.IsNavigating() {
			c.history.SetPending(c.input)
		}
		if prev, ok := c.history.Previous(); ok {
			c.input = prev
			c.cursorPos = len(c.input)
		}
	case tcell.KeyDown:
		if next, ok := c.history.Next(); ok {
			c.input = next
			c.cursorPos = len(c.input)
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if c.cursorPos > 0 {
			c.input = c.input[:c.cursorPos-1] + c.input[c.cursorPos:]
			c.cursorPos--
		} else if c.input == "" {
			// Backspace on an empty line leaves command mode.
			c.Stop()
			return "", true
		}
	case tcell.KeyDelete:
		if c.cursorPos < len(c.input) {
			c.input = c.input[:c.cursorPos] + c.input[c.cursorPos+1:]
		}
	case tcell.KeyLeft:
		if c.cursorPos > 0 {
			c.cursorPos--
		}
	case tcell.KeyRight:
		if c.cursorPos < len(c.input) {
			c.cursorPos++
		}
	case tcell.KeyHome, tcell.KeyCtrlA:
		c.cursorPos = 0
	case tcell.KeyEnd, tcell.KeyCtrlE:
		c.cursorPos = len(c.input)
	case tcell.KeyCtrlU:
		c.input = c.input[c.cursorPos:]
		c.cursorPos = 0
	default:
		ch := ev.Rune()
		if ch > 0 {
			s := string(ch)
			c.input = c.input[:c.cursorPos] + s + c.input[c.cursorPos:]
			c.cursorPos += len(s)
		}
	}

	return "", false
}

// Render renders the command line
func (c *CommandMode) Render(screen *Screen, y int) {
	if !c.active {
		return
	}

	screen.DrawString(0, y, ":", screen.CommandStyle())
	screen.DrawString(1, y, c.input, screen.CommandStyle())

	ch := " "
	if c.cursorPos < len(c.input) {
		ch = string(c.input[c.cursorPos])
	}
	screen.DrawString(1+c.cursorPos, y, ch, screen.CursorStyle())
}
