package ui

import (
	"github.com/gdamore/tcell/v2"
)

// ConfirmPrompt is a modal yes/no question rendered in the status area.
// The app blocks its event handling on it until the user answers.
type ConfirmPrompt struct {
	title   string
	message string
	active  bool
}

// NewConfirmPrompt creates an inactive prompt
func NewConfirmPrompt() *ConfirmPrompt {
	return &ConfirmPrompt{}
}

// Ask arms the prompt with a question
func (p *ConfirmPrompt) Ask(title, message string) {
	p.title = title
	p.message = message
	p.active = true
}

// IsActive returns whether a question is pending
func (p *ConfirmPrompt) IsActive() bool {
	return p.active
}

// HandleKey consumes a key press. answered reports a decision was made;
// yes is the decision. Escape counts as no.
func (p *ConfirmPrompt) HandleKey(ev *tcell.EventKey) (answered, yes bool) {
	if ev.Key() == tcell.KeyEscape {
		p.active = false
		return true, false
	}
	switch ev.Rune() {
	case 'y', 'Y':
		p.active = false
		return true, true
	case 'n', 'N':
		p.active = false
		return true, false
	}
	return false, false
}

// Render draws the question over the bottom rows
func (p *ConfirmPrompt) Render(screen *Screen, y int) {
	if !p.active {
		return
	}
	screen.DrawString(0, y, p.title+" "+p.message+" [y/n]", screen.ModifiedStyle())
}
