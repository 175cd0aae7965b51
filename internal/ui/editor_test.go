package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func keyRune(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestFirstKeyReplacesPlaceholder(t *testing.T) {
	e := NewRenameEditor("New Folder")
	e.Start()

	e.HandleKey(keyRune('H'))
	e.HandleKey(keyRune('i'))

	if e.Text() != "Hi" {
		t.Errorf("text = %q, want %q", e.Text(), "Hi")
	}
}

func TestEscapeRestoresOriginal(t *testing.T) {
	e := NewRenameEditor("Signature")
	e.Start()
	e.HandleKey(keyRune('x'))

	done, committed := e.HandleKey(key(tcell.KeyEscape))
	if !done || committed {
		t.Fatalf("escape = (%v, %v), want (true, false)", done, committed)
	}
	if e.Text() != "Signature" {
		t.Errorf("text = %q, want the original back", e.Text())
	}
}

func TestEnterCommits(t *testing.T) {
	e := NewRenameEditor("Old")
	e.Start()
	e.HandleKey(keyRune('N'))
	e.HandleKey(keyRune('e'))
	e.HandleKey(keyRune('w'))

	done, committed := e.HandleKey(key(tcell.KeyEnter))
	if !done || !committed {
		t.Fatalf("enter = (%v, %v), want (true, true)", done, committed)
	}
	if e.Text() != "New" {
		t.Errorf("text = %q, want %q", e.Text(), "New")
	}
}

func TestUndoRedo(t *testing.T) {
	e := NewRenameEditor("a")
	e.Start()
	e.HandleKey(keyRune('b')) // replaces the placeholder
	e.HandleKey(keyRune('c'))

	e.HandleKey(key(tcell.KeyCtrlZ))
	if e.Text() != "b" {
		t.Errorf("after undo text = %q, want %q", e.Text(), "b")
	}
	e.HandleKey(key(tcell.KeyCtrlY))
	if e.Text() != "bc" {
		t.Errorf("after redo text = %q, want %q", e.Text(), "bc")
	}
}

func TestBackspaceAtStartKeepsText(t *testing.T) {
	e := NewRenameEditor("ab")
	e.Start()
	e.HandleKey(key(tcell.KeyHome))
	e.HandleKey(key(tcell.KeyBackspace2))
	if e.Text() != "ab" {
		t.Errorf("text = %q, want unchanged", e.Text())
	}
}
