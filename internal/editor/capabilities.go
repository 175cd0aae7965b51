package editor

import "github.com/pstruik/phraser/internal/model"

// Store durably writes and removes entity data.
type Store interface {
	Persist(model.Entity) error
	Remove(model.Entity) error
}

// Monitor is the automation engine's observation of the tree. Every
// structural edit is bracketed by Suspend/Resume so the engine never sees a
// half-mutated tree. The bracket is advisory: correctness depends on every
// mutation path using it.
type Monitor interface {
	Suspend()
	Resume()
}

// HotkeyRegistry is told when an entity holding a hotkey binding leaves the
// tree.
type HotkeyRegistry interface {
	Removed(model.Entity)
}

// Notifier informs the host that persisted state changed.
type Notifier interface {
	ConfigAltered(requiresFullReload bool)
}

// Presentation renders nodes and reports selection. Confirm blocks for a
// yes/no answer.
type Presentation interface {
	Confirm(title, message string) bool
	Selection() []*Node
	Select(nodes ...*Node)
	EnterRenameMode(n *Node)
}
