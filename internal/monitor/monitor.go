// Package monitor is the automation engine's view of the configuration
// tree: an index of abbreviation and hotkey triggers, rebuilt whenever an
// edit bracket closes.
package monitor

import (
	"sync"

	"github.com/pstruik/phraser/internal/model"
)

// Monitor indexes triggers over the live tree. Structural edits bracket
// their mutations with Suspend/Resume; while suspended the monitor answers
// no lookups and the index is rebuilt when the last Resume lands. The
// bracket nests.
type Monitor struct {
	mu            sync.Mutex
	cfg           *model.Config
	suspended     int
	abbreviations map[string]model.Entity
	hotkeys       map[string]model.Entity
}

// New creates a monitor over cfg and builds the initial index.
func New(cfg *model.Config) *Monitor {
	m := &Monitor{cfg: cfg}
	m.mu.Lock()
	m.reindexLocked()
	m.mu.Unlock()
	return m
}

// Suspend pauses observation of the tree.
func (m *Monitor) Suspend() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.suspended++
}

// Resume ends one Suspend. Closing the outermost bracket rebuilds the
// trigger index from the tree.
func (m *Monitor) Resume() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.suspended > 0 {
		m.suspended--
	}
	if m.suspended == 0 {
		m.reindexLocked()
	}
}

// Suspended reports whether an edit bracket is open.
func (m *Monitor) Suspended() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.suspended > 0
}

// Removed unregisters the hotkey binding owned by e. Called by the editor
// while an entity leaves the tree.
func (m *Monitor) Removed(e model.Entity) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, owner := range m.hotkeys {
		if owner.EntityID() == e.EntityID() {
			delete(m.hotkeys, key)
		}
	}
}

// Reindex rebuilds the trigger index. The host calls this when persisted
// state changed outside an edit bracket.
func (m *Monitor) Reindex() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reindexLocked()
}

// LookupAbbreviation resolves an abbreviation trigger, or nil. Suspended
// monitors resolve nothing.
func (m *Monitor) LookupAbbreviation(abbr string) model.Entity {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.suspended > 0 {
		return nil
	}
	return m.abbreviations[abbr]
}

// LookupHotkey resolves a hotkey trigger, or nil.
func (m *Monitor) LookupHotkey(key string) model.Entity {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.suspended > 0 {
		return nil
	}
	return m.hotkeys[key]
}

// TriggerCounts reports how many abbreviation and hotkey triggers are
// registered, for the status line.
func (m *Monitor) TriggerCounts() (abbreviations, hotkeys int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.abbreviations), len(m.hotkeys)
}

func (m *Monitor) reindexLocked() {
	m.abbreviations = make(map[string]model.Entity)
	m.hotkeys = make(map[string]model.Entity)
	for _, e := range m.cfg.AllEntities() {
		if model.HasMode(e, model.ModeHotkey) {
			switch e := e.(type) {
			case *model.Folder:
				if e.Hotkey != "" {
					m.hotkeys[e.Hotkey] = e
				}
			case *model.Item:
				if e.Hotkey != "" {
					m.hotkeys[e.Hotkey] = e
				}
			}
		}
		if item, ok := e.(*model.Item); ok && model.HasMode(item, model.ModeAbbreviation) {
			for _, abbr := range item.Abbreviations {
				m.abbreviations[abbr] = item
			}
		}
	}
}
