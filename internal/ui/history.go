package ui

import (
	"errors"

	"github.com/pstruik/phraser/internal/history"
)

// History manages input history for the command line, navigable with
// Up/Down while typing.
type History struct {
	entries      []string
	currentIndex int // -1 = not navigating
	maxEntries   int
	pendingInput string
	manager      *history.Manager
	filename     string
}

// NewHistory creates a History without persistence
func NewHistory(maxEntries int) *History {
	return &History{
		entries:      []string{},
		currentIndex: -1,
		maxEntries:   maxEntries,
	}
}

// NewHistoryWithManager creates a History backed by a persisted file
func NewHistoryWithManager(maxEntries int, manager *history.Manager, filename string) (*History, error) {
	h := &History{
		entries:      []string{},
		currentIndex: -1,
		maxEntries:   maxEntries,
		manager:      manager,
		filename:     filename,
	}
	if manager == nil {
		return h, errors.New("no history manager")
	}

	entries, err := manager.Load(filename)
	if err != nil {
		return h, err
	}
	if len(entries) > maxEntries {
		entries = entries[len(entries)-maxEntries:]
	}
	h.entries = entries
	return h, nil
}

// Add appends an entry, skipping empties and consecutive duplicates, and
// persists when a manager is configured.
func (h *History) Add(entry string) {
	if entry == "" {
		return
	}
	if len(h.entries) > 0 && h.entries[len(h.entries)-1] == entry {
		return
	}

	h.entries = append(h.entries, entry)
	if len(h.entries) > h.maxEntries {
		h.entries = h.entries[len(h.entries)-h.maxEntries:]
	}

	h.currentIndex = -1
	h.pendingInput = ""

	if h.manager != nil && h.filename != "" {
		_ = h.manager.Save(h.filename, h.entries)
	}
}

// Reset leaves navigation mode
func (h *History) Reset() {
	h.currentIndex = -1
	h.pendingInput = ""
}

// IsNavigating reports whether Up/Down navigation is in progress
func (h *History) IsNavigating() bool {
	return h.currentIndex >= 0
}

// SetPending stores the current input so Down past the newest entry
// restores it.
func (h *History) SetPending(input string) {
	h.pendingInput = input
}

// Previous steps to the previous (older) entry
func (h *History) Previous() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	if h.currentIndex < 0 {
		h.currentIndex = len(h.entries) - 1
	} else if h.currentIndex > 0 {
		h.currentIndex--
	}
	return h.entries[h.currentIndex], true
}

// Next steps to the next (newer) entry, or back to the pending input
func (h *History) Next() (string, bool) {
	if h.currentIndex < 0 {
		return "", false
	}
	if h.currentIndex < len(h.entries)-1 {
		h.currentIndex++
		return h.entries[h.currentIndex], true
	}
	h.currentIndex = -1
	return h.pendingInput, true
}
