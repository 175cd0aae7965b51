// Package logview mirrors log records into a bounded visual buffer owned by
// the UI goroutine.
package logview

import (
	"fmt"
	"log"
	"os"
	"time"
)

// Capacity is the maximum number of retained lines. Eviction is strict
// FIFO: a warning goes as readily as a debug line.
const Capacity = 50

// Level is the record severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	}
	return "?"
}

// Record is one log event before formatting.
type Record struct {
	Level   Level
	Time    time.Time
	Message string
}

// Entry is one rendered line in the buffer. Elevated marks levels above
// INFO so the widget can style them.
type Entry struct {
	Text     string
	Elevated bool
}

// Mirror keeps the last Capacity formatted log lines. Records may be
// emitted from any goroutine; the post function must hand the closure to
// the UI goroutine, which is the only one that touches the buffer. The
// sink is registered at construction, tied to the owning session.
type Mirror struct {
	post    func(func())
	entries []Entry
}

// NewMirror creates a mirror whose buffer mutations run through post.
func NewMirror(post func(func())) *Mirror {
	return &Mirror{post: post}
}

// Emit formats a record and appends it to the buffer on the UI goroutine,
// evicting the oldest line once the buffer is full.
func (m *Mirror) Emit(r Record) {
	entry := Entry{
		Text:     fmt.Sprintf("%s %s %s", r.Time.Format("15:04:05"), r.Level, r.Message),
		Elevated: r.Level > LevelInfo,
	}
	m.post(func() {
		m.entries = append(m.entries, entry)
		if len(m.entries) > Capacity {
			m.entries = m.entries[1:]
		}
	})
}

// Emitf logs through the process logger and mirrors the line. Convenience
// used by the app for user-visible events.
func (m *Mirror) Emitf(level Level, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Printf("%s %s", level, msg)
	m.Emit(Record{Level: level, Time: time.Now(), Message: msg})
}

// Entries returns the buffered lines oldest first. UI goroutine only.
func (m *Mirror) Entries() []Entry {
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Clear empties the buffer unconditionally. UI goroutine only.
func (m *Mirror) Clear() {
	m.entries = nil
}

// SaveTo writes the buffer to path, one line per entry, newline terminated.
// An I/O failure is logged and swallowed; the user sees no dialog.
func (m *Mirror) SaveTo(path string) {
	f, err := os.Create(path)
	if err != nil {
		log.Printf("error saving log file: %v", err)
		return
	}
	defer f.Close()

	for _, e := range m.entries {
		if _, err := fmt.Fprintln(f, e.Text); err != nil {
			log.Printf("error saving log file: %v", err)
			return
		}
	}
}
