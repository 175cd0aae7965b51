package logview

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// directPost applies the closure inline, standing in for the UI goroutine.
func directPost(fn func()) { fn() }

func TestCapacityEvictsOldestFirst(t *testing.T) {
	m := NewMirror(directPost)

	for i := 1; i <= 51; i++ {
		m.Emit(Record{Level: LevelInfo, Time: time.Unix(0, 0).UTC(), Message: fmt.Sprintf("record %d", i)})
	}

	entries := m.Entries()
	require.Len(t, entries, 50)
	assert.Contains(t, entries[0].Text, "record 2", "record #1 should have been evicted")
	assert.Contains(t, entries[49].Text, "record 51")
}

func TestElevatedAboveInfoOnly(t *testing.T) {
	m := NewMirror(directPost)
	now := time.Now()

	m.Emit(Record{Level: LevelDebug, Time: now, Message: "d"})
	m.Emit(Record{Level: LevelInfo, Time: now, Message: "i"})
	m.Emit(Record{Level: LevelWarning, Time: now, Message: "w"})
	m.Emit(Record{Level: LevelError, Time: now, Message: "e"})

	entries := m.Entries()
	require.Len(t, entries, 4)
	assert.False(t, entries[0].Elevated)
	assert.False(t, entries[1].Elevated)
	assert.True(t, entries[2].Elevated)
	assert.True(t, entries[3].Elevated)
}

func TestEmitGoesThroughPostFunc(t *testing.T) {
	var pending []func()
	m := NewMirror(func(fn func()) { pending = append(pending, fn) })

	m.Emit(Record{Level: LevelInfo, Time: time.Now(), Message: "queued"})
	assert.Empty(t, m.Entries(), "entry must not land before the post runs")

	for _, fn := range pending {
		fn()
	}
	assert.Len(t, m.Entries(), 1)
}

func TestClear(t *testing.T) {
	m := NewMirror(directPost)
	m.Emit(Record{Level: LevelInfo, Time: time.Now(), Message: "x"})
	m.Clear()
	assert.Empty(t, m.Entries())
}

func TestSaveToWritesOneLinePerEntry(t *testing.T) {
	m := NewMirror(directPost)
	at := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	m.Emit(Record{Level: LevelInfo, Time: at, Message: "first"})
	m.Emit(Record{Level: LevelWarning, Time: at, Message: "second"})

	path := filepath.Join(t.TempDir(), "session.log")
	m.SaveTo(path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(string(data), "\n")
	require.Len(t, lines, 3, "two lines plus trailing newline")
	assert.Equal(t, "09:30:00 INFO first", lines[0])
	assert.Equal(t, "09:30:00 WARNING second", lines[1])
	assert.Equal(t, "", lines[2])
}

func TestSaveToFailureIsSwallowed(t *testing.T) {
	m := NewMirror(directPost)
	m.Emit(Record{Level: LevelInfo, Time: time.Now(), Message: "x"})

	// Directory path cannot be created as a file; must not panic or error out.
	m.SaveTo(t.TempDir())
}
