package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pstruik/phraser/internal/model"
)

func TestPersistAndLoadRoundTrip(t *testing.T) {
	store := NewFileStore(t.TempDir())

	work := model.NewFolder("Work")
	require.NoError(t, store.Persist(work))

	sig := model.NewPhrase("Signature", "Regards,\nP.")
	sig.Abbreviations = []string{"sig"}
	sig.Modes = []model.TriggerMode{model.ModeAbbreviation}
	work.AddItem(sig)
	require.NoError(t, store.Persist(sig))

	task := model.NewScript("Cleanup", "print('done')")
	work.AddItem(task)
	require.NoError(t, store.Persist(task))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Len(t, loaded.Folders, 1)

	f := loaded.Folders[0]
	assert.Equal(t, "Work", f.Title)
	assert.Equal(t, work.ID, f.ID)
	require.Len(t, f.Items, 2)

	// Items come back sorted by description.
	assert.Equal(t, "Cleanup", f.Items[0].Description)
	assert.Equal(t, model.KindScript, f.Items[0].Kind)
	assert.Equal(t, "print('done')", f.Items[0].Content)
	assert.Equal(t, "Signature", f.Items[1].Description)
	assert.Equal(t, []string{"sig"}, f.Items[1].Abbreviations)
	assert.Equal(t, f, f.Items[1].Parent, "parent pointer restored on load")
}

func TestPersistComputesPathFromParent(t *testing.T) {
	base := t.TempDir()
	store := NewFileStore(base)

	work := model.NewFolder("Work")
	require.NoError(t, store.Persist(work))
	assert.Equal(t, filepath.Join(base, "Work"), work.Path)

	p := model.NewPhrase("Greeting", "hello")
	work.AddItem(p)
	require.NoError(t, store.Persist(p))
	assert.Equal(t, filepath.Join(base, "Work", "Greeting.txt"), p.Path)

	content, err := os.ReadFile(p.Path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))
}

func TestPersistRelocatesAfterPathCleared(t *testing.T) {
	base := t.TempDir()
	store := NewFileStore(base)

	a := model.NewFolder("A")
	b := model.NewFolder("B")
	require.NoError(t, store.Persist(a))
	require.NoError(t, store.Persist(b))

	p := model.NewPhrase("Greeting", "hello")
	a.AddItem(p)
	require.NoError(t, store.Persist(p))
	oldPath := p.Path

	// Simulate a move: detach, re-attach, clear path, persist.
	a.RemoveItem(p)
	b.AddItem(p)
	p.Path = ""
	require.NoError(t, store.Persist(p))

	assert.Equal(t, filepath.Join(base, "B", "Greeting.txt"), p.Path)
	_, err := os.Stat(oldPath)
	assert.True(t, os.IsNotExist(err), "old content file should be gone")
	_, err = os.Stat(p.Path)
	assert.NoError(t, err)
}

func TestRemoveFolderDeletesSubtree(t *testing.T) {
	store := NewFileStore(t.TempDir())

	top := model.NewFolder("Top")
	require.NoError(t, store.Persist(top))
	sub := model.NewFolder("Sub")
	top.AddFolder(sub)
	require.NoError(t, store.Persist(sub))
	p := model.NewPhrase("Deep", "x")
	sub.AddItem(p)
	require.NoError(t, store.Persist(p))

	require.NoError(t, store.Remove(top))

	_, err := os.Stat(top.Path)
	assert.True(t, os.IsNotExist(err))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded.Folders)
}

func TestLoadMissingBaseDir(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "does-not-exist"))
	cfg, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.Folders)
}
