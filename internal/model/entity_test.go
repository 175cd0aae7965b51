package model

import "testing"

func TestAddRemoveChildConsistency(t *testing.T) {
	work := NewFolder("Work")
	sig := NewPhrase("Signature", "Regards,\nP.")

	work.AddItem(sig)

	if sig.Parent != work {
		t.Fatalf("item parent = %v, want %q", sig.Parent, work.Title)
	}
	found := false
	for _, it := range work.Items {
		if it.ID == sig.ID {
			found = true
		}
	}
	if !found {
		t.Error("parent does not list the item it owns")
	}

	work.RemoveItem(sig)
	if sig.Parent != nil {
		t.Error("parent pointer not cleared on removal")
	}
	if len(work.Items) != 0 {
		t.Errorf("items after removal = %d, want 0", len(work.Items))
	}
}

func TestUniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewPhrase("p", "").ID
		if seen[id] {
			t.Fatalf("duplicate ID generated: %s", id)
		}
		seen[id] = true
	}
}

func TestCopyFromLeavesIdentityAlone(t *testing.T) {
	src := NewPhrase("Greeting", "Hello there")
	src.Abbreviations = []string{"hi"}
	src.Modes = []TriggerMode{ModeAbbreviation, ModeHotkey}
	src.Hotkey = "<ctrl>+g"

	parent := NewFolder("A")
	parent.AddItem(src)
	src.Path = "/a/greeting.txt"

	dup := NewPhrase("", "")
	dup.CopyFrom(src)

	if dup.ID == src.ID {
		t.Error("copy shares identity with source")
	}
	if dup.Parent != nil {
		t.Error("copy should start detached")
	}
	if dup.Path != "" {
		t.Error("copy should have no path")
	}
	if dup.Description != "Greeting" || dup.Content != "Hello there" {
		t.Errorf("content fields not copied: %q %q", dup.Description, dup.Content)
	}

	dup.Abbreviations[0] = "yo"
	if src.Abbreviations[0] != "hi" {
		t.Error("abbreviation slice is shared with source")
	}
}

func TestClearPathsRecursive(t *testing.T) {
	a := NewFolder("a")
	a.Path = "/cfg/a"
	sub := NewFolder("sub")
	sub.Path = "/cfg/a/sub"
	a.AddFolder(sub)
	p := NewPhrase("greeting", "hello")
	p.Path = "/cfg/a/greeting.txt"
	a.AddItem(p)
	q := NewScript("task", "print('x')")
	q.Path = "/cfg/a/sub/task.py"
	sub.AddItem(q)

	a.ClearPaths()

	for i, path := range []string{a.Path, sub.Path, p.Path, q.Path} {
		if path != "" {
			t.Errorf("path %d still set: %q", i, path)
		}
	}
}

func TestConfigFindByID(t *testing.T) {
	cfg := &Config{}
	top := NewFolder("top")
	cfg.Folders = append(cfg.Folders, top)
	nested := NewFolder("nested")
	top.AddFolder(nested)
	leaf := NewScript("task", "pass")
	nested.AddItem(leaf)

	if got := cfg.FindByID(leaf.ID); got != Entity(leaf) {
		t.Errorf("FindByID(%s) = %v", leaf.ID, got)
	}
	if got := cfg.FindByID("missing"); got != nil {
		t.Errorf("FindByID(missing) = %v, want nil", got)
	}

	if n := len(cfg.AllEntities()); n != 3 {
		t.Errorf("AllEntities = %d entities, want 3", n)
	}
}

func TestSubtree(t *testing.T) {
	top := NewFolder("top")
	nested := NewFolder("nested")
	top.AddFolder(nested)
	leaf := NewPhrase("sig", "s")
	nested.AddItem(leaf)

	got := Subtree(top)
	if len(got) != 3 {
		t.Fatalf("Subtree(folder) = %d entities, want 3", len(got))
	}
	if got[0] != Entity(top) || got[1] != Entity(nested) || got[2] != Entity(leaf) {
		t.Errorf("Subtree order = %v", got)
	}

	if got := Subtree(leaf); len(got) != 1 || got[0] != Entity(leaf) {
		t.Errorf("Subtree(leaf) = %v, want just the leaf", got)
	}
}
