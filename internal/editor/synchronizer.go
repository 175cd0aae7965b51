// Package editor keeps the visual tree of presentation nodes consistent
// with the in-memory configuration tree across structural edits, and
// triggers persistence for every affected entity.
package editor

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/pstruik/phraser/internal/model"
)

// ErrEmptyName is returned by Rename when the new name is empty. The caller
// reverts the visual label; no mutation has happened.
var ErrEmptyName = errors.New("the name can't be empty")

// Synchronizer owns the node mirror of the configuration tree and performs
// every structural operation on both trees at once. All operations run on
// the UI goroutine.
type Synchronizer struct {
	cfg      *model.Config
	store    Store
	monitor  Monitor
	hotkeys  HotkeyRegistry
	notifier Notifier
	pres     Presentation

	roots     []*Node
	index     map[string]*Node // entity ID -> node
	clipboard []model.Entity
}

// New builds a synchronizer and the node mirror for cfg.
func New(cfg *model.Config, store Store, monitor Monitor, hotkeys HotkeyRegistry, notifier Notifier, pres Presentation) *Synchronizer {
	s := &Synchronizer{
		cfg:      cfg,
		store:    store,
		monitor:  monitor,
		hotkeys:  hotkeys,
		notifier: notifier,
		pres:     pres,
		index:    make(map[string]*Node),
	}
	for _, f := range cfg.Folders {
		s.roots = append(s.roots, newNode(f, nil, s.index))
	}
	sortNodes(s.roots)
	return s
}

// Roots returns the top-level nodes in display order.
func (s *Synchronizer) Roots() []*Node { return s.roots }

// NodeFor returns the node mirroring e, or nil.
func (s *Synchronizer) NodeFor(e model.Entity) *Node { return s.index[e.EntityID()] }

// Clipboard returns the currently staged entities.
func (s *Synchronizer) Clipboard() []model.Entity { return s.clipboard }

// beginEdit suspends the monitor and returns the matching resume. Used as
// `defer s.beginEdit()()` so the bracket is released on every exit path.
func (s *Synchronizer) beginEdit() func() {
	s.monitor.Suspend()
	return s.monitor.Resume
}

// CreateFolder creates an empty folder under parent, or in the root list
// when parent is nil, persists it, selects it and enters rename mode.
func (s *Synchronizer) CreateFolder(parent *model.Folder, name string) *model.Folder {
	defer s.beginEdit()()

	f := model.NewFolder(name)
	var n *Node
	if parent == nil {
		s.cfg.Folders = append(s.cfg.Folders, f)
		n = newNode(f, nil, s.index)
		s.roots = append(s.roots, n)
	} else {
		parent.AddFolder(f)
		pn := s.index[parent.ID]
		n = newNode(f, pn, s.index)
		pn.Children = append(pn.Children, n)
	}

	s.persist(f)
	s.sortSiblings(n)
	s.pres.Select(n)
	s.pres.EnterRenameMode(n)
	return f
}

// CreateLeaf creates a phrase or script with placeholder content under
// parent, persists it, selects it and enters rename mode.
func (s *Synchronizer) CreateLeaf(parent *model.Folder, kind model.Kind, defaultTitle, defaultContent string) *model.Item {
	defer s.beginEdit()()

	var item *model.Item
	switch kind {
	case model.KindScript:
		item = model.NewScript(defaultTitle, defaultContent)
	default:
		item = model.NewPhrase(defaultTitle, defaultContent)
	}
	parent.AddItem(item)
	pn := s.index[parent.ID]
	n := newNode(item, pn, s.index)
	pn.Children = append(pn.Children, n)

	s.persist(item)
	s.sortSiblings(n)
	s.pres.Select(n)
	s.pres.EnterRenameMode(n)
	return item
}

// Rename sets the entity's display label. An empty name fails with
// ErrEmptyName before anything is touched.
func (s *Synchronizer) Rename(n *Node, newName string) error {
	if strings.TrimSpace(newName) == "" {
		return ErrEmptyName
	}
	defer s.beginEdit()()

	switch e := n.Entity.(type) {
	case *model.Folder:
		e.Title = newName
		e.ClearPaths()
		s.persistSubtree(e)
	case *model.Item:
		e.Description = newName
		e.Path = ""
		s.persist(e)
	}

	s.sortSiblings(n)
	s.pres.Select(n)
	s.notifier.ConfigAltered(false)
	return nil
}

// Copy stages duplicates of the selected leaves on the clipboard. Folders
// are skipped: only phrases and scripts travel through the copy path, the
// cut/paste path handles whole folders.
func (s *Synchronizer) Copy(selection []model.Entity) {
	for _, src := range selection {
		item, ok := src.(*model.Item)
		if !ok {
			continue
		}
		var dup *model.Item
		if item.Kind == model.KindScript {
			dup = model.NewScript("", "")
		} else {
			dup = model.NewPhrase("", "")
		}
		dup.CopyFrom(item)
		s.clipboard = append(s.clipboard, dup)
	}
}

// Clone duplicates a leaf in place: the copy lands under the source's
// parent, is persisted and selected. The surrounding edit session's dirty
// flag is not touched.
func (s *Synchronizer) Clone(src *model.Item) *model.Item {
	defer s.beginEdit()()

	var dup *model.Item
	if src.Kind == model.KindScript {
		dup = model.NewScript("", "")
	} else {
		dup = model.NewPhrase("", "")
	}
	dup.CopyFrom(src)

	parent := src.Parent
	parent.AddItem(dup)
	pn := s.index[parent.ID]
	n := newNode(dup, pn, s.index)
	pn.Children = append(pn.Children, n)

	s.persist(dup)
	s.sortSiblings(n)
	s.pres.Select(n)
	s.notifier.ConfigAltered(false)
	return dup
}

// Cut stages the selection by reference and structurally removes the
// top-level selected entities. No confirmation is asked.
func (s *Synchronizer) Cut(selection []model.Entity) {
	s.clipboard = selection
	defer s.beginEdit()()

	for _, e := range TopLevelFilter(selection) {
		if n := s.index[e.EntityID()]; n != nil {
			s.removeNode(n)
		}
	}
	s.notifier.ConfigAltered(false)
}

// Paste re-parents every staged entity under target, persisting each one.
// Folder entities re-attach their whole subtree with paths cleared so
// persistence recomputes them. The clipboard is cleared and the pasted
// top-level nodes are selected.
func (s *Synchronizer) Paste(target *model.Folder) []model.Entity {
	if len(s.clipboard) == 0 {
		return nil
	}
	defer s.beginEdit()()

	tn := s.index[target.ID]
	pasted := make([]*Node, 0, len(s.clipboard))
	for _, e := range s.clipboard {
		switch e := e.(type) {
		case *model.Folder:
			target.AddFolder(e)
			e.ClearPaths()
			s.persistSubtree(e)
		case *model.Item:
			target.AddItem(e)
			e.Path = ""
			s.persist(e)
		}
		n := newNode(e, tn, s.index)
		tn.Children = append(tn.Children, n)
		pasted = append(pasted, n)
	}

	sortNodes(tn.Children)
	entities := s.clipboard
	s.clipboard = nil
	s.pres.Select(pasted...)
	s.notifier.ConfigAltered(false)
	return entities
}

// Delete asks the presentation for confirmation and, on yes, removes the
// top-level selected nodes: hotkeys are unregistered recursively, entities
// are detached from their parents and their persisted data is discarded.
func (s *Synchronizer) Delete(selection []*Node) bool {
	defer s.beginEdit()()

	if !s.pres.Confirm(deletePrompt(selection)) {
		return false
	}

	for _, n := range topLevelNodes(selection) {
		e := n.Entity
		s.removeNode(n)
		// Discarded folders release their contents too, so no entity keeps
		// a parent pointer into the dead subtree. Cut must not do this:
		// a cut subtree travels to the next paste intact.
		if f, ok := e.(*model.Folder); ok {
			detachContents(f)
		}
	}
	s.notifier.ConfigAltered(false)
	return true
}

// detachContents recursively empties a deleted folder and clears the
// parent pointers of everything it held.
func detachContents(f *model.Folder) {
	for _, sub := range f.Folders {
		sub.Parent = nil
		detachContents(sub)
	}
	for _, item := range f.Items {
		item.Parent = nil
	}
	f.Folders = nil
	f.Items = nil
}

// Move re-parents the top-level filtered source nodes under target and
// reports how many were moved. Paths are cleared recursively for folders
// and every affected entity is persisted, so the store relocates the
// on-disk data. A folder is never moved into itself or into one of its own
// descendants; that would make the parent chain cyclic.
func (s *Synchronizer) Move(sources []*Node, target *model.Folder) int {
	defer s.beginEdit()()

	tn := s.index[target.ID]
	moved := 0
	for _, n := range topLevelNodes(sources) {
		if containsTarget(n.Entity, target) {
			continue
		}
		s.deleteHotkeys(n.Entity)
		s.detachEntity(n.Entity)
		s.detachNode(n)

		switch e := n.Entity.(type) {
		case *model.Folder:
			target.AddFolder(e)
			e.ClearPaths()
			s.persistSubtree(e)
		case *model.Item:
			target.AddItem(e)
			e.Path = ""
			s.persist(e)
		}
		n.Parent = tn
		tn.Children = append(tn.Children, n)
		moved++
	}
	if moved == 0 {
		return 0
	}

	sortNodes(tn.Children)
	s.notifier.ConfigAltered(true)
	return moved
}

// containsTarget reports whether target is e itself or sits anywhere
// inside e's subtree.
func containsTarget(e model.Entity, target *model.Folder) bool {
	f, ok := e.(*model.Folder)
	if !ok {
		return false
	}
	for p := target; p != nil; p = p.Parent {
		if p == f {
			return true
		}
	}
	return false
}

// SelectionQuery returns the entities behind the current presentation
// selection, top-level filtered so no returned entity's parent is also in
// the set.
func (s *Synchronizer) SelectionQuery() []model.Entity {
	nodes := s.pres.Selection()
	entities := make([]model.Entity, 0, len(nodes))
	for _, n := range nodes {
		entities = append(entities, n.Entity)
	}
	return TopLevelFilter(entities)
}

// TopLevelFilter drops every entity whose parent is also in the set, so a
// folder and its contents are never processed independently.
func TopLevelFilter(entities []model.Entity) []model.Entity {
	in := make(map[model.Entity]bool, len(entities))
	for _, e := range entities {
		in[e] = true
	}
	out := make([]model.Entity, 0, len(entities))
	for _, e := range entities {
		if owner := e.Owner(); owner != nil && in[owner] {
			continue
		}
		out = append(out, e)
	}
	return out
}

// topLevelNodes is TopLevelFilter over presentation nodes.
func topLevelNodes(nodes []*Node) []*Node {
	in := make(map[*Node]bool, len(nodes))
	for _, n := range nodes {
		in[n] = true
	}
	out := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		if n.Parent != nil && in[n.Parent] {
			continue
		}
		out = append(out, n)
	}
	return out
}

// removeNode removes one node and its entity from both trees, unregisters
// hotkeys, discards persisted data and reselects a neighbor.
func (s *Synchronizer) removeNode(n *Node) {
	e := n.Entity
	s.deleteHotkeys(e)

	parent := n.Parent
	removedIdx := s.detachNode(n)
	s.detachEntity(e)

	if err := s.store.Remove(e); err != nil {
		log.Printf("failed to remove persisted data for %q: %v", e.Display(), err)
	}
	switch e := e.(type) {
	case *model.Folder:
		e.ClearPaths()
	case *model.Item:
		e.Path = ""
	}
	n.unregister(s.index)

	// Keep the selection near where the removal happened.
	if parent != nil {
		if len(parent.Children) > 0 {
			s.pres.Select(parent.Children[min(removedIdx, len(parent.Children)-1)])
		} else {
			s.pres.Select(parent)
		}
	} else if len(s.roots) > 0 {
		s.pres.Select(s.roots[min(removedIdx, len(s.roots)-1)])
	}
}

// detachNode removes n from its visual parent (or the root list) and
// reports its former sibling index.
func (s *Synchronizer) detachNode(n *Node) int {
	if n.Parent != nil {
		return n.Parent.removeChild(n)
	}
	for idx, r := range s.roots {
		if r == n {
			s.roots = append(s.roots[:idx], s.roots[idx+1:]...)
			return idx
		}
	}
	return -1
}

// detachEntity removes e from its domain parent, or from the root folder
// list when it is top-level.
func (s *Synchronizer) detachEntity(e model.Entity) {
	switch e := e.(type) {
	case *model.Folder:
		if e.Parent == nil {
			s.cfg.RemoveTopLevel(e)
		} else {
			e.Parent.RemoveFolder(e)
		}
	case *model.Item:
		if e.Parent != nil {
			e.Parent.RemoveItem(e)
		}
	}
}

// deleteHotkeys unregisters the hotkey binding of e and, for folders, of
// every descendant that has one.
func (s *Synchronizer) deleteHotkeys(e model.Entity) {
	if model.HasMode(e, model.ModeHotkey) {
		s.hotkeys.Removed(e)
	}
	if f, ok := e.(*model.Folder); ok {
		for _, sub := range f.Folders {
			s.deleteHotkeys(sub)
		}
		for _, item := range f.Items {
			if model.HasMode(item, model.ModeHotkey) {
				s.hotkeys.Removed(item)
			}
		}
	}
}

// persist writes one entity; failures are logged, not propagated, so a
// storage hiccup cannot wedge the edit bracket.
func (s *Synchronizer) persist(e model.Entity) {
	if err := s.store.Persist(e); err != nil {
		log.Printf("failed to persist %q: %v", e.Display(), err)
	}
}

// persistSubtree persists a folder, then its subfolders, then its items, in
// the order the paths get recomputed.
func (s *Synchronizer) persistSubtree(f *model.Folder) {
	s.persist(f)
	for _, sub := range f.Folders {
		s.persistSubtree(sub)
	}
	for _, item := range f.Items {
		s.persist(item)
	}
}

// sortSiblings re-sorts the sibling list that contains n.
func (s *Synchronizer) sortSiblings(n *Node) {
	if n.Parent != nil {
		sortNodes(n.Parent.Children)
	} else {
		sortNodes(s.roots)
	}
}

func deletePrompt(selection []*Node) (title, message string) {
	if len(selection) == 1 {
		switch e := selection[0].Entity.(type) {
		case *model.Folder:
			return "Delete Folder?",
				fmt.Sprintf("Are you sure you want to delete the '%s' folder and all the items in it?", e.Title)
		case *model.Item:
			kind := "Phrase"
			if e.Kind == model.KindScript {
				kind = "Script"
			}
			return fmt.Sprintf("Delete %s?", kind),
				fmt.Sprintf("Are you sure you want to delete '%s'?", e.Description)
		}
	}
	return fmt.Sprintf("Delete %d selected items?", len(selection)),
		fmt.Sprintf("Are you sure you want to delete the %d selected folders/items?", len(selection))
}
