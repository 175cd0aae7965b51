// Package model contains the expansion configuration tree: folders of
// phrases and scripts, with their trigger settings.
package model

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// Kind discriminates the entity variants.
type Kind int

const (
	KindFolder Kind = iota
	KindPhrase
	KindScript
)

func (k Kind) String() string {
	switch k {
	case KindFolder:
		return "folder"
	case KindPhrase:
		return "phrase"
	case KindScript:
		return "script"
	}
	return "unknown"
}

// TriggerMode is one way an entity can be triggered by the monitor.
type TriggerMode int

const (
	ModeAbbreviation TriggerMode = iota + 1
	ModeHotkey
)

// Entity is implemented by *Folder and *Item only.
type Entity interface {
	EntityID() string
	EntityKind() Kind
	Display() string
	Owner() *Folder
	TriggerModes() []TriggerMode
}

// Folder groups subfolders and leaf items. Parent is nil for folders in the
// root list. Path is the on-disk directory; empty means not yet assigned.
type Folder struct {
	ID      string        `json:"id"`
	Title   string        `json:"title"`
	Folders []*Folder     `json:"-"`
	Items   []*Item       `json:"-"`
	Parent  *Folder       `json:"-"`
	Path    string        `json:"-"`
	Modes   []TriggerMode `json:"modes,omitempty"`
	Hotkey  string        `json:"hotkey,omitempty"`
}

// Item is a leaf entity: a phrase (literal expansion) or a script. Path is
// the on-disk content file; empty means not yet assigned.
type Item struct {
	ID            string        `json:"id"`
	Kind          Kind          `json:"kind"`
	Description   string        `json:"description"`
	Content       string        `json:"-"`
	Abbreviations []string      `json:"abbreviations,omitempty"`
	Modes         []TriggerMode `json:"modes,omitempty"`
	Hotkey        string        `json:"hotkey,omitempty"`
	Parent        *Folder       `json:"-"`
	Path          string        `json:"-"`
}

// Config is the root of the tree: the ordered list of top-level folders.
type Config struct {
	Folders []*Folder
}

// NewFolder creates an empty folder with a generated ID.
func NewFolder(title string) *Folder {
	return &Folder{
		ID:      newID(),
		Title:   title,
		Folders: make([]*Folder, 0),
		Items:   make([]*Item, 0),
	}
}

// NewPhrase creates a phrase item with a generated ID.
func NewPhrase(description, content string) *Item {
	return &Item{
		ID:          newID(),
		Kind:        KindPhrase,
		Description: description,
		Content:     content,
	}
}

// NewScript creates a script item with a generated ID.
func NewScript(description, content string) *Item {
	return &Item{
		ID:          newID(),
		Kind:        KindScript,
		Description: description,
		Content:     content,
	}
}

func (f *Folder) EntityID() string            { return f.ID }
func (f *Folder) EntityKind() Kind            { return KindFolder }
func (f *Folder) Display() string             { return f.Title }
func (f *Folder) Owner() *Folder              { return f.Parent }
func (f *Folder) TriggerModes() []TriggerMode { return f.Modes }

func (i *Item) EntityID() string            { return i.ID }
func (i *Item) EntityKind() Kind            { return i.Kind }
func (i *Item) Display() string             { return i.Description }
func (i *Item) Owner() *Folder              { return i.Parent }
func (i *Item) TriggerModes() []TriggerMode { return i.Modes }

// AddFolder attaches child as a subfolder of f.
func (f *Folder) AddFolder(child *Folder) {
	child.Parent = f
	f.Folders = append(f.Folders, child)
}

// RemoveFolder detaches child from f's subfolder list.
func (f *Folder) RemoveFolder(child *Folder) {
	for idx, c := range f.Folders {
		if c.ID == child.ID {
			f.Folders = append(f.Folders[:idx], f.Folders[idx+1:]...)
			child.Parent = nil
			break
		}
	}
}

// AddItem attaches item as a leaf of f.
func (f *Folder) AddItem(item *Item) {
	item.Parent = f
	f.Items = append(f.Items, item)
}

// RemoveItem detaches item from f's leaf list.
func (f *Folder) RemoveItem(item *Item) {
	for idx, c := range f.Items {
		if c.ID == item.ID {
			f.Items = append(f.Items[:idx], f.Items[idx+1:]...)
			item.Parent = nil
			break
		}
	}
}

// HasMode reports whether mode is among the entity's trigger modes.
func HasMode(e Entity, mode TriggerMode) bool {
	for _, m := range e.TriggerModes() {
		if m == mode {
			return true
		}
	}
	return false
}

// CopyFrom deep-copies the content fields of src into i. Identity, parent
// and path are left alone so the copy starts detached.
func (i *Item) CopyFrom(src *Item) {
	i.Kind = src.Kind
	i.Description = src.Description
	i.Content = src.Content
	i.Abbreviations = append([]string(nil), src.Abbreviations...)
	i.Modes = append([]TriggerMode(nil), src.Modes...)
	i.Hotkey = src.Hotkey
}

// ClearPaths unsets the on-disk path of f and every descendant, so the next
// persist recomputes them from the new location.
func (f *Folder) ClearPaths() {
	f.Path = ""
	for _, sub := range f.Folders {
		sub.ClearPaths()
	}
	for _, item := range f.Items {
		item.Path = ""
	}
}

// AllEntities returns every entity in the tree, depth-first, folders before
// their contents.
func (c *Config) AllEntities() []Entity {
	var out []Entity
	for _, f := range c.Folders {
		out = append(out, allEntitiesRecursive(f)...)
	}
	return out
}

func allEntitiesRecursive(f *Folder) []Entity {
	out := []Entity{Entity(f)}
	for _, sub := range f.Folders {
		out = append(out, allEntitiesRecursive(sub)...)
	}
	for _, item := range f.Items {
		out = append(out, item)
	}
	return out
}

// Subtree returns e and, for folders, every descendant entity. Callers use
// it to enumerate everything a structural operation touches.
func Subtree(e Entity) []Entity {
	if f, ok := e.(*Folder); ok {
		return allEntitiesRecursive(f)
	}
	return []Entity{e}
}

// FindByID finds an entity anywhere in the tree by its ID.
func (c *Config) FindByID(id string) Entity {
	for _, e := range c.AllEntities() {
		if e.EntityID() == id {
			return e
		}
	}
	return nil
}

// RemoveTopLevel detaches a folder from the root list.
func (c *Config) RemoveTopLevel(f *Folder) {
	for idx, c2 := range c.Folders {
		if c2.ID == f.ID {
			c.Folders = append(c.Folders[:idx], c.Folders[idx+1:]...)
			break
		}
	}
}

func newID() string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}
