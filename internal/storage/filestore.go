// Package storage persists the expansion configuration tree to a directory:
// one directory per folder, one content file plus a hidden JSON sidecar per
// phrase or script.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pstruik/phraser/internal/model"
)

const folderMetaName = ".folder.json"

// FileStore reads and writes entities under a base directory. It remembers
// where each entity was last written so a persist after a rename or move
// relocates the old files instead of orphaning them.
type FileStore struct {
	BaseDir string

	lastPath map[string]string // entity ID -> last persisted path
}

// NewFileStore creates a FileStore rooted at baseDir.
func NewFileStore(baseDir string) *FileStore {
	return &FileStore{
		BaseDir:  baseDir,
		lastPath: make(map[string]string),
	}
}

// Persist durably writes one entity. An unset path is recomputed from the
// entity's position in the tree first.
func (s *FileStore) Persist(e model.Entity) error {
	switch e := e.(type) {
	case *model.Folder:
		return s.persistFolder(e)
	case *model.Item:
		return s.persistItem(e)
	}
	return fmt.Errorf("unknown entity kind %v", e.EntityKind())
}

func (s *FileStore) persistFolder(f *model.Folder) error {
	if f.Path == "" {
		f.Path = filepath.Join(s.parentDir(f.Parent), safeName(f.Title))
	}

	if old, ok := s.lastPath[f.ID]; ok && old != f.Path {
		if err := relocate(old, f.Path); err != nil {
			return fmt.Errorf("failed to move folder: %w", err)
		}
	}

	if err := os.MkdirAll(f.Path, 0755); err != nil {
		return fmt.Errorf("failed to create folder directory: %w", err)
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal folder metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(f.Path, folderMetaName), data, 0644); err != nil {
		return fmt.Errorf("failed to write folder metadata: %w", err)
	}

	s.lastPath[f.ID] = f.Path
	return nil
}

func (s *FileStore) persistItem(i *model.Item) error {
	if i.Path == "" {
		i.Path = filepath.Join(s.parentDir(i.Parent), safeName(i.Description)+contentExt(i.Kind))
	}

	if old, ok := s.lastPath[i.ID]; ok && old != i.Path {
		if err := relocate(old, i.Path); err != nil {
			return fmt.Errorf("failed to move item: %w", err)
		}
		_ = os.Remove(sidecarPath(old))
	}

	dir := filepath.Dir(i.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(i.Path, []byte(i.Content), 0644); err != nil {
		return fmt.Errorf("failed to write content: %w", err)
	}

	data, err := json.MarshalIndent(i, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal item metadata: %w", err)
	}
	if err := os.WriteFile(sidecarPath(i.Path), data, 0644); err != nil {
		return fmt.Errorf("failed to write item metadata: %w", err)
	}

	s.lastPath[i.ID] = i.Path
	return nil
}

// Remove deletes an entity's persisted data. For folders the whole subtree
// directory goes away.
func (s *FileStore) Remove(e model.Entity) error {
	switch e := e.(type) {
	case *model.Folder:
		if e.Path != "" {
			if err := os.RemoveAll(e.Path); err != nil {
				return fmt.Errorf("failed to remove folder: %w", err)
			}
		}
		for _, en := range allInFolder(e) {
			delete(s.lastPath, en.EntityID())
		}
	case *model.Item:
		if e.Path != "" {
			if err := os.Remove(e.Path); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("failed to remove item: %w", err)
			}
			_ = os.Remove(sidecarPath(e.Path))
		}
	}
	delete(s.lastPath, e.EntityID())
	return nil
}

// Load reads the whole tree from the base directory. A missing base
// directory yields an empty config.
func (s *FileStore) Load() (*model.Config, error) {
	cfg := &model.Config{}

	entries, err := os.ReadDir(s.BaseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		f, err := s.loadFolder(filepath.Join(s.BaseDir, entry.Name()))
		if err != nil {
			return nil, err
		}
		if f != nil {
			cfg.Folders = append(cfg.Folders, f)
		}
	}

	sort.SliceStable(cfg.Folders, func(a, b int) bool {
		return cfg.Folders[a].Title < cfg.Folders[b].Title
	})
	return cfg, nil
}

func (s *FileStore) loadFolder(dir string) (*model.Folder, error) {
	metaPath := filepath.Join(dir, folderMetaName)
	data, err := os.ReadFile(metaPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Not a phraser folder, skip it.
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read folder metadata: %w", err)
	}

	var f model.Folder
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", metaPath, err)
	}
	f.Path = dir

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read folder: %w", err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			sub, err := s.loadFolder(filepath.Join(dir, name))
			if err != nil {
				return nil, err
			}
			if sub != nil {
				f.AddFolder(sub)
			}
			continue
		}
		if !strings.HasPrefix(name, ".") || name == folderMetaName || !strings.HasSuffix(name, ".json") {
			continue
		}
		item, err := s.loadItem(dir, name)
		if err != nil {
			return nil, err
		}
		f.AddItem(item)
	}

	sort.SliceStable(f.Folders, func(a, b int) bool { return f.Folders[a].Title < f.Folders[b].Title })
	sort.SliceStable(f.Items, func(a, b int) bool { return f.Items[a].Description < f.Items[b].Description })

	s.lastPath[f.ID] = f.Path
	return &f, nil
}

func (s *FileStore) loadItem(dir, sidecarName string) (*model.Item, error) {
	data, err := os.ReadFile(filepath.Join(dir, sidecarName))
	if err != nil {
		return nil, fmt.Errorf("failed to read item metadata: %w", err)
	}

	var item model.Item
	if err := json.Unmarshal(data, &item); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", sidecarName, err)
	}

	// .name.json -> name + content extension
	base := strings.TrimSuffix(strings.TrimPrefix(sidecarName, "."), ".json")
	item.Path = filepath.Join(dir, base+contentExt(item.Kind))

	content, err := os.ReadFile(item.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read item content: %w", err)
	}
	item.Content = string(content)

	s.lastPath[item.ID] = item.Path
	return &item, nil
}

// parentDir is where children of parent live; nil parent means the root of
// the store.
func (s *FileStore) parentDir(parent *model.Folder) string {
	if parent == nil {
		return s.BaseDir
	}
	if parent.Path == "" {
		parent.Path = filepath.Join(s.parentDir(parent.Parent), safeName(parent.Title))
	}
	return parent.Path
}

func sidecarPath(contentPath string) string {
	dir := filepath.Dir(contentPath)
	base := filepath.Base(contentPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, "."+base+".json")
}

func contentExt(k model.Kind) string {
	if k == model.KindScript {
		return ".py"
	}
	return ".txt"
}

func safeName(title string) string {
	title = strings.TrimSpace(title)
	title = strings.ReplaceAll(title, string(os.PathSeparator), "_")
	title = strings.TrimLeft(title, ".")
	if title == "" {
		title = "untitled"
	}
	return title
}

func relocate(oldPath, newPath string) error {
	if _, err := os.Stat(oldPath); os.IsNotExist(err) {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(newPath), 0755); err != nil {
		return err
	}
	return os.Rename(oldPath, newPath)
}

func allInFolder(f *model.Folder) []model.Entity {
	out := []model.Entity{f}
	for _, sub := range f.Folders {
		out = append(out, allInFolder(sub)...)
	}
	for _, item := range f.Items {
		out = append(out, item)
	}
	return out
}
