// Package export writes a folder subtree as a YAML snippet pack, a portable
// bundle other installations can import from.
package export

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pstruik/phraser/internal/model"
)

// PackFolder is one folder in a snippet pack.
type PackFolder struct {
	Title   string       `yaml:"title"`
	Folders []PackFolder `yaml:"folders,omitempty"`
	Items   []PackItem   `yaml:"items,omitempty"`
}

// PackItem is one phrase or script in a snippet pack.
type PackItem struct {
	Kind          string   `yaml:"kind"`
	Description   string   `yaml:"description"`
	Content       string   `yaml:"content"`
	Abbreviations []string `yaml:"abbreviations,omitempty"`
	Hotkey        string   `yaml:"hotkey,omitempty"`
}

// ExportFolder writes folder and its whole subtree to filePath as YAML.
// Identities and on-disk paths are deliberately left out: a pack describes
// content, not a particular installation.
func ExportFolder(folder *model.Folder, filePath string) error {
	pack := buildPackFolder(folder)

	data, err := yaml.Marshal(&pack)
	if err != nil {
		return fmt.Errorf("failed to marshal snippet pack: %w", err)
	}
	if err := os.WriteFile(filePath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snippet pack: %w", err)
	}
	return nil
}

func buildPackFolder(f *model.Folder) PackFolder {
	pf := PackFolder{Title: f.Title}
	for _, sub := range f.Folders {
		pf.Folders = append(pf.Folders, buildPackFolder(sub))
	}
	for _, item := range f.Items {
		pf.Items = append(pf.Items, PackItem{
			Kind:          item.Kind.String(),
			Description:   item.Description,
			Content:       item.Content,
			Abbreviations: item.Abbreviations,
			Hotkey:        item.Hotkey,
		})
	}
	return pf
}
