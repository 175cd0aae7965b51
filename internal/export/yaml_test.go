package export

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/pstruik/phraser/internal/model"
)

func TestExportFolderRoundTrip(t *testing.T) {
	work := model.NewFolder("Work")
	sub := model.NewFolder("Mail")
	work.AddFolder(sub)

	sig := model.NewPhrase("Signature", "Regards,\nP.")
	sig.Abbreviations = []string{"sig"}
	sub.AddItem(sig)

	task := model.NewScript("Cleanup", "print('done')")
	task.Hotkey = "<ctrl>+F9"
	work.AddItem(task)

	path := filepath.Join(t.TempDir(), "work.yaml")
	if err := ExportFolder(work, path); err != nil {
		t.Fatalf("ExportFolder failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var pack PackFolder
	if err := yaml.Unmarshal(data, &pack); err != nil {
		t.Fatalf("exported pack is not valid YAML: %v", err)
	}

	if pack.Title != "Work" {
		t.Errorf("title = %q", pack.Title)
	}
	if len(pack.Folders) != 1 || pack.Folders[0].Title != "Mail" {
		t.Fatalf("subfolders = %+v", pack.Folders)
	}
	if len(pack.Folders[0].Items) != 1 || pack.Folders[0].Items[0].Content != "Regards,\nP." {
		t.Errorf("nested item lost: %+v", pack.Folders[0].Items)
	}
	if len(pack.Items) != 1 || pack.Items[0].Kind != "script" || pack.Items[0].Hotkey != "<ctrl>+F9" {
		t.Errorf("script item lost: %+v", pack.Items)
	}
}
