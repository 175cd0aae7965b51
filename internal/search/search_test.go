package search

import (
	"testing"

	"github.com/pstruik/phraser/internal/model"
)

func testConfig() *model.Config {
	cfg := &model.Config{}
	work := model.NewFolder("Work")
	cfg.Folders = append(cfg.Folders, work)

	sig := model.NewPhrase("Signature", "Regards")
	sig.Abbreviations = []string{"sig"}
	work.AddItem(sig)

	greet := model.NewPhrase("Greeting", "hello")
	work.AddItem(greet)
	return cfg
}

func TestFindByLabel(t *testing.T) {
	matches := Find("greet", testConfig())
	if len(matches) != 1 {
		t.Fatalf("matches = %d, want 1", len(matches))
	}
	if matches[0].Entity.Display() != "Greeting" {
		t.Errorf("best match = %q", matches[0].Entity.Display())
	}
}

func TestFindByAbbreviation(t *testing.T) {
	matches := Find("sig", testConfig())
	if len(matches) == 0 {
		t.Fatal("no matches for an abbreviation")
	}
	if matches[0].Entity.Display() != "Signature" {
		t.Errorf("best match = %q, want Signature via its abbreviation", matches[0].Entity.Display())
	}
}

func TestFindEmptyQuery(t *testing.T) {
	if got := Find("   ", testConfig()); got != nil {
		t.Errorf("empty query matched %d entities", len(got))
	}
}

func TestFindIsCaseInsensitive(t *testing.T) {
	matches := Find("WORK", testConfig())
	if len(matches) != 1 || matches[0].Entity.EntityKind() != model.KindFolder {
		t.Errorf("matches = %v, want the Work folder", matches)
	}
}
