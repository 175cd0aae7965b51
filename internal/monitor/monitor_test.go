package monitor

import (
	"testing"

	"github.com/pstruik/phraser/internal/model"
)

func buildConfig() (*model.Config, *model.Item) {
	cfg := &model.Config{}
	work := model.NewFolder("Work")
	cfg.Folders = append(cfg.Folders, work)

	sig := model.NewPhrase("Signature", "Regards")
	sig.Abbreviations = []string{"sig", "rgds"}
	sig.Modes = []model.TriggerMode{model.ModeAbbreviation}
	work.AddItem(sig)

	hot := model.NewScript("Launcher", "run()")
	hot.Hotkey = "<ctrl>+F7"
	hot.Modes = []model.TriggerMode{model.ModeHotkey}
	work.AddItem(hot)

	return cfg, hot
}

func TestIndexBuiltOnNew(t *testing.T) {
	cfg, hot := buildConfig()
	m := New(cfg)

	if got := m.LookupAbbreviation("sig"); got == nil || got.Display() != "Signature" {
		t.Errorf("LookupAbbreviation(sig) = %v", got)
	}
	if got := m.LookupHotkey("<ctrl>+F7"); got != model.Entity(hot) {
		t.Errorf("LookupHotkey = %v, want the script", got)
	}
	abbrs, hotkeys := m.TriggerCounts()
	if abbrs != 2 || hotkeys != 1 {
		t.Errorf("counts = %d/%d, want 2/1", abbrs, hotkeys)
	}
}

func TestSuspendedMonitorResolvesNothing(t *testing.T) {
	cfg, _ := buildConfig()
	m := New(cfg)

	m.Suspend()
	if m.LookupAbbreviation("sig") != nil {
		t.Error("suspended monitor resolved a trigger")
	}
	m.Resume()
	if m.LookupAbbreviation("sig") == nil {
		t.Error("resumed monitor lost its index")
	}
}

func TestNestedBracketReindexesOnOutermostResume(t *testing.T) {
	cfg, _ := buildConfig()
	m := New(cfg)

	m.Suspend()
	m.Suspend()

	// Mutate the tree mid-bracket.
	extra := model.NewPhrase("Extra", "x")
	extra.Abbreviations = []string{"ex"}
	extra.Modes = []model.TriggerMode{model.ModeAbbreviation}
	cfg.Folders[0].AddItem(extra)

	m.Resume()
	if !m.Suspended() {
		t.Fatal("inner resume closed the outer bracket")
	}
	m.Resume()
	if m.Suspended() {
		t.Fatal("bracket still open")
	}
	if m.LookupAbbreviation("ex") == nil {
		t.Error("index not rebuilt after outermost resume")
	}
}

func TestRemovedDropsHotkeyBinding(t *testing.T) {
	cfg, hot := buildConfig()
	m := New(cfg)

	m.Removed(hot)
	if m.LookupHotkey("<ctrl>+F7") != nil {
		t.Error("hotkey still resolvable after Removed")
	}
}
