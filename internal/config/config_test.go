package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSet(t *testing.T) {
	cfg := &Config{
		sessionSettings: make(map[string]string),
	}

	cfg.Set("confirm_delete", "no")
	if cfg.Get("confirm_delete") != "no" {
		t.Errorf("Expected 'no', got '%s'", cfg.Get("confirm_delete"))
	}
}

func TestGet(t *testing.T) {
	cfg := &Config{
		sessionSettings: make(map[string]string),
	}

	// Test getting a value that doesn't exist
	if cfg.Get("nonexistent") != "" {
		t.Errorf("Expected empty string for nonexistent key, got '%s'", cfg.Get("nonexistent"))
	}

	// Session settings override persisted ones
	cfg.Settings = map[string]string{"key": "persisted"}
	if cfg.Get("key") != "persisted" {
		t.Errorf("Expected 'persisted', got '%s'", cfg.Get("key"))
	}
	cfg.Set("key", "session")
	if cfg.Get("key") != "session" {
		t.Errorf("Expected 'session', got '%s'", cfg.Get("key"))
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `tree_dir = "/tmp/phrases"
theme = "dark"
prompt_to_save = true

[settings]
confirm_delete = "yes"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if cfg.TreeDir != "/tmp/phrases" {
		t.Errorf("TreeDir = %q", cfg.TreeDir)
	}
	if cfg.Theme != "dark" {
		t.Errorf("Theme = %q", cfg.Theme)
	}
	if !cfg.PromptToSave {
		t.Error("PromptToSave = false")
	}
	if cfg.Get("confirm_delete") != "yes" {
		t.Errorf("setting = %q", cfg.Get("confirm_delete"))
	}
}

func TestLoadFromMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if cfg.Theme != "default" {
		t.Errorf("Theme = %q, want default", cfg.Theme)
	}
	if cfg.TreeDir == "" {
		t.Error("TreeDir should have a default")
	}
}

func TestSetPersistent(t *testing.T) {
	cfg := &Config{
		sessionSettings: make(map[string]string),
	}

	cfg.SetPersistent("confirm_delete", "no")
	if cfg.Settings["confirm_delete"] != "no" {
		t.Errorf("persisted setting = %q, want 'no'", cfg.Settings["confirm_delete"])
	}
	if cfg.Get("confirm_delete") != "no" {
		t.Errorf("Get = %q, want 'no'", cfg.Get("confirm_delete"))
	}

	// A session override wins over the persisted value but does not touch it.
	cfg.Set("confirm_delete", "yes")
	if cfg.Get("confirm_delete") != "yes" {
		t.Errorf("Get after session override = %q, want 'yes'", cfg.Get("confirm_delete"))
	}
	if cfg.Settings["confirm_delete"] != "no" {
		t.Errorf("session Set leaked into the persisted map: %q", cfg.Settings["confirm_delete"])
	}
}
