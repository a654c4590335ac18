package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestNew(t *testing.T) {
	c := New()
	if c == nil {
		t.Fatal("New() returned nil")
	}
	defer c.Close()
}

func TestNew_WithOptions(t *testing.T) {
	tmpDir := t.TempDir()

	c := New(
		WithUserConfigDir(tmpDir),
		WithProjectConfigDir(tmpDir),
	)
	defer c.Close()

	if c.userConfigDir != tmpDir {
		t.Errorf("userConfigDir = %q, want %q", c.userConfigDir, tmpDir)
	}
	if c.projectConfigDir != tmpDir {
		t.Errorf("projectConfigDir = %q, want %q", c.projectConfigDir, tmpDir)
	}
}

func TestConfig_LoadDefaults(t *testing.T) {
	c := New(WithUserConfigDir(t.TempDir()))
	defer c.Close()

	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	watcher := c.Watcher()
	if !watcher.WatchVCS {
		t.Error("WatchVCS = false, want true")
	}
	if watcher.DebounceMS != 250 {
		t.Errorf("DebounceMS = %d, want 250", watcher.DebounceMS)
	}

	indent := c.Indent()
	if indent.TabWidth != 4 {
		t.Errorf("TabWidth = %d, want 4", indent.TabWidth)
	}
	if !indent.InsertSpaces {
		t.Error("InsertSpaces = false, want true")
	}
}

func TestConfig_LoadUserSettingsOverride(t *testing.T) {
	tmpDir := t.TempDir()

	settingsPath := filepath.Join(tmpDir, "settings.toml")
	settingsContent := `
[watcher]
watchVCS = false

[indent]
tabWidth = 2
insertSpaces = false
`
	if err := os.WriteFile(settingsPath, []byte(settingsContent), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(WithUserConfigDir(tmpDir))
	defer c.Close()
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	watcher := c.Watcher()
	if watcher.WatchVCS {
		t.Error("WatchVCS = true, want false (overridden)")
	}

	indent := c.Indent()
	if indent.TabWidth != 2 {
		t.Errorf("TabWidth = %d, want 2", indent.TabWidth)
	}
	if indent.InsertSpaces {
		t.Error("InsertSpaces = true, want false (overridden)")
	}
}

func TestConfig_LoadWorkspaceOverridesUser(t *testing.T) {
	userDir := t.TempDir()
	workspaceDir := t.TempDir()

	os.WriteFile(filepath.Join(userDir, "settings.toml"), []byte(`
[indent]
tabWidth = 2
`), 0o644)
	os.WriteFile(filepath.Join(workspaceDir, "config.toml"), []byte(`
[indent]
tabWidth = 8
`), 0o644)

	c := New(
		WithUserConfigDir(userDir),
		WithProjectConfigDir(workspaceDir),
	)
	defer c.Close()
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if tw := c.Indent().TabWidth; tw != 8 {
		t.Errorf("TabWidth = %d, want 8 (workspace overrides user)", tw)
	}
}

func TestConfig_LoadEnvironmentOverridesAll(t *testing.T) {
	userDir := t.TempDir()
	os.WriteFile(filepath.Join(userDir, "settings.toml"), []byte(`
[indent]
tabWidth = 2
`), 0o644)

	os.Setenv("VELUM_TAB_WIDTH", "6")
	defer os.Unsetenv("VELUM_TAB_WIDTH")

	c := New(WithUserConfigDir(userDir))
	defer c.Close()
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if tw := c.Indent().TabWidth; tw != 6 {
		t.Errorf("TabWidth = %d, want 6 (env overrides file layers)", tw)
	}
}

func TestConfig_LoadMissingFilesNotAnError(t *testing.T) {
	c := New(
		WithUserConfigDir(t.TempDir()),
		WithProjectConfigDir(t.TempDir()),
	)
	defer c.Close()

	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v, want nil for missing config files", err)
	}
}

func TestConfig_GetString(t *testing.T) {
	c := New(WithUserConfigDir(t.TempDir()))
	defer c.Close()
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if _, err := c.GetString("watcher.watchVCS"); err == nil {
		t.Error("GetString on a bool path should return a TypeError")
	}

	if _, ok := c.Get("nonexistent.path"); ok {
		t.Error("Get(nonexistent) = ok, want not found")
	}
}

func TestConfig_GetInt(t *testing.T) {
	c := New(WithUserConfigDir(t.TempDir()))
	defer c.Close()
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	v, err := c.GetInt("indent.tabWidth")
	if err != nil {
		t.Fatalf("GetInt() error = %v", err)
	}
	if v != 4 {
		t.Errorf("GetInt() = %d, want 4", v)
	}
}

func TestConfig_GetBool(t *testing.T) {
	c := New(WithUserConfigDir(t.TempDir()))
	defer c.Close()
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	v, err := c.GetBool("watcher.watchVCS")
	if err != nil {
		t.Fatalf("GetBool() error = %v", err)
	}
	if !v {
		t.Error("GetBool() = false, want true")
	}
}

func TestConfig_Merged(t *testing.T) {
	c := New(WithUserConfigDir(t.TempDir()))
	defer c.Close()
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	merged := c.Merged()
	if _, ok := merged["watcher"]; !ok {
		t.Error("Merged() missing 'watcher' section")
	}
	if _, ok := merged["indent"]; !ok {
		t.Error("Merged() missing 'indent' section")
	}
}
