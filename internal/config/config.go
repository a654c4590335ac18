package config

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/velum-editor/velum/internal/config/layer"
	"github.com/velum-editor/velum/internal/config/loader"
)

// Config provides unified access to velum's configuration.
//
// Scope is deliberately narrow: velum reads HELIX_RUNTIME-style environment
// lookups and a handful of watcher/indent tunables once at startup (see
// internal/engine/syntax for HELIX_RUNTIME itself). There is no live reload,
// no plugin or keymap layer, and no schema validation — Load is called
// exactly once, from cmd/velum, before any file is opened.
type Config struct {
	mu sync.RWMutex

	layers *layer.Manager

	userConfigDir    string
	projectConfigDir string
}

// Option configures a Config instance.
type Option func(*Config)

// WithUserConfigDir sets the user configuration directory.
func WithUserConfigDir(dir string) Option {
	return func(c *Config) {
		c.userConfigDir = dir
	}
}

// WithProjectConfigDir sets the project (workspace) configuration directory.
func WithProjectConfigDir(dir string) Option {
	return func(c *Config) {
		c.projectConfigDir = dir
	}
}

// New creates a new Config instance with the given options.
func New(opts ...Option) *Config {
	c := &Config{
		layers: layer.NewManager(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.userConfigDir == "" {
		c.userConfigDir = defaultUserConfigDir()
	}

	return c
}

// Load reads configuration from all sources, in ascending priority order:
// built-in defaults, user settings, workspace settings, then environment
// variables. It is intended to be called exactly once at startup.
func (c *Config) Load(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.loadDefaults()

	if err := c.loadTOMLLayer("user-settings", layer.SourceUserGlobal, layer.PriorityUserGlobal,
		filepath.Join(c.userConfigDir, "settings.toml")); err != nil {
		return err
	}

	if c.projectConfigDir != "" {
		if err := c.loadTOMLLayer("workspace", layer.SourceWorkspace, layer.PriorityWorkspace,
			filepath.Join(c.projectConfigDir, "config.toml")); err != nil {
			return err
		}
	}

	return c.loadEnvironment()
}

// Close releases any resources held by the configuration system.
// Present for symmetry with New/Load; velum's config holds no resources
// that require explicit teardown once live reload is out of scope.
func (c *Config) Close() {}

// Get returns the value at the given path from the merged configuration.
func (c *Config) Get(path string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	merged := c.layers.Merge()
	return getPath(merged, path)
}

// GetString returns a string value at the given path.
func (c *Config) GetString(path string) (string, error) {
	v, ok := c.Get(path)
	if !ok {
		return "", ErrSettingNotFound
	}
	s, ok := v.(string)
	if !ok {
		return "", &TypeError{Path: path, Expected: "string", Actual: typeName(v)}
	}
	return s, nil
}

// GetInt returns an integer value at the given path.
func (c *Config) GetInt(path string) (int, error) {
	v, ok := c.Get(path)
	if !ok {
		return 0, ErrSettingNotFound
	}
	switch val := v.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case float64:
		return int(val), nil
	default:
		return 0, &TypeError{Path: path, Expected: "int", Actual: typeName(v)}
	}
}

// GetBool returns a boolean value at the given path.
func (c *Config) GetBool(path string) (bool, error) {
	v, ok := c.Get(path)
	if !ok {
		return false, ErrSettingNotFound
	}
	b, ok := v.(bool)
	if !ok {
		return false, &TypeError{Path: path, Expected: "bool", Actual: typeName(v)}
	}
	return b, nil
}

// Merged returns the fully merged configuration.
func (c *Config) Merged() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.layers.Merge()
}

// Watcher returns the watcher tunables section.
func (c *Config) Watcher() WatcherConfig {
	merged := c.Merged()
	w, _ := merged["watcher"].(map[string]any)
	return WatcherConfig{
		WatchVCS:  boolOr(w, "watchVCS", true),
		DebounceMS: intOr(w, "debounceMS", 250),
	}
}

// Indent returns the indent tunables section.
func (c *Config) Indent() IndentConfig {
	merged := c.Merged()
	i, _ := merged["indent"].(map[string]any)
	return IndentConfig{
		TabWidth:     intOr(i, "tabWidth", 4),
		InsertSpaces: boolOr(i, "insertSpaces", true),
	}
}

// loadDefaults loads the default configuration layer.
func (c *Config) loadDefaults() {
	l := layer.NewLayerWithData("defaults", layer.SourceBuiltin, layer.PriorityBuiltin, defaultConfig())
	c.layers.AddLayer(l)
}

// loadTOMLLayer loads a TOML file into a named layer, tolerating a missing file.
func (c *Config) loadTOMLLayer(name string, source layer.Source, priority int, path string) error {
	data, err := loader.NewTOMLLoader(path).Load()
	if err != nil {
		return err
	}
	if data == nil {
		return nil
	}
	c.layers.AddLayer(layer.NewLayerWithData(name, source, priority, data))
	return nil
}

// loadEnvironment loads configuration from VELUM_-prefixed environment variables.
func (c *Config) loadEnvironment() error {
	data, err := loader.NewEnvLoader("VELUM_").Load()
	if err != nil {
		return err
	}
	if len(data) > 0 {
		c.layers.AddLayer(layer.NewLayerWithData("environment", layer.SourceEnv, layer.PriorityEnv, data))
	}
	return nil
}

// defaultUserConfigDir returns the default user configuration directory.
func defaultUserConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "velum")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "velum")
}

// defaultConfig returns the built-in default configuration values.
func defaultConfig() map[string]any {
	return map[string]any{
		"watcher": map[string]any{
			"watchVCS":   true,
			"debounceMS": 250,
		},
		"indent": map[string]any{
			"tabWidth":     4,
			"insertSpaces": true,
		},
	}
}

// getPath retrieves a value from a nested map using a dot-separated path.
func getPath(m map[string]any, path string) (any, bool) {
	parts := splitPath(path)
	if len(parts) == 0 {
		return nil, false
	}

	current := any(m)
	for _, part := range parts {
		cm, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = cm[part]
		if !ok {
			return nil, false
		}
	}

	return current, true
}

// splitPath splits a dot-separated path into parts.
func splitPath(path string) []string {
	if path == "" {
		return nil
	}

	var parts []string
	current := ""
	for _, c := range path {
		if c == '.' {
			if current != "" {
				parts = append(parts, current)
				current = ""
			}
		} else {
			current += string(c)
		}
	}
	if current != "" {
		parts = append(parts, current)
	}
	return parts
}

// typeName returns the type name for error messages.
func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	switch v.(type) {
	case string:
		return "string"
	case int, int64:
		return "int"
	case float64:
		return "float64"
	case bool:
		return "bool"
	case map[string]any:
		return "map"
	default:
		return "unknown"
	}
}

func boolOr(m map[string]any, key string, def bool) bool {
	if m == nil {
		return def
	}
	if v, ok := m[key].(bool); ok {
		return v
	}
	return def
}

func intOr(m map[string]any, key string, def int) int {
	if m == nil {
		return def
	}
	switch v := m[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return def
	}
}
