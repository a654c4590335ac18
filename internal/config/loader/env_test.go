package loader

import (
	"os"
	"testing"
)

func TestEnvLoader_Load(t *testing.T) {
	os.Setenv("VELUM_TAB_WIDTH", "2")
	os.Setenv("VELUM_WATCH_VCS", "true")
	defer func() {
		os.Unsetenv("VELUM_TAB_WIDTH")
		os.Unsetenv("VELUM_WATCH_VCS")
	}()

	loader := NewEnvLoader("VELUM_")
	config, err := loader.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if val, ok := getByPath(config, "indent.tabWidth"); !ok || val != int64(2) {
		t.Errorf("indent.tabWidth = %v (%T), want 2", val, val)
	}
	if val, ok := getByPath(config, "watcher.watchVCS"); !ok || val != true {
		t.Errorf("watcher.watchVCS = %v, want true", val)
	}
}

func TestEnvLoader_LoadUnmapped(t *testing.T) {
	os.Setenv("VELUM_CUSTOM_SETTING", "value")
	defer os.Unsetenv("VELUM_CUSTOM_SETTING")

	loader := NewEnvLoader("VELUM_")
	config, err := loader.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if val, ok := getByPath(config, "custom.setting"); !ok || val != "value" {
		t.Errorf("custom.setting = %v, want 'value'", val)
	}
}

func TestEnvLoader_envToPath(t *testing.T) {
	loader := NewEnvLoader("VELUM_")

	tests := []struct {
		env      string
		expected string
	}{
		{"VELUM_WATCHER_WATCH_VCS", "watcher.watchVCS"},
		{"VELUM_INDENT_TAB_WIDTH", "indent.tabWidth"},
		{"VELUM_SIMPLE", "simple"},
		{"VELUM_DEEP_NESTED_PATH", "deep.nestedPath"},
	}

	for _, tt := range tests {
		got := loader.envToPath(tt.env)
		if got != tt.expected {
			t.Errorf("envToPath(%q) = %q, want %q", tt.env, got, tt.expected)
		}
	}
}

func TestEnvLoader_parseValue(t *testing.T) {
	loader := NewEnvLoader("VELUM_")

	tests := []struct {
		input    string
		expected any
	}{
		{"true", true},
		{"True", true},
		{"yes", true},
		{"on", true},
		{"1", true},
		{"false", false},
		{"no", false},
		{"off", false},
		{"0", false},
		{"42", int64(42)},
		{"-10", int64(-10)},
		{"hello", "hello"},
		{"", ""},
	}

	for _, tt := range tests {
		got := loader.parseValue(tt.input)
		if got != tt.expected {
			t.Errorf("parseValue(%q) = %v (%T), want %v (%T)",
				tt.input, got, got, tt.expected, tt.expected)
		}
	}
}

func TestEnvLoader_AddRemoveMapping(t *testing.T) {
	loader := NewEnvLoader("VELUM_")

	loader.AddMapping("CUSTOM_VAR", "custom.path")

	os.Setenv("CUSTOM_VAR", "custom_value")
	defer os.Unsetenv("CUSTOM_VAR")

	config, _ := loader.Load()

	if val, ok := getByPath(config, "custom.path"); !ok || val != "custom_value" {
		t.Errorf("custom.path = %v, want 'custom_value'", val)
	}

	loader.RemoveMapping("CUSTOM_VAR")
}

func TestNewEnvLoaderWithMapping(t *testing.T) {
	customMapping := map[string]string{
		"MY_VAR": "my.setting",
	}

	loader := NewEnvLoaderWithMapping("MY_", customMapping)

	os.Setenv("MY_VAR", "test_value")
	defer os.Unsetenv("MY_VAR")

	config, _ := loader.Load()

	if val, ok := getByPath(config, "my.setting"); !ok || val != "test_value" {
		t.Errorf("my.setting = %v, want 'test_value'", val)
	}
}

func TestGetEnvOrDefault(t *testing.T) {
	os.Setenv("TEST_EXISTS", "exists")
	defer os.Unsetenv("TEST_EXISTS")

	if val := GetEnvOrDefault("TEST_EXISTS", "default"); val != "exists" {
		t.Errorf("GetEnvOrDefault = %q, want 'exists'", val)
	}
	if val := GetEnvOrDefault("TEST_NOT_EXISTS", "default"); val != "default" {
		t.Errorf("GetEnvOrDefault = %q, want 'default'", val)
	}
}

// Helper to get value by path.
func getByPath(data map[string]any, path string) (any, bool) {
	parts := splitPath(path)
	current := any(data)

	for _, part := range parts {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		val, exists := m[part]
		if !exists {
			return nil, false
		}
		current = val
	}

	return current, true
}

func splitPath(path string) []string {
	var result []string
	current := ""
	for _, c := range path {
		if c == '.' {
			if current != "" {
				result = append(result, current)
				current = ""
			}
		} else {
			current += string(c)
		}
	}
	if current != "" {
		result = append(result, current)
	}
	return result
}
