package layer

import "testing"

func TestManager_AddLayer_SortsByPriority(t *testing.T) {
	m := NewManager()
	m.AddLayer(NewLayerWithData("workspace", SourceWorkspace, PriorityWorkspace, map[string]any{"a": 1}))
	m.AddLayer(NewLayerWithData("defaults", SourceBuiltin, PriorityBuiltin, map[string]any{"a": 0}))
	m.AddLayer(NewLayerWithData("env", SourceEnv, PriorityEnv, map[string]any{"a": 2}))

	if got := m.LayerCount(); got != 3 {
		t.Fatalf("LayerCount() = %d, want 3", got)
	}

	merged := m.Merge()
	if merged["a"] != 2 {
		t.Errorf("Merge()[\"a\"] = %v, want 2 (highest priority layer wins)", merged["a"])
	}
}

func TestManager_MergeCachesUntilAddLayer(t *testing.T) {
	m := NewManager()
	m.AddLayer(NewLayerWithData("defaults", SourceBuiltin, PriorityBuiltin, map[string]any{"a": 1}))

	first := m.Merge()
	first["a"] = 999 // mutate the returned (cloned) map; must not affect the cache

	second := m.Merge()
	if second["a"] != 1 {
		t.Errorf("Merge() returned a map that aliased the cache: got %v, want 1", second["a"])
	}
}

func TestManager_MergeDeepMergesNestedMaps(t *testing.T) {
	m := NewManager()
	m.AddLayer(NewLayerWithData("defaults", SourceBuiltin, PriorityBuiltin, map[string]any{
		"watcher": map[string]any{"watchVCS": false, "ignoreFiles": []any{".gitignore"}},
	}))
	m.AddLayer(NewLayerWithData("workspace", SourceWorkspace, PriorityWorkspace, map[string]any{
		"watcher": map[string]any{"watchVCS": true},
	}))

	merged := m.Merge()
	watcher := merged["watcher"].(map[string]any)
	if watcher["watchVCS"] != true {
		t.Errorf("watchVCS = %v, want true (workspace layer should override)", watcher["watchVCS"])
	}
	if ignore, ok := watcher["ignoreFiles"].([]any); !ok || len(ignore) != 1 {
		t.Errorf("ignoreFiles = %v, want [.gitignore] preserved from the lower-priority layer", watcher["ignoreFiles"])
	}
}
