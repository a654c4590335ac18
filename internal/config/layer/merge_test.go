package layer

import "testing"

func TestDeepMerge_OverridesScalars(t *testing.T) {
	dst := map[string]any{"a": 1, "b": 2}
	src := map[string]any{"a": 3}

	got := DeepMerge(dst, src)
	if got["a"] != 3 {
		t.Errorf("a = %v, want 3", got["a"])
	}
	if got["b"] != 2 {
		t.Errorf("b = %v, want 2 (untouched by src)", got["b"])
	}
}

func TestDeepMerge_MergesNestedMapsRecursively(t *testing.T) {
	dst := map[string]any{"indent": map[string]any{"tabWidth": 4, "style": "spaces"}}
	src := map[string]any{"indent": map[string]any{"tabWidth": 2}}

	got := DeepMerge(dst, src)
	indent := got["indent"].(map[string]any)
	if indent["tabWidth"] != 2 {
		t.Errorf("tabWidth = %v, want 2", indent["tabWidth"])
	}
	if indent["style"] != "spaces" {
		t.Errorf("style = %v, want 'spaces' (untouched by src)", indent["style"])
	}
}

func TestDeepMerge_NonMapReplacesRatherThanMerges(t *testing.T) {
	dst := map[string]any{"a": map[string]any{"nested": true}}
	src := map[string]any{"a": "scalar"}

	got := DeepMerge(dst, src)
	if got["a"] != "scalar" {
		t.Errorf("a = %v, want 'scalar' to replace the map entirely", got["a"])
	}
}

func TestDeepMerge_NilSrcReturnsDstUnchanged(t *testing.T) {
	dst := map[string]any{"a": 1}
	got := DeepMerge(dst, nil)
	if got["a"] != 1 {
		t.Errorf("a = %v, want 1", got["a"])
	}
}

func TestDeepMerge_DoesNotAliasSrc(t *testing.T) {
	src := map[string]any{"nested": map[string]any{"v": 1}}
	got := DeepMerge(map[string]any{}, src)

	src["nested"].(map[string]any)["v"] = 2
	if got["nested"].(map[string]any)["v"] != 1 {
		t.Error("DeepMerge aliased src's nested map instead of cloning it")
	}
}

func TestGetByPath(t *testing.T) {
	data := map[string]any{
		"watcher": map[string]any{"watchVCS": true},
	}

	if v, ok := GetByPath(data, "watcher.watchVCS"); !ok || v != true {
		t.Errorf("GetByPath(watcher.watchVCS) = (%v, %v), want (true, true)", v, ok)
	}
	if _, ok := GetByPath(data, "watcher.missing"); ok {
		t.Error("GetByPath found a path that doesn't exist")
	}
	if _, ok := GetByPath(nil, "a"); ok {
		t.Error("GetByPath(nil, ...) should report not found")
	}
}
