package trust

import (
	"path/filepath"
	"testing"
)

func TestStoreGetUnknownWorkspace(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "trust.toml"))
	if got := s.Get("/nowhere"); got != LevelUnknown {
		t.Fatalf("Get() on empty store = %v, want LevelUnknown", got)
	}
}

func TestStoreSetThenGetExactMatch(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "trust.toml"))
	dir := t.TempDir()

	s.Set(dir, LevelTrusted)
	if got := s.Get(dir); got != LevelTrusted {
		t.Fatalf("Get(%q) = %v, want LevelTrusted", dir, got)
	}
}

func TestStoreGetLongestAncestorMatch(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "trust.toml"))
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")

	s.Set(root, LevelUntrusted)
	s.Set(filepath.Join(root, "a"), LevelTrusted)

	if got := s.Get(nested); got != LevelTrusted {
		t.Fatalf("Get(%q) = %v, want LevelTrusted (longest ancestor match)", nested, got)
	}
}

func TestStoreClearRevertsToUnknown(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "trust.toml"))
	dir := t.TempDir()

	s.Set(dir, LevelTrusted)
	s.Clear(dir)
	if got := s.Get(dir); got != LevelUnknown {
		t.Fatalf("Get() after Clear() = %v, want LevelUnknown", got)
	}
}

func TestStoreSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trust.toml")
	dir := t.TempDir()

	s := NewStore(path)
	s.Set(dir, LevelTrusted)
	if err := s.Save(); err != nil {
		t.Fatalf("Save(): %v", err)
	}

	loaded := NewStore(path)
	if err := loaded.Load(); err != nil {
		t.Fatalf("Load(): %v", err)
	}
	if got := loaded.Get(dir); got != LevelTrusted {
		t.Fatalf("Get() after round trip = %v, want LevelTrusted", got)
	}
}

func TestStoreLoadMissingFileIsNotError(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err := s.Load(); err != nil {
		t.Fatalf("Load() on missing file = %v, want nil", err)
	}
}

func TestCanonicalizeWorkspaceNormalizesPath(t *testing.T) {
	dir := t.TempDir()
	withDotDot := filepath.Join(dir, "a", "..", "b")

	got := canonicalizeWorkspace(withDotDot)
	want := canonicalizeWorkspace(filepath.Join(dir, "b"))
	if got != want {
		t.Fatalf("canonicalizeWorkspace(%q) = %q, want %q", withDotDot, got, want)
	}
}

func TestHasPathPrefixRequiresSeparatorBoundary(t *testing.T) {
	if hasPathPrefix("/a/bc", "/a/b") {
		t.Fatal("hasPathPrefix treated /a/bc as a descendant of /a/b")
	}
	if !hasPathPrefix("/a/b/c", "/a/b") {
		t.Fatal("hasPathPrefix did not recognize /a/b/c as a descendant of /a/b")
	}
	if hasPathPrefix("/a/b", "/a/b") {
		t.Fatal("hasPathPrefix treated a path as its own descendant")
	}
}

func TestExpandTildeHomeDirectory(t *testing.T) {
	got := expandTilde("~/foo")
	if got == "~/foo" {
		t.Fatal("expandTilde did not expand ~/foo")
	}
}

func TestExpandTildeLeavesOtherPathsUnchanged(t *testing.T) {
	if got := expandTilde("/abs/path"); got != "/abs/path" {
		t.Fatalf("expandTilde(%q) = %q, want unchanged", "/abs/path", got)
	}
}
