package trust

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/velum-editor/velum/internal/logging"
)

// Entry is one recorded workspace trust decision.
type Entry struct {
	Path  string `toml:"path"`
	Level Level  `toml:"level"`
}

// storeFile is the on-disk TOML representation of the trust store.
type storeFile struct {
	Entries []Entry `toml:"entries"`
}

// TrustFile returns the path to the trust store file under configDir.
func TrustFile(configDir string) string {
	return filepath.Join(configDir, "trust.toml")
}

// Store is a persistent key/value store from canonical workspace path to
// trust Level, loaded from and saved to a TOML file.
type Store struct {
	mu      sync.RWMutex
	path    string
	entries map[string]Level
}

// NewStore returns an empty store backed by path; call Load to populate it
// from disk.
func NewStore(path string) *Store {
	return &Store{path: path, entries: make(map[string]Level)}
}

// Load reads the store's file, replacing in-memory state. A missing file is
// not an error: a workspace that has never recorded a decision simply has
// no entries yet.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		logging.Errorf("trust: reading %s: %v", s.path, err)
		return err
	}

	var file storeFile
	if _, err := toml.Decode(string(data), &file); err != nil {
		logging.Errorf("trust: decoding %s: %v", s.path, err)
		return err
	}

	entries := make(map[string]Level, len(file.Entries))
	for _, e := range file.Entries {
		entries[e.Path] = e.Level
	}

	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()
	return nil
}

// Save atomically writes the store to disk: it writes to a temp file in the
// same directory and renames it into place, diverging intentionally from
// the non-atomic fs::write used by the editor this was distilled from.
func (s *Store) Save() error {
	s.mu.RLock()
	file := storeFile{Entries: make([]Entry, 0, len(s.entries))}
	for path, level := range s.entries {
		file.Entries = append(file.Entries, Entry{Path: path, Level: level})
	}
	s.mu.RUnlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("trust: creating %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".trust-*.toml.tmp")
	if err != nil {
		return fmt.Errorf("trust: creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := toml.NewEncoder(tmp).Encode(file); err != nil {
		tmp.Close()
		return fmt.Errorf("trust: encoding %s: %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("trust: closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("trust: renaming into %s: %w", s.path, err)
	}
	return nil
}

// Get resolves workspace's trust Level: an exact match wins, then the
// longest ancestor-path match, then LevelUnknown.
func (s *Store) Get(workspace string) Level {
	canonical := canonicalizeWorkspace(workspace)

	s.mu.RLock()
	defer s.mu.RUnlock()

	if level, ok := s.entries[canonical]; ok {
		return level
	}

	best := ""
	bestLevel := LevelUnknown
	found := false
	for path, level := range s.entries {
		if hasPathPrefix(canonical, path) && len(path) > len(best) {
			best = path
			bestLevel = level
			found = true
		}
	}
	if found {
		return bestLevel
	}
	return LevelUnknown
}

// Set records level for workspace's canonical path.
func (s *Store) Set(workspace string, level Level) {
	canonical := canonicalizeWorkspace(workspace)
	s.mu.Lock()
	s.entries[canonical] = level
	s.mu.Unlock()
}

// Clear removes any recorded decision for workspace, reverting it to
// LevelUnknown.
func (s *Store) Clear(workspace string) {
	canonical := canonicalizeWorkspace(workspace)
	s.mu.Lock()
	delete(s.entries, canonical)
	s.mu.Unlock()
}

// canonicalizeWorkspace normalizes path for use as a store key: it resolves
// symlinks when possible and always falls back to filepath.Clean(abs path)
// so an unresolvable path (one that doesn't exist yet) still canonicalizes
// deterministically rather than erroring.
func canonicalizeWorkspace(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return filepath.Clean(resolved)
	}
	return filepath.Clean(abs)
}

// hasPathPrefix reports whether ancestor is a path-component-aligned prefix
// of path (ancestor itself excluded), so "/a/bc" is never considered a
// descendant of "/a/b".
func hasPathPrefix(path, ancestor string) bool {
	if path == ancestor {
		return false
	}
	return strings.HasPrefix(path, ancestor+string(filepath.Separator))
}

// expandTilde expands a leading "~" or "~/" in path to the current user's
// home directory. Paths without a leading tilde are returned unchanged.
func expandTilde(path string) string {
	if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
		return path
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
