package watcher

import (
	"path/filepath"
	"strings"
	"sync"
)

// hardcodedWhitelist names directories that are watched even though they
// begin with a dot or would otherwise be swallowed by an ignore rule.
var hardcodedWhitelist = []string{".helix", ".github", ".cargo", ".envrc"}

// isHardcodedWhitelist reports whether path's final component is one of the
// names editors expect to see regardless of ignore rules.
func isHardcodedWhitelist(path string) bool {
	base := filepath.Base(path)
	for _, name := range hardcodedWhitelist {
		if base == name {
			return true
		}
	}
	return false
}

// isHardcodedBlacklist reports whether path is a direct child of a directory
// that should never be crawled, such as a cargo registry cache.
func isHardcodedBlacklist(path string, isDir bool) bool {
	if !isDir {
		return false
	}
	return filepath.Base(filepath.Dir(path)) == ".cargo"
}

// isVCSIgnore reports whether path belongs to a version control system's
// private directory. When watchVCS is true, .git's contents are still
// ignored except for .git/HEAD, which must stay visible so branch switches
// are observed; watchVCS only toggles visibility of .git itself.
func isVCSIgnore(path string, watchVCS bool) bool {
	parent := filepath.Base(filepath.Dir(path))
	slash := filepath.ToSlash(path)
	isHead := slash == ".git/HEAD" || strings.HasSuffix(slash, "/.git/HEAD")
	if watchVCS && parent == ".git" && !isHead {
		return true
	}
	switch filepath.Base(path) {
	case ".jj", ".svn", ".hg":
		return true
	case ".git":
		return !watchVCS
	default:
		return false
	}
}

// isHidden reports whether path's final component begins with a dot. .git
// is excluded since isVCSIgnore already governs its visibility.
func isHidden(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") && base != ".git"
}

// AncestorIgnores holds one IgnorePatterns ruleset per ancestor directory
// between a watch root and the workspace root, kept in root-to-leaf order.
// Match reports a path ignored when any one ruleset ignores it, so a deeper
// ignore file's negation does not override a shallower file's ignore.
type AncestorIgnores struct {
	root  string
	rules []*IgnorePatterns
}

// NewAncestorIgnores builds a ruleset for root by loading an ignore file
// named name from root and every ancestor up to (and including) workspace.
// Missing files are silently skipped; only non-I/O read errors matter and
// none are surfaced here since AddFromFile only returns os.Open/scan errors,
// which are I/O errors by construction.
func NewAncestorIgnores(workspace, root, name string) *AncestorIgnores {
	ai := &AncestorIgnores{root: root}

	dirs := []string{root}
	for dir := root; dir != workspace && dir != filepath.Dir(dir); {
		parent := filepath.Dir(dir)
		dirs = append(dirs, parent)
		dir = parent
	}
	for i := len(dirs) - 1; i >= 0; i-- {
		ip := NewIgnorePatterns()
		_ = ip.AddFromFile(filepath.Join(dirs[i], name))
		if ip.Count() > 0 {
			ai.rules = append(ai.rules, ip)
		}
	}
	return ai
}

// Match ORs every ancestor ruleset's own verdict together: any ignore file
// in the chain can add an ignore, matching ordinary nested-.gitignore
// behavior. A deeper file's "!" negation only overrides ignores from that
// same file, not ones inherited from a shallower ancestor; full per-path
// override resolution across files is not modeled here.
func (ai *AncestorIgnores) Match(relPath string, isDir bool) bool {
	ignored := false
	for _, rule := range ai.rules {
		if rule.Match(relPath, isDir) {
			ignored = true
		}
	}
	return ignored
}

// WatchFilter composes the ordered ignore ruleset used to decide whether a
// path should be surfaced to watchers or the project crawler:
//
//  1. the local .watcherignore
//  2. the hardcoded whitelist
//  3. the hardcoded blacklist
//  4. ancestor-level ignore files of a single name (.gitignore from
//     NewWatchFilter; .ignore files are not read)
//  5. VCS directories
//  6. hidden files
//
// The first rule that reaches a decision wins.
type WatchFilter struct {
	mu         sync.RWMutex
	workspace  string
	local      *IgnorePatterns
	ancestors  *AncestorIgnores
	hidden     bool
	watchVCS   bool
}

// NewWatchFilter builds a filter for root within workspace. hidden controls
// whether dotfiles outside the whitelist are ignored; watchVCS controls
// whether .git's contents (other than HEAD) are surfaced.
func NewWatchFilter(workspace, root string, hidden, watchVCS bool) *WatchFilter {
	local := NewIgnorePatterns()
	_ = local.AddFromFile(filepath.Join(root, ".watcherignore"))
	return &WatchFilter{
		workspace: workspace,
		local:     local,
		ancestors: NewAncestorIgnores(workspace, root, ".gitignore"),
		hidden:    hidden,
		watchVCS:  watchVCS,
	}
}

// Ignore reports whether path (relative to the filter's root, isDir known)
// should be excluded from watching, applying the §4.6.1 rule order.
func (f *WatchFilter) Ignore(relPath string, path string, isDir bool) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.local.Count() > 0 {
		return f.local.Match(relPath, isDir)
	}
	if isHardcodedWhitelist(path) {
		return false
	}
	if isHardcodedBlacklist(path, isDir) {
		return true
	}
	if f.ancestors != nil && len(f.ancestors.rules) > 0 {
		return f.ancestors.Match(relPath, isDir)
	}
	if isVCSIgnore(path, f.watchVCS) {
		return true
	}
	return !f.hidden && isHidden(path)
}

// IgnoreRec applies Ignore recursively to path and every ancestor up to
// root, so an entire subtree can be pruned from a directory crawl the
// moment any ancestor is found to be ignored.
func (f *WatchFilter) IgnoreRec(root, path string, isDir bool) bool {
	for {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return false
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return false
		}
		if f.Ignore(rel, path, isDir) {
			return true
		}
		parent := filepath.Dir(path)
		if parent == path {
			return false
		}
		path = parent
		isDir = true
	}
}

// Reload rebuilds the filter's ignore files in place, for use after
// configuration changes or detected ignore-file edits.
func (f *WatchFilter) Reload(root, watcherignoreName, ancestorName string) {
	local := NewIgnorePatterns()
	_ = local.AddFromFile(filepath.Join(root, watcherignoreName))
	ancestors := NewAncestorIgnores(f.workspace, root, ancestorName)

	f.mu.Lock()
	f.local = local
	f.ancestors = ancestors
	f.mu.Unlock()
}
