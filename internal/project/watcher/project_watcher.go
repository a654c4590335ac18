package watcher

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/velum-editor/velum/internal/logging"
)

// ChangeKind classifies a FileSystemDidChange event.
type ChangeKind int

const (
	Created ChangeKind = iota
	Modified
	Deleted
)

func (k ChangeKind) String() string {
	switch k {
	case Created:
		return "created"
	case Modified:
		return "modified"
	case Deleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// ChangeEvent is one canonicalized file system change, the unit dispatched
// in a FileSystemDidChange notification batch.
type ChangeEvent struct {
	Path string
	Kind ChangeKind
}

// FileSystemDidChange is the batch notification published whenever the
// project watcher observes one or more changes, whether from the native
// backend or from a polling tick.
type FileSystemDidChange struct {
	Events []ChangeEvent
}

// extraPath is a caller-added path outside every watched root, tracked by
// last known mtime so PollExtra can detect changes on a caller-driven tick.
type extraPath struct {
	path  string
	mtime time.Time
	ok    bool // whether the last stat succeeded
}

// ProjectWatcher composes the native Watcher backend, the ignore-aware
// WatchFilter, and a sorted Roots list into the workspace-level watching
// model described in spec §4.6. Construction never fails outright: when the
// native backend is unavailable, the watcher becomes inert (IsActive false)
// and every root is remembered for a later Reload, matching the original's
// "log at info level and become inert" failure semantics.
type ProjectWatcher struct {
	mu        sync.Mutex
	workspace string
	watchVCS  bool
	hidden    bool

	backend Watcher // nil when inert
	filter  *WatchFilter
	roots   *Roots

	extra []extraPath

	notify func(FileSystemDidChange)
}

// NewProjectWatcher builds a watcher rooted at workspace. notify is called
// with every batch of observed changes; it may be nil if the caller only
// wants to poll Stats/IsWatching.
func NewProjectWatcher(workspace string, hidden, watchVCS bool, notify func(FileSystemDidChange)) *ProjectWatcher {
	canonical, err := filepath.EvalSymlinks(workspace)
	if err != nil {
		canonical = filepath.Clean(workspace)
	}
	pw := &ProjectWatcher{
		workspace: canonical,
		hidden:    hidden,
		watchVCS:  watchVCS,
		roots:     NewRoots(canonical),
		notify:    notify,
	}
	pw.Reload()
	return pw
}

// Reload rebuilds the filter and (re)starts the native backend. It is safe
// to call at any time, including after a prior failed attempt.
func (pw *ProjectWatcher) Reload() {
	pw.mu.Lock()
	defer pw.mu.Unlock()

	pw.filter = NewWatchFilter(pw.workspace, pw.workspace, pw.hidden, pw.watchVCS)
	pw.roots.SetFilter(pw.filter)

	if pw.backend == nil {
		backend, err := NewFSNotifyWatcher(WithEventFilter(pw.acceptEvent))
		if err != nil {
			logging.Infof("file-watcher not available: %v", err)
			return
		}
		pw.backend = backend
		go pw.pump(backend)
	}

	if err := pw.backend.WatchRecursive(pw.workspace); err != nil {
		logging.Errorf("failed to start file-watcher: %v", err)
	}
	for _, p := range pw.roots.Paths() {
		if err := pw.backend.WatchRecursive(p); err != nil {
			logging.Errorf("failed to watch %s: %v", p, err)
		}
	}
}

// acceptEvent applies the WatchFilter to a raw backend event before it is
// ever handed to a subscriber, implementing the rule ordering in §4.6.1.
func (pw *ProjectWatcher) acceptEvent(event Event) bool {
	pw.mu.Lock()
	filter := pw.filter
	pw.mu.Unlock()
	if filter == nil {
		return true
	}
	info, err := os.Stat(event.Path)
	isDir := err == nil && info.IsDir()
	rel, relErr := filepath.Rel(pw.workspace, event.Path)
	if relErr != nil {
		rel = event.Path
	}
	return !filter.Ignore(filepath.ToSlash(rel), event.Path, isDir)
}

// pump translates backend events into FileSystemDidChange notifications.
func (pw *ProjectWatcher) pump(backend Watcher) {
	for {
		event, ok := <-backend.Events()
		if !ok {
			return
		}
		kind := Modified
		switch {
		case event.Op.Has(OpCreate):
			kind = Created
		case event.Op.Has(OpRemove):
			kind = Deleted
		}
		pw.dispatch(ChangeEvent{Path: event.Path, Kind: kind})
	}
}

func (pw *ProjectWatcher) dispatch(events ...ChangeEvent) {
	if pw.notify == nil || len(events) == 0 {
		return
	}
	pw.notify(FileSystemDidChange{Events: events})
}

// IsActive reports whether the native backend started successfully.
func (pw *ProjectWatcher) IsActive() bool {
	pw.mu.Lock()
	defer pw.mu.Unlock()
	return pw.backend != nil
}

// AddRoot starts watching an additional directory outside the workspace,
// per the dedup rules in spec §4.6.2.
func (pw *ProjectWatcher) AddRoot(path string) error {
	canonical, added, err := pw.roots.Add(path)
	if err != nil || !added {
		return err
	}
	pw.mu.Lock()
	backend := pw.backend
	pw.mu.Unlock()
	if backend != nil {
		return backend.WatchRecursive(canonical)
	}
	return nil
}

// RemoveRoot decrements path's refcount, unwatching it once it reaches zero.
func (pw *ProjectWatcher) RemoveRoot(path string) error {
	canonical, err := filepath.EvalSymlinks(path)
	if err != nil {
		canonical = filepath.Clean(path)
	}
	removed, err := pw.roots.Remove(canonical)
	if err != nil || !removed {
		return err
	}
	pw.mu.Lock()
	backend := pw.backend
	pw.mu.Unlock()
	if backend != nil {
		return backend.Unwatch(canonical)
	}
	return nil
}

// SetExtraWatchedPaths replaces the set of paths polled on each PollExtra
// tick because they lie outside the workspace and every added root (e.g. a
// VCS HEAD file reached only by symlink). Paths already inside the
// workspace are dropped since the native backend already covers them.
func (pw *ProjectWatcher) SetExtraWatchedPaths(paths []string) {
	pw.mu.Lock()
	defer pw.mu.Unlock()

	extra := make([]extraPath, 0, len(paths))
	for _, p := range paths {
		if p == pw.workspace || strings.HasPrefix(p, pw.workspace+string(filepath.Separator)) {
			continue
		}
		ep := extraPath{path: p}
		if info, err := os.Stat(p); err == nil {
			ep.mtime, ep.ok = info.ModTime(), true
		}
		extra = append(extra, ep)
	}
	pw.extra = extra
	if len(extra) > 0 {
		logging.Infof("added %d extra paths for polling", len(extra))
	}
}

// HasExtraWatchedPaths reports whether any paths are tracked for polling.
func (pw *ProjectWatcher) HasExtraWatchedPaths() bool {
	pw.mu.Lock()
	defer pw.mu.Unlock()
	return len(pw.extra) > 0
}

// PollExtra re-stats every extra path, returning those whose mtime (or
// existence) changed since the last call and updating the recorded mtime,
// matching the original's caller-driven polling fallback for paths that
// can't be natively watched.
func (pw *ProjectWatcher) PollExtra() []string {
	pw.mu.Lock()
	defer pw.mu.Unlock()

	var changed []string
	for i := range pw.extra {
		ep := &pw.extra[i]
		info, err := os.Stat(ep.path)
		nowOK := err == nil
		var nowMtime time.Time
		if nowOK {
			nowMtime = info.ModTime()
		}
		if nowOK != ep.ok || !nowMtime.Equal(ep.mtime) {
			changed = append(changed, ep.path)
			ep.ok, ep.mtime = nowOK, nowMtime
		}
	}
	if len(changed) > 0 {
		events := make([]ChangeEvent, len(changed))
		for i, p := range changed {
			events[i] = ChangeEvent{Path: p, Kind: Modified}
		}
		pw.dispatch(events...)
	}
	return changed
}

// Close stops the native backend, if any.
func (pw *ProjectWatcher) Close() error {
	pw.mu.Lock()
	backend := pw.backend
	pw.backend = nil
	pw.mu.Unlock()
	if backend == nil {
		return nil
	}
	return backend.Close()
}
