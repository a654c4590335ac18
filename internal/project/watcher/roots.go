package watcher

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// root is one entry in a Roots list: a canonical path and the number of
// callers that have added it (removed only once the count reaches zero).
type root struct {
	path     string
	refcount int
}

// Roots tracks the set of directories a Watcher is watching beyond the
// workspace root, deduplicating descendants of roots (or the workspace)
// that are already covered, per spec §4.6.2.
type Roots struct {
	mu        sync.Mutex
	workspace string
	entries   []root
	filter    *WatchFilter
}

// NewRoots creates an empty root set scoped to workspace.
func NewRoots(workspace string) *Roots {
	return &Roots{workspace: workspace}
}

// SetFilter installs the filter used to decide whether a candidate root is
// itself ignored by an existing root's ruleset (so e.g. a build/ directory
// added explicitly doesn't get added when it's already pruned).
func (r *Roots) SetFilter(filter *WatchFilter) {
	r.mu.Lock()
	r.filter = filter
	r.mu.Unlock()
}

// Add canonicalizes path and inserts it into the sorted root list,
// returning true if a new root was actually added (i.e. the watcher backend
// should start watching it) and false when the call only bumped a refcount
// or the path was already covered by an existing root or the workspace.
func (r *Roots) Add(path string) (canonical string, added bool, err error) {
	canonical, err = filepath.EvalSymlinks(path)
	if err != nil {
		return "", false, err
	}
	canonical = filepath.Clean(canonical)

	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.HasPrefix(canonical, r.workspace+string(filepath.Separator)) || canonical == r.workspace {
		return canonical, false, nil
	}

	i := sort.Search(len(r.entries), func(i int) bool { return r.entries[i].path >= canonical })
	if i < len(r.entries) && r.entries[i].path == canonical {
		r.entries[i].refcount++
		return canonical, false, nil
	}

	if r.isDescendantOfExistingRoot(canonical) {
		return canonical, false, nil
	}

	r.entries = append(r.entries, root{})
	copy(r.entries[i+1:], r.entries[i:])
	r.entries[i] = root{path: canonical, refcount: 1}
	return canonical, true, nil
}

// isDescendantOfExistingRoot reports whether canonical is nested under an
// already-tracked root that is not itself ignored by the current filter.
// Called with r.mu held.
func (r *Roots) isDescendantOfExistingRoot(canonical string) bool {
	for _, e := range r.entries {
		if e.path == canonical {
			continue
		}
		if !strings.HasPrefix(canonical, e.path+string(filepath.Separator)) {
			continue
		}
		if r.filter == nil {
			return true
		}
		if !r.filter.IgnoreRec(e.path, canonical, true) {
			return true
		}
	}
	return false
}

// Remove decrements path's refcount, removing it from the root list once it
// reaches zero. removed reports whether the root was actually dropped.
func (r *Roots) Remove(path string) (removed bool, err error) {
	canonical, err := filepath.EvalSymlinks(path)
	if err != nil {
		canonical = filepath.Clean(path)
	} else {
		canonical = filepath.Clean(canonical)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := sort.Search(len(r.entries), func(i int) bool { return r.entries[i].path >= canonical })
	if i >= len(r.entries) || r.entries[i].path != canonical {
		return false, nil
	}

	r.entries[i].refcount--
	if r.entries[i].refcount > 0 {
		return false, nil
	}
	r.entries = append(r.entries[:i], r.entries[i+1:]...)
	return true, nil
}

// Paths returns the currently tracked root paths in sorted order.
func (r *Roots) Paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	paths := make([]string, len(r.entries))
	for i, e := range r.entries {
		paths[i] = e.path
	}
	return paths
}
