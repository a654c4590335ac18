package syntax

import (
	"fmt"
	"sync"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultCacheEntries = 256

// CacheStats tracks basic cache counters.
type CacheStats struct {
	Hits      int64
	Misses    int64
	Evictions int64
}

// Cache stores one parsed Tree per (document, version) key and hands out
// clones, so several callers asking for the same unedited version's tree
// (e.g. an indent query followed by a fold query) don't each force their
// own parse.
type Cache struct {
	mu      sync.Mutex
	entries *lru.Cache[string, *Tree]

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64

	closed bool
}

// NewCache creates a cache holding up to maxEntries trees. maxEntries <= 0
// uses defaultCacheEntries.
func NewCache(maxEntries int) *Cache {
	if maxEntries <= 0 {
		maxEntries = defaultCacheEntries
	}
	c := &Cache{}
	c.entries, _ = lru.NewWithEvict[string, *Tree](maxEntries, c.onEvicted)
	return c
}

// Key builds the cache key for one document's version.
func Key(docID string, version uint64) string {
	return fmt.Sprintf("%s@%d", docID, version)
}

// Get returns a clone of the cached tree for key, if present.
func (c *Cache) Get(key string) (*Tree, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	tree, ok := c.entries.Get(key)
	if !ok {
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return tree.Clone(), true
}

// Put stores tree under key. The cache takes ownership of tree; callers
// keep using their own clone.
func (c *Cache) Put(key string, tree *Tree) {
	if tree == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		tree.Close()
		return
	}
	if old, ok := c.entries.Get(key); ok {
		old.Close()
		c.entries.Remove(key)
	}
	c.entries.Add(key, tree)
}

// Invalidate drops the single entry at key.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.entries.Remove(key)
}

// Clear drops every cached tree.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.entries.Purge()
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() CacheStats {
	return CacheStats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}

// Close releases every cached tree.
func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.entries.Purge()
	c.closed = true
	return nil
}

func (c *Cache) onEvicted(_ string, tree *Tree) {
	c.evictions.Add(1)
	if tree != nil {
		tree.Close()
	}
}
