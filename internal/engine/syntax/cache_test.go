package syntax

import "testing"

func TestCachePutGetRoundTrip(t *testing.T) {
	c := NewCache(4)
	defer c.Close()

	key := Key("doc-1", 3)
	c.Put(key, &Tree{Version: 3})

	got, ok := c.Get(key)
	if !ok {
		t.Fatal("Get() = false, want true after Put")
	}
	if got.Version != 3 {
		t.Errorf("Version = %d, want 3", got.Version)
	}

	if stats := c.Stats(); stats.Hits != 1 || stats.Misses != 0 {
		t.Errorf("Stats() = %+v, want 1 hit, 0 misses", stats)
	}
}

func TestCacheMiss(t *testing.T) {
	c := NewCache(4)
	defer c.Close()

	if _, ok := c.Get(Key("missing", 1)); ok {
		t.Error("Get() on an absent key = true, want false")
	}
	if stats := c.Stats(); stats.Misses != 1 {
		t.Errorf("Misses = %d, want 1", stats.Misses)
	}
}

func TestCacheEvictsOldestPastCapacity(t *testing.T) {
	c := NewCache(2)
	defer c.Close()

	c.Put(Key("a", 1), &Tree{Version: 1})
	c.Put(Key("b", 1), &Tree{Version: 2})
	c.Put(Key("c", 1), &Tree{Version: 3})

	if _, ok := c.Get(Key("a", 1)); ok {
		t.Error("oldest entry should have been evicted once capacity was exceeded")
	}
	if _, ok := c.Get(Key("c", 1)); !ok {
		t.Error("most recently inserted entry should still be present")
	}
	if stats := c.Stats(); stats.Evictions != 1 {
		t.Errorf("Evictions = %d, want 1", stats.Evictions)
	}
}

func TestCacheInvalidateAndClear(t *testing.T) {
	c := NewCache(4)
	defer c.Close()

	c.Put(Key("a", 1), &Tree{Version: 1})
	c.Put(Key("b", 1), &Tree{Version: 1})

	c.Invalidate(Key("a", 1))
	if _, ok := c.Get(Key("a", 1)); ok {
		t.Error("Invalidate should have removed the entry")
	}

	c.Clear()
	if _, ok := c.Get(Key("b", 1)); ok {
		t.Error("Clear should have removed every entry")
	}
}

func TestKeyFormat(t *testing.T) {
	if got := Key("doc-42", 7); got != "doc-42@7" {
		t.Errorf("Key() = %q, want %q", got, "doc-42@7")
	}
}
