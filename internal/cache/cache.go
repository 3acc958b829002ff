package cache

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// Entry holds cached data with the file metadata it was computed from.
type Entry[T any] struct {
	Data       T
	ModTime    time.Time
	Size       int64
	LastAccess time.Time
}

// Matches reports whether the entry was stored for exactly this metadata.
func (e Entry[T]) Matches(size int64, modTime time.Time) bool {
	return e.Size == size && e.ModTime.Equal(modTime)
}

// Cache is a thread-safe generic cache keyed by path and invalidated by
// file metadata. With maxSize > 0 the least recently used entries are
// evicted once the cache grows past it; maxSize <= 0 means unbounded.
type Cache[T any] struct {
	entries map[string]Entry[T]
	mu      sync.RWMutex
	maxSize int
	now     func() time.Time
}

// New creates a new cache with the specified maximum number of entries.
func New[T any](maxSize int) *Cache[T] {
	return &Cache[T]{
		entries: make(map[string]Entry[T]),
		maxSize: maxSize,
		now:     time.Now,
	}
}

// Get returns cached data if the file hasn't changed.
// Returns (data, true) if cache hit, (zero, false) if miss or stale.
// A stale entry stays in place until Set replaces it.
func (c *Cache[T]) Get(key string, size int64, modTime time.Time) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok || !entry.Matches(size, modTime) {
		var zero T
		return zero, false
	}

	entry.LastAccess = c.now()
	c.entries[key] = entry
	return entry.Data, true
}

// Peek returns the raw entry for key without touching its access time.
func (c *Cache[T]) Peek(key string) (Entry[T], bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[key]
	return entry, ok
}

// Set stores data in the cache with file metadata, replacing any previous
// entry for key.
func (c *Cache[T]) Set(key string, data T, size int64, modTime time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = Entry[T]{
		Data:       data,
		ModTime:    modTime,
		Size:       size,
		LastAccess: c.now(),
	}

	c.evictOldestLocked()
}

// Delete removes an entry from the cache.
func (c *Cache[T]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// DeleteIf removes entries matching the predicate and returns how many
// were removed.
func (c *Cache[T]) DeleteIf(pred func(key string, entry Entry[T]) bool) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for key, entry := range c.entries {
		if pred(key, entry) {
			delete(c.entries, key)
			n++
		}
	}
	return n
}

// DeletePrefix removes key itself and every key below it when key is a
// directory path using sep as separator.
func (c *Cache[T]) DeletePrefix(key string, sep string) int {
	key = strings.TrimSuffix(key, sep)
	dir := key + sep
	return c.DeleteIf(func(k string, _ Entry[T]) bool {
		return k == key || strings.HasPrefix(k, dir)
	})
}

// Clear drops every entry.
func (c *Cache[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]Entry[T])
}

// Len returns the number of entries in the cache.
func (c *Cache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// evictOldestLocked removes oldest entries when over capacity.
// Must be called with lock held.
func (c *Cache[T]) evictOldestLocked() {
	if c.maxSize <= 0 {
		return
	}
	excess := len(c.entries) - c.maxSize
	if excess <= 0 {
		return
	}

	type keyAccess struct {
		key        string
		lastAccess time.Time
	}
	entries := make([]keyAccess, 0, len(c.entries))
	for key, entry := range c.entries {
		entries = append(entries, keyAccess{key, entry.LastAccess})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].lastAccess.Before(entries[j].lastAccess)
	})

	for i := range excess {
		delete(c.entries, entries[i].key)
	}
}
