// Package cache provides a generic thread-safe cache keyed by path whose
// entries are invalidated by file size and modification time, with optional
// LRU eviction.
package cache
