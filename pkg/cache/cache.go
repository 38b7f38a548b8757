// Package cache provides a generic bounded cache safe for concurrent use.
package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache is a thread-safe least-recently-used cache. A Cache created with a
// size of zero stores nothing and every lookup misses.
type Cache[K comparable, V any] struct {
	lru *lru.Cache[K, V]
}

// New creates a cache holding at most size entries.
func New[K comparable, V any](size int) *Cache[K, V] {
	if size <= 0 {
		return &Cache[K, V]{}
	}

	l, err := lru.New[K, V](size)
	if err != nil {
		// lru.New only fails for non-positive sizes.
		return &Cache[K, V]{}
	}
	return &Cache[K, V]{lru: l}
}

// Get retrieves a value by key and marks it as recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	if c.lru == nil {
		var zero V
		return zero, false
	}
	return c.lru.Get(key)
}

// Set stores a value by key, evicting the oldest entry when full.
func (c *Cache[K, V]) Set(key K, value V) {
	if c.lru == nil {
		return
	}
	c.lru.Add(key, value)
}

// GetOrSet returns the cached value for key or computes, stores and returns it.
// Errors from fn are returned without caching.
func (c *Cache[K, V]) GetOrSet(key K, fn func() (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	v, err := fn()
	if err != nil {
		return v, err
	}
	c.Set(key, v)
	return v, nil
}

// Delete removes a key from the cache.
func (c *Cache[K, V]) Delete(key K) {
	if c.lru == nil {
		return
	}
	c.lru.Remove(key)
}

// Clear removes all entries.
func (c *Cache[K, V]) Clear() {
	if c.lru == nil {
		return
	}
	c.lru.Purge()
}

// Len returns the number of cached entries.
func (c *Cache[K, V]) Len() int {
	if c.lru == nil {
		return 0
	}
	return c.lru.Len()
}

// Keys returns the cached keys from oldest to newest.
func (c *Cache[K, V]) Keys() []K {
	if c.lru == nil {
		return nil
	}
	return c.lru.Keys()
}
