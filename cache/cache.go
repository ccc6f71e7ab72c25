// Package cache provides a read-through memo for loaded record sets.
package cache

import "log"

type Stats struct {
	Hits    int
	Misses  int
	Entries int
}

// Cache remembers every successfully loaded value for the life of the
// process. There is no eviction and no invalidation. It is not safe for
// concurrent use.
type Cache[K comparable, V any] struct {
	entries map[K]V
	hits    int
	misses  int
	logger  *log.Logger
}

func New[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{
		entries: make(map[K]V),
		logger:  log.Default(),
	}
}

// SetLogger replaces the logger used for hit/miss diagnostics; nil silences them.
func (c *Cache[K, V]) SetLogger(l *log.Logger) {
	c.logger = l
}

// GetOrLoad returns the cached value for key, or calls load, stores its result
// and returns it. A failed load stores nothing. The bool reports a cache hit.
func (c *Cache[K, V]) GetOrLoad(key K, load func() (V, error)) (V, bool, error) {
	if v, ok := c.entries[key]; ok {
		c.hits++
		c.logf("[cache hit] result for '%v' found in cache", key)
		return v, true, nil
	}

	c.misses++
	c.logf("[cache miss] loading '%v'", key)
	v, err := load()
	if err != nil {
		var zero V
		return zero, false, err
	}
	c.entries[key] = v
	return v, false, nil
}

func (c *Cache[K, V]) Len() int { return len(c.entries) }

func (c *Cache[K, V]) Stats() Stats {
	return Stats{Hits: c.hits, Misses: c.misses, Entries: len(c.entries)}
}

func (c *Cache[K, V]) logf(format string, args ...any) {
	if c.logger != nil {
		c.logger.Printf(format, args...)
	}
}
