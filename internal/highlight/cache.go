package highlight

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds how many highlighted classes are kept.
const DefaultCacheSize = 256

// Cache memoizes Scan results per qualified class name so re-selecting a
// class in the viewer does not re-lex its source. Entries are keyed by
// name only: within one loaded archive a class's text never changes, and
// the cache is purged when a new archive replaces the store.
type Cache struct {
	lru *lru.Cache[string, []Span]
}

// NewCache creates a cache holding at most size entries. A size of zero
// or less falls back to DefaultCacheSize.
func NewCache(size int) *Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	// lru.New only errors on a non-positive size, which is excluded above.
	c, _ := lru.New[string, []Span](size)
	return &Cache{lru: c}
}

// Scan returns the cached spans for name, lexing text on a miss.
func (c *Cache) Scan(name, text string) []Span {
	if spans, ok := c.lru.Get(name); ok {
		return spans
	}
	spans := Scan(text)
	c.lru.Add(name, spans)
	return spans
}

// Purge drops all cached spans. Called when the result store is cleared.
func (c *Cache) Purge() {
	c.lru.Purge()
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	return c.lru.Len()
}
