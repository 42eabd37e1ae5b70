package lookup

import "sync"

// Cache memoises resolved records by identifier so repeated value assignments
// skip the network. It is safe to share one cache between clients and fields.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Record
}

// NewCache constructs an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]Record)}
}

// Get returns the cached record for the canonical id key.
func (c *Cache) Get(key string) (Record, bool) {
	if c == nil {
		return Record{}, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	record, ok := c.entries[key]
	return record, ok
}

// Put stores a record under its canonical id key.
func (c *Cache) Put(record Record) {
	if c == nil || record.ID == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries == nil {
		c.entries = make(map[string]Record)
	}
	c.entries[record.Key()] = record
}

// Flush drops every cached record.
func (c *Cache) Flush() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]Record)
}

// Len returns the number of cached records.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
