package font

import "sync"

// Cache holds the loaded tables of one conversion, keyed by font identifier.
// Concurrent page decoders share it; the first caller to ask for a font loads
// it and everyone else blocks until that load finishes, so a font binary is
// parsed exactly once per conversion.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
}

type cacheEntry struct {
	once  sync.Once
	table *Table
	err   error
}

// NewCache creates an empty font cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]*cacheEntry)}
}

// GetOrLoad returns the table for id, loading it with load on first use.
// A failed load is cached too: the opaque table and its error come back for
// every later request instead of re-parsing a broken binary.
func (c *Cache) GetOrLoad(id string, load func() (*Table, error)) (*Table, error) {
	c.mu.Lock()
	e, ok := c.entries[id]
	if !ok {
		e = &cacheEntry{}
		c.entries[id] = e
	}
	c.mu.Unlock()

	e.once.Do(func() {
		e.table, e.err = load()
	})
	return e.table, e.err
}

// Get returns an already loaded table, or nil.
func (c *Cache) Get(id string) *Table {
	c.mu.Lock()
	e, ok := c.entries[id]
	c.mu.Unlock()
	if !ok {
		return nil
	}
	// Synchronize with a load in flight.
	e.once.Do(func() {})
	return e.table
}

// Len returns the number of cached fonts.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
