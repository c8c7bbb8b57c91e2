package catalog

import (
	"context"
	"sync"
	"time"
)

// MemoryCatalog is an in-memory Catalog.
// Thread-safe for concurrent use.
type MemoryCatalog struct {
	mu      sync.RWMutex
	entries map[string][]Entry
	now     func() time.Time
}

// NewMemoryCatalog creates an empty in-memory catalog.
func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{
		entries: make(map[string][]Entry),
		now:     time.Now,
	}
}

// Record appends a new version.
func (c *MemoryCatalog) Record(_ context.Context, e Entry) (uint64, error) {
	e, err := prepare(e, c.now)
	if err != nil {
		return 0, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	e.Version = uint64(len(c.entries[e.Dataset])) + 1
	c.entries[e.Dataset] = append(c.entries[e.Dataset], e)
	return e.Version, nil
}

// Latest returns the newest entry for dataset.
func (c *MemoryCatalog) Latest(_ context.Context, dataset string) (Entry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	history := c.entries[dataset]
	if len(history) == 0 {
		return Entry{}, ErrNotFound
	}
	return history[len(history)-1], nil
}

// History returns all entries for dataset, oldest first.
func (c *MemoryCatalog) History(_ context.Context, dataset string) ([]Entry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	history := c.entries[dataset]
	if len(history) == 0 {
		return nil, ErrNotFound
	}
	return append([]Entry(nil), history...), nil
}
