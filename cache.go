package acb

import (
	"errors"
	"sync"
)

// RateCache stores resolved rate tables.
//
// Tables are a pure function of their key, so writes are idempotent and a
// cache can be shared: last write wins on an identical key.
type RateCache interface {
	Get(key RateKey) (RateTable, bool)
	Put(key RateKey, table RateTable) error
}

// MemoryCache is an in-process RateCache, typically created for a run.
type MemoryCache struct {
	mu     sync.RWMutex
	tables map[RateKey]RateTable
}

// NewMemoryCache returns an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{tables: make(map[RateKey]RateTable)}
}

func (c *MemoryCache) Get(key RateKey) (RateTable, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.tables[key]
	return t, ok
}

func (c *MemoryCache) Put(key RateKey, table RateTable) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tables[key] = table
	return nil
}

// Len returns the number of cached tables.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.tables)
}

// layered chains caches, fastest first.
type layered []RateCache

// Layered returns a cache that reads through the given caches in order and
// writes through all of them. A hit in a slower cache is copied into the
// faster ones.
func Layered(caches ...RateCache) RateCache {
	return layered(caches)
}

func (l layered) Get(key RateKey) (RateTable, bool) {
	for i, c := range l {
		t, ok := c.Get(key)
		if !ok {
			continue
		}
		for _, faster := range l[:i] {
			// faster caches are in memory, their errors are not worth reporting on a read.
			_ = faster.Put(key, t)
		}
		return t, true
	}
	return RateTable{}, false
}

func (l layered) Put(key RateKey, table RateTable) error {
	var errs []error
	for _, c := range l {
		if err := c.Put(key, table); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
