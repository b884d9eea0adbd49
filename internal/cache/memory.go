package cache

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory implementation of Store.
// Use this for development/testing or single-instance deployments.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string][]byte),
	}
}

// Get retrieves a value by key.
func (c *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	value, exists := c.entries[key]
	if !exists {
		return nil, ErrCacheMiss
	}

	result := make([]byte, len(value))
	copy(result, value)
	return result, nil
}

// Set stores a copy of value under key.
func (c *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)

	c.entries[key] = valueCopy
	return nil
}

// Len returns the number of stored entries.
func (c *MemoryStore) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

func (c *MemoryStore) Ping(ctx context.Context) error { return nil }

func (c *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
