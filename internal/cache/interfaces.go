package cache

import "context"

// Store is the key-value store holding raw emoticon bytes.
// Entries have no TTL and are only ever overwritten.
type Store interface {
	// Get retrieves a value by key. Returns ErrCacheMiss if not found.
	// An empty value is a hit, not a miss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value, overwriting any previous one.
	Set(ctx context.Context, key string, value []byte) error

	// Ping reports whether the store is reachable.
	Ping(ctx context.Context) error

	Close() error
}

// Common cache errors
type CacheError string

func (e CacheError) Error() string { return string(e) }

const (
	// ErrCacheMiss indicates the key was not found in cache.
	ErrCacheMiss CacheError = "cache miss"
)
