package cache

import (
	"context"
	"time"
)

// Store keeps raw response bodies by key.
type Store interface {
	// Get returns the value for key. A missing or expired key reports false with a nil error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value under key. A ttl of 0 means no expiration.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes key.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the store.
	Close() error
}
