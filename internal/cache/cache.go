package cache

import (
	"context"
	"time"
)

// Cache is the shared key/value store behind permission checks and rendered
// navbars. Entries expire on their own and are never explicitly invalidated.
type Cache interface {
	// Get returns the stored value and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Ping(ctx context.Context) error
	Close() error
}
