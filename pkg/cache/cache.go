// Package cache provides caching for decoded documents, layout snapshots,
// and rendered artifacts.
//
// Two backends are provided: FileCache for CLI usage (persistent across
// runs) and RedisCache for server deployments. NullCache disables caching.
package cache

import (
	"context"
	"time"
)

// TTL values per cache stage.
const (
	// TTLDocument is how long decoded documents are cached.
	// Input files change rarely; the key includes a content hash anyway.
	TTLDocument = 24 * time.Hour

	// TTLLayout is how long computed layouts are cached.
	TTLLayout = 24 * time.Hour

	// TTLArtifact is how long rendered artifacts are cached.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is the interface all cache backends implement.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
