// Package cache provides byte caching for rendered artifacts.
//
// Rendering a scene to SVG (or an overlap diagram through Graphviz) is
// the expensive step of the pipeline; results are cached keyed by the
// scene's content hash and the render options, so an unchanged scene
// renders once. Three backends exist: a file cache for CLI usage, a
// Redis cache for the server, and a null cache for tests and --no-cache.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Cache stores opaque byte values with optional expiry.
type Cache interface {
	// Get retrieves a value. The second return is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A non-positive ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// =============================================================================
// Keys
// =============================================================================

// ArtifactKeyOpts distinguishes renders of the same scene content.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

// ArtifactKey generates a cache key for a rendered artifact.
// sceneHash is the content hash of the serialized scene.
func ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", sceneHash, opts)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	// Full SHA-256 (64 hex chars) to prevent collisions
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
