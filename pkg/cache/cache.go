// Package cache provides pluggable byte caches for pipeline stages.
//
// The render pipeline caches three kinds of values: parsed view trees,
// computed layouts, and rendered artifacts. All three are opaque byte
// payloads keyed by content hashes, so the cache interface is a plain
// key/value store with TTLs.
//
// Backends:
//   - [FileCache]: directory-backed, for CLI usage
//   - [RedisCache]: shared cache for the HTTP service
//   - [NullCache]: disables caching
//
// Keys are produced by a [Keyer] so every entry point builds identical
// keys for identical inputs. [ScopedKeyer] adds a namespace prefix for
// multi-tenant deployments.
package cache

import (
	"context"
	"time"
)

// TTLs per value kind. Trees and layouts are pure functions of their
// inputs and could live forever; bounded TTLs keep backends tidy.
const (
	TTLTree     = 24 * time.Hour
	TTLLayout   = 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// Cache is a byte store with expiration.
type Cache interface {
	// Get returns the cached data and whether the key was present.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// TreeKeyOpts are the options that influence markup parsing.
type TreeKeyOpts struct {
	// ResourceHash fingerprints the resource tables merged into the
	// document, since they change the parsed tree.
	ResourceHash string
}

// LayoutKeyOpts are the options that influence layout computation.
type LayoutKeyOpts struct {
	Width  float64
	Height float64
}

// ArtifactKeyOpts are the options that influence artifact rendering.
type ArtifactKeyOpts struct {
	Format string
}

// Keyer builds cache keys for each pipeline stage.
type Keyer interface {
	// TreeKey keys a parsed view tree by the markup's content hash.
	TreeKey(markupHash string, opts TreeKeyOpts) string

	// LayoutKey keys a computed layout by the tree hash and constraint.
	LayoutKey(treeHash string, opts LayoutKeyOpts) string

	// ArtifactKey keys a rendered artifact by the layout hash and format.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes the identifying options into namespaced keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// TreeKey generates a key for parsed view tree caching.
func (k *DefaultKeyer) TreeKey(markupHash string, opts TreeKeyOpts) string {
	return hashKey("tree", markupHash, opts)
}

// LayoutKey generates a key for layout caching.
func (k *DefaultKeyer) LayoutKey(treeHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", treeHash, opts)
}

// ArtifactKey generates a key for artifact caching.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
