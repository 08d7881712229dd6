// Package cache stores solved programs so repeated runs over the same
// requests and parameters skip the optimizer.
//
// Three backends implement [Cache]: [FileCache] for the CLI, [RedisCache]
// for the HTTP server and [NullCache] when caching is disabled. Keys are
// produced by a [Keyer] so that callers never build key strings by hand.
//
// The cache is best effort: callers log and ignore failures instead of
// aborting a run.
package cache

import (
	"context"
	"time"
)

// TTL defaults for cached entries.
const (
	// TTLResult is how long a solved program stays cached.
	TTLResult = 7 * 24 * time.Hour

	// TTLModule is how long a module search result stays cached. The sweep
	// only depends on the requests and the catalog, so it lives longer.
	TTLModule = 30 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the cached bytes and whether the key was present.
	// Expired entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend.
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// ResultKey identifies a full pipeline result.
	ResultKey(programHash string, opts ResultKeyOpts) string

	// ModuleKey identifies a module search over a program.
	ModuleKey(programHash string, opts ModuleKeyOpts) string
}

// ResultKeyOpts holds every parameter that changes a pipeline result.
type ResultKeyOpts struct {
	Strategy           string   `json:"strategy"`
	Unit               int      `json:"unit"`
	MinWall            int      `json:"min_wall"`
	Passes             int      `json:"passes"`
	ToleranceStart     float64  `json:"tolerance_start"`
	ToleranceStep      float64  `json:"tolerance_step"`
	TopK               int      `json:"top_k"`
	Threshold          float64  `json:"threshold"`
	ClusterTolerance   int      `json:"cluster_tolerance"`
	Bands              [][3]int `json:"bands,omitempty"`
	DefaultModule      int      `json:"default_module"`
	Module             int      `json:"module"`
	IncludeCirculation bool     `json:"include_circulation"`
	SmallRoomArea      float64  `json:"small_room_m2"`
	CatalogHash        string   `json:"catalog_hash"`
}

// ModuleKeyOpts holds the parameters of a module search.
type ModuleKeyOpts struct {
	MinWall            int      `json:"min_wall"`
	Bands              [][3]int `json:"bands"`
	DefaultModule      int      `json:"default_module"`
	IncludeCirculation bool     `json:"include_circulation"`
	CatalogHash        string   `json:"catalog_hash"`
}

// DefaultKeyer hashes the options into the key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ResultKey returns "result:<sha256>".
func (DefaultKeyer) ResultKey(programHash string, opts ResultKeyOpts) string {
	return hashKey("result", programHash, opts)
}

// ModuleKey returns "module:<sha256>".
func (DefaultKeyer) ModuleKey(programHash string, opts ModuleKeyOpts) string {
	return hashKey("module", programHash, opts)
}
