package stats

import (
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/minetally/minetally/internal/metrics"
	"github.com/minetally/minetally/internal/playerdata"
)

// CacheSchemaVersion is the current version of the cache schema.
// Increment this when the cached data structure changes to auto-invalidate old entries.
const CacheSchemaVersion = "1.0"

// cachedPlayerEntry wraps a player store with version metadata for cache invalidation
type cachedPlayerEntry struct {
	Version  string
	Info     *playerdata.PlayerInfo
	CachedAt time.Time
}

// playerCache provides an in-memory LRU cache of reconciled player stores
// with time-based expiration and version-based invalidation to prevent stale data.
type playerCache struct {
	lru *expirable.LRU[uuid.UUID, *cachedPlayerEntry]
}

// newPlayerCache creates a new player cache with the specified size and TTL.
func newPlayerCache(size int, ttl time.Duration) *playerCache {
	return &playerCache{
		lru: expirable.NewLRU[uuid.UUID, *cachedPlayerEntry](size, nil, ttl),
	}
}

// Get retrieves a player store from the cache.
// Returns (info, true) if found and version matches.
// Automatically invalidates entries with mismatched versions.
func (c *playerCache) Get(playerID uuid.UUID) (*playerdata.PlayerInfo, bool) {
	entry, found := c.lru.Get(playerID)
	if !found {
		metrics.CacheMissesTotal.Inc()
		return nil, false
	}

	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(playerID)
		metrics.CacheMissesTotal.Inc()
		return nil, false
	}

	metrics.CacheHitsTotal.Inc()
	return entry.Info, true
}

// Set stores a player store in the cache with the current schema version.
func (c *playerCache) Set(playerID uuid.UUID, info *playerdata.PlayerInfo) {
	c.lru.Add(playerID, &cachedPlayerEntry{
		Version:  CacheSchemaVersion,
		Info:     info,
		CachedAt: time.Now(),
	})
}

// Invalidate removes a player from the cache.
func (c *playerCache) Invalidate(playerID uuid.UUID) {
	c.lru.Remove(playerID)
}

// PlayerIDs returns the ids of all currently cached players.
func (c *playerCache) PlayerIDs() []uuid.UUID {
	return c.lru.Keys()
}
