package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// defaultTileTTL bounds how long a cached tile is served before the source
// is consulted again. Terrain changes slowly; a day is conservative.
const defaultTileTTL = 24 * time.Hour

// Redis backed cache for raw raster tile bytes, for deployments that share
// one tile cache across server instances.
type RedisTileCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisTileCache(client *redis.Client, ttl time.Duration) *RedisTileCache {
	if ttl <= 0 {
		ttl = defaultTileTTL
	}
	return &RedisTileCache{Client: client, TTL: ttl}
}

func tileKey(key string) string { return "tile:" + key }

// GetTile returns the cached tile bytes and whether the key was present.
func (r *RedisTileCache) GetTile(ctx context.Context, key string) ([]byte, bool, error) {
	if r.Client == nil {
		return nil, false, errors.New("tile cache: redis client is nil")
	}
	if strings.TrimSpace(key) == "" {
		return nil, false, errors.New("get tile cache: key must not be empty")
	}

	data, err := r.Client.Get(ctx, tileKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get tile cache key=%q: %w", key, err)
	}

	return data, true, nil
}

// PutTile stores tile bytes under the key with the configured TTL.
func (r *RedisTileCache) PutTile(ctx context.Context, key string, data []byte) error {
	if r.Client == nil {
		return errors.New("tile cache: redis client is nil")
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("insert tile cache: key must not be empty")
	}
	if len(data) == 0 {
		return errors.New("insert tile cache: data must not be empty")
	}

	if err := r.Client.Set(ctx, tileKey(key), data, r.TTL).Err(); err != nil {
		return fmt.Errorf("insert tile cache key=%q: %w", key, err)
	}

	return nil
}
