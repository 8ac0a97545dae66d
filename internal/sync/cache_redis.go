package sync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/tdnguyen/apologia/internal/platform/constants"
)

// SnapshotCache holds one pre-built full-sync payload. Only the lastSync=0
// path is cached: first-run clients all ask for the identical snapshot, while
// incremental deltas depend on each client's watermark.
type SnapshotCache interface {
	// Get returns the cached snapshot, or nil on a miss.
	Get(context context.Context) (*FeedData, error)
	Set(context context.Context, snapshot *FeedData) error
	Invalidate(context context.Context) error
}

type RedisSnapshotCache struct {
	client *redis.Client
}

func NewRedisSnapshotCache(client *redis.Client) *RedisSnapshotCache {
	return &RedisSnapshotCache{client: client}
}

func (cache *RedisSnapshotCache) Get(context context.Context) (*FeedData, error) {
	raw, err := cache.client.Get(context, constants.RedisKeySnapshot).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sync cache: get: %w", err)
	}

	snapshot := &FeedData{}
	if err := json.Unmarshal(raw, snapshot); err != nil {
		return nil, fmt.Errorf("sync cache: corrupt snapshot: %w", err)
	}
	return snapshot, nil
}

func (cache *RedisSnapshotCache) Set(context context.Context, snapshot *FeedData) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("sync cache: marshal: %w", err)
	}

	// The TTL bounds staleness. A cached syncTimestamp is always older than
	// the data it describes, so a client merging it can only under-advance
	// its watermark, never skip content.
	if err := cache.client.Set(context, constants.RedisKeySnapshot, raw, constants.SnapshotCacheTTL).Err(); err != nil {
		return fmt.Errorf("sync cache: set: %w", err)
	}
	return nil
}

func (cache *RedisSnapshotCache) Invalidate(context context.Context) error {
	if err := cache.client.Del(context, constants.RedisKeySnapshot).Err(); err != nil {
		return fmt.Errorf("sync cache: invalidate: %w", err)
	}
	return nil
}
