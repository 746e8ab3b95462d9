package libs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const cacheKeyPrefix = "catalog:"

// Cache is a read-through JSON cache over Redis. A nil client turns every
// call into a direct load, so the API keeps working without Redis.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	group  singleflight.Group
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func cacheKey(key string) string {
	return cacheKeyPrefix + key
}

// Remember returns the cached value for key or loads, stores and returns it.
// Concurrent misses for the same key share one load.
func Remember[T any](ctx context.Context, c *Cache, key string, load func(context.Context) (T, error)) (T, error) {
	if c == nil || c.client == nil {
		return load(ctx)
	}

	var out T
	data, err := c.client.Get(ctx, cacheKey(key)).Bytes()
	if err == nil {
		if err := json.Unmarshal(data, &out); err == nil {
			return out, nil
		}
		slog.Warn("discarding undecodable cache entry", "key", key)
	} else if !errors.Is(err, redis.Nil) {
		slog.Warn("cache get failed", "key", key, "error", err)
	}

	// The shared load outlives the request that started it.
	loadCtx := context.WithoutCancel(ctx)
	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		loaded, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		if payload, err := json.Marshal(loaded); err == nil {
			if err := c.client.Set(loadCtx, cacheKey(key), payload, c.ttl).Err(); err != nil {
				slog.Warn("cache set failed", "key", key, "error", err)
			}
		}
		return loaded, nil
	})
	if err != nil {
		return out, err
	}
	return v.(T), nil
}

// Invalidate drops every key starting with one of the given prefixes.
func (c *Cache) Invalidate(ctx context.Context, prefixes ...string) error {
	if c == nil || c.client == nil {
		return nil
	}
	for _, p := range prefixes {
		iter := c.client.Scan(ctx, 0, cacheKey(p)+"*", 100).Iterator()
		var keys []string
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			return fmt.Errorf("scan %s: %w", p, err)
		}
		if len(keys) == 0 {
			continue
		}
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("redis delete failed: %w", err)
		}
	}
	return nil
}
