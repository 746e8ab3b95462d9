package libs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedThing struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func setupTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewCache(client, time.Minute), mr
}

func TestRemember_LoadsOnceThenServesFromRedis(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()

	loads := 0
	load := func(context.Context) ([]cachedThing, error) {
		loads++
		return []cachedThing{{Name: "bali", Count: 2}}, nil
	}

	first, err := Remember(ctx, cache, "activities", load)
	require.NoError(t, err)
	second, err := Remember(ctx, cache, "activities", load)
	require.NoError(t, err)

	assert.Equal(t, 1, loads)
	assert.Equal(t, first, second)
	assert.True(t, mr.Exists("catalog:activities"))
	assert.Equal(t, time.Minute, mr.TTL("catalog:activities"))
}

func TestRemember_LoadErrorIsNotCached(t *testing.T) {
	cache, mr := setupTestCache(t)
	boom := errors.New("db down")

	_, err := Remember(context.Background(), cache, "banners", func(context.Context) ([]cachedThing, error) {
		return nil, boom
	})

	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("catalog:banners"))
}

func TestRemember_CorruptEntryIsReloaded(t *testing.T) {
	cache, mr := setupTestCache(t)
	require.NoError(t, mr.Set("catalog:promos", "{not json"))

	got, err := Remember(context.Background(), cache, "promos", func(context.Context) (cachedThing, error) {
		return cachedThing{Name: "fresh"}, nil
	})

	require.NoError(t, err)
	assert.Equal(t, "fresh", got.Name)
}

func TestRemember_NilClientPassesThrough(t *testing.T) {
	cache := NewCache(nil, time.Minute)
	loads := 0

	for i := 0; i < 2; i++ {
		_, err := Remember(context.Background(), cache, "categories", func(context.Context) (int, error) {
			loads++
			return loads, nil
		})
		require.NoError(t, err)
	}

	assert.Equal(t, 2, loads)
}

func TestInvalidate_RemovesPrefixedKeysOnly(t *testing.T) {
	cache, mr := setupTestCache(t)
	require.NoError(t, mr.Set("catalog:activities", "[]"))
	require.NoError(t, mr.Set("catalog:activities:category:1", "[]"))
	require.NoError(t, mr.Set("catalog:banners", "[]"))

	require.NoError(t, cache.Invalidate(context.Background(), "activities"))

	assert.False(t, mr.Exists("catalog:activities"))
	assert.False(t, mr.Exists("catalog:activities:category:1"))
	assert.True(t, mr.Exists("catalog:banners"))
}

func TestRemember_LoadSurvivesCallerCancellation(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx, cancel := context.WithCancel(context.Background())

	got, err := Remember(ctx, cache, "banners", func(ctx context.Context) ([]cachedThing, error) {
		cancel()
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return []cachedThing{{Name: "summer", Count: 1}}, nil
	})

	require.NoError(t, err)
	assert.Equal(t, []cachedThing{{Name: "summer", Count: 1}}, got)
	assert.True(t, mr.Exists("catalog:banners"))
}
