package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildKey(t *testing.T) {
	assert.Equal(t, "fursa:search:filters", buildKey("search", "filters"))
}

func TestNoopCacheAlwaysMisses(t *testing.T) {
	var c Cache = NoopCache{}
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "ns", "k", map[string]int{"a": 1}, time.Minute))

	var out map[string]int
	hit, err := c.Get(ctx, "ns", "k", &out)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, out)
}

func TestRedisCacheUnreachable(t *testing.T) {
	// порт 1 закрыт: ошибка соединения, а не промах
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
	defer client.Close()

	c := NewRedisCache(client)
	var out string
	hit, err := c.Get(context.Background(), "ns", "k", &out)
	assert.False(t, hit)
	assert.Error(t, err)
}
