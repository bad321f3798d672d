package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type cachedClient struct {
	ID    int64  `json:"id"`
	Names string `json:"names"`
}

func TestInMemoryCache_SetGetDelete(t *testing.T) {
	c := NewInMemoryCache(time.Minute, time.Minute)
	defer c.Stop()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, KeyByID("client", 7), cachedClient{ID: 7, Names: "Ana"}, 0))

	var got cachedClient
	hit, err := c.Get(ctx, "client:id:7", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "Ana", got.Names)

	require.NoError(t, c.Delete(ctx, "client:id:7"))
	hit, _ = c.Get(ctx, "client:id:7", &got)
	assert.False(t, hit)
}

func TestInMemoryCache_Expiration(t *testing.T) {
	c := NewInMemoryCache(10*time.Millisecond, time.Hour)
	defer c.Stop()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", 1, 0))
	time.Sleep(20 * time.Millisecond)

	var v int
	hit, err := c.Get(ctx, "k", &v)
	assert.NoError(t, err)
	assert.False(t, hit, "la clave debería haber expirado")
}

func TestGetOrLoad_MissThenHit(t *testing.T) {
	c := NewInMemoryCache(time.Minute, time.Minute)
	defer c.Stop()
	ctx := context.Background()

	calls := 0
	load := func(ctx context.Context) (*cachedClient, error) {
		calls++
		return &cachedClient{ID: 1, Names: "Luis"}, nil
	}

	got, err := GetOrLoad(ctx, c, "client:id:1", 60, zap.NewNop(), load)
	require.NoError(t, err)
	assert.Equal(t, "Luis", got.Names)

	// El set es asíncrono.
	assert.Eventually(t, func() bool {
		var v cachedClient
		hit, _ := c.Get(ctx, "client:id:1", &v)
		return hit
	}, time.Second, 5*time.Millisecond)

	_, err = GetOrLoad(ctx, c, "client:id:1", 60, zap.NewNop(), load)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}
