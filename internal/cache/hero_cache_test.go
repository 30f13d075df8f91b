package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/dom/hero-archive/internal/cache"
	"github.com/dom/hero-archive/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func newTestCache(t *testing.T) *cache.HeroCache {
	t.Helper()
	ctx := context.Background()

	container, err := tcRedis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() {
		container.Terminate(context.Background())
	})

	url, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := cache.NewRedisClient(ctx, cache.DefaultConfig(url))
	require.NoError(t, err)
	t.Cleanup(func() {
		client.Close()
	})

	return cache.NewHeroCache(client, time.Minute)
}

func TestHeroCache_ListRoundTrip(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()
	filter := domain.HeroFilter{Role: domain.HeroRoleTank}

	_, err := c.GetList(ctx, filter)
	assert.ErrorIs(t, err, cache.ErrCacheMiss)

	heroes := []*domain.Hero{
		{ID: 1, Name: "Bulwark", Role: domain.HeroRoleTank, Difficulty: 3, Durability: 95},
		{ID: 2, Name: "Rampart", Role: domain.HeroRoleTank, Difficulty: 2, Durability: 90},
	}
	require.NoError(t, c.SetList(ctx, filter, heroes))

	got, err := c.GetList(ctx, filter)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Bulwark", got[0].Name)

	// other filters are cached separately
	_, err = c.GetList(ctx, domain.HeroFilter{})
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}

func TestHeroCache_Invalidate(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetHero(ctx, &domain.Hero{ID: 7, Name: "Zephyr"}))
	require.NoError(t, c.SetList(ctx, domain.HeroFilter{}, []*domain.Hero{{ID: 7, Name: "Zephyr"}}))

	got, err := c.GetHero(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Zephyr", got.Name)

	require.NoError(t, c.Invalidate(ctx))

	_, err = c.GetHero(ctx, 7)
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
	_, err = c.GetList(ctx, domain.HeroFilter{})
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}
