package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/dom/hero-archive/internal/cache"
	"github.com/dom/hero-archive/internal/domain"
	"github.com/dom/hero-archive/internal/service"
	"github.com/dom/hero-archive/internal/testutil"
	"github.com/dom/hero-archive/internal/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryCache is an in-process HeroCatalogCache.
type memoryCache struct {
	mu          sync.Mutex
	lists       map[string][]*domain.Hero
	heroes      map[uint]*domain.Hero
	invalidated int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{lists: map[string][]*domain.Hero{}, heroes: map[uint]*domain.Hero{}}
}

func (c *memoryCache) GetList(ctx context.Context, f domain.HeroFilter) ([]*domain.Hero, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if l, ok := c.lists[f.CacheKey()]; ok {
		return l, nil
	}
	return nil, cache.ErrCacheMiss
}

func (c *memoryCache) SetList(ctx context.Context, f domain.HeroFilter, heroes []*domain.Hero) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lists[f.CacheKey()] = heroes
	return nil
}

func (c *memoryCache) GetHero(ctx context.Context, id uint) (*domain.Hero, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if h, ok := c.heroes[id]; ok {
		return h, nil
	}
	return nil, cache.ErrCacheMiss
}

func (c *memoryCache) SetHero(ctx context.Context, hero *domain.Hero) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.heroes[hero.ID] = hero
	return nil
}

func (c *memoryCache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lists = map[string][]*domain.Hero{}
	c.heroes = map[uint]*domain.Hero{}
	c.invalidated++
	return nil
}

func TestHeroService_CreateEnforcesBounds(t *testing.T) {
	f := newFixture(t, service.Options{})
	ctx := context.Background()
	_, adminCred := f.newAdmin(t)

	tests := []struct {
		name       string
		durability int
		wantKind   domain.Kind
		wantErr    bool
	}{
		{name: "durability above max", durability: 150, wantErr: true, wantKind: domain.KindInvalidArgument},
		{name: "durability below min", durability: -1, wantErr: true, wantKind: domain.KindInvalidArgument},
		{name: "durability in range", durability: 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f.db.Truncate(t)
			_, adminCred = f.newAdmin(t)

			hero := &domain.Hero{Name: "Testhero", Role: domain.HeroRoleTank, Difficulty: 1, Durability: tt.durability}
			created, err := f.services.Hero.Create(ctx, adminCred, hero)

			stored, listErr := f.repos.Hero.List(ctx, domain.HeroFilter{})
			require.NoError(t, listErr)

			if tt.wantErr {
				assert.Equal(t, tt.wantKind, domain.KindOf(err))
				assert.Contains(t, domain.MessageOf(err), "durability")
				assert.Empty(t, stored, "nothing is written")
				return
			}

			require.NoError(t, err)
			assert.NotZero(t, created.ID)
			require.Len(t, stored, 1)
			assert.Equal(t, 80, stored[0].Durability)
		})
	}
}

func TestHeroService_WritesRequireAdmin(t *testing.T) {
	f := newFixture(t, service.Options{})
	ctx := context.Background()
	_, userCred := f.newUser(t)
	hero := testutil.NewHeroBuilder().Build(t, f.db.DB)

	tests := []struct {
		name     string
		cred     string
		wantKind domain.Kind
	}{
		{name: "anonymous", cred: "", wantKind: domain.KindUnauthenticated},
		{name: "bad token", cred: "Bearer x.y.z", wantKind: domain.KindUnauthenticated},
		{name: "regular user", cred: userCred, wantKind: domain.KindForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.services.Hero.Create(ctx, tt.cred, &domain.Hero{Name: "Nope", Role: domain.HeroRoleMage, Difficulty: 1})
			assert.Equal(t, tt.wantKind, domain.KindOf(err))

			_, err = f.services.Hero.Update(ctx, tt.cred, hero.ID, domain.HeroPatch{Name: strPtr("Renamed")})
			assert.Equal(t, tt.wantKind, domain.KindOf(err))

			err = f.services.Hero.Delete(ctx, tt.cred, hero.ID)
			assert.Equal(t, tt.wantKind, domain.KindOf(err))
		})
	}

	got, err := f.repos.Hero.GetByID(ctx, hero.ID)
	require.NoError(t, err)
	assert.Equal(t, hero.Name, got.Name)
	assert.Empty(t, f.events.Types())
}

func TestHeroService_Update(t *testing.T) {
	f := newFixture(t, service.Options{})
	ctx := context.Background()
	_, adminCred := f.newAdmin(t)
	hero := testutil.NewHeroBuilder().WithName("Aldric").WithDifficulty(3).Build(t, f.db.DB)
	testutil.NewHeroBuilder().WithName("Brisa").Build(t, f.db.DB)

	t.Run("partial update keeps omitted fields", func(t *testing.T) {
		updated, err := f.services.Hero.Update(ctx, adminCred, hero.ID, domain.HeroPatch{Offense: intPtr(90)})
		require.NoError(t, err)
		assert.Equal(t, 90, updated.Offense)
		assert.Equal(t, 3, updated.Difficulty)
		assert.Equal(t, "Aldric", updated.Name)
	})

	t.Run("merged state is validated", func(t *testing.T) {
		_, err := f.services.Hero.Update(ctx, adminCred, hero.ID, domain.HeroPatch{Difficulty: intPtr(11)})
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)

		got, err := f.repos.Hero.GetByID(ctx, hero.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, got.Difficulty)
	})

	t.Run("duplicate name", func(t *testing.T) {
		_, err := f.services.Hero.Update(ctx, adminCred, hero.ID, domain.HeroPatch{Name: strPtr("Brisa")})
		assert.ErrorIs(t, err, domain.ErrDuplicateHeroName)
	})

	t.Run("missing hero", func(t *testing.T) {
		_, err := f.services.Hero.Update(ctx, adminCred, 9999, domain.HeroPatch{Offense: intPtr(1)})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	assert.Equal(t, []websocket.MessageType{websocket.MessageTypeHeroUpdated}, f.events.Types())
}

func TestHeroService_CacheAndEvents(t *testing.T) {
	catalog := newMemoryCache()
	f := newFixture(t, service.Options{Cache: catalog})
	ctx := context.Background()
	_, adminCred := f.newAdmin(t)

	heroes, err := f.services.Hero.List(ctx, domain.HeroFilter{})
	require.NoError(t, err)
	assert.Empty(t, heroes)

	created, err := f.services.Hero.Create(ctx, adminCred, &domain.Hero{Name: "Dessa", Role: domain.HeroRoleMage, Difficulty: 6})
	require.NoError(t, err)
	assert.Equal(t, 1, catalog.invalidated)

	// the stale empty list was dropped
	heroes, err = f.services.Hero.List(ctx, domain.HeroFilter{})
	require.NoError(t, err)
	require.Len(t, heroes, 1)

	got, err := f.services.Hero.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dessa", got.Name)
	assert.Contains(t, catalog.heroes, created.ID)

	require.NoError(t, f.services.Hero.Delete(ctx, adminCred, created.ID))
	assert.Equal(t, 2, catalog.invalidated)

	_, err = f.services.Hero.Get(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Equal(t, []websocket.MessageType{
		websocket.MessageTypeHeroCreated,
		websocket.MessageTypeHeroDeleted,
	}, f.events.Types())
}

func TestHeroService_PublicReads(t *testing.T) {
	f := newFixture(t, service.Options{})
	ctx := context.Background()
	testutil.SeedHeroes(t, f.db.DB, 3)

	heroes, err := f.services.Hero.List(ctx, domain.HeroFilter{})
	require.NoError(t, err)
	assert.Len(t, heroes, 3)

	_, err = f.services.Hero.Get(ctx, 9999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
