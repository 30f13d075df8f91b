package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dom/hero-archive/internal/domain"
	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned when a key is not cached
var ErrCacheMiss = errors.New("cache miss")

const heroNamespace = "heroes"

// HeroCache stores public catalog reads in redis as JSON.
type HeroCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewHeroCache(client *redis.Client, ttl time.Duration) *HeroCache {
	return &HeroCache{client: client, ttl: ttl}
}

func key(parts ...string) string {
	k := heroNamespace
	for _, p := range parts {
		k += ":" + p
	}
	return k
}

func (c *HeroCache) get(ctx context.Context, k string, dest interface{}) error {
	data, err := c.client.Get(ctx, k).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return fmt.Errorf("failed to get from cache: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to unmarshal cache data: %w", err)
	}
	return nil
}

func (c *HeroCache) set(ctx context.Context, k string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache data: %w", err)
	}
	if err := c.client.Set(ctx, k, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

func (c *HeroCache) GetList(ctx context.Context, filter domain.HeroFilter) ([]*domain.Hero, error) {
	var heroes []*domain.Hero
	if err := c.get(ctx, key("list", filter.CacheKey()), &heroes); err != nil {
		return nil, err
	}
	return heroes, nil
}

func (c *HeroCache) SetList(ctx context.Context, filter domain.HeroFilter, heroes []*domain.Hero) error {
	return c.set(ctx, key("list", filter.CacheKey()), heroes)
}

func (c *HeroCache) GetHero(ctx context.Context, id uint) (*domain.Hero, error) {
	var hero domain.Hero
	if err := c.get(ctx, key("id", strconv.FormatUint(uint64(id), 10)), &hero); err != nil {
		return nil, err
	}
	return &hero, nil
}

func (c *HeroCache) SetHero(ctx context.Context, hero *domain.Hero) error {
	return c.set(ctx, key("id", strconv.FormatUint(uint64(hero.ID), 10)), hero)
}

// Invalidate drops every cached catalog entry.
func (c *HeroCache) Invalidate(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, key("*"), 100).Result()
		if err != nil {
			return fmt.Errorf("failed to scan keys: %w", err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("failed to delete keys: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}
