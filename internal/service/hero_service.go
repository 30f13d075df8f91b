package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dom/hero-archive/internal/authz"
	"github.com/dom/hero-archive/internal/cache"
	"github.com/dom/hero-archive/internal/domain"
	"github.com/dom/hero-archive/internal/repository"
	"github.com/dom/hero-archive/internal/websocket"
)

type HeroService struct {
	heroRepo   repository.HeroRepository
	authorizer *authz.Authorizer
	enforcer   *authz.Enforcer
	cache      HeroCatalogCache
	events     EventPublisher
	logger     *slog.Logger
}

func NewHeroService(
	heroRepo repository.HeroRepository,
	authorizer *authz.Authorizer,
	enforcer *authz.Enforcer,
	catalogCache HeroCatalogCache,
	events EventPublisher,
	logger *slog.Logger,
) *HeroService {
	return &HeroService{
		heroRepo:   heroRepo,
		authorizer: authorizer,
		enforcer:   enforcer,
		cache:      catalogCache,
		events:     events,
		logger:     logger,
	}
}

func (s *HeroService) List(ctx context.Context, filter domain.HeroFilter) ([]*domain.Hero, error) {
	if _, err := authorize(ctx, s.authorizer, authz.Operation{Resource: authz.ResourceHero, Action: authz.ActionRead}); err != nil {
		return nil, err
	}

	if s.cache != nil {
		heroes, err := s.cache.GetList(ctx, filter)
		if err == nil {
			return heroes, nil
		}
		s.cacheMiss("hero.List", err)
	}

	heroes, err := s.heroRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetList(ctx, filter, heroes); err != nil {
			s.logger.Warn("failed to cache heroes", "op", "hero.List", "error", err)
		}
	}
	return heroes, nil
}

func (s *HeroService) Get(ctx context.Context, id uint) (*domain.Hero, error) {
	if _, err := authorize(ctx, s.authorizer, authz.Operation{Resource: authz.ResourceHero, Action: authz.ActionRead, ResourceID: id}); err != nil {
		return nil, err
	}

	if s.cache != nil {
		hero, err := s.cache.GetHero(ctx, id)
		if err == nil {
			return hero, nil
		}
		s.cacheMiss("hero.Get", err)
	}

	hero, err := s.heroRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetHero(ctx, hero); err != nil {
			s.logger.Warn("failed to cache hero", "op", "hero.Get", "hero_id", id, "error", err)
		}
	}
	return hero, nil
}

// Create stores a new hero. Admin only.
func (s *HeroService) Create(ctx context.Context, credential string, hero *domain.Hero) (*domain.Hero, error) {
	if _, err := authorize(ctx, s.authorizer, authz.Operation{
		Resource:   authz.ResourceHero,
		Action:     authz.ActionCreate,
		Credential: credential,
	}); err != nil {
		return nil, err
	}

	if err := s.enforcer.Hero(hero); err != nil {
		return nil, err
	}

	hero.ID = 0
	if err := s.heroRepo.Create(ctx, hero); err != nil {
		return nil, err
	}

	s.invalidate(ctx, "hero.Create")
	s.events.Publish(websocket.MessageTypeHeroCreated, hero)
	return hero, nil
}

// Update applies a partial update and re-validates the merged hero. Admin only.
func (s *HeroService) Update(ctx context.Context, credential string, id uint, patch domain.HeroPatch) (*domain.Hero, error) {
	if _, err := authorize(ctx, s.authorizer, authz.Operation{
		Resource:   authz.ResourceHero,
		Action:     authz.ActionUpdate,
		ResourceID: id,
		Credential: credential,
	}); err != nil {
		return nil, err
	}

	current, err := s.heroRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := patch.Apply(*current)
	if err := s.enforcer.Hero(&merged); err != nil {
		return nil, err
	}
	merged.UpdatedAt = time.Now()

	if err := s.heroRepo.Update(ctx, &merged); err != nil {
		return nil, err
	}

	s.invalidate(ctx, "hero.Update")
	s.events.Publish(websocket.MessageTypeHeroUpdated, &merged)
	return &merged, nil
}

// Delete removes a hero together with its favorites and reviews. Admin only.
func (s *HeroService) Delete(ctx context.Context, credential string, id uint) error {
	if _, err := authorize(ctx, s.authorizer, authz.Operation{
		Resource:   authz.ResourceHero,
		Action:     authz.ActionDelete,
		ResourceID: id,
		Credential: credential,
	}); err != nil {
		return err
	}

	if err := s.heroRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, "hero.Delete")
	s.events.Publish(websocket.MessageTypeHeroDeleted, websocket.HeroDeletedPayload{ID: id})
	return nil
}

func (s *HeroService) invalidate(ctx context.Context, op string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Error("failed to invalidate hero cache", "op", op, "error", err)
	}
}

func (s *HeroService) cacheMiss(op string, err error) {
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("hero cache unavailable", "op", op, "error", err)
	}
}
