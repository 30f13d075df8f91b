package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/dom/hero-archive/internal/authz"
	"github.com/dom/hero-archive/internal/config"
	"github.com/dom/hero-archive/internal/domain"
	"github.com/dom/hero-archive/internal/repository"
	"github.com/dom/hero-archive/internal/websocket"
)

// HeroCatalogCache caches public catalog reads. Implemented by cache.HeroCache.
type HeroCatalogCache interface {
	GetList(ctx context.Context, filter domain.HeroFilter) ([]*domain.Hero, error)
	SetList(ctx context.Context, filter domain.HeroFilter, heroes []*domain.Hero) error
	GetHero(ctx context.Context, id uint) (*domain.Hero, error)
	SetHero(ctx context.Context, hero *domain.Hero) error
	Invalidate(ctx context.Context) error
}

// EventPublisher broadcasts public catalog events. Implemented by websocket.Hub.
type EventPublisher interface {
	Publish(msgType websocket.MessageType, payload interface{})
}

// Options carries optional collaborators. Nil fields fall back to defaults:
// an HS256 verifier built from config, no cache, no events.
type Options struct {
	Verifier authz.TokenVerifier
	Cache    HeroCatalogCache
	Events   EventPublisher
	Logger   *slog.Logger
}

type Services struct {
	Auth       *AuthService
	Hero       *HeroService
	Favorite   *FavoriteService
	Draft      *DraftService
	Review     *ReviewService
	Authorizer *authz.Authorizer
	Verifier   authz.TokenVerifier
}

func NewServices(repos *repository.Repositories, cfg *config.Config, opts Options) (*Services, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	verifier := opts.Verifier
	if verifier == nil {
		v, err := authz.NewVerifier(cfg.Verification(), logger)
		if err != nil {
			return nil, err
		}
		verifier = v
	}

	owners := authz.NewOwnershipResolver(map[authz.Resource]authz.OwnerLookup{
		authz.ResourceFavorite: repos.Favorite,
		authz.ResourceDraft:    repos.Draft,
		authz.ResourceReview:   repos.Review,
	})
	authorizer := authz.NewAuthorizer(verifier, owners, logger)
	enforcer := authz.NewEnforcer(repos.Favorite)

	events := opts.Events
	if events == nil {
		events = noopPublisher{}
	}

	return &Services{
		Auth:       NewAuthService(repos.User, authorizer, verifier, cfg),
		Hero:       NewHeroService(repos.Hero, authorizer, enforcer, opts.Cache, events, logger),
		Favorite:   NewFavoriteService(repos.Favorite, authorizer, enforcer),
		Draft:      NewDraftService(repos.Draft, authorizer, enforcer),
		Review:     NewReviewService(repos.Review, authorizer, enforcer, events),
		Authorizer: authorizer,
		Verifier:   verifier,
	}, nil
}

type noopPublisher struct{}

func (noopPublisher) Publish(websocket.MessageType, interface{}) {}

// authorize runs op and returns the caller's identity on allow.
func authorize(ctx context.Context, a *authz.Authorizer, op authz.Operation) (*authz.Identity, error) {
	d := a.Authorize(ctx, op)
	if err := d.Err(); err != nil {
		return nil, err
	}
	return d.Identity, nil
}
