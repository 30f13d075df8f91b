package service

import (
	"context"

	"github.com/dom/hero-archive/internal/authz"
	"github.com/dom/hero-archive/internal/domain"
	"github.com/dom/hero-archive/internal/repository"
)

type FavoriteService struct {
	favoriteRepo repository.FavoriteRepository
	authorizer   *authz.Authorizer
	enforcer     *authz.Enforcer
}

func NewFavoriteService(favoriteRepo repository.FavoriteRepository, authorizer *authz.Authorizer, enforcer *authz.Enforcer) *FavoriteService {
	return &FavoriteService{
		favoriteRepo: favoriteRepo,
		authorizer:   authorizer,
		enforcer:     enforcer,
	}
}

type CreateFavoriteInput struct {
	HeroID   uint
	Notes    string
	Priority *domain.Priority
}

// List returns the caller's favorites, highest priority first.
func (s *FavoriteService) List(ctx context.Context, credential string) ([]*domain.Favorite, error) {
	id, err := authorize(ctx, s.authorizer, authz.Operation{
		Resource:   authz.ResourceFavorite,
		Action:     authz.ActionRead,
		Credential: credential,
	})
	if err != nil {
		return nil, err
	}
	return s.favoriteRepo.ListByUser(ctx, id.SubjectID)
}

// Create adds a hero to the caller's favorites. A second favorite for the
// same hero is a Conflict whether caught by the pre-check or the store.
func (s *FavoriteService) Create(ctx context.Context, credential string, input CreateFavoriteInput) (*domain.Favorite, error) {
	id, err := authorize(ctx, s.authorizer, authz.Operation{
		Resource:   authz.ResourceFavorite,
		Action:     authz.ActionCreate,
		Credential: credential,
	})
	if err != nil {
		return nil, err
	}

	fav := &domain.Favorite{
		UserID:   id.SubjectID,
		HeroID:   input.HeroID,
		Notes:    input.Notes,
		Priority: domain.DefaultPriority,
	}
	if input.Priority != nil {
		fav.Priority = *input.Priority
	}

	if err := s.enforcer.FavoriteCreate(ctx, fav); err != nil {
		return nil, err
	}
	if err := s.favoriteRepo.Create(ctx, fav); err != nil {
		return nil, err
	}

	return s.favoriteRepo.GetByID(ctx, fav.ID)
}

func (s *FavoriteService) Update(ctx context.Context, credential string, favoriteID uint, patch domain.FavoritePatch) (*domain.Favorite, error) {
	if _, err := authorize(ctx, s.authorizer, authz.Operation{
		Resource:   authz.ResourceFavorite,
		Action:     authz.ActionUpdate,
		ResourceID: favoriteID,
		Credential: credential,
	}); err != nil {
		return nil, err
	}

	current, err := s.favoriteRepo.GetByID(ctx, favoriteID)
	if err != nil {
		return nil, err
	}

	updated := s.enforcer.FavoriteUpdate(*current, patch)
	if err := s.favoriteRepo.Update(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *FavoriteService) Delete(ctx context.Context, credential string, favoriteID uint) error {
	d := s.authorizer.Authorize(ctx, authz.Operation{
		Resource:   authz.ResourceFavorite,
		Action:     authz.ActionDelete,
		ResourceID: favoriteID,
		Credential: credential,
	})
	if err := d.Err(); err != nil {
		return err
	}
	return s.favoriteRepo.Delete(ctx, favoriteID, d.Identity.SubjectID)
}
