package repository

import (
	"context"

	"github.com/dom/hero-archive/internal/domain"
	"github.com/google/uuid"
)

// Repositories return *domain.Error values: NotFound for missing rows,
// Conflict for unique violations, InvalidArgument for a missing hero
// reference and Unavailable for anything else.

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByDisplayName(ctx context.Context, displayName string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type HeroRepository interface {
	Create(ctx context.Context, hero *domain.Hero) error
	Update(ctx context.Context, hero *domain.Hero) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*domain.Hero, error)
	GetByName(ctx context.Context, name string) (*domain.Hero, error)
	List(ctx context.Context, filter domain.HeroFilter) ([]*domain.Hero, error)
	UpsertByName(ctx context.Context, hero *domain.Hero) error
}

type FavoriteRepository interface {
	Create(ctx context.Context, fav *domain.Favorite) error
	Update(ctx context.Context, fav *domain.Favorite) error
	Delete(ctx context.Context, id uint, userID uuid.UUID) error
	GetByID(ctx context.Context, id uint) (*domain.Favorite, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Favorite, error)
	Exists(ctx context.Context, userID uuid.UUID, heroID uint) (bool, error)
	OwnerOf(ctx context.Context, id uint) (uuid.UUID, error)
}

type DraftRepository interface {
	Create(ctx context.Context, draft *domain.TeamDraft) error
	Update(ctx context.Context, draft *domain.TeamDraft) error
	Delete(ctx context.Context, id uint, userID uuid.UUID) error
	GetByID(ctx context.Context, id uint) (*domain.TeamDraft, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.TeamDraft, error)
	OwnerOf(ctx context.Context, id uint) (uuid.UUID, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	Update(ctx context.Context, review *domain.Review) error
	Delete(ctx context.Context, id uint, userID uuid.UUID) error
	GetByID(ctx context.Context, id uint) (*domain.Review, error)
	ListByHero(ctx context.Context, heroID uint) ([]*domain.ReviewWithAuthor, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Review, error)
	OwnerOf(ctx context.Context, id uint) (uuid.UUID, error)
}

type Repositories struct {
	User     UserRepository
	Hero     HeroRepository
	Favorite FavoriteRepository
	Draft    DraftRepository
	Review   ReviewRepository
}
