package postgres

import (
	"context"
	"time"

	"github.com/dom/hero-archive/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *favoriteRepository {
	return &favoriteRepository{db: db}
}

const favoriteNotFound = "favorite not found"

// Create relies on idx_favorites_user_hero to reject a second favorite for
// the same pair, concurrent or not.
func (r *favoriteRepository) Create(ctx context.Context, fav *domain.Favorite) error {
	err := r.db.WithContext(ctx).Omit("User", "Hero").Create(fav).Error
	return mapError(err, favoriteNotFound, domain.ErrDuplicateFavorite)
}

func (r *favoriteRepository) Update(ctx context.Context, fav *domain.Favorite) error {
	fav.UpdatedAt = time.Now()
	tx := r.db.WithContext(ctx).Model(&domain.Favorite{}).
		Where("id = ? AND user_id = ?", fav.ID, fav.UserID).
		Updates(map[string]interface{}{
			"notes":      fav.Notes,
			"priority":   fav.Priority,
			"updated_at": fav.UpdatedAt,
		})
	return mapError(affected(tx), favoriteNotFound, nil)
}

func (r *favoriteRepository) Delete(ctx context.Context, id uint, userID uuid.UUID) error {
	tx := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&domain.Favorite{})
	return mapError(affected(tx), favoriteNotFound, nil)
}

func (r *favoriteRepository) GetByID(ctx context.Context, id uint) (*domain.Favorite, error) {
	var fav domain.Favorite
	err := r.db.WithContext(ctx).Preload("Hero").First(&fav, id).Error
	if err != nil {
		return nil, mapError(err, favoriteNotFound, nil)
	}
	return &fav, nil
}

func (r *favoriteRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Favorite, error) {
	var favs []*domain.Favorite
	err := r.db.WithContext(ctx).
		Preload("Hero").
		Where("user_id = ?", userID).
		Order("priority DESC, created_at DESC").
		Find(&favs).Error
	if err != nil {
		return nil, mapError(err, favoriteNotFound, nil)
	}
	return favs, nil
}

func (r *favoriteRepository) Exists(ctx context.Context, userID uuid.UUID, heroID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Favorite{}).
		Where("user_id = ? AND hero_id = ?", userID, heroID).
		Count(&count).Error
	if err != nil {
		return false, mapError(err, favoriteNotFound, nil)
	}
	return count > 0, nil
}

func (r *favoriteRepository) OwnerOf(ctx context.Context, id uint) (uuid.UUID, error) {
	return ownerOf(ctx, r.db, &domain.Favorite{}, id, favoriteNotFound)
}
