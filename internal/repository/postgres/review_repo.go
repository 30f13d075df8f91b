package postgres

import (
	"context"
	"time"

	"github.com/dom/hero-archive/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *reviewRepository {
	return &reviewRepository{db: db}
}

const reviewNotFound = "review not found"

func (r *reviewRepository) Create(ctx context.Context, review *domain.Review) error {
	err := r.db.WithContext(ctx).Omit("User", "Hero").Create(review).Error
	return mapError(err, reviewNotFound, nil)
}

func (r *reviewRepository) Update(ctx context.Context, review *domain.Review) error {
	review.UpdatedAt = time.Now()
	tx := r.db.WithContext(ctx).Model(&domain.Review{}).
		Where("id = ? AND user_id = ?", review.ID, review.UserID).
		Updates(map[string]interface{}{
			"rating":     review.Rating,
			"comment":    review.Comment,
			"updated_at": review.UpdatedAt,
		})
	return mapError(affected(tx), reviewNotFound, nil)
}

func (r *reviewRepository) Delete(ctx context.Context, id uint, userID uuid.UUID) error {
	tx := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&domain.Review{})
	return mapError(affected(tx), reviewNotFound, nil)
}

func (r *reviewRepository) GetByID(ctx context.Context, id uint) (*domain.Review, error) {
	var review domain.Review
	err := r.db.WithContext(ctx).First(&review, id).Error
	if err != nil {
		return nil, mapError(err, reviewNotFound, nil)
	}
	return &review, nil
}

func (r *reviewRepository) ListByHero(ctx context.Context, heroID uint) ([]*domain.ReviewWithAuthor, error) {
	var reviews []*domain.ReviewWithAuthor
	err := r.db.WithContext(ctx).
		Table("reviews").
		Select("reviews.*, users.display_name AS username").
		Joins("JOIN users ON users.id = reviews.user_id").
		Where("reviews.hero_id = ?", heroID).
		Order("reviews.created_at DESC").
		Scan(&reviews).Error
	if err != nil {
		return nil, mapError(err, reviewNotFound, nil)
	}
	return reviews, nil
}

func (r *reviewRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Review, error) {
	var reviews []*domain.Review
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, mapError(err, reviewNotFound, nil)
	}
	return reviews, nil
}

func (r *reviewRepository) OwnerOf(ctx context.Context, id uint) (uuid.UUID, error) {
	return ownerOf(ctx, r.db, &domain.Review{}, id, reviewNotFound)
}
