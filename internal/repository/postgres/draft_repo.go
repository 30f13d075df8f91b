package postgres

import (
	"context"
	"time"

	"github.com/dom/hero-archive/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type draftRepository struct {
	db *gorm.DB
}

func NewDraftRepository(db *gorm.DB) *draftRepository {
	return &draftRepository{db: db}
}

const draftNotFound = "draft not found"

func (r *draftRepository) Create(ctx context.Context, draft *domain.TeamDraft) error {
	err := r.db.WithContext(ctx).Omit("User").Create(draft).Error
	return mapError(err, draftNotFound, nil)
}

func (r *draftRepository) Update(ctx context.Context, draft *domain.TeamDraft) error {
	draft.UpdatedAt = time.Now()
	tx := r.db.WithContext(ctx).Model(&domain.TeamDraft{}).
		Where("id = ? AND user_id = ?", draft.ID, draft.UserID).
		Updates(map[string]interface{}{
			"team_name":  draft.TeamName,
			"hero_ids":   draft.HeroIDs,
			"updated_at": draft.UpdatedAt,
		})
	return mapError(affected(tx), draftNotFound, nil)
}

func (r *draftRepository) Delete(ctx context.Context, id uint, userID uuid.UUID) error {
	tx := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&domain.TeamDraft{})
	return mapError(affected(tx), draftNotFound, nil)
}

func (r *draftRepository) GetByID(ctx context.Context, id uint) (*domain.TeamDraft, error) {
	var draft domain.TeamDraft
	err := r.db.WithContext(ctx).First(&draft, id).Error
	if err != nil {
		return nil, mapError(err, draftNotFound, nil)
	}
	return &draft, nil
}

func (r *draftRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.TeamDraft, error) {
	var drafts []*domain.TeamDraft
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&drafts).Error
	if err != nil {
		return nil, mapError(err, draftNotFound, nil)
	}
	return drafts, nil
}

func (r *draftRepository) OwnerOf(ctx context.Context, id uint) (uuid.UUID, error) {
	return ownerOf(ctx, r.db, &domain.TeamDraft{}, id, draftNotFound)
}
