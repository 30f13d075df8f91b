package postgres

import (
	"context"

	"github.com/dom/hero-archive/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *userRepository {
	return &userRepository{db: db}
}

const userNotFound = "user not found"

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if user.Role == "" {
		user.Role = domain.UserRoleUser
	}
	err := r.db.WithContext(ctx).Create(user).Error
	return mapError(err, userNotFound, domain.ErrDisplayNameExists)
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		return nil, mapError(err, userNotFound, nil)
	}
	return &user, nil
}

func (r *userRepository) GetByDisplayName(ctx context.Context, displayName string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "display_name = ?", displayName).Error
	if err != nil {
		return nil, mapError(err, userNotFound, nil)
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	tx := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
		"display_name":  user.DisplayName,
		"password_hash": user.PasswordHash,
		"role":          user.Role,
		"updated_at":    gorm.Expr("NOW()"),
	})
	return mapError(affected(tx), userNotFound, domain.ErrDisplayNameExists)
}
