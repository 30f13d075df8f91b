package domain

import (
	"time"

	"github.com/google/uuid"
)

type Favorite struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_hero"`
	HeroID    uint      `json:"heroId" gorm:"not null;uniqueIndex:idx_favorites_user_hero"`
	Notes     string    `json:"notes" gorm:"type:text"`
	Priority  Priority  `json:"priority" gorm:"type:smallint;not null;default:2"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	User *User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Hero *Hero `json:"hero,omitempty" gorm:"foreignKey:HeroID;constraint:OnDelete:CASCADE"`
}

// FavoritePatch carries the optional fields of a favorite update
type FavoritePatch struct {
	Notes    *string
	Priority *Priority
}
