package domain

import (
	"time"

	"github.com/google/uuid"
)

// Rating bounds for reviews
const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;index;not null"`
	HeroID    uint      `json:"heroId" gorm:"index;not null"`
	Rating    int       `json:"rating" gorm:"type:smallint;not null"`
	Comment   string    `json:"comment" gorm:"type:text"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	User *User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Hero *Hero `json:"-" gorm:"foreignKey:HeroID;constraint:OnDelete:CASCADE"`
}

// ReviewWithAuthor is a review joined with its author's display name
type ReviewWithAuthor struct {
	Review
	Username string `json:"username"`
}

// ReviewPatch carries the optional fields of a review update
type ReviewPatch struct {
	Rating  *int
	Comment *string
}
