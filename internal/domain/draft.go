package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DraftSize is the number of heroes in a team draft
const DraftSize = 5

// TeamDraft is a saved team composition. HeroIDs holds an ordered JSON array.
type TeamDraft struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	UserID    uuid.UUID      `json:"userId" gorm:"type:uuid;index;not null"`
	TeamName  string         `json:"teamName" gorm:"not null"`
	HeroIDs   datatypes.JSON `json:"heroIds" gorm:"type:jsonb;not null;default:'[]'"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`

	// Relations
	User *User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// Heroes decodes the stored hero id list
func (d *TeamDraft) Heroes() ([]uint, error) {
	var ids []uint
	if len(d.HeroIDs) == 0 {
		return ids, nil
	}
	if err := json.Unmarshal(d.HeroIDs, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// SetHeroes replaces the stored hero id list
func (d *TeamDraft) SetHeroes(ids []uint) error {
	if ids == nil {
		ids = []uint{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	d.HeroIDs = datatypes.JSON(data)
	return nil
}

// DraftPatch carries the optional fields of a draft update. A nil HeroIDs
// keeps the stored set.
type DraftPatch struct {
	TeamName *string
	HeroIDs  []uint
}
