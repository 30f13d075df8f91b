package domain

import "time"

// Stat bounds for heroes
const (
	MinStat       = 0
	MaxStat       = 100
	MinDifficulty = 1
	MaxDifficulty = 10
)

type Hero struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex;not null"`
	Role        HeroRole  `json:"role" gorm:"type:varchar(32);index"`
	Specialty   string    `json:"specialty"`
	Difficulty  int       `json:"difficulty" gorm:"not null;default:1"`
	Durability  int       `json:"durability" gorm:"not null;default:0"`
	Offense     int       `json:"offense" gorm:"not null;default:0"`
	ControlStat int       `json:"controlStat" gorm:"not null;default:0"`
	Movement    int       `json:"movement" gorm:"not null;default:0"`
	ImageURL    string    `json:"imageUrl"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// HeroFilter narrows a catalog listing
type HeroFilter struct {
	Role   HeroRole
	Search string
}

// CacheKey returns a stable key for the filter
func (f HeroFilter) CacheKey() string {
	return "role=" + string(f.Role) + "&search=" + f.Search
}

// HeroPatch carries the optional fields of a partial hero update.
type HeroPatch struct {
	Name        *string
	Role        *HeroRole
	Specialty   *string
	Difficulty  *int
	Durability  *int
	Offense     *int
	ControlStat *int
	Movement    *int
	ImageURL    *string
	Description *string
}

// Apply merges the patch into a copy of h
func (p HeroPatch) Apply(h Hero) Hero {
	if p.Name != nil {
		h.Name = *p.Name
	}
	if p.Role != nil {
		h.Role = *p.Role
	}
	if p.Specialty != nil {
		h.Specialty = *p.Specialty
	}
	if p.Difficulty != nil {
		h.Difficulty = *p.Difficulty
	}
	if p.Durability != nil {
		h.Durability = *p.Durability
	}
	if p.Offense != nil {
		h.Offense = *p.Offense
	}
	if p.ControlStat != nil {
		h.ControlStat = *p.ControlStat
	}
	if p.Movement != nil {
		h.Movement = *p.Movement
	}
	if p.ImageURL != nil {
		h.ImageURL = *p.ImageURL
	}
	if p.Description != nil {
		h.Description = *p.Description
	}
	return h
}
