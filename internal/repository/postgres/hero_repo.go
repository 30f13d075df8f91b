package postgres

import (
	"context"
	"strings"

	"github.com/dom/hero-archive/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type heroRepository struct {
	db *gorm.DB
}

func NewHeroRepository(db *gorm.DB) *heroRepository {
	return &heroRepository{db: db}
}

const heroNotFound = "hero not found"

var heroColumns = []string{
	"name", "role", "specialty", "difficulty", "durability", "offense",
	"control_stat", "movement", "image_url", "description", "updated_at",
}

func (r *heroRepository) Create(ctx context.Context, hero *domain.Hero) error {
	err := r.db.WithContext(ctx).Create(hero).Error
	return mapError(err, heroNotFound, domain.ErrDuplicateHeroName)
}

// Update writes every column, including zero values.
func (r *heroRepository) Update(ctx context.Context, hero *domain.Hero) error {
	tx := r.db.WithContext(ctx).Model(&domain.Hero{ID: hero.ID}).Select(heroColumns).Updates(hero)
	return mapError(affected(tx), heroNotFound, domain.ErrDuplicateHeroName)
}

func (r *heroRepository) Delete(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx).Delete(&domain.Hero{}, id)
	return mapError(affected(tx), heroNotFound, nil)
}

func (r *heroRepository) GetByID(ctx context.Context, id uint) (*domain.Hero, error) {
	var hero domain.Hero
	err := r.db.WithContext(ctx).First(&hero, id).Error
	if err != nil {
		return nil, mapError(err, heroNotFound, nil)
	}
	return &hero, nil
}

func (r *heroRepository) GetByName(ctx context.Context, name string) (*domain.Hero, error) {
	var hero domain.Hero
	err := r.db.WithContext(ctx).First(&hero, "name = ?", name).Error
	if err != nil {
		return nil, mapError(err, heroNotFound, nil)
	}
	return &hero, nil
}

func (r *heroRepository) List(ctx context.Context, filter domain.HeroFilter) ([]*domain.Hero, error) {
	q := r.db.WithContext(ctx).Model(&domain.Hero{})
	if filter.Role != "" {
		q = q.Where("role = ?", filter.Role)
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		q = q.Where("name ILIKE ?", "%"+escapeLike(s)+"%")
	}

	var heroes []*domain.Hero
	if err := q.Order("name ASC").Find(&heroes).Error; err != nil {
		return nil, mapError(err, heroNotFound, nil)
	}
	return heroes, nil
}

// UpsertByName inserts a hero or overwrites the one with the same name.
func (r *heroRepository) UpsertByName(ctx context.Context, hero *domain.Hero) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns(heroColumns[1:]),
	}).Create(hero).Error
	return mapError(err, heroNotFound, domain.ErrDuplicateHeroName)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
