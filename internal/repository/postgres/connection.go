package postgres

import (
	"github.com/dom/hero-archive/internal/domain"
	"github.com/dom/hero-archive/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Models lists every table managed by AutoMigrate, parents first.
var Models = []interface{}{
	&domain.User{},
	&domain.Hero{},
	&domain.Favorite{},
	&domain.TeamDraft{},
	&domain.Review{},
}

func NewConnection(databaseURL string, logLevel logger.LogLevel) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates the schema, including the unique
// (user_id, hero_id) index on favorites.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models...)
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		User:     NewUserRepository(db),
		Hero:     NewHeroRepository(db),
		Favorite: NewFavoriteRepository(db),
		Draft:    NewDraftRepository(db),
		Review:   NewReviewRepository(db),
	}
}
