package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/dom/hero-archive/internal/authz"
	"github.com/dom/hero-archive/internal/domain"
	"github.com/dom/hero-archive/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

// heroEntry is one hero in the catalog file. Difficulty defaults to 1.
type heroEntry struct {
	Name        string `yaml:"name"`
	Role        string `yaml:"role"`
	Specialty   string `yaml:"specialty"`
	Difficulty  *int   `yaml:"difficulty"`
	Durability  int    `yaml:"durability"`
	Offense     int    `yaml:"offense"`
	Control     int    `yaml:"control"`
	Movement    int    `yaml:"movement"`
	ImageURL    string `yaml:"image_url"`
	Description string `yaml:"description"`
}

type catalogFile struct {
	Heroes []heroEntry `yaml:"heroes"`
}

func loadCatalog(r io.Reader) ([]domain.Hero, error) {
	var file catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, err
	}

	heroes := make([]domain.Hero, len(file.Heroes))
	for i, e := range file.Heroes {
		difficulty := domain.MinDifficulty
		if e.Difficulty != nil {
			difficulty = *e.Difficulty
		}
		heroes[i] = domain.Hero{
			Name:        e.Name,
			Role:        domain.HeroRole(e.Role),
			Specialty:   e.Specialty,
			Difficulty:  difficulty,
			Durability:  e.Durability,
			Offense:     e.Offense,
			ControlStat: e.Control,
			Movement:    e.Movement,
			ImageURL:    e.ImageURL,
			Description: e.Description,
		}
	}
	return heroes, nil
}

type seeder struct {
	heroes repository.HeroRepository
	users  repository.UserRepository
	logger *slog.Logger
}

// seedHeroes validates every entry before writing any, then upserts by name.
func (s *seeder) seedHeroes(ctx context.Context, heroes []domain.Hero) (int, error) {
	enforcer := authz.NewEnforcer(nil)
	for i := range heroes {
		if err := enforcer.Hero(&heroes[i]); err != nil {
			return 0, fmt.Errorf("hero %d (%q): %w", i+1, heroes[i].Name, err)
		}
	}

	for i := range heroes {
		if err := s.heroes.UpsertByName(ctx, &heroes[i]); err != nil {
			return i, fmt.Errorf("upsert %q: %w", heroes[i].Name, err)
		}
		s.logger.Debug("hero upserted", "name", heroes[i].Name, "id", heroes[i].ID)
	}
	return len(heroes), nil
}

// ensureAdmin promotes an existing account or creates a new admin. A new
// account needs a password.
func (s *seeder) ensureAdmin(ctx context.Context, name, password string) error {
	user, err := s.users.GetByDisplayName(ctx, name)
	switch {
	case err == nil:
		if user.IsAdmin() {
			s.logger.Info("admin already present", "display_name", name)
			return nil
		}
		user.Role = domain.UserRoleAdmin
		if err := s.users.Update(ctx, user); err != nil {
			return fmt.Errorf("promote %q: %w", name, err)
		}
		s.logger.Info("account promoted to admin", "display_name", name)
		return nil
	case !errors.Is(err, domain.ErrNotFound):
		return fmt.Errorf("look up %q: %w", name, err)
	}

	if len(password) < 8 {
		return fmt.Errorf("--admin-password of at least 8 characters is required to create %q", name)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	if err := s.users.Create(ctx, &domain.User{
		ID:           uuid.New(),
		DisplayName:  name,
		PasswordHash: string(hash),
		Role:         domain.UserRoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}); err != nil {
		return fmt.Errorf("create %q: %w", name, err)
	}
	s.logger.Info("admin account created", "display_name", name)
	return nil
}
