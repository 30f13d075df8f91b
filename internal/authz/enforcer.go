package authz

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dom/hero-archive/internal/domain"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// FavoriteIndex answers whether an owner already favorited a hero.
type FavoriteIndex interface {
	Exists(ctx context.Context, userID uuid.UUID, heroID uint) (bool, error)
}

// Enforcer checks per-resource invariants against a proposed state. It never
// writes; the store's unique constraint remains the final word on favorites.
type Enforcer struct {
	favorites FavoriteIndex
}

func NewEnforcer(favorites FavoriteIndex) *Enforcer {
	return &Enforcer{favorites: favorites}
}

// between is an inclusive range rule. Unlike validation.Min/Max it also
// checks zero values.
func between(min, max int) validation.Rule {
	return validation.By(func(value interface{}) error {
		n, ok := value.(int)
		if !ok {
			return errors.New("must be an integer")
		}
		if n < min || n > max {
			return fmt.Errorf("must be between %d and %d", min, max)
		}
		return nil
	})
}

func invalid(err error) error {
	return domain.InvalidArgument(strings.TrimSuffix(err.Error(), "."), err)
}

// FavoriteCreate normalizes a new favorite and rejects a duplicate
// (owner, hero) pair.
func (e *Enforcer) FavoriteCreate(ctx context.Context, fav *domain.Favorite) error {
	if fav.HeroID == 0 {
		return domain.InvalidArgument("heroId is required", nil)
	}

	exists, err := e.favorites.Exists(ctx, fav.UserID, fav.HeroID)
	if err != nil {
		return domain.Unavailable("service unavailable", err)
	}
	if exists {
		return domain.Conflict(domain.ErrDuplicateFavorite.Error(), domain.ErrDuplicateFavorite)
	}

	fav.Notes = strings.TrimSpace(fav.Notes)
	fav.Priority = domain.NormalizePriority(fav.Priority)
	return nil
}

// FavoriteUpdate merges patch into current. Priorities outside the
// vocabulary fall back to the default rather than failing.
func (e *Enforcer) FavoriteUpdate(current domain.Favorite, patch domain.FavoritePatch) domain.Favorite {
	if patch.Notes != nil {
		current.Notes = strings.TrimSpace(*patch.Notes)
	}
	if patch.Priority != nil {
		current.Priority = domain.NormalizePriority(*patch.Priority)
	}
	return current
}

// DraftCreate checks a new draft's team name and hero count.
func (e *Enforcer) DraftCreate(teamName string, heroIDs []uint) error {
	if strings.TrimSpace(teamName) == "" {
		return domain.InvalidArgument("teamName is required", nil)
	}
	return checkDraftHeroes(heroIDs)
}

// DraftUpdate merges patch into current and re-checks the result. The hero
// set is replaced wholesale when present.
func (e *Enforcer) DraftUpdate(current domain.TeamDraft, patch domain.DraftPatch) (domain.TeamDraft, error) {
	if patch.TeamName != nil {
		if strings.TrimSpace(*patch.TeamName) == "" {
			return current, domain.InvalidArgument("teamName cannot be empty", nil)
		}
		current.TeamName = strings.TrimSpace(*patch.TeamName)
	}
	if patch.HeroIDs != nil {
		if err := checkDraftHeroes(patch.HeroIDs); err != nil {
			return current, err
		}
		if err := current.SetHeroes(patch.HeroIDs); err != nil {
			return current, domain.InvalidArgument("invalid hero ids", err)
		}
	}
	return current, nil
}

// Only cardinality is checked; duplicate heroes are allowed.
func checkDraftHeroes(ids []uint) error {
	if len(ids) != domain.DraftSize {
		return domain.InvalidArgument(domain.ErrDraftSize.Error(), domain.ErrDraftSize)
	}
	return nil
}

// Review checks the rating of a proposed review.
func (e *Enforcer) Review(r *domain.Review) error {
	if r.HeroID == 0 {
		return domain.InvalidArgument("heroId is required", nil)
	}
	return checkRating(r.Rating)
}

// ReviewUpdate merges patch into current and re-checks the rating.
func (e *Enforcer) ReviewUpdate(current domain.Review, patch domain.ReviewPatch) (domain.Review, error) {
	if patch.Rating != nil {
		current.Rating = *patch.Rating
	}
	if patch.Comment != nil {
		current.Comment = *patch.Comment
	}
	if err := checkRating(current.Rating); err != nil {
		return current, err
	}
	return current, nil
}

func checkRating(rating int) error {
	if err := validation.Validate(rating, between(domain.MinRating, domain.MaxRating)); err != nil {
		return domain.InvalidArgument(domain.ErrRatingRange.Error(), domain.ErrRatingRange)
	}
	return nil
}

// Hero checks the bounds of a proposed hero state.
func (e *Enforcer) Hero(h *domain.Hero) error {
	h.Name = strings.TrimSpace(h.Name)
	if h.Role != "" {
		h.Role = domain.ParseHeroRole(string(h.Role))
	}

	roles := make([]interface{}, len(domain.AllHeroRoles))
	for i, r := range domain.AllHeroRoles {
		roles[i] = r
	}

	err := validation.ValidateStruct(h,
		validation.Field(&h.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&h.Role, validation.In(roles...)),
		validation.Field(&h.Difficulty, between(domain.MinDifficulty, domain.MaxDifficulty)),
		validation.Field(&h.Durability, between(domain.MinStat, domain.MaxStat)),
		validation.Field(&h.Offense, between(domain.MinStat, domain.MaxStat)),
		validation.Field(&h.ControlStat, between(domain.MinStat, domain.MaxStat)),
		validation.Field(&h.Movement, between(domain.MinStat, domain.MaxStat)),
		validation.Field(&h.ImageURL, validation.Length(0, 512)),
	)
	if err != nil {
		return invalid(err)
	}
	return nil
}
