package handlers

import (
	"net/http"
	"time"

	"github.com/dom/hero-archive/internal/domain"
	"github.com/dom/hero-archive/internal/service"
)

type FavoriteHandler struct {
	favoriteService *service.FavoriteService
}

func NewFavoriteHandler(favoriteService *service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

// Priority accepts either a label or a rank; unknown values become Medium.
type CreateFavoriteRequest struct {
	HeroID   uint             `json:"heroId" validate:"required"`
	Notes    string           `json:"notes" validate:"max=2000"`
	Priority *domain.Priority `json:"priority"`
}

type UpdateFavoriteRequest struct {
	Notes    *string          `json:"notes" validate:"omitempty,max=2000"`
	Priority *domain.Priority `json:"priority"`
}

type HeroSummary struct {
	ID       uint            `json:"id"`
	Name     string          `json:"name"`
	Role     domain.HeroRole `json:"role"`
	ImageURL string          `json:"imageUrl"`
}

type FavoriteResponse struct {
	ID            uint         `json:"id"`
	HeroID        uint         `json:"heroId"`
	Notes         string       `json:"notes"`
	Priority      int          `json:"priority"`
	PriorityLabel string       `json:"priorityLabel"`
	Hero          *HeroSummary `json:"hero,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

type FavoritesResponse struct {
	Favorites []FavoriteResponse `json:"favorites"`
}

func toFavoriteResponse(f *domain.Favorite) FavoriteResponse {
	resp := FavoriteResponse{
		ID:            f.ID,
		HeroID:        f.HeroID,
		Notes:         f.Notes,
		Priority:      int(f.Priority),
		PriorityLabel: f.Priority.Label(),
		CreatedAt:     f.CreatedAt,
		UpdatedAt:     f.UpdatedAt,
	}
	if f.Hero != nil {
		resp.Hero = &HeroSummary{
			ID:       f.Hero.ID,
			Name:     f.Hero.Name,
			Role:     f.Hero.Role,
			ImageURL: f.Hero.ImageURL,
		}
	}
	return resp
}

func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	favorites, err := h.favoriteService.List(r.Context(), credential(r))
	if err != nil {
		writeError(w, r, "favorite.List", err)
		return
	}

	resp := FavoritesResponse{Favorites: make([]FavoriteResponse, len(favorites))}
	for i, f := range favorites {
		resp.Favorites[i] = toFavoriteResponse(f)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *FavoriteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateFavoriteRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, "favorite.Create", err)
		return
	}

	fav, err := h.favoriteService.Create(r.Context(), credential(r), service.CreateFavoriteInput{
		HeroID:   req.HeroID,
		Notes:    req.Notes,
		Priority: req.Priority,
	})
	if err != nil {
		writeError(w, r, "favorite.Create", err)
		return
	}

	writeJSON(w, http.StatusCreated, toFavoriteResponse(fav))
}

func (h *FavoriteHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id", "favorite")
	if err != nil {
		writeError(w, r, "favorite.Update", err)
		return
	}

	var req UpdateFavoriteRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, "favorite.Update", err)
		return
	}

	fav, err := h.favoriteService.Update(r.Context(), credential(r), id, domain.FavoritePatch{
		Notes:    req.Notes,
		Priority: req.Priority,
	})
	if err != nil {
		writeError(w, r, "favorite.Update", err)
		return
	}

	writeJSON(w, http.StatusOK, toFavoriteResponse(fav))
}

func (h *FavoriteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id", "favorite")
	if err != nil {
		writeError(w, r, "favorite.Delete", err)
		return
	}

	if err := h.favoriteService.Delete(r.Context(), credential(r), id); err != nil {
		writeError(w, r, "favorite.Delete", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
