package handlers

import (
	"net/http"
	"strings"

	"github.com/dom/hero-archive/internal/domain"
	"github.com/dom/hero-archive/internal/service"
)

type HeroHandler struct {
	heroService *service.HeroService
}

func NewHeroHandler(heroService *service.HeroService) *HeroHandler {
	return &HeroHandler{heroService: heroService}
}

// HeroRequest is the body of both create and update. Range checks on the
// stats live in the enforcer so that merged updates are validated the same
// way as creates.
type HeroRequest struct {
	Name        *string `json:"name"`
	Role        *string `json:"role"`
	Specialty   *string `json:"specialty" validate:"omitempty,max=100"`
	Difficulty  *int    `json:"difficulty"`
	Durability  *int    `json:"durability"`
	Offense     *int    `json:"offense"`
	ControlStat *int    `json:"controlStat"`
	Movement    *int    `json:"movement"`
	ImageURL    *string `json:"imageUrl"`
	Description *string `json:"description"`
}

type HeroesResponse struct {
	Heroes []*domain.Hero `json:"heroes"`
}

func (h *HeroHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.HeroFilter{Search: strings.TrimSpace(q.Get("search"))}
	if raw := strings.TrimSpace(q.Get("role")); raw != "" {
		role := domain.ParseHeroRole(raw)
		if !role.IsValid() {
			writeError(w, r, "hero.List", domain.InvalidArgument("role is not a known hero role", nil))
			return
		}
		filter.Role = role
	}

	heroes, err := h.heroService.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, "hero.List", err)
		return
	}
	if heroes == nil {
		heroes = []*domain.Hero{}
	}

	writeJSON(w, http.StatusOK, HeroesResponse{Heroes: heroes})
}

func (h *HeroHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id", "hero")
	if err != nil {
		writeError(w, r, "hero.Get", err)
		return
	}

	hero, err := h.heroService.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, "hero.Get", err)
		return
	}

	writeJSON(w, http.StatusOK, hero)
}

func (h *HeroHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req HeroRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, "hero.Create", err)
		return
	}

	hero := req.patch().Apply(domain.Hero{Difficulty: domain.MinDifficulty})
	created, err := h.heroService.Create(r.Context(), credential(r), &hero)
	if err != nil {
		writeError(w, r, "hero.Create", err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *HeroHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id", "hero")
	if err != nil {
		writeError(w, r, "hero.Update", err)
		return
	}

	var req HeroRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, "hero.Update", err)
		return
	}

	updated, err := h.heroService.Update(r.Context(), credential(r), id, req.patch())
	if err != nil {
		writeError(w, r, "hero.Update", err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *HeroHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id", "hero")
	if err != nil {
		writeError(w, r, "hero.Delete", err)
		return
	}

	if err := h.heroService.Delete(r.Context(), credential(r), id); err != nil {
		writeError(w, r, "hero.Delete", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (req HeroRequest) patch() domain.HeroPatch {
	p := domain.HeroPatch{
		Name:        req.Name,
		Specialty:   req.Specialty,
		Difficulty:  req.Difficulty,
		Durability:  req.Durability,
		Offense:     req.Offense,
		ControlStat: req.ControlStat,
		Movement:    req.Movement,
		ImageURL:    req.ImageURL,
		Description: req.Description,
	}
	if req.Role != nil {
		role := domain.HeroRole(*req.Role)
		p.Role = &role
	}
	return p
}
