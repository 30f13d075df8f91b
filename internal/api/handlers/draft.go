package handlers

import (
	"net/http"

	"github.com/dom/hero-archive/internal/domain"
	"github.com/dom/hero-archive/internal/service"
)

type DraftHandler struct {
	draftService *service.DraftService
}

func NewDraftHandler(draftService *service.DraftService) *DraftHandler {
	return &DraftHandler{draftService: draftService}
}

type CreateDraftRequest struct {
	TeamName string `json:"teamName" validate:"required,max=100"`
	HeroIDs  []uint `json:"heroIds" validate:"required"`
}

// HeroIDs is nil when the field is omitted or null, which keeps the stored set.
type UpdateDraftRequest struct {
	TeamName *string `json:"teamName" validate:"omitempty,max=100"`
	HeroIDs  []uint  `json:"heroIds"`
}

type DraftsResponse struct {
	Drafts []*domain.TeamDraft `json:"drafts"`
}

func (h *DraftHandler) List(w http.ResponseWriter, r *http.Request) {
	drafts, err := h.draftService.List(r.Context(), credential(r))
	if err != nil {
		writeError(w, r, "draft.List", err)
		return
	}
	if drafts == nil {
		drafts = []*domain.TeamDraft{}
	}

	writeJSON(w, http.StatusOK, DraftsResponse{Drafts: drafts})
}

func (h *DraftHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id", "draft")
	if err != nil {
		writeError(w, r, "draft.Get", err)
		return
	}

	draft, err := h.draftService.Get(r.Context(), credential(r), id)
	if err != nil {
		writeError(w, r, "draft.Get", err)
		return
	}

	writeJSON(w, http.StatusOK, draft)
}

func (h *DraftHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateDraftRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, "draft.Create", err)
		return
	}

	draft, err := h.draftService.Create(r.Context(), credential(r), req.TeamName, req.HeroIDs)
	if err != nil {
		writeError(w, r, "draft.Create", err)
		return
	}

	writeJSON(w, http.StatusCreated, draft)
}

func (h *DraftHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id", "draft")
	if err != nil {
		writeError(w, r, "draft.Update", err)
		return
	}

	var req UpdateDraftRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, "draft.Update", err)
		return
	}

	draft, err := h.draftService.Update(r.Context(), credential(r), id, domain.DraftPatch{
		TeamName: req.TeamName,
		HeroIDs:  req.HeroIDs,
	})
	if err != nil {
		writeError(w, r, "draft.Update", err)
		return
	}

	writeJSON(w, http.StatusOK, draft)
}

func (h *DraftHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id", "draft")
	if err != nil {
		writeError(w, r, "draft.Delete", err)
		return
	}

	if err := h.draftService.Delete(r.Context(), credential(r), id); err != nil {
		writeError(w, r, "draft.Delete", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
