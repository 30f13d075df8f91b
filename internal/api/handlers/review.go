package handlers

import (
	"net/http"

	"github.com/dom/hero-archive/internal/domain"
	"github.com/dom/hero-archive/internal/service"
)

type ReviewHandler struct {
	reviewService *service.ReviewService
}

func NewReviewHandler(reviewService *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// Rating bounds are checked by the enforcer so that create and update
// report the same error.
type CreateReviewRequest struct {
	HeroID  uint   `json:"heroId" validate:"required"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment" validate:"max=4000"`
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment" validate:"omitempty,max=4000"`
}

type ReviewsResponse struct {
	Reviews []*domain.Review `json:"reviews"`
}

type HeroReviewsResponse struct {
	Reviews []*domain.ReviewWithAuthor `json:"reviews"`
}

func (h *ReviewHandler) ListByHero(w http.ResponseWriter, r *http.Request) {
	heroID, err := idParam(r, "heroId", "hero")
	if err != nil {
		writeError(w, r, "review.ListByHero", err)
		return
	}

	reviews, err := h.reviewService.ListByHero(r.Context(), heroID)
	if err != nil {
		writeError(w, r, "review.ListByHero", err)
		return
	}
	if reviews == nil {
		reviews = []*domain.ReviewWithAuthor{}
	}

	writeJSON(w, http.StatusOK, HeroReviewsResponse{Reviews: reviews})
}

func (h *ReviewHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviewService.ListMine(r.Context(), credential(r))
	if err != nil {
		writeError(w, r, "review.ListMine", err)
		return
	}
	if reviews == nil {
		reviews = []*domain.Review{}
	}

	writeJSON(w, http.StatusOK, ReviewsResponse{Reviews: reviews})
}

func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateReviewRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, "review.Create", err)
		return
	}

	review, err := h.reviewService.Create(r.Context(), credential(r), service.CreateReviewInput{
		HeroID:  req.HeroID,
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		writeError(w, r, "review.Create", err)
		return
	}

	writeJSON(w, http.StatusCreated, review)
}

func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id", "review")
	if err != nil {
		writeError(w, r, "review.Update", err)
		return
	}

	var req UpdateReviewRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, "review.Update", err)
		return
	}

	review, err := h.reviewService.Update(r.Context(), credential(r), id, domain.ReviewPatch{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		writeError(w, r, "review.Update", err)
		return
	}

	writeJSON(w, http.StatusOK, review)
}

func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id", "review")
	if err != nil {
		writeError(w, r, "review.Delete", err)
		return
	}

	if err := h.reviewService.Delete(r.Context(), credential(r), id); err != nil {
		writeError(w, r, "review.Delete", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
