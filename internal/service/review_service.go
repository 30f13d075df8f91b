package service

import (
	"context"
	"time"

	"github.com/dom/hero-archive/internal/authz"
	"github.com/dom/hero-archive/internal/domain"
	"github.com/dom/hero-archive/internal/repository"
	"github.com/dom/hero-archive/internal/websocket"
)

type ReviewService struct {
	reviewRepo repository.ReviewRepository
	authorizer *authz.Authorizer
	enforcer   *authz.Enforcer
	events     EventPublisher
}

func NewReviewService(reviewRepo repository.ReviewRepository, authorizer *authz.Authorizer, enforcer *authz.Enforcer, events EventPublisher) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		authorizer: authorizer,
		enforcer:   enforcer,
		events:     events,
	}
}

type CreateReviewInput struct {
	HeroID  uint
	Rating  int
	Comment string
}

// ListByHero returns every review of a hero, newest first. Public.
func (s *ReviewService) ListByHero(ctx context.Context, heroID uint) ([]*domain.ReviewWithAuthor, error) {
	if _, err := authorize(ctx, s.authorizer, authz.Operation{
		Resource:   authz.ResourceHeroReviews,
		Action:     authz.ActionRead,
		ResourceID: heroID,
	}); err != nil {
		return nil, err
	}
	return s.reviewRepo.ListByHero(ctx, heroID)
}

// ListMine returns the caller's own reviews.
func (s *ReviewService) ListMine(ctx context.Context, credential string) ([]*domain.Review, error) {
	id, err := authorize(ctx, s.authorizer, authz.Operation{
		Resource:   authz.ResourceReview,
		Action:     authz.ActionRead,
		Credential: credential,
	})
	if err != nil {
		return nil, err
	}
	return s.reviewRepo.ListByUser(ctx, id.SubjectID)
}

// Create posts a review. Repeat reviews of the same hero are allowed.
func (s *ReviewService) Create(ctx context.Context, credential string, input CreateReviewInput) (*domain.Review, error) {
	id, err := authorize(ctx, s.authorizer, authz.Operation{
		Resource:   authz.ResourceReview,
		Action:     authz.ActionCreate,
		Credential: credential,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	review := &domain.Review{
		UserID:    id.SubjectID,
		HeroID:    input.HeroID,
		Rating:    input.Rating,
		Comment:   input.Comment,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.enforcer.Review(review); err != nil {
		return nil, err
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	s.events.Publish(websocket.MessageTypeReviewPosted, domain.ReviewWithAuthor{
		Review:   *review,
		Username: id.DisplayName,
	})
	return review, nil
}

func (s *ReviewService) Update(ctx context.Context, credential string, reviewID uint, patch domain.ReviewPatch) (*domain.Review, error) {
	if _, err := authorize(ctx, s.authorizer, authz.Operation{
		Resource:   authz.ResourceReview,
		Action:     authz.ActionUpdate,
		ResourceID: reviewID,
		Credential: credential,
	}); err != nil {
		return nil, err
	}

	current, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	updated, err := s.enforcer.ReviewUpdate(*current, patch)
	if err != nil {
		return nil, err
	}
	if err := s.reviewRepo.Update(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *ReviewService) Delete(ctx context.Context, credential string, reviewID uint) error {
	d := s.authorizer.Authorize(ctx, authz.Operation{
		Resource:   authz.ResourceReview,
		Action:     authz.ActionDelete,
		ResourceID: reviewID,
		Credential: credential,
	})
	if err := d.Err(); err != nil {
		return err
	}
	return s.reviewRepo.Delete(ctx, reviewID, d.Identity.SubjectID)
}
