package service

import (
	"context"
	"strings"
	"time"

	"github.com/dom/hero-archive/internal/authz"
	"github.com/dom/hero-archive/internal/domain"
	"github.com/dom/hero-archive/internal/repository"
)

type DraftService struct {
	draftRepo  repository.DraftRepository
	authorizer *authz.Authorizer
	enforcer   *authz.Enforcer
}

func NewDraftService(draftRepo repository.DraftRepository, authorizer *authz.Authorizer, enforcer *authz.Enforcer) *DraftService {
	return &DraftService{
		draftRepo:  draftRepo,
		authorizer: authorizer,
		enforcer:   enforcer,
	}
}

func (s *DraftService) List(ctx context.Context, credential string) ([]*domain.TeamDraft, error) {
	id, err := authorize(ctx, s.authorizer, authz.Operation{
		Resource:   authz.ResourceDraft,
		Action:     authz.ActionRead,
		Credential: credential,
	})
	if err != nil {
		return nil, err
	}
	return s.draftRepo.ListByUser(ctx, id.SubjectID)
}

func (s *DraftService) Get(ctx context.Context, credential string, draftID uint) (*domain.TeamDraft, error) {
	if _, err := authorize(ctx, s.authorizer, authz.Operation{
		Resource:   authz.ResourceDraft,
		Action:     authz.ActionRead,
		ResourceID: draftID,
		Credential: credential,
	}); err != nil {
		return nil, err
	}
	return s.draftRepo.GetByID(ctx, draftID)
}

func (s *DraftService) Create(ctx context.Context, credential string, teamName string, heroIDs []uint) (*domain.TeamDraft, error) {
	id, err := authorize(ctx, s.authorizer, authz.Operation{
		Resource:   authz.ResourceDraft,
		Action:     authz.ActionCreate,
		Credential: credential,
	})
	if err != nil {
		return nil, err
	}

	if err := s.enforcer.DraftCreate(teamName, heroIDs); err != nil {
		return nil, err
	}

	now := time.Now()
	draft := &domain.TeamDraft{
		UserID:    id.SubjectID,
		TeamName:  strings.TrimSpace(teamName),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := draft.SetHeroes(heroIDs); err != nil {
		return nil, domain.InvalidArgument("invalid hero ids", err)
	}

	if err := s.draftRepo.Create(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Update renames the draft and/or replaces its hero set.
func (s *DraftService) Update(ctx context.Context, credential string, draftID uint, patch domain.DraftPatch) (*domain.TeamDraft, error) {
	if _, err := authorize(ctx, s.authorizer, authz.Operation{
		Resource:   authz.ResourceDraft,
		Action:     authz.ActionUpdate,
		ResourceID: draftID,
		Credential: credential,
	}); err != nil {
		return nil, err
	}

	current, err := s.draftRepo.GetByID(ctx, draftID)
	if err != nil {
		return nil, err
	}

	updated, err := s.enforcer.DraftUpdate(*current, patch)
	if err != nil {
		return nil, err
	}
	if err := s.draftRepo.Update(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *DraftService) Delete(ctx context.Context, credential string, draftID uint) error {
	d := s.authorizer.Authorize(ctx, authz.Operation{
		Resource:   authz.ResourceDraft,
		Action:     authz.ActionDelete,
		ResourceID: draftID,
		Credential: credential,
	})
	if err := d.Err(); err != nil {
		return err
	}
	return s.draftRepo.Delete(ctx, draftID, d.Identity.SubjectID)
}
