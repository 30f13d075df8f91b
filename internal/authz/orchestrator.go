package authz

import (
	"context"
	"log/slog"

	"github.com/dom/hero-archive/internal/domain"
)

// Resource names a kind of protected entity.
type Resource string

const (
	ResourceAccount     Resource = "account"
	ResourceHero        Resource = "hero"
	ResourceHeroReviews Resource = "hero_reviews"
	ResourceFavorite    Resource = "favorite"
	ResourceDraft       Resource = "draft"
	ResourceReview      Resource = "review"
)

type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Operation describes one request for authorization. ResourceID is zero
// when the operation targets a collection.
type Operation struct {
	Resource   Resource
	Action     Action
	ResourceID uint
	Credential string
}

// Rule is the policy for one (resource, action) pair.
type Rule struct {
	Requirement Requirement
	OwnerOnly   bool
}

// PolicyTable maps each resource and action to its rule. Pairs that are not
// listed are denied.
type PolicyTable map[Resource]map[Action]Rule

// DefaultPolicies is the hero catalog access table.
var DefaultPolicies = PolicyTable{
	ResourceAccount: {
		ActionRead: {Requirement: RequireAuthenticated},
	},
	ResourceHero: {
		ActionRead:   {Requirement: RequirePublic},
		ActionCreate: {Requirement: RequireAdmin},
		ActionUpdate: {Requirement: RequireAdmin},
		ActionDelete: {Requirement: RequireAdmin},
	},
	ResourceHeroReviews: {
		ActionRead: {Requirement: RequirePublic},
	},
	ResourceFavorite: ownedRules(),
	ResourceDraft:    ownedRules(),
	ResourceReview:   ownedRules(),
}

func ownedRules() map[Action]Rule {
	return map[Action]Rule{
		ActionRead:   {Requirement: RequireAuthenticated, OwnerOnly: true},
		ActionCreate: {Requirement: RequireAuthenticated},
		ActionUpdate: {Requirement: RequireAuthenticated, OwnerOnly: true},
		ActionDelete: {Requirement: RequireAuthenticated, OwnerOnly: true},
	}
}

// DenyReason records why a decision was a denial. It is logged, never sent
// to the caller.
type DenyReason int

const (
	ReasonNone DenyReason = iota
	ReasonNoCredential
	ReasonBadCredential
	ReasonInsufficientRole
	ReasonNotOwned
	ReasonAbsent
	ReasonNoRule
	ReasonStoreFailure
)

func (r DenyReason) String() string {
	switch r {
	case ReasonNoCredential:
		return "no_credential"
	case ReasonBadCredential:
		return "bad_credential"
	case ReasonInsufficientRole:
		return "insufficient_role"
	case ReasonNotOwned:
		return "not_owned"
	case ReasonAbsent:
		return "absent"
	case ReasonNoRule:
		return "no_rule"
	case ReasonStoreFailure:
		return "store_failure"
	default:
		return "none"
	}
}

// Decision is the outcome of Authorize.
type Decision struct {
	Allowed  bool
	Kind     domain.Kind
	Reason   DenyReason
	Identity *Identity
	err      error
}

// Err returns nil for an allow, otherwise the caller-facing error.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return d.err
}

// Authorizer sequences the verifier, the role gate and the ownership
// resolver. The first denial wins.
type Authorizer struct {
	verifier TokenVerifier
	gate     RoleGate
	owners   *OwnershipResolver
	policies PolicyTable
	logger   *slog.Logger
}

func NewAuthorizer(verifier TokenVerifier, owners *OwnershipResolver, logger *slog.Logger) *Authorizer {
	return &Authorizer{
		verifier: verifier,
		owners:   owners,
		policies: DefaultPolicies,
		logger:   logger,
	}
}

// WithPolicies returns a copy of a that evaluates table instead of the
// default policies.
func (a *Authorizer) WithPolicies(table PolicyTable) *Authorizer {
	cp := *a
	cp.policies = table
	return &cp
}

// Authorize decides op.
func (a *Authorizer) Authorize(ctx context.Context, op Operation) Decision {
	rule, ok := a.policies[op.Resource][op.Action]
	if !ok {
		return a.deny(op, nil, ReasonNoRule, errForbidden)
	}

	if rule.Requirement == RequirePublic {
		return Decision{Allowed: true}
	}

	if op.Credential == "" {
		return a.deny(op, nil, ReasonNoCredential, errUnauthenticated)
	}
	id, err := a.verifier.Verify(op.Credential)
	if err != nil {
		return a.deny(op, nil, ReasonBadCredential, errUnauthenticated)
	}

	if err := a.gate.Check(id, rule.Requirement); err != nil {
		return a.deny(op, id, ReasonInsufficientRole, err)
	}

	if !rule.OwnerOnly || op.ResourceID == 0 {
		return Decision{Allowed: true, Identity: id}
	}

	ownership, err := a.owners.Resolve(ctx, op.Resource, op.ResourceID, id)
	if err != nil {
		return a.deny(op, id, ReasonStoreFailure, err)
	}
	switch ownership {
	case Owned:
		return Decision{Allowed: true, Identity: id}
	case NotOwned:
		return a.deny(op, id, ReasonNotOwned, notFound(op.Resource))
	default:
		return a.deny(op, id, ReasonAbsent, notFound(op.Resource))
	}
}

func (a *Authorizer) deny(op Operation, id *Identity, reason DenyReason, err error) Decision {
	kind := domain.KindOf(err)
	attrs := []any{
		"op", "authz.Authorize",
		"resource", op.Resource,
		"action", op.Action,
		"resource_id", op.ResourceID,
		"kind", kind.String(),
		"reason", reason.String(),
	}
	if id != nil {
		attrs = append(attrs, "subject", id.SubjectID)
	}
	if kind == domain.KindUnavailable {
		a.logger.Error("authorization failed", append(attrs, "error", err)...)
	} else {
		a.logger.Debug("authorization denied", attrs...)
	}

	return Decision{Kind: kind, Reason: reason, Identity: id, err: err}
}

// notFound is shared by absent and not-owned resources so the two cannot be
// told apart.
func notFound(res Resource) error {
	switch res {
	case ResourceFavorite:
		return domain.NotFound("favorite not found")
	case ResourceDraft:
		return domain.NotFound("draft not found")
	case ResourceReview:
		return domain.NotFound("review not found")
	case ResourceHero:
		return domain.NotFound("hero not found")
	}
	return domain.NotFound("not found")
}
