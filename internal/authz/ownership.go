package authz

import (
	"context"
	"errors"
	"fmt"

	"github.com/dom/hero-archive/internal/domain"
	"github.com/google/uuid"
)

// Ownership is the outcome of comparing a resource's owner to a caller.
type Ownership int

const (
	Absent Ownership = iota
	NotOwned
	Owned
)

func (o Ownership) String() string {
	switch o {
	case Owned:
		return "owned"
	case NotOwned:
		return "not_owned"
	default:
		return "absent"
	}
}

// OwnerLookup reports the subject that owns a stored resource. It returns an
// error matching domain.ErrNotFound when the id does not exist.
type OwnerLookup interface {
	OwnerOf(ctx context.Context, id uint) (uuid.UUID, error)
}

// OwnerLookupFunc adapts a function to OwnerLookup.
type OwnerLookupFunc func(ctx context.Context, id uint) (uuid.UUID, error)

func (f OwnerLookupFunc) OwnerOf(ctx context.Context, id uint) (uuid.UUID, error) {
	return f(ctx, id)
}

// OwnershipResolver looks up owners per resource type.
type OwnershipResolver struct {
	lookups map[Resource]OwnerLookup
}

func NewOwnershipResolver(lookups map[Resource]OwnerLookup) *OwnershipResolver {
	m := make(map[Resource]OwnerLookup, len(lookups))
	for k, v := range lookups {
		m[k] = v
	}
	return &OwnershipResolver{lookups: m}
}

// Resolve compares the stored owner of (res, id) with the caller. Store
// failures are returned as Unavailable.
func (r *OwnershipResolver) Resolve(ctx context.Context, res Resource, id uint, who *Identity) (Ownership, error) {
	lookup, ok := r.lookups[res]
	if !ok {
		return Absent, domain.Unavailable("service unavailable", fmt.Errorf("no owner lookup for %s", res))
	}
	if who == nil {
		return NotOwned, nil
	}

	owner, err := lookup.OwnerOf(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return Absent, nil
		}
		return Absent, domain.Unavailable("service unavailable", err)
	}

	if owner != who.SubjectID {
		return NotOwned, nil
	}
	return Owned, nil
}
