// Package authz decides whether a caller may perform an operation on a
// hero catalog resource and checks resource invariants before a write.
package authz

import (
	"context"

	"github.com/dom/hero-archive/internal/domain"
	"github.com/google/uuid"
)

// Identity is the verified claim carried for the lifetime of one request.
type Identity struct {
	SubjectID   uuid.UUID
	DisplayName string
	Role        domain.UserRole
}

func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == domain.UserRoleAdmin
}

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom returns the identity stored by WithIdentity, if any.
func IdentityFrom(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(*Identity)
	return id, ok && id != nil
}
