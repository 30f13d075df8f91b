package authz

import "github.com/dom/hero-archive/internal/domain"

// Requirement is the minimum standing an operation demands of its caller.
type Requirement int

const (
	RequirePublic Requirement = iota
	RequireAuthenticated
	RequireAdmin
)

func (r Requirement) String() string {
	switch r {
	case RequireAuthenticated:
		return "authenticated"
	case RequireAdmin:
		return "admin"
	default:
		return "public"
	}
}

// RoleGate compares a verified identity against a requirement.
type RoleGate struct{}

// Check returns nil when id satisfies req.
func (g RoleGate) Check(id *Identity, req Requirement) error {
	switch req {
	case RequirePublic:
		return nil
	case RequireAuthenticated:
		if id == nil {
			return errUnauthenticated
		}
		return nil
	case RequireAdmin:
		if id == nil {
			return errUnauthenticated
		}
		if id.Role != domain.UserRoleAdmin {
			return errForbidden
		}
		return nil
	}
	return errForbidden
}

var errForbidden = domain.Forbidden("insufficient permissions")
