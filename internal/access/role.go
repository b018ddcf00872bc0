// Package access decides whether a principal may see a guarded surface:
// authorized, forbidden, or unauthenticated with a redirect to the right
// login entry point.
package access

import "strings"

// Role is a permission tier attached to a principal. The set is closed.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
	RoleProvider   Role = "provider"
)

// ParseRole normalizes a raw role string to the canonical enumeration.
// Legacy spellings ("super_admin", mixed case) are accepted and normalized;
// anything else maps to the empty role.
func ParseRole(raw string) Role {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "admin":
		return RoleAdmin
	case "superadmin", "super_admin":
		return RoleSuperAdmin
	case "provider", "service_provider":
		return RoleProvider
	default:
		return ""
	}
}

// Valid reports whether r is a member of the closed role set.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSuperAdmin, RoleProvider:
		return true
	}
	return false
}

// Principal is the authenticated actor whose role drives access decisions.
type Principal struct {
	ID            string
	Email         string
	Name          string
	Role          Role
	Authenticated bool
}

// HasAnyRole reports whether the principal's role is a member of required.
// An empty required set always passes.
func (p *Principal) HasAnyRole(required []Role) bool {
	if len(required) == 0 {
		return true
	}
	if p == nil {
		return false
	}
	for _, r := range required {
		if p.Role == r {
			return true
		}
	}
	return false
}
