package access

import "sort"

// Policy is a declarative mapping from route or feature identifier to its
// required role set. Gates and navigation filtering both consult the same
// policy, so a sidebar link can never disagree with the route it points at.
type Policy struct {
	routes map[string][]Role
}

// NewPolicy creates an empty policy.
func NewPolicy() *Policy {
	return &Policy{routes: make(map[string][]Role)}
}

// Register attaches a required role set to a route id. Registering an empty
// set marks the route as authentication-only.
func (p *Policy) Register(routeID string, required ...Role) *Policy {
	p.routes[routeID] = append([]Role(nil), required...)
	return p
}

// RequiredRoles returns the role set for a route. Unknown routes come back
// as authentication-only, matching the default for unannotated routes.
func (p *Policy) RequiredRoles(routeID string) []Role {
	return append([]Role(nil), p.routes[routeID]...)
}

// Evaluate gates a principal for a route through the given gate.
func (p *Policy) Evaluate(g *Gate, principal *Principal, routeID string) Decision {
	return g.Evaluate(principal, p.routes[routeID])
}

// VisibleRoutes returns the route ids the principal may enter, sorted. This
// is what navigation rendering consumes.
func (p *Policy) VisibleRoutes(principal *Principal) []string {
	if principal == nil || !principal.Authenticated {
		return nil
	}
	var out []string
	for id, required := range p.routes {
		if principal.HasAnyRole(required) {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// DefaultStaffPolicy returns the route policy for the staff application.
// Most routes need authentication only; account management and system
// settings are restricted to superadmins.
func DefaultStaffPolicy() *Policy {
	return NewPolicy().
		Register("dashboard").
		Register("providers").
		Register("jobs").
		Register("categories").
		Register("blogs").
		Register("bookings").
		Register("contracts").
		Register("vessels").
		Register("projects").
		Register("approvals").
		Register("analytics").
		Register("admins", RoleSuperAdmin).
		Register("settings", RoleSuperAdmin)
}

// DefaultProviderPolicy returns the route policy for the provider portal.
func DefaultProviderPolicy() *Policy {
	return NewPolicy().
		Register("dashboard", RoleProvider).
		Register("jobs", RoleProvider).
		Register("bookings", RoleProvider).
		Register("vessels", RoleProvider).
		Register("profile", RoleProvider)
}
