package access

import (
	"github.com/marineaxis/marine-axis-admin/internal/metrics"
)

// Outcome is the result of a gate evaluation.
type Outcome string

const (
	// OutcomeAuthorized renders the guarded subtree unchanged.
	OutcomeAuthorized Outcome = "authorized"
	// OutcomeForbidden renders a denial state. It is never a redirect, so a
	// denied screen stays distinguishable from loading or not-found.
	OutcomeForbidden Outcome = "forbidden"
	// OutcomeUnauthenticated redirects to the gate's login surface.
	OutcomeUnauthenticated Outcome = "unauthenticated"
)

// Decision is one gate evaluation result. RedirectPath is set only for
// OutcomeUnauthenticated.
type Decision struct {
	Outcome      Outcome
	RedirectPath string
}

// Authorized is a convenience check.
func (d Decision) Authorized() bool { return d.Outcome == OutcomeAuthorized }

// Gate evaluates principals against required role sets. Each gate is bound
// to one login surface: the staff gate and the provider gate redirect
// unauthenticated visitors to different entry points, and the choice is
// fixed at construction rather than guessed per request.
type Gate struct {
	name      string
	loginPath string
}

// StaffLoginPath and ProviderLoginPath are the two login surfaces of the
// admin application.
const (
	StaffLoginPath    = "/admin/login"
	ProviderLoginPath = "/provider/login"
)

// NewStaffGate creates the gate guarding staff-facing surfaces.
func NewStaffGate() *Gate {
	return &Gate{name: "staff", loginPath: StaffLoginPath}
}

// NewProviderGate creates the gate guarding provider-facing surfaces.
func NewProviderGate() *Gate {
	return &Gate{name: "provider", loginPath: ProviderLoginPath}
}

// Name returns the gate's identity, "staff" or "provider".
func (g *Gate) Name() string { return g.name }

// Evaluate gates a principal against a required role set. An empty required
// set means authentication alone suffices, which is the default for most
// routes; only sensitive routes attach a restrictive set.
func (g *Gate) Evaluate(p *Principal, required []Role) Decision {
	d := g.evaluate(p, required)
	metrics.ObserveGateDecision(g.name, string(d.Outcome))
	return d
}

func (g *Gate) evaluate(p *Principal, required []Role) Decision {
	if p == nil || !p.Authenticated {
		return Decision{Outcome: OutcomeUnauthenticated, RedirectPath: g.loginPath}
	}
	if !p.HasAnyRole(required) {
		return Decision{Outcome: OutcomeForbidden}
	}
	return Decision{Outcome: OutcomeAuthorized}
}
