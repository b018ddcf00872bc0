// Package auth owns the authentication session: the current principal, the
// token pair feeding the API client, and the login/restore/logout
// lifecycle. It is the one process-wide holder of auth state; stores and
// gates only read from it.
package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/marineaxis/marine-axis-admin/infra/marineaxis"
	"github.com/marineaxis/marine-axis-admin/internal/access"
	"github.com/marineaxis/marine-axis-admin/pkg/logger"
)

// ErrNotAuthenticated is returned when an operation needs a live session.
var ErrNotAuthenticated = errors.New("not authenticated")

// API is the slice of the Marine-Axis client the session manager drives.
// *marineaxis.AuthClient satisfies it.
type API interface {
	StaffLogin(ctx context.Context, email, password string) (*marineaxis.Session, error)
	ProviderLogin(ctx context.Context, email, password string) (*marineaxis.Session, error)
	Refresh(ctx context.Context, refreshToken string) (*marineaxis.Session, error)
	Me(ctx context.Context) (*marineaxis.User, error)
	UpdateProfile(ctx context.Context, update marineaxis.ProfileUpdate) (*marineaxis.User, error)
	Logout(ctx context.Context) error
}

// Manager holds the session state.
type Manager struct {
	store TokenStore
	log   *logger.Logger
	now   func() time.Time

	mu        sync.RWMutex
	api       API
	principal *access.Principal
	tokens    Tokens
}

// NewManager creates a manager with no live session. Bind must be called
// with the auth API before Login or Restore; the split exists because the
// API client itself needs the manager's Token hook at construction time.
func NewManager(store TokenStore, log *logger.Logger) *Manager {
	if store == nil {
		store = NewMemoryTokenStore()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Manager{
		store: store,
		log:   log.WithField("component", "auth"),
		now:   time.Now,
	}
}

// Bind attaches the auth API the manager calls.
func (m *Manager) Bind(api API) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.api = api
}

// Token implements the API client's token hook.
func (m *Manager) Token(_ context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tokens.AccessToken, nil
}

// Principal returns the current principal, or nil when logged out.
func (m *Manager) Principal() *access.Principal {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.principal == nil {
		return nil
	}
	p := *m.principal
	return &p
}

// HasRole reports whether the current principal carries the role.
func (m *Manager) HasRole(role access.Role) bool {
	p := m.Principal()
	return p != nil && p.Authenticated && p.Role == role
}

// =============================================================================
// Lifecycle
// =============================================================================

// LoginStaff authenticates against the staff surface.
func (m *Manager) LoginStaff(ctx context.Context, email, password string) (*access.Principal, error) {
	api, err := m.boundAPI()
	if err != nil {
		return nil, err
	}
	session, err := api.StaffLogin(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return m.adopt(session)
}

// LoginProvider authenticates against the provider surface.
func (m *Manager) LoginProvider(ctx context.Context, email, password string) (*access.Principal, error) {
	api, err := m.boundAPI()
	if err != nil {
		return nil, err
	}
	session, err := api.ProviderLogin(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return m.adopt(session)
}

// Restore attempts a silent session restore from the token store. A stored
// access token that is still valid is adopted directly; an expired one with
// a refresh token is exchanged; anything else clears the stored state.
func (m *Manager) Restore(ctx context.Context) (*access.Principal, error) {
	api, err := m.boundAPI()
	if err != nil {
		return nil, err
	}

	stored, err := m.store.Load()
	if err != nil {
		if errors.Is(err, ErrNoTokens) {
			return nil, ErrNotAuthenticated
		}
		return nil, fmt.Errorf("load stored tokens: %w", err)
	}

	claims, err := ParseClaims(stored.AccessToken)
	if err != nil || claims.Expired(m.now()) {
		if stored.RefreshToken == "" {
			_ = m.store.Clear()
			return nil, ErrNotAuthenticated
		}
		session, refreshErr := api.Refresh(ctx, stored.RefreshToken)
		if refreshErr != nil {
			_ = m.store.Clear()
			return nil, ErrNotAuthenticated
		}
		return m.adopt(session)
	}

	m.mu.Lock()
	m.tokens = stored
	m.mu.Unlock()

	user, err := api.Me(ctx)
	if err != nil {
		m.mu.Lock()
		m.tokens = Tokens{}
		m.mu.Unlock()
		_ = m.store.Clear()
		return nil, ErrNotAuthenticated
	}

	principal := principalFromUser(user)
	m.mu.Lock()
	m.principal = principal
	m.mu.Unlock()

	m.log.Info("session restored", "email", principal.Email, "role", string(principal.Role))
	p := *principal
	return &p, nil
}

// UpdateProfile updates the acting principal's profile and refreshes the
// cached principal.
func (m *Manager) UpdateProfile(ctx context.Context, update marineaxis.ProfileUpdate) (*access.Principal, error) {
	api, err := m.boundAPI()
	if err != nil {
		return nil, err
	}
	if m.Principal() == nil {
		return nil, ErrNotAuthenticated
	}

	user, err := api.UpdateProfile(ctx, update)
	if err != nil {
		return nil, err
	}

	principal := principalFromUser(user)
	m.mu.Lock()
	m.principal = principal
	m.mu.Unlock()

	p := *principal
	return &p, nil
}

// Logout tears the session down: server-side invalidation is attempted, and
// local token and principal state is cleared regardless of the outcome.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.RLock()
	api := m.api
	m.mu.RUnlock()

	if api != nil {
		if err := api.Logout(ctx); err != nil {
			m.log.WithError(err).Warn("server-side logout failed")
		}
	}

	m.mu.Lock()
	m.principal = nil
	m.tokens = Tokens{}
	m.mu.Unlock()

	if err := m.store.Clear(); err != nil {
		m.log.WithError(err).Warn("failed to clear stored tokens")
	}
	m.log.Info("session cleared")
}

// =============================================================================
// Helpers
// =============================================================================

func (m *Manager) boundAPI() (API, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.api == nil {
		return nil, fmt.Errorf("auth API not bound")
	}
	return m.api, nil
}

func (m *Manager) adopt(session *marineaxis.Session) (*access.Principal, error) {
	if session == nil || session.AccessToken == "" {
		return nil, fmt.Errorf("server returned an empty session")
	}

	principal := principalFromUser(session.User)
	if principal == nil {
		// Fall back to token claims when the login response omits the user.
		claims, err := ParseClaims(session.AccessToken)
		if err != nil {
			return nil, fmt.Errorf("session without user payload: %w", err)
		}
		principal = &access.Principal{
			ID:            claims.Subject,
			Email:         claims.Email,
			Role:          access.ParseRole(claims.Role),
			Authenticated: true,
		}
	}

	tokens := Tokens{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
	}

	m.mu.Lock()
	m.principal = principal
	m.tokens = tokens
	m.mu.Unlock()

	if err := m.store.Save(tokens); err != nil {
		m.log.WithError(err).Warn("failed to persist tokens")
	}

	m.log.Info("session established", "email", principal.Email, "role", string(principal.Role))
	p := *principal
	return &p, nil
}

func principalFromUser(user *marineaxis.User) *access.Principal {
	if user == nil {
		return nil
	}
	return &access.Principal{
		ID:            user.ID,
		Email:         user.Email,
		Name:          user.Name,
		Role:          access.ParseRole(user.Role),
		Authenticated: true,
	}
}
