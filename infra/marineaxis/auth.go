package marineaxis

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// AuthClient handles the authentication endpoints. The admin API keeps two
// distinct login surfaces: one for staff (admins) and one for service
// providers. The surfaces never share credentials or sessions.
type AuthClient struct {
	client *Client
}

// StaffLogin authenticates a staff principal with email/password.
func (a *AuthClient) StaffLogin(ctx context.Context, email, password string) (*Session, error) {
	return a.login(ctx, a.client.apiURL+"/auth/admin/login", email, password)
}

// ProviderLogin authenticates a service-provider principal.
func (a *AuthClient) ProviderLogin(ctx context.Context, email, password string) (*Session, error) {
	return a.login(ctx, a.client.apiURL+"/auth/provider/login", email, password)
}

func (a *AuthClient) login(ctx context.Context, urlStr, email, password string) (*Session, error) {
	payload := map[string]string{
		"email":    email,
		"password": password,
	}

	env, err := a.client.do(ctx, http.MethodPost, urlStr, payload, false)
	if err != nil {
		return nil, err
	}

	var session Session
	if err := json.Unmarshal(env.Data, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &session, nil
}

// Refresh exchanges a refresh token for a new session.
func (a *AuthClient) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	payload := map[string]string{"refresh_token": refreshToken}

	env, err := a.client.do(ctx, http.MethodPost, a.client.apiURL+"/auth/refresh", payload, false)
	if err != nil {
		return nil, err
	}

	var session Session
	if err := json.Unmarshal(env.Data, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &session, nil
}

// Me returns the acting principal for the current token.
func (a *AuthClient) Me(ctx context.Context) (*User, error) {
	env, err := a.client.do(ctx, http.MethodGet, a.client.apiURL+"/auth/me", nil, true)
	if err != nil {
		return nil, err
	}

	var user User
	if err := json.Unmarshal(env.Data, &user); err != nil {
		return nil, fmt.Errorf("unmarshal user: %w", err)
	}
	return &user, nil
}

// UpdateProfile updates the acting principal's profile.
func (a *AuthClient) UpdateProfile(ctx context.Context, update ProfileUpdate) (*User, error) {
	env, err := a.client.do(ctx, http.MethodPut, a.client.apiURL+"/auth/profile", update, true)
	if err != nil {
		return nil, err
	}

	var user User
	if err := json.Unmarshal(env.Data, &user); err != nil {
		return nil, fmt.Errorf("unmarshal user: %w", err)
	}
	return &user, nil
}

// Logout invalidates the current session server-side. Errors are reported
// but a caller is expected to clear local state regardless.
func (a *AuthClient) Logout(ctx context.Context) error {
	_, err := a.client.do(ctx, http.MethodPost, a.client.apiURL+"/auth/logout", nil, true)
	return err
}
