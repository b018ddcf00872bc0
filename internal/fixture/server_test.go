package fixture

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marineaxis/marine-axis-admin/infra/marineaxis"
	"github.com/marineaxis/marine-axis-admin/internal/access"
	"github.com/marineaxis/marine-axis-admin/internal/auth"
	"github.com/marineaxis/marine-axis-admin/internal/domain/provider"
	"github.com/marineaxis/marine-axis-admin/internal/domain/vessel"
	"github.com/marineaxis/marine-axis-admin/internal/notify"
	"github.com/marineaxis/marine-axis-admin/internal/resource"
)

// The fixture server and the real API client together exercise the full
// client stack over real HTTP.

func startStack(t *testing.T) (*marineaxis.Client, *auth.Manager, *Transport) {
	t.Helper()

	transport := NewTransport()
	server := NewServer(transport,
		User{Email: "ops@marine-axis.com", Password: "secret1234", Role: "superadmin"},
		User{Email: "dock@provider.com", Password: "secret1234", Role: "provider", Provider: true},
	)
	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)

	manager := auth.NewManager(auth.NewMemoryTokenStore(), nil)
	client, err := marineaxis.New(marineaxis.Config{BaseURL: ts.URL}, manager.Token, nil)
	require.NoError(t, err)
	manager.Bind(client.Auth())

	return client, manager, transport
}

func TestEndToEnd_StaffLoginAndCRUD(t *testing.T) {
	client, manager, _ := startStack(t)
	ctx := context.Background()

	principal, err := manager.LoginStaff(ctx, "ops@marine-axis.com", "secret1234")
	require.NoError(t, err)
	assert.Equal(t, access.RoleSuperAdmin, principal.Role)

	recorder := notify.NewRecorder()
	store, err := resource.NewStore(resource.Config[vessel.Vessel]{
		Resource:  "vessels",
		Label:     "vessel",
		Transport: client.Resources(),
		Identify:  vessel.Identify,
		Notifier:  recorder,
	})
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Fetch(ctx))
	assert.Equal(t, 0, store.Total())

	input := vessel.CreateInput{Name: "Selene", Type: "yacht", HomePort: "Piraeus"}
	require.NoError(t, input.Validate())
	require.NoError(t, store.Create(ctx, input))

	assert.Equal(t, 1, store.Total(), "create-then-list consistency")
	items := store.Items()
	require.Len(t, items, 1)
	assert.NotEmpty(t, items[0].ID, "refetch carries the server-assigned id")
	assert.Equal(t, "Selene", items[0].Name)

	id := items[0].ID
	require.NoError(t, store.Update(ctx, id, map[string]string{"name": "Selene II"}))
	assert.Equal(t, "Selene II", store.Items()[0].Name)

	require.NoError(t, store.Delete(ctx, id))
	assert.Equal(t, 0, store.Total())
	assert.Empty(t, store.Items())
	assert.Equal(t, notify.VariantSuccess, recorder.Last().Variant)
}

func TestEndToEnd_FilteredFetch(t *testing.T) {
	client, manager, transport := startStack(t)
	ctx := context.Background()

	_, err := manager.LoginStaff(ctx, "ops@marine-axis.com", "secret1234")
	require.NoError(t, err)

	for _, v := range []vessel.CreateInput{
		{Name: "Selene", Type: "yacht"},
		{Name: "Boreas", Type: "sailboat"},
		{Name: "Calypso", Type: "yacht"},
	} {
		_, err := transport.Seed("vessels", v)
		require.NoError(t, err)
	}

	store, err := resource.NewStore(resource.Config[vessel.Vessel]{
		Resource:  "vessels",
		Transport: client.Resources(),
		Identify:  vessel.Identify,
		Notifier:  notify.NewRecorder(),
	})
	require.NoError(t, err)

	require.NoError(t, store.SetFilters(ctx, resource.Filters{"type": "yacht"}))
	assert.Equal(t, 2, store.Total())
	for _, item := range store.Items() {
		assert.Equal(t, "yacht", item.Type)
	}
}

func TestEndToEnd_ProviderApprovals(t *testing.T) {
	client, manager, transport := startStack(t)
	ctx := context.Background()

	_, err := manager.LoginStaff(ctx, "ops@marine-axis.com", "secret1234")
	require.NoError(t, err)

	id, err := transport.Seed("providers", provider.Provider{
		Email:       "dock@provider.com",
		CompanyName: "Dockside Repairs",
		Status:      provider.StatusPending,
	})
	require.NoError(t, err)

	store, err := resource.NewStore(resource.Config[provider.Provider]{
		Resource:  "providers",
		Label:     "provider",
		Transport: client.Resources(),
		Identify:  provider.Identify,
		Notifier:  notify.NewRecorder(),
	})
	require.NoError(t, err)

	require.NoError(t, store.SetFilters(ctx, resource.Filters{"status": provider.StatusPending}))
	require.Len(t, store.Items(), 1)

	update := provider.StatusUpdate{Status: provider.StatusApproved}
	require.NoError(t, update.Validate())
	require.NoError(t, store.Update(ctx, id, update))
	assert.Equal(t, provider.StatusApproved, store.Items()[0].Status)

	// The pending filter no longer matches the approved provider.
	require.NoError(t, store.Fetch(ctx))
	assert.Equal(t, 0, store.Total())
}

func TestEndToEnd_ResourcesRequireAuthentication(t *testing.T) {
	client, _, transport := startStack(t)
	ctx := context.Background()

	_, err := transport.Seed("vessels", vessel.Vessel{Name: "Selene", Type: "yacht"})
	require.NoError(t, err)

	// No login: every resource call is rejected before reaching the data.
	_, err = client.Resources().List(ctx, "vessels", 1, 20, nil)
	require.Error(t, err)
	assert.True(t, marineaxis.IsServer(err))
	assert.Equal(t, "missing or invalid token", marineaxis.UserMessage(err))

	_, err = client.Resources().Create(ctx, "vessels", vessel.CreateInput{Name: "Boreas", Type: "sailboat"})
	require.Error(t, err)
	assert.Equal(t, 1, transport.Len("vessels"), "rejected create must not reach the transport")
}

func TestEndToEnd_LoginSurfacesAreDistinct(t *testing.T) {
	_, manager, _ := startStack(t)
	ctx := context.Background()

	// Staff credentials are rejected on the provider surface and vice versa.
	_, err := manager.LoginProvider(ctx, "ops@marine-axis.com", "secret1234")
	require.Error(t, err)
	assert.Equal(t, "invalid credentials", marineaxis.UserMessage(err))

	_, err = manager.LoginStaff(ctx, "dock@provider.com", "secret1234")
	require.Error(t, err)

	principal, err := manager.LoginProvider(ctx, "dock@provider.com", "secret1234")
	require.NoError(t, err)
	assert.Equal(t, access.RoleProvider, principal.Role)
}

func TestEndToEnd_RestoreAndProfile(t *testing.T) {
	transport := NewTransport()
	server := NewServer(transport,
		User{Email: "ops@marine-axis.com", Password: "secret1234", Role: "superadmin"},
	)
	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)
	ctx := context.Background()

	tokens := auth.NewMemoryTokenStore()
	first := auth.NewManager(tokens, nil)
	firstClient, err := marineaxis.New(marineaxis.Config{BaseURL: ts.URL}, first.Token, nil)
	require.NoError(t, err)
	first.Bind(firstClient.Auth())

	_, err = first.LoginStaff(ctx, "ops@marine-axis.com", "secret1234")
	require.NoError(t, err)

	// A fresh manager over the same token store restores silently.
	manager := auth.NewManager(tokens, nil)
	client, err := marineaxis.New(marineaxis.Config{BaseURL: ts.URL}, manager.Token, nil)
	require.NoError(t, err)
	manager.Bind(client.Auth())

	principal, err := manager.Restore(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ops@marine-axis.com", principal.Email)
	assert.Equal(t, access.RoleSuperAdmin, principal.Role)

	principal, err = manager.UpdateProfile(ctx, marineaxis.ProfileUpdate{Name: "Ops Lead"})
	require.NoError(t, err)
	assert.Equal(t, "Ops Lead", principal.Name)

	manager.Logout(ctx)
	assert.Nil(t, manager.Principal())

	_, err = client.Auth().Me(ctx)
	require.Error(t, err, "token invalidated server-side")
}
