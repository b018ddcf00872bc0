package auth

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClaims(t *testing.T) {
	expiresAt := time.Now().Add(30 * time.Minute).Truncate(time.Second)
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "u-42",
		"email": "captain@marine-axis.com",
		"role":  "provider",
		"exp":   jwt.NewNumericDate(expiresAt),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	claims, err := ParseClaims(raw)
	require.NoError(t, err)

	assert.Equal(t, "u-42", claims.Subject)
	assert.Equal(t, "captain@marine-axis.com", claims.Email)
	assert.Equal(t, "provider", claims.Role)
	assert.WithinDuration(t, expiresAt, claims.ExpiresAt, time.Second)
	assert.False(t, claims.Expired(time.Now()))
	assert.True(t, claims.Expired(expiresAt.Add(time.Minute)))
}

func TestParseClaims_Garbage(t *testing.T) {
	_, err := ParseClaims("not-a-token")
	assert.Error(t, err)
}

func TestClaims_NoExpiryNeverExpires(t *testing.T) {
	assert.False(t, Claims{}.Expired(time.Now()))
}

func TestFileTokenStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tokens.json")
	store := NewFileTokenStore(path)

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoTokens)

	saved := Tokens{AccessToken: "access", RefreshToken: "refresh"}
	require.NoError(t, store.Save(saved))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)

	require.NoError(t, store.Clear())
	_, err = store.Load()
	assert.ErrorIs(t, err, ErrNoTokens)

	// Clearing twice is fine.
	assert.NoError(t, store.Clear())
}

func TestMemoryTokenStore(t *testing.T) {
	store := NewMemoryTokenStore()

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoTokens)

	require.NoError(t, store.Save(Tokens{AccessToken: "a"}))
	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "a", loaded.AccessToken)

	require.NoError(t, store.Clear())
	_, err = store.Load()
	assert.ErrorIs(t, err, ErrNoTokens)
}
