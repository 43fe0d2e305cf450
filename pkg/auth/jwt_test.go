package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := NewJWTService(Config{Secret: "access", RefreshSecret: "refresh", Expiry: time.Hour})

	token, err := svc.GenerateAccessToken(42, "maria@example.com", "client")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "maria@example.com", claims.Email)
	assert.Equal(t, "client", claims.Role)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestAccessAndRefreshUseSeparateSecrets(t *testing.T) {
	svc := NewJWTService(Config{Secret: "access", RefreshSecret: "refresh"})

	access, err := svc.GenerateAccessToken(1, "a@example.com", "admin")
	require.NoError(t, err)
	refresh, err := svc.GenerateRefreshToken(1, "a@example.com", "admin")
	require.NoError(t, err)

	_, err = svc.ValidateRefreshToken(access)
	assert.Error(t, err)
	_, err = svc.ValidateToken(refresh)
	assert.Error(t, err)

	_, err = svc.ValidateRefreshToken(refresh)
	assert.NoError(t, err)
}

func TestValidateRejectsTamperedToken(t *testing.T) {
	svc := NewJWTService(Config{Secret: "access", RefreshSecret: "refresh"})
	other := NewJWTService(Config{Secret: "someone-else", RefreshSecret: "refresh"})

	token, err := other.GenerateAccessToken(7, "x@example.com", "client")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestTokensMintedTogetherAreDistinct(t *testing.T) {
	svc := NewJWTService(Config{Secret: "access", RefreshSecret: "refresh"})

	a, err := svc.GenerateRefreshToken(1, "a@example.com", "client")
	require.NoError(t, err)
	b, err := svc.GenerateRefreshToken(1, "a@example.com", "client")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestExpiredTokenRejected(t *testing.T) {
	svc := NewJWTService(Config{Secret: "access", RefreshSecret: "refresh", Expiry: -time.Minute})

	token, err := svc.GenerateAccessToken(1, "a@example.com", "client")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}
