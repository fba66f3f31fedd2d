package token_test

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-finance-client/internal/errors"
	"github.com/jrsteele09/go-finance-client/token"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, claims jwtlib.MapClaims) string {
	t.Helper()
	raw, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte("any-key"))
	require.NoError(t, err)
	return raw
}

func TestInspectAccessToken(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	token.NowTimeFunc = func() time.Time { return now }
	t.Cleanup(func() { token.NowTimeFunc = time.Now })

	raw := signed(t, jwtlib.MapClaims{
		"sub":   "user-1",
		"email": "a@example.com",
		"iat":   now.Add(-time.Minute).Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	})

	claims, err := token.InspectAccessToken(raw)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)
	require.Equal(t, "a@example.com", claims.Email)
	require.False(t, claims.Expired())

	token.NowTimeFunc = func() time.Time { return now.Add(2 * time.Hour) }
	require.True(t, claims.Expired())
}

func TestInspectAccessToken_Opaque(t *testing.T) {
	_, err := token.InspectAccessToken("opaque-token")
	require.ErrorIs(t, err, errors.ErrOpaqueToken)

	_, err = token.InspectAccessToken("a.b.c")
	require.ErrorIs(t, err, errors.ErrOpaqueToken)
}

func TestClaimsWithoutExpiryNeverExpire(t *testing.T) {
	claims, err := token.InspectAccessToken(signed(t, jwtlib.MapClaims{"sub": "x"}))
	require.NoError(t, err)
	require.False(t, claims.Expired())
}
