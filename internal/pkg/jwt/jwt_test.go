package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", "1h")

	tokenString, expiresAt, err := svc.GenerateAccessToken("user-1", "co-1")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)
	assert.InDelta(t, time.Now().Add(time.Hour).Unix(), expiresAt, 5)

	// The minted token must verify with the same key the router's Verifier
	// middleware uses.
	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	claims, err := token.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims["user_id"])
	assert.Equal(t, "co-1", claims["company_id"])
	assert.Equal(t, "access", claims["type"])
}

func TestGenerateAccessToken_BadExpiration(t *testing.T) {
	svc := NewJWTService("test-secret", "soon")

	_, _, err := svc.GenerateAccessToken("user-1", "co-1")
	assert.Error(t, err)
}

func TestGenerateAccessToken_WrongKeyRejected(t *testing.T) {
	minter := NewJWTService("key-a", "1h")
	verifier := NewJWTService("key-b", "1h")

	tokenString, _, err := minter.GenerateAccessToken("user-1", "co-1")
	require.NoError(t, err)

	_, err = verifier.JWTAuth().Decode(tokenString)
	assert.Error(t, err)
}
