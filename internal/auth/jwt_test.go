package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndVerifyToken(t *testing.T) {
	cfg := TokenConfig{Secret: "secret", Expiry: time.Hour, Issuer: "test"}
	tok, err := CreateToken(7, "a@x.com", cfg)
	require.NoError(t, err)

	claims, err := VerifyToken(tok, cfg)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "a@x.com", claims.Subject)
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	cfg := TokenConfig{Secret: "secret", Expiry: time.Hour, Issuer: "test"}
	tok, err := CreateToken(7, "a@x.com", cfg)
	require.NoError(t, err)

	_, err = VerifyToken(tok, TokenConfig{Secret: "wrong", Expiry: time.Hour, Issuer: "test"})
	assert.Error(t, err)
}

func TestCreateToken_InvalidInput(t *testing.T) {
	cfg := TokenConfig{Secret: "secret", Expiry: time.Hour}

	_, err := CreateToken(7, "a@x.com", TokenConfig{Secret: "secret", Expiry: -time.Second})
	assert.Error(t, err)
	_, err = CreateToken(0, "a@x.com", cfg)
	assert.Error(t, err)
	_, err = CreateToken(7, "", cfg)
	assert.Error(t, err)
	_, err = CreateToken(7, "a@x.com", TokenConfig{Expiry: time.Hour})
	assert.Error(t, err)
}

func TestExpiresAt(t *testing.T) {
	tok, err := CreateToken(7, "a@x.com", TokenConfig{Secret: "secret", Expiry: time.Hour})
	require.NoError(t, err)

	exp, ok := ExpiresAt(tok)
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)

	_, ok = ExpiresAt("tok123")
	assert.False(t, ok)
}
