package auth

import (
	"net/url"
	"testing"

	"github.com/TherealJvJ/TelMoz-2.0/internal/servererrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)

	assert.NotEqual(t, "correct horse", hash)
	assert.True(t, VerifyPassword("correct horse", hash))
	assert.False(t, VerifyPassword("wrong horse", hash))
	assert.False(t, VerifyPassword("", hash))
}

func TestHashPasswordRejectsShortPasswords(t *testing.T) {
	_, err := HashPassword("12345")
	assert.ErrorIs(t, err, servererrors.ErrPasswordTooShort)

	_, err = HashPassword("")
	assert.ErrorIs(t, err, servererrors.ErrPasswordTooShort)
}

func TestHashPasswordSalts(t *testing.T) {
	hash1, err := HashPassword("same password")
	require.NoError(t, err)

	hash2, err := HashPassword("same password")
	require.NoError(t, err)

	assert.NotEqual(t, hash1, hash2)
}

func TestNewToken(t *testing.T) {
	seen := make(map[string]bool)

	for n := 0; n < 32; n++ {
		token, err := NewToken()
		require.NoError(t, err)

		// 32 bytes of entropy, base64url without padding
		assert.Len(t, token, 43)
		assert.Equal(t, token, url.QueryEscape(token), "token must be url-safe")

		assert.False(t, seen[token], "tokens must not repeat")
		seen[token] = true
	}
}
