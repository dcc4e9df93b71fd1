package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huyvng/storedash/pkg/auth"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := auth.GenerateToken("64f1c0ffee64f1c0ffee64f1", "admin")
	require.NoError(t, err)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "64f1c0ffee64f1c0ffee64f1", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.WithinDuration(t,
		claims.IssuedAt.Time.Add(auth.TokenTTL),
		claims.ExpiresAt.Time,
		0)
}

func TestValidateTokenRejectsTampered(t *testing.T) {
	token, err := auth.GenerateToken("64f1c0ffee64f1c0ffee64f1", "user")
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = auth.ValidateToken(tampered)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := auth.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestPasswordHashAndCheck(t *testing.T) {
	hash, err := auth.HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, auth.CheckPassword(hash, "s3cret-pass"))
	assert.False(t, auth.CheckPassword(hash, "wrong"))
}
