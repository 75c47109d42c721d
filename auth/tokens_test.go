package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	assert.True(t, CheckPassword(hash, "hunter22"))
	assert.False(t, CheckPassword(hash, "hunter23"))
}

func TestBearerTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := IssueToken(SubjectUser, 42)
	require.NoError(t, err)

	id, err := ParseToken(token, SubjectUser)
	require.NoError(t, err)
	assert.EqualValues(t, 42, id)
}

func TestBearerTokenKindMismatch(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := IssueToken(SubjectUser, 42)
	require.NoError(t, err)

	// A buyer token must not authenticate a shop.
	_, err = ParseToken(token, SubjectShop)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestBearerTokenBadSignature(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	token, err := IssueToken(SubjectShop, 7)
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "rotated-secret")
	_, err = ParseToken(token, SubjectShop)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestEmailTokenRoundTrip(t *testing.T) {
	t.Setenv("EMAIL_SECRET", "email-secret")

	token, err := IssueEmailToken(7)
	require.NoError(t, err)

	id, err := ParseEmailToken(token)
	require.NoError(t, err)
	assert.EqualValues(t, 7, id)
}

func TestEmailTokenRejectsBearerToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "shared-secret")
	t.Setenv("EMAIL_SECRET", "shared-secret")

	token, err := IssueToken(SubjectUser, 7)
	require.NoError(t, err)

	// Even with identical secrets the subject claim keeps the token
	// kinds apart.
	_, err = ParseEmailToken(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}
