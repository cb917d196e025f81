package services

import (
	"testing"
	"time"

	"review-backend/internal/config"
	"review-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() *models.User {
	return &models.User{
		ID:       42,
		Username: "alice",
		Email:    "alice@example.com",
		Role:     models.RoleUser,
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	tokens := NewTokenService(testAuthConfig())
	user := testUser()

	token, err := tokens.IssueAccessToken(user)
	require.NoError(t, err)

	claims, err := tokens.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Username, claims.Username)
	assert.Equal(t, user.Role, claims.Role)
}

func TestAccessTokenRejectsWrongSecret(t *testing.T) {
	tokens := NewTokenService(testAuthConfig())
	other := NewTokenService(config.AuthConfig{
		JWTSecret:      "different-secret",
		AccessTokenTTL: time.Hour,
	})

	token, err := tokens.IssueAccessToken(testUser())
	require.NoError(t, err)

	_, err = other.ParseAccessToken(token)
	assert.Error(t, err)
}

func TestAccessTokenRejectsExpired(t *testing.T) {
	tokens := NewTokenService(config.AuthConfig{
		JWTSecret:      "test-secret",
		AccessTokenTTL: -time.Minute,
	})

	token, err := tokens.IssueAccessToken(testUser())
	require.NoError(t, err)

	_, err = tokens.ParseAccessToken(token)
	assert.Error(t, err)
}

// A confirmation code must never pass as an access token even though both
// are signed with the same secret.
func TestConfirmationCodeIsNotAnAccessToken(t *testing.T) {
	tokens := NewTokenService(testAuthConfig())

	code, err := tokens.IssueConfirmationCode(testUser())
	require.NoError(t, err)

	_, err = tokens.ParseAccessToken(code)
	assert.Error(t, err)
}

func TestConfirmationCodeRoundTrip(t *testing.T) {
	tokens := NewTokenService(testAuthConfig())
	user := testUser()

	code, err := tokens.IssueConfirmationCode(user)
	require.NoError(t, err)

	assert.True(t, tokens.CheckConfirmationCode(user, code))
	assert.False(t, tokens.CheckConfirmationCode(user, code+"tampered"))
}

func TestConfirmationCodeBoundToUser(t *testing.T) {
	tokens := NewTokenService(testAuthConfig())

	code, err := tokens.IssueConfirmationCode(testUser())
	require.NoError(t, err)

	other := testUser()
	other.ID = 43
	assert.False(t, tokens.CheckConfirmationCode(other, code))
}

func TestConfirmationCodeInvalidatedByStateChange(t *testing.T) {
	tokens := NewTokenService(testAuthConfig())
	user := testUser()

	code, err := tokens.IssueConfirmationCode(user)
	require.NoError(t, err)
	require.True(t, tokens.CheckConfirmationCode(user, code))

	now := time.Now().UTC()
	user.LastLogin = &now
	assert.False(t, tokens.CheckConfirmationCode(user, code),
		"code should not survive a login")
}

func TestConfirmationCodeExpired(t *testing.T) {
	tokens := NewTokenService(config.AuthConfig{
		JWTSecret:       "test-secret",
		ConfirmationTTL: -time.Minute,
	})
	user := testUser()

	code, err := tokens.IssueConfirmationCode(user)
	require.NoError(t, err)

	assert.False(t, tokens.CheckConfirmationCode(user, code))
}
