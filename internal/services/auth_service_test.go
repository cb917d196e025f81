package services

import (
	"context"
	"testing"

	"review-backend/internal/models"
	"review-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureMailer records the last delivered code instead of sending mail.
type captureMailer struct {
	email string
	code  string
	sent  int
}

func (m *captureMailer) SendConfirmationCode(email, code string) error {
	m.email = email
	m.code = code
	m.sent++
	return nil
}

func newAuthFixture(t *testing.T) (AuthService, repository.UserRepository, *TokenService, *captureMailer) {
	t.Helper()
	db := newTestDB(t)
	users := repository.NewUserRepository(db)
	tokens := NewTokenService(testAuthConfig())
	mailer := &captureMailer{}
	return NewAuthService(users, tokens, mailer, testLogger()), users, tokens, mailer
}

func TestSignupCreatesUserAndSendsCode(t *testing.T) {
	svc, users, tokens, mailer := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.Signup(ctx, "alice@example.com", "alice"))

	user, err := users.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, models.RoleUser, user.Role)

	assert.Equal(t, "alice@example.com", mailer.email)
	assert.True(t, tokens.CheckConfirmationCode(user, mailer.code))
}

func TestSignupIdempotentForSamePair(t *testing.T) {
	svc, users, tokens, mailer := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.Signup(ctx, "alice@example.com", "alice"))
	require.NoError(t, svc.Signup(ctx, "alice@example.com", "alice"))

	all, total, err := users.FindAll(ctx, 1, 10, "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, all, 1)

	assert.Equal(t, 2, mailer.sent)
	assert.True(t, tokens.CheckConfirmationCode(&all[0], mailer.code))
}

func TestSignupRejectsReservedUsername(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	err := svc.Signup(context.Background(), "me@example.com", "me")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "username", verr.Field)
}

func TestSignupRejectsMalformedInput(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)
	ctx := context.Background()

	var verr *ValidationError

	err := svc.Signup(ctx, "not-an-email", "alice")
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "email", verr.Field)

	err = svc.Signup(ctx, "alice@example.com", "bad name")
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "username", verr.Field)
}

func TestSignupPartialCollisionNamesField(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.Signup(ctx, "alice@example.com", "alice"))

	// Same username, different email.
	err := svc.Signup(ctx, "alice2@example.com", "alice")
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "username", conflict.Field)

	// Same email, different username.
	err = svc.Signup(ctx, "alice@example.com", "alice2")
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "email", conflict.Field)
}

func TestExchangeTokenUnknownUser(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	_, err := svc.ExchangeToken(context.Background(), "nobody", "whatever")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExchangeTokenBadCode(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.Signup(ctx, "alice@example.com", "alice"))

	_, err := svc.ExchangeToken(ctx, "alice", "not-a-code")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestExchangeTokenIssuesAccessTokenAndConsumesCode(t *testing.T) {
	svc, users, tokens, mailer := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.Signup(ctx, "alice@example.com", "alice"))
	code := mailer.code

	token, err := svc.ExchangeToken(ctx, "alice", code)
	require.NoError(t, err)

	claims, err := tokens.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)

	user, err := users.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, user.LastLogin)

	// The exchange moved last_login, so the same code cannot be replayed.
	_, err = svc.ExchangeToken(ctx, "alice", code)
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}
