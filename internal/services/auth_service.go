package services

import (
	"context"
	"fmt"
	"time"

	"review-backend/internal/models"
	"review-backend/internal/repository"

	"github.com/sirupsen/logrus"
)

// AuthService drives the two-step email verification flow: signup issues a
// confirmation code out-of-band, ExchangeToken trades it for a bearer token.
type AuthService interface {
	Signup(ctx context.Context, email, username string) error
	ExchangeToken(ctx context.Context, username, code string) (string, error)
}

type authService struct {
	users  repository.UserRepository
	tokens *TokenService
	mailer Mailer
	logger *logrus.Logger
}

func NewAuthService(users repository.UserRepository, tokens *TokenService, mailer Mailer, logger *logrus.Logger) AuthService {
	return &authService{
		users:  users,
		tokens: tokens,
		mailer: mailer,
		logger: logger,
	}
}

// Signup is idempotent for the exact (email, username) pair: repeating it
// re-sends a fresh confirmation code for the existing user. A partial match
// with an existing record fails naming the conflicting field.
func (s *authService) Signup(ctx context.Context, email, username string) error {
	if err := validateEmail(email); err != nil {
		return err
	}
	if err := validateUsername(username); err != nil {
		return err
	}

	user, err := s.users.FindByEmailAndUsername(ctx, email, username)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		user = &models.User{
			Email:    email,
			Username: username,
			Role:     models.RoleUser,
		}
		if err := s.users.Create(ctx, user); err != nil {
			if field, ok := uniqueViolationField(err); ok {
				return &ConflictError{Field: field}
			}
			return fmt.Errorf("failed to create user: %w", err)
		}
	}

	code, err := s.tokens.IssueConfirmationCode(user)
	if err != nil {
		return fmt.Errorf("failed to generate confirmation code: %w", err)
	}

	// Delivery is a synchronous best-effort side effect; a mail outage must
	// not fail the signup itself.
	if err := s.mailer.SendConfirmationCode(user.Email, code); err != nil {
		s.logger.WithError(err).WithField("username", user.Username).
			Warn("Failed to deliver confirmation code")
	}

	return nil
}

func (s *authService) ExchangeToken(ctx context.Context, username, code string) (string, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return "", ErrNotFound
	}

	if !s.tokens.CheckConfirmationCode(user, code) {
		return "", ErrAuthenticationFailed
	}

	// Consuming the code changes the state it was bound to, so it cannot be
	// replayed.
	now := time.Now().UTC()
	user.LastLogin = &now
	if err := s.users.Save(ctx, user); err != nil {
		return "", fmt.Errorf("failed to update user: %w", err)
	}

	return s.tokens.IssueAccessToken(user)
}
