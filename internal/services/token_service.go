package services

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"review-backend/internal/config"
	"review-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const (
	audienceAccess       = "access"
	audienceConfirmation = "confirmation"
)

// TokenClaims are carried by bearer access tokens.
type TokenClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// confirmationClaims bind a signup confirmation code to a snapshot of the
// user's mutable state. Changing that state (in particular last_login, set
// on every successful token exchange) invalidates outstanding codes without
// any server-side code registry.
type confirmationClaims struct {
	UserID uint   `json:"user_id"`
	State  string `json:"state"`
	jwt.RegisteredClaims
}

type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	confirmTTL time.Duration
}

func NewTokenService(cfg config.AuthConfig) *TokenService {
	return &TokenService{
		secret:     []byte(cfg.JWTSecret),
		accessTTL:  cfg.AccessTokenTTL,
		confirmTTL: cfg.ConfirmationTTL,
	}
}

func (s *TokenService) IssueAccessToken(user *models.User) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			Audience:  jwt.ClaimStrings{audienceAccess},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *TokenService) ParseAccessToken(tokenStr string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, s.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(audienceAccess),
	)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

func (s *TokenService) IssueConfirmationCode(user *models.User) (string, error) {
	now := time.Now()
	claims := confirmationClaims{
		UserID: user.ID,
		State:  userStateHash(user),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			Audience:  jwt.ClaimStrings{audienceConfirmation},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.confirmTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// CheckConfirmationCode verifies the code against the user's current state.
// It reports a bare yes/no so callers cannot leak why verification failed.
func (s *TokenService) CheckConfirmationCode(user *models.User, code string) bool {
	claims := &confirmationClaims{}
	_, err := jwt.ParseWithClaims(code, claims, s.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(audienceConfirmation),
	)
	if err != nil {
		return false
	}
	return claims.UserID == user.ID && claims.State == userStateHash(user)
}

func (s *TokenService) keyFunc(t *jwt.Token) (interface{}, error) {
	return s.secret, nil
}

func userStateHash(user *models.User) string {
	lastLogin := int64(0)
	if user.LastLogin != nil {
		lastLogin = user.LastLogin.UnixNano()
	}
	sum := sha256.Sum256([]byte(fmt.Sprintf("%d|%s|%s|%s|%d",
		user.ID, user.Email, user.Username, user.Role, lastLogin)))
	return hex.EncodeToString(sum[:])
}
