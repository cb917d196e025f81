package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Request-scoped failure taxonomy. Handlers map these onto HTTP statuses:
// validation/conflict -> 400 with field detail, ErrForbidden -> 403,
// ErrNotFound -> 404, ErrAuthenticationFailed -> 400 without detail.
var (
	ErrNotFound             = errors.New("not found")
	ErrForbidden            = errors.New("forbidden")
	ErrAuthenticationFailed = errors.New("authentication failed")
)

// ValidationError reports malformed or out-of-range input on a named field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ConflictError reports a uniqueness violation on a named field.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("a record with this %s already exists", e.Field)
}

var (
	pgUniqueRe     = regexp.MustCompile(`unique constraint "([^"]+)"`)
	sqliteUniqueRe = regexp.MustCompile(`UNIQUE constraint failed: \w+\.(\w+)`)
)

// uniqueViolationField extracts the offending column from a storage-level
// unique constraint violation. Postgres reports the constraint name
// (e.g. "idx_users_email"), sqlite the table.column pair.
func uniqueViolationField(err error) (string, bool) {
	if err == nil {
		return "", false
	}
	msg := err.Error()

	if m := sqliteUniqueRe.FindStringSubmatch(msg); m != nil {
		return m[1], true
	}
	if m := pgUniqueRe.FindStringSubmatch(msg); m != nil {
		name := m[1]
		for _, prefix := range []string{"idx_users_", "idx_categories_", "idx_genres_", "uni_users_", "idx_"} {
			if strings.HasPrefix(name, prefix) {
				return strings.TrimPrefix(name, prefix), true
			}
		}
		return name, true
	}
	return "", false
}

func isUniqueViolation(err error) bool {
	_, ok := uniqueViolationField(err)
	return ok
}
