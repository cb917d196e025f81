package services

import (
	"regexp"
	"time"
)

// ReservedUsername is claimed by the current-user endpoint (/users/me) and
// can never be registered.
const ReservedUsername = "me"

var (
	usernameRe = regexp.MustCompile(`^[\w.@+-]+$`)
	slugRe     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
	emailRe    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

func validateUsername(username string) error {
	if username == "" {
		return NewValidationError("username", "username is required")
	}
	if len(username) > 150 {
		return NewValidationError("username", "username must be at most 150 characters")
	}
	if username == ReservedUsername {
		return NewValidationError("username", `username "me" is reserved`)
	}
	if !usernameRe.MatchString(username) {
		return NewValidationError("username", "username may only contain letters, digits and .@+-_")
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return NewValidationError("email", "email is required")
	}
	if len(email) > 254 {
		return NewValidationError("email", "email must be at most 254 characters")
	}
	if !emailRe.MatchString(email) {
		return NewValidationError("email", "invalid email address")
	}
	return nil
}

func validateSlug(slug string) error {
	if slug == "" {
		return NewValidationError("slug", "slug is required")
	}
	if len(slug) > 50 {
		return NewValidationError("slug", "slug must be at most 50 characters")
	}
	if !slugRe.MatchString(slug) {
		return NewValidationError("slug", "slug may only contain letters, digits, hyphens and underscores")
	}
	return nil
}

func validateScore(score int) error {
	if score < 1 || score > 10 {
		return NewValidationError("score", "score must be an integer from 1 to 10")
	}
	return nil
}

func validateYear(year, maxYearAhead int) error {
	max := time.Now().Year() + maxYearAhead
	if year > max {
		return NewValidationError("year", "year cannot be in the future")
	}
	return nil
}
