// Package permissions holds the authorization predicates. Each predicate is
// a pure function of the requesting identity, the HTTP method and, where it
// matters, the target object's author. Handlers compose them per route and
// translate a denial into 401/403.
package permissions

import (
	"net/http"

	"review-backend/internal/models"
)

// IsSafeMethod reports whether the method is read-only.
func IsSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// ReadOnly grants read operations unconditionally and nothing else.
func ReadOnly(method string) bool {
	return IsSafeMethod(method)
}

// IsAdmin reports whether the user holds the admin tier: the admin role or
// the superuser flag. A nil user is anonymous.
func IsAdmin(user *models.User) bool {
	return user != nil && (user.IsSuperuser || user.Role == models.RoleAdmin)
}

func IsModerator(user *models.User) bool {
	return user != nil && user.Role == models.RoleModerator
}

// AdminOrReadOnly grants reads to everyone and writes to admins only.
func AdminOrReadOnly(user *models.User, method string) bool {
	return IsSafeMethod(method) || IsAdmin(user)
}

// CanCreateAuthored grants creation of reviews/comments to any
// authenticated user.
func CanCreateAuthored(user *models.User) bool {
	return user != nil
}

// AuthorModeratorAdminOrReadOnly decides mutation of an existing review or
// comment: reads for everyone, writes for the author, moderators and admins.
func AuthorModeratorAdminOrReadOnly(user *models.User, method string, authorID uint) bool {
	if IsSafeMethod(method) {
		return true
	}
	if user == nil {
		return false
	}
	return user.ID == authorID || IsModerator(user) || IsAdmin(user)
}
