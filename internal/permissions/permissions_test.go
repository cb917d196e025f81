package permissions

import (
	"net/http"
	"testing"

	"review-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestIsSafeMethod(t *testing.T) {
	assert.True(t, IsSafeMethod(http.MethodGet))
	assert.True(t, IsSafeMethod(http.MethodHead))
	assert.True(t, IsSafeMethod(http.MethodOptions))
	assert.False(t, IsSafeMethod(http.MethodPost))
	assert.False(t, IsSafeMethod(http.MethodPatch))
	assert.False(t, IsSafeMethod(http.MethodDelete))
}

func TestIsAdmin(t *testing.T) {
	tests := []struct {
		name string
		user *models.User
		want bool
	}{
		{"anonymous", nil, false},
		{"plain user", &models.User{Role: models.RoleUser}, false},
		{"moderator", &models.User{Role: models.RoleModerator}, false},
		{"admin role", &models.User{Role: models.RoleAdmin}, true},
		{"superuser with user role", &models.User{Role: models.RoleUser, IsSuperuser: true}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAdmin(tt.user))
		})
	}
}

func TestAdminOrReadOnly(t *testing.T) {
	admin := &models.User{ID: 1, Role: models.RoleAdmin}
	user := &models.User{ID: 2, Role: models.RoleUser}

	assert.True(t, AdminOrReadOnly(nil, http.MethodGet))
	assert.True(t, AdminOrReadOnly(user, http.MethodGet))
	assert.True(t, AdminOrReadOnly(admin, http.MethodPost))
	assert.False(t, AdminOrReadOnly(user, http.MethodPost))
	assert.False(t, AdminOrReadOnly(nil, http.MethodDelete))
}

func TestCanCreateAuthored(t *testing.T) {
	assert.False(t, CanCreateAuthored(nil))
	assert.True(t, CanCreateAuthored(&models.User{ID: 1, Role: models.RoleUser}))
}

func TestAuthorModeratorAdminOrReadOnly(t *testing.T) {
	const authorID = uint(7)

	author := &models.User{ID: authorID, Role: models.RoleUser}
	other := &models.User{ID: 8, Role: models.RoleUser}
	moderator := &models.User{ID: 9, Role: models.RoleModerator}
	admin := &models.User{ID: 10, Role: models.RoleAdmin}

	tests := []struct {
		name   string
		user   *models.User
		method string
		want   bool
	}{
		{"anonymous read", nil, http.MethodGet, true},
		{"anonymous write", nil, http.MethodPatch, false},
		{"author write", author, http.MethodPatch, true},
		{"author delete", author, http.MethodDelete, true},
		{"other user write", other, http.MethodPatch, false},
		{"other user read", other, http.MethodGet, true},
		{"moderator write", moderator, http.MethodDelete, true},
		{"admin write", admin, http.MethodPatch, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AuthorModeratorAdminOrReadOnly(tt.user, tt.method, authorID))
		})
	}
}
