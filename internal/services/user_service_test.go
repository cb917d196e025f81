package services

import (
	"context"
	"testing"

	"review-backend/internal/models"
	"review-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserFixture(t *testing.T) (UserService, repository.UserRepository) {
	t.Helper()
	db := newTestDB(t)
	users := repository.NewUserRepository(db)
	return NewUserService(users, testLogger()), users
}

func TestCreateUserRequiresUsernameAndEmail(t *testing.T) {
	svc, _ := newUserFixture(t)
	ctx := context.Background()

	var verr *ValidationError

	_, err := svc.Create(ctx, UserInput{Email: strPtr("a@example.com")})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "username", verr.Field)

	_, err = svc.Create(ctx, UserInput{Username: strPtr("alice")})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "email", verr.Field)
}

func TestCreateUserWithRole(t *testing.T) {
	svc, _ := newUserFixture(t)

	user, err := svc.Create(context.Background(), UserInput{
		Username: strPtr("mod"),
		Email:    strPtr("mod@example.com"),
		Role:     strPtr(models.RoleModerator),
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleModerator, user.Role)
}

func TestCreateUserRejectsUnknownRole(t *testing.T) {
	svc, _ := newUserFixture(t)

	_, err := svc.Create(context.Background(), UserInput{
		Username: strPtr("alice"),
		Email:    strPtr("alice@example.com"),
		Role:     strPtr("owner"),
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "role", verr.Field)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	svc, _ := newUserFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, UserInput{
		Username: strPtr("alice"),
		Email:    strPtr("alice@example.com"),
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, UserInput{
		Username: strPtr("bob"),
		Email:    strPtr("alice@example.com"),
	})
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "email", conflict.Field)
}

func TestUpdateChangesRole(t *testing.T) {
	svc, _ := newUserFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, UserInput{
		Username: strPtr("alice"),
		Email:    strPtr("alice@example.com"),
	})
	require.NoError(t, err)

	user, err := svc.Update(ctx, "alice", UserInput{Role: strPtr(models.RoleAdmin)})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
}

func TestUpdateProfilePinsRole(t *testing.T) {
	svc, users := newUserFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, UserInput{
		Username: strPtr("alice"),
		Email:    strPtr("alice@example.com"),
	})
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(ctx, created, UserInput{
		Bio:  strPtr("hello"),
		Role: strPtr(models.RoleAdmin),
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", updated.Bio)
	assert.Equal(t, models.RoleUser, updated.Role)

	stored, err := users.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, stored.Role)
}

func TestGetByUsernameNotFound(t *testing.T) {
	svc, _ := newUserFixture(t)

	_, err := svc.GetByUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteUser(t *testing.T) {
	svc, _ := newUserFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, UserInput{
		Username: strPtr("alice"),
		Email:    strPtr("alice@example.com"),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "alice"))
	assert.ErrorIs(t, svc.Delete(ctx, "alice"), ErrNotFound)
}

func TestListUsersSearch(t *testing.T) {
	svc, _ := newUserFixture(t)
	ctx := context.Background()

	for _, name := range []string{"alice", "alina", "bob"} {
		_, err := svc.Create(ctx, UserInput{
			Username: strPtr(name),
			Email:    strPtr(name + "@example.com"),
		})
		require.NoError(t, err)
	}

	users, total, err := svc.List(ctx, 1, 10, "ali")
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "alina", users[1].Username)
}
