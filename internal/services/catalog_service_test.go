package services

import (
	"context"
	"testing"

	"review-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogFixture(t *testing.T) CatalogService {
	t.Helper()
	db := newTestDB(t)
	categories := repository.NewCategoryRepository(db)
	genres := repository.NewGenreRepository(db)
	return NewCatalogService(categories, genres, testLogger())
}

func TestCreateCategory(t *testing.T) {
	svc := newCatalogFixture(t)

	category, err := svc.CreateCategory(context.Background(), "Movies", "movies")
	require.NoError(t, err)
	assert.Equal(t, "Movies", category.Name)
	assert.Equal(t, "movies", category.Slug)
	assert.NotZero(t, category.ID)
}

func TestCreateCategoryValidatesSlug(t *testing.T) {
	svc := newCatalogFixture(t)
	ctx := context.Background()

	var verr *ValidationError

	_, err := svc.CreateCategory(ctx, "Movies", "")
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "slug", verr.Field)

	_, err = svc.CreateCategory(ctx, "Movies", "bad slug!")
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "slug", verr.Field)

	_, err = svc.CreateCategory(ctx, "", "movies")
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)
}

func TestCreateCategoryDuplicateSlug(t *testing.T) {
	svc := newCatalogFixture(t)
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, "Movies", "movies")
	require.NoError(t, err)

	_, err = svc.CreateCategory(ctx, "Films", "movies")
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "slug", conflict.Field)
}

func TestDeleteCategory(t *testing.T) {
	svc := newCatalogFixture(t)
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, "Movies", "movies")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCategory(ctx, "movies"))
	assert.ErrorIs(t, svc.DeleteCategory(ctx, "movies"), ErrNotFound)
}

func TestDeleteGenreMissing(t *testing.T) {
	svc := newCatalogFixture(t)
	assert.ErrorIs(t, svc.DeleteGenre(context.Background(), "nope"), ErrNotFound)
}

func TestListGenresSearch(t *testing.T) {
	svc := newCatalogFixture(t)
	ctx := context.Background()

	for _, g := range [][2]string{{"Drama", "drama"}, {"Comedy", "comedy"}, {"Dark Comedy", "dark-comedy"}} {
		_, err := svc.CreateGenre(ctx, g[0], g[1])
		require.NoError(t, err)
	}

	genres, total, err := svc.ListGenres(ctx, 1, 10, "comedy")
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, genres, 2)

	genres, total, err = svc.ListGenres(ctx, 1, 10, "")
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, genres, 3)
}
