package services

import (
	"context"
	"testing"
	"time"

	"review-backend/internal/config"
	"review-backend/internal/database"
	"review-backend/internal/models"
	"review-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type titleFixture struct {
	svc        TitleService
	db         *database.Database
	categories repository.CategoryRepository
	genres     repository.GenreRepository
	reviews    repository.ReviewRepository
	users      repository.UserRepository
}

func newTitleFixture(t *testing.T) *titleFixture {
	t.Helper()
	db := newTestDB(t)

	f := &titleFixture{
		db:         db,
		categories: repository.NewCategoryRepository(db),
		genres:     repository.NewGenreRepository(db),
		reviews:    repository.NewReviewRepository(db),
		users:      repository.NewUserRepository(db),
	}
	f.svc = NewTitleService(
		repository.NewTitleRepository(db),
		f.categories,
		f.genres,
		config.CatalogConfig{MaxYearAhead: 0},
		testLogger(),
	)
	return f
}

func (f *titleFixture) seedCatalog(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.categories.Create(ctx, &models.Category{Name: "Movies", Slug: "movies"}))
	require.NoError(t, f.categories.Create(ctx, &models.Category{Name: "Books", Slug: "books"}))
	require.NoError(t, f.genres.Create(ctx, &models.Genre{Name: "Drama", Slug: "drama"}))
	require.NoError(t, f.genres.Create(ctx, &models.Genre{Name: "Comedy", Slug: "comedy"}))
}

func (f *titleFixture) seedUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@example.com", Role: models.RoleUser}
	require.NoError(t, f.users.Create(context.Background(), user))
	return user
}

func TestCreateTitleResolvesSlugs(t *testing.T) {
	f := newTitleFixture(t)
	f.seedCatalog(t)

	title, err := f.svc.Create(context.Background(), TitleInput{
		Name:     strPtr("Interstellar"),
		Year:     intPtr(2014),
		Category: strPtr("movies"),
		Genres:   &[]string{"drama"},
	})
	require.NoError(t, err)

	require.NotNil(t, title.Category)
	assert.Equal(t, "movies", title.Category.Slug)
	require.Len(t, title.Genres, 1)
	assert.Equal(t, "drama", title.Genres[0].Slug)
	assert.Nil(t, title.Rating, "a fresh title has no rating")
}

func TestCreateTitleRequiredFields(t *testing.T) {
	f := newTitleFixture(t)
	ctx := context.Background()

	var verr *ValidationError

	_, err := f.svc.Create(ctx, TitleInput{Year: intPtr(2014)})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)

	_, err = f.svc.Create(ctx, TitleInput{Name: strPtr("Interstellar")})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "year", verr.Field)
}

func TestCreateTitleRejectsFutureYear(t *testing.T) {
	f := newTitleFixture(t)

	_, err := f.svc.Create(context.Background(), TitleInput{
		Name: strPtr("From the Future"),
		Year: intPtr(time.Now().Year() + 1),
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "year", verr.Field)
}

func TestCreateTitleUnknownSlugs(t *testing.T) {
	f := newTitleFixture(t)
	f.seedCatalog(t)
	ctx := context.Background()

	var verr *ValidationError

	_, err := f.svc.Create(ctx, TitleInput{
		Name:     strPtr("Interstellar"),
		Year:     intPtr(2014),
		Category: strPtr("music"),
	})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "category", verr.Field)

	_, err = f.svc.Create(ctx, TitleInput{
		Name:   strPtr("Interstellar"),
		Year:   intPtr(2014),
		Genres: &[]string{"drama", "horror"},
	})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "genre", verr.Field)
}

func TestUpdateTitleReplacesGenres(t *testing.T) {
	f := newTitleFixture(t)
	f.seedCatalog(t)
	ctx := context.Background()

	title, err := f.svc.Create(ctx, TitleInput{
		Name:   strPtr("Interstellar"),
		Year:   intPtr(2014),
		Genres: &[]string{"drama"},
	})
	require.NoError(t, err)

	updated, err := f.svc.Update(ctx, title.ID, TitleInput{
		Genres: &[]string{"comedy"},
	})
	require.NoError(t, err)
	require.Len(t, updated.Genres, 1)
	assert.Equal(t, "comedy", updated.Genres[0].Slug)
	assert.Equal(t, "Interstellar", updated.Name, "untouched fields survive a partial update")
}

func TestTitleRatingAveragesReviews(t *testing.T) {
	f := newTitleFixture(t)
	ctx := context.Background()

	title, err := f.svc.Create(ctx, TitleInput{Name: strPtr("Dune"), Year: intPtr(2021)})
	require.NoError(t, err)

	alice := f.seedUser(t, "alice")
	bob := f.seedUser(t, "bob")

	require.NoError(t, f.reviews.Create(ctx, &models.Review{Text: "good", Score: 8, TitleID: title.ID, AuthorID: alice.ID}))
	require.NoError(t, f.reviews.Create(ctx, &models.Review{Text: "ok", Score: 5, TitleID: title.ID, AuthorID: bob.ID}))

	got, err := f.svc.Get(ctx, title.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Rating)
	assert.InDelta(t, 6.5, *got.Rating, 0.001)
}

func TestListTitlesFiltersCombine(t *testing.T) {
	f := newTitleFixture(t)
	f.seedCatalog(t)
	ctx := context.Background()

	mk := func(name string, year int, category string, genres ...string) {
		input := TitleInput{Name: strPtr(name), Year: intPtr(year)}
		if category != "" {
			input.Category = strPtr(category)
		}
		if len(genres) > 0 {
			input.Genres = &genres
		}
		_, err := f.svc.Create(ctx, input)
		require.NoError(t, err)
	}

	mk("Interstellar", 2014, "movies", "drama")
	mk("The Martian", 2015, "movies", "drama", "comedy")
	mk("Project Hail Mary", 2021, "books", "drama")

	titles, total, err := f.svc.List(ctx, repository.TitleFilter{CategorySlug: "movies", GenreSlug: "drama"}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, titles, 2)

	year := 2015
	titles, total, err = f.svc.List(ctx, repository.TitleFilter{CategorySlug: "movies", Year: &year}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, titles, 1)
	assert.Equal(t, "The Martian", titles[0].Name)

	titles, total, err = f.svc.List(ctx, repository.TitleFilter{Name: "mar"}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, titles, 2)
}

func TestDeleteTitle(t *testing.T) {
	f := newTitleFixture(t)
	ctx := context.Background()

	title, err := f.svc.Create(ctx, TitleInput{Name: strPtr("Dune"), Year: intPtr(2021)})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, title.ID))
	assert.ErrorIs(t, f.svc.Delete(ctx, title.ID), ErrNotFound)

	_, err = f.svc.Get(ctx, title.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteCategoryDetachesTitles(t *testing.T) {
	f := newTitleFixture(t)
	f.seedCatalog(t)
	ctx := context.Background()

	title, err := f.svc.Create(ctx, TitleInput{
		Name:     strPtr("Interstellar"),
		Year:     intPtr(2014),
		Category: strPtr("movies"),
	})
	require.NoError(t, err)
	require.NotNil(t, title.Category)

	_, err = f.categories.DeleteBySlug(ctx, "movies")
	require.NoError(t, err)

	got, err := f.svc.Get(ctx, title.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Category, "titles outlive their category")
}
