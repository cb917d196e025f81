package services

import (
	"context"
	"testing"
	"time"

	"review-backend/internal/database"
	"review-backend/internal/models"
	"review-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reviewFixture struct {
	svc      ReviewService
	db       *database.Database
	titles   repository.TitleRepository
	comments repository.CommentRepository
	users    repository.UserRepository
}

func newReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()
	db := newTestDB(t)

	f := &reviewFixture{
		db:       db,
		titles:   repository.NewTitleRepository(db),
		comments: repository.NewCommentRepository(db),
		users:    repository.NewUserRepository(db),
	}
	f.svc = NewReviewService(
		repository.NewReviewRepository(db),
		f.comments,
		f.titles,
		testLogger(),
	)
	return f
}

func (f *reviewFixture) seedUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@example.com", Role: models.RoleUser}
	require.NoError(t, f.users.Create(context.Background(), user))
	return user
}

func (f *reviewFixture) seedTitle(t *testing.T, name string) *models.Title {
	t.Helper()
	title := &models.Title{Name: name, Year: 2020}
	require.NoError(t, f.titles.Create(context.Background(), title))
	return title
}

func TestCreateReviewValidation(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()
	author := f.seedUser(t, "alice")
	title := f.seedTitle(t, "Dune")

	var verr *ValidationError

	_, err := f.svc.CreateReview(ctx, author, title.ID, "", 5)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "text", verr.Field)

	_, err = f.svc.CreateReview(ctx, author, title.ID, "great", 0)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "score", verr.Field)

	_, err = f.svc.CreateReview(ctx, author, title.ID, "great", 11)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "score", verr.Field)
}

func TestCreateReviewUnknownTitle(t *testing.T) {
	f := newReviewFixture(t)
	author := f.seedUser(t, "alice")

	_, err := f.svc.CreateReview(context.Background(), author, 999, "great", 7)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateReviewOnePerAuthor(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()
	alice := f.seedUser(t, "alice")
	bob := f.seedUser(t, "bob")
	title := f.seedTitle(t, "Dune")

	_, err := f.svc.CreateReview(ctx, alice, title.ID, "great", 8)
	require.NoError(t, err)

	_, err = f.svc.CreateReview(ctx, alice, title.ID, "changed my mind", 3)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "review", verr.Field)

	// A different author is still free to review.
	_, err = f.svc.CreateReview(ctx, bob, title.ID, "fine", 6)
	require.NoError(t, err)
}

func TestListReviewsNewestFirst(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()
	alice := f.seedUser(t, "alice")
	bob := f.seedUser(t, "bob")
	title := f.seedTitle(t, "Dune")

	first, err := f.svc.CreateReview(ctx, alice, title.ID, "first", 8)
	require.NoError(t, err)
	second, err := f.svc.CreateReview(ctx, bob, title.ID, "second", 6)
	require.NoError(t, err)

	// Spread the timestamps so the ordering is unambiguous.
	base := time.Now().UTC().Add(-time.Hour)
	require.NoError(t, f.db.Exec("UPDATE reviews SET pub_date = ? WHERE id = ?", base, first.ID).Error)
	require.NoError(t, f.db.Exec("UPDATE reviews SET pub_date = ? WHERE id = ?", base.Add(time.Minute), second.ID).Error)

	reviews, total, err := f.svc.ListReviews(ctx, title.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, reviews, 2)
	assert.Equal(t, second.ID, reviews[0].ID)
	assert.Equal(t, first.ID, reviews[1].ID)
}

func TestGetReviewParentMismatch(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()
	alice := f.seedUser(t, "alice")
	dune := f.seedTitle(t, "Dune")
	other := f.seedTitle(t, "Arrival")

	review, err := f.svc.CreateReview(ctx, alice, dune.ID, "great", 8)
	require.NoError(t, err)

	_, err = f.svc.GetReview(ctx, other.ID, review.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := f.svc.GetReview(ctx, dune.ID, review.ID)
	require.NoError(t, err)
	assert.Equal(t, review.ID, got.ID)
}

func TestUpdateReviewPartial(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()
	alice := f.seedUser(t, "alice")
	title := f.seedTitle(t, "Dune")

	review, err := f.svc.CreateReview(ctx, alice, title.ID, "great", 8)
	require.NoError(t, err)

	updated, err := f.svc.UpdateReview(ctx, review, nil, intPtr(4))
	require.NoError(t, err)
	assert.Equal(t, "great", updated.Text)
	assert.Equal(t, 4, updated.Score)

	_, err = f.svc.UpdateReview(ctx, review, strPtr(""), nil)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "text", verr.Field)
}

func TestCommentParentChain(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()
	alice := f.seedUser(t, "alice")
	dune := f.seedTitle(t, "Dune")
	other := f.seedTitle(t, "Arrival")

	review, err := f.svc.CreateReview(ctx, alice, dune.ID, "great", 8)
	require.NoError(t, err)

	comment, err := f.svc.CreateComment(ctx, alice, dune.ID, review.ID, "agreed")
	require.NoError(t, err)

	// Addressing the comment through the wrong title is a miss even though
	// the review and comment IDs are real.
	_, err = f.svc.GetComment(ctx, other.ID, review.ID, comment.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := f.svc.GetComment(ctx, dune.ID, review.ID, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, comment.ID, got.ID)

	_, err = f.svc.CreateComment(ctx, alice, other.ID, review.ID, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteReviewCascadesComments(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()
	alice := f.seedUser(t, "alice")
	title := f.seedTitle(t, "Dune")

	review, err := f.svc.CreateReview(ctx, alice, title.ID, "great", 8)
	require.NoError(t, err)
	comment, err := f.svc.CreateComment(ctx, alice, title.ID, review.ID, "agreed")
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteReview(ctx, review))

	orphan, err := f.comments.FindByID(ctx, review.ID, comment.ID)
	require.NoError(t, err)
	assert.Nil(t, orphan, "comments go with their review")
}

func TestDeleteTitleCascadesReviews(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()
	alice := f.seedUser(t, "alice")
	title := f.seedTitle(t, "Dune")

	review, err := f.svc.CreateReview(ctx, alice, title.ID, "great", 8)
	require.NoError(t, err)
	comment, err := f.svc.CreateComment(ctx, alice, title.ID, review.ID, "agreed")
	require.NoError(t, err)

	_, err = f.titles.Delete(ctx, title.ID)
	require.NoError(t, err)

	_, err = f.svc.GetReview(ctx, title.ID, review.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	orphan, err := f.comments.FindByID(ctx, review.ID, comment.ID)
	require.NoError(t, err)
	assert.Nil(t, orphan)
}
