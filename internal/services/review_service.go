package services

import (
	"context"
	"fmt"

	"review-backend/internal/models"
	"review-backend/internal/repository"

	"github.com/sirupsen/logrus"
)

// ReviewService manages reviews and their comments. Both are addressed only
// through the parent chain: every lookup re-verifies that the review belongs
// to the title in the path (and the comment to that review) and reports
// ErrNotFound on any mismatch.
type ReviewService interface {
	ListReviews(ctx context.Context, titleID uint, page, limit int) ([]models.Review, int64, error)
	GetReview(ctx context.Context, titleID, reviewID uint) (*models.Review, error)
	CreateReview(ctx context.Context, author *models.User, titleID uint, text string, score int) (*models.Review, error)
	UpdateReview(ctx context.Context, review *models.Review, text *string, score *int) (*models.Review, error)
	DeleteReview(ctx context.Context, review *models.Review) error

	ListComments(ctx context.Context, titleID, reviewID uint, page, limit int) ([]models.Comment, int64, error)
	GetComment(ctx context.Context, titleID, reviewID, commentID uint) (*models.Comment, error)
	CreateComment(ctx context.Context, author *models.User, titleID, reviewID uint, text string) (*models.Comment, error)
	UpdateComment(ctx context.Context, comment *models.Comment, text string) (*models.Comment, error)
	DeleteComment(ctx context.Context, comment *models.Comment) error
}

type reviewService struct {
	reviews  repository.ReviewRepository
	comments repository.CommentRepository
	titles   repository.TitleRepository
	logger   *logrus.Logger
}

func NewReviewService(
	reviews repository.ReviewRepository,
	comments repository.CommentRepository,
	titles repository.TitleRepository,
	logger *logrus.Logger,
) ReviewService {
	return &reviewService{
		reviews:  reviews,
		comments: comments,
		titles:   titles,
		logger:   logger,
	}
}

func (s *reviewService) ListReviews(ctx context.Context, titleID uint, page, limit int) ([]models.Review, int64, error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, 0, err
	}
	return s.reviews.FindAllByTitle(ctx, titleID, page, limit)
}

func (s *reviewService) GetReview(ctx context.Context, titleID, reviewID uint) (*models.Review, error) {
	review, err := s.reviews.FindByID(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, ErrNotFound
	}
	return review, nil
}

func (s *reviewService) CreateReview(ctx context.Context, author *models.User, titleID uint, text string, score int) (*models.Review, error) {
	if text == "" {
		return nil, NewValidationError("text", "text is required")
	}
	if err := validateScore(score); err != nil {
		return nil, err
	}
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}

	// Pre-check to produce a friendly error; the unique index on
	// (title_id, author_id) remains the backstop under concurrency.
	exists, err := s.reviews.ExistsByTitleAndAuthor(ctx, titleID, author.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing review: %w", err)
	}
	if exists {
		return nil, NewValidationError("review", "review already exists for this title")
	}

	review := &models.Review{
		Text:     text,
		Score:    score,
		TitleID:  titleID,
		AuthorID: author.ID,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		if isUniqueViolation(err) {
			return nil, NewValidationError("review", "review already exists for this title")
		}
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	review.Author = author
	return review, nil
}

func (s *reviewService) UpdateReview(ctx context.Context, review *models.Review, text *string, score *int) (*models.Review, error) {
	if text != nil {
		if *text == "" {
			return nil, NewValidationError("text", "text is required")
		}
		review.Text = *text
	}
	if score != nil {
		if err := validateScore(*score); err != nil {
			return nil, err
		}
		review.Score = *score
	}
	if err := s.reviews.Save(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to update review: %w", err)
	}
	return review, nil
}

// DeleteReview removes the review; its comments go with it via the storage
// layer cascade.
func (s *reviewService) DeleteReview(ctx context.Context, review *models.Review) error {
	if err := s.reviews.Delete(ctx, review.ID); err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	return nil
}

func (s *reviewService) ListComments(ctx context.Context, titleID, reviewID uint, page, limit int) ([]models.Comment, int64, error) {
	if _, err := s.GetReview(ctx, titleID, reviewID); err != nil {
		return nil, 0, err
	}
	return s.comments.FindAllByReview(ctx, reviewID, page, limit)
}

func (s *reviewService) GetComment(ctx context.Context, titleID, reviewID, commentID uint) (*models.Comment, error) {
	if _, err := s.GetReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	comment, err := s.comments.FindByID(ctx, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, ErrNotFound
	}
	return comment, nil
}

func (s *reviewService) CreateComment(ctx context.Context, author *models.User, titleID, reviewID uint, text string) (*models.Comment, error) {
	if text == "" {
		return nil, NewValidationError("text", "text is required")
	}
	if _, err := s.GetReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Text:     text,
		ReviewID: reviewID,
		AuthorID: author.ID,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	comment.Author = author
	return comment, nil
}

func (s *reviewService) UpdateComment(ctx context.Context, comment *models.Comment, text string) (*models.Comment, error) {
	if text == "" {
		return nil, NewValidationError("text", "text is required")
	}
	comment.Text = text
	if err := s.comments.Save(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}
	return comment, nil
}

func (s *reviewService) DeleteComment(ctx context.Context, comment *models.Comment) error {
	if err := s.comments.Delete(ctx, comment.ID); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}

func (s *reviewService) requireTitle(ctx context.Context, titleID uint) error {
	title, err := s.titles.FindByID(ctx, titleID)
	if err != nil {
		return err
	}
	if title == nil {
		return ErrNotFound
	}
	return nil
}
