package repository

import (
	"context"
	"errors"
	"time"

	"review-backend/internal/database"
	"review-backend/internal/models"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	Save(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, reviewID, id uint) (*models.Comment, error)
	FindAllByReview(ctx context.Context, reviewID uint, page, limit int) ([]models.Comment, int64, error)
}

type commentRepository struct {
	db      *database.Database
	timeout time.Duration
}

func NewCommentRepository(db *database.Database) CommentRepository {
	return &commentRepository{
		db:      db,
		timeout: db.GetQueryTimeout(),
	}
}

func (r *commentRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) Save(ctx context.Context, comment *models.Comment) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Omit("Review", "Author").Save(comment).Error
}

func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Delete(&models.Comment{}, id).Error
}

func (r *commentRepository) FindByID(ctx context.Context, reviewID, id uint) (*models.Comment, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var comment models.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("id = ? AND review_id = ?", id, reviewID).
		First(&comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) FindAllByReview(ctx context.Context, reviewID uint, page, limit int) ([]models.Comment, int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var comments []models.Comment
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Comment{}).Where("review_id = ?", reviewID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.
		Preload("Author").
		Order("pub_date DESC").
		Offset(offset).
		Limit(limit).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}
