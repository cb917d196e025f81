package repository

import (
	"context"
	"errors"
	"time"

	"review-backend/internal/database"
	"review-backend/internal/models"

	"gorm.io/gorm"
)

// TitleFilter combines with logical AND; zero values mean "no filter".
type TitleFilter struct {
	Name         string
	GenreSlug    string
	CategorySlug string
	Year         *int
}

// ratingSelect computes the average review score per title. AVG over zero
// rows is NULL, which scans into a nil Rating instead of erroring.
const ratingSelect = "titles.*, (SELECT AVG(reviews.score) FROM reviews WHERE reviews.title_id = titles.id) AS rating"

type TitleRepository interface {
	Create(ctx context.Context, title *models.Title) error
	Save(ctx context.Context, title *models.Title) error
	Delete(ctx context.Context, id uint) (int64, error)
	FindByID(ctx context.Context, id uint) (*models.Title, error)
	FindAll(ctx context.Context, filter TitleFilter, page, limit int) ([]models.Title, int64, error)
	ReplaceGenres(ctx context.Context, title *models.Title, genres []models.Genre) error
}

type titleRepository struct {
	db      *database.Database
	timeout time.Duration
}

func NewTitleRepository(db *database.Database) TitleRepository {
	return &titleRepository{
		db:      db,
		timeout: db.GetQueryTimeout(),
	}
}

func (r *titleRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *titleRepository) Create(ctx context.Context, title *models.Title) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Create(title).Error
}

func (r *titleRepository) Save(ctx context.Context, title *models.Title) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	// Associations are managed explicitly (ReplaceGenres, CategoryID), so
	// only the titles row itself is written here.
	return r.db.WithContext(ctx).Omit("Category", "Genres").Save(title).Error
}

func (r *titleRepository) Delete(ctx context.Context, id uint) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res := r.db.WithContext(ctx).Delete(&models.Title{}, id)
	return res.RowsAffected, res.Error
}

func (r *titleRepository) FindByID(ctx context.Context, id uint) (*models.Title, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var title models.Title
	err := r.db.WithContext(ctx).
		Select(ratingSelect).
		Preload("Category").
		Preload("Genres").
		Where("titles.id = ?", id).
		First(&title).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &title, nil
}

func (r *titleRepository) FindAll(ctx context.Context, filter TitleFilter, page, limit int) ([]models.Title, int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var titles []models.Title
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Title{})

	if filter.Name != "" {
		query = query.Where("LOWER(titles.name) LIKE LOWER(?)", "%"+filter.Name+"%")
	}
	if filter.GenreSlug != "" {
		query = query.
			Joins("JOIN title_genres ON title_genres.title_id = titles.id").
			Joins("JOIN genres ON genres.id = title_genres.genre_id").
			Where("genres.slug = ?", filter.GenreSlug)
	}
	if filter.CategorySlug != "" {
		query = query.
			Joins("JOIN categories ON categories.id = titles.category_id").
			Where("categories.slug = ?", filter.CategorySlug)
	}
	if filter.Year != nil {
		query = query.Where("titles.year = ?", *filter.Year)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.
		Select(ratingSelect).
		Preload("Category").
		Preload("Genres").
		Order("titles.name").
		Offset(offset).
		Limit(limit).
		Find(&titles).Error
	if err != nil {
		return nil, 0, err
	}

	return titles, total, nil
}

func (r *titleRepository) ReplaceGenres(ctx context.Context, title *models.Title, genres []models.Genre) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Model(title).Association("Genres").Replace(genres)
}
