package services

import (
	"context"
	"fmt"

	"review-backend/internal/models"
	"review-backend/internal/repository"

	"github.com/sirupsen/logrus"
)

// CatalogService manages the two flat classification entities, categories
// and genres. Both expose the same list/create/delete surface.
type CatalogService interface {
	ListCategories(ctx context.Context, page, limit int, search string) ([]models.Category, int64, error)
	CreateCategory(ctx context.Context, name, slug string) (*models.Category, error)
	DeleteCategory(ctx context.Context, slug string) error

	ListGenres(ctx context.Context, page, limit int, search string) ([]models.Genre, int64, error)
	CreateGenre(ctx context.Context, name, slug string) (*models.Genre, error)
	DeleteGenre(ctx context.Context, slug string) error
}

type catalogService struct {
	categories repository.CategoryRepository
	genres     repository.GenreRepository
	logger     *logrus.Logger
}

func NewCatalogService(categories repository.CategoryRepository, genres repository.GenreRepository, logger *logrus.Logger) CatalogService {
	return &catalogService{
		categories: categories,
		genres:     genres,
		logger:     logger,
	}
}

func (s *catalogService) ListCategories(ctx context.Context, page, limit int, search string) ([]models.Category, int64, error) {
	return s.categories.FindAll(ctx, page, limit, search)
}

func (s *catalogService) CreateCategory(ctx context.Context, name, slug string) (*models.Category, error) {
	if err := validateClassification(name, slug); err != nil {
		return nil, err
	}

	category := &models.Category{Name: name, Slug: slug}
	if err := s.categories.Create(ctx, category); err != nil {
		if field, ok := uniqueViolationField(err); ok {
			return nil, &ConflictError{Field: field}
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

// DeleteCategory relies on the storage layer to null out the category on
// titles that referenced it.
func (s *catalogService) DeleteCategory(ctx context.Context, slug string) error {
	rows, err := s.categories.DeleteBySlug(ctx, slug)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *catalogService) ListGenres(ctx context.Context, page, limit int, search string) ([]models.Genre, int64, error) {
	return s.genres.FindAll(ctx, page, limit, search)
}

func (s *catalogService) CreateGenre(ctx context.Context, name, slug string) (*models.Genre, error) {
	if err := validateClassification(name, slug); err != nil {
		return nil, err
	}

	genre := &models.Genre{Name: name, Slug: slug}
	if err := s.genres.Create(ctx, genre); err != nil {
		if field, ok := uniqueViolationField(err); ok {
			return nil, &ConflictError{Field: field}
		}
		return nil, fmt.Errorf("failed to create genre: %w", err)
	}
	return genre, nil
}

// DeleteGenre removes only the genre and its title links; titles survive.
func (s *catalogService) DeleteGenre(ctx context.Context, slug string) error {
	rows, err := s.genres.DeleteBySlug(ctx, slug)
	if err != nil {
		return fmt.Errorf("failed to delete genre: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func validateClassification(name, slug string) error {
	if name == "" {
		return NewValidationError("name", "name is required")
	}
	if len(name) > 150 {
		return NewValidationError("name", "name must be at most 150 characters")
	}
	return validateSlug(slug)
}
