package services

import (
	"context"
	"fmt"

	"review-backend/internal/config"
	"review-backend/internal/models"
	"review-backend/internal/repository"

	"github.com/sirupsen/logrus"
)

// TitleInput is the write representation: category and genres arrive as slug
// identifiers, unlike the read representation which nests the full objects.
type TitleInput struct {
	Name        *string
	Year        *int
	Description *string
	Category    *string
	Genres      *[]string
}

type TitleService interface {
	List(ctx context.Context, filter repository.TitleFilter, page, limit int) ([]models.Title, int64, error)
	Get(ctx context.Context, id uint) (*models.Title, error)
	Create(ctx context.Context, input TitleInput) (*models.Title, error)
	Update(ctx context.Context, id uint, input TitleInput) (*models.Title, error)
	Delete(ctx context.Context, id uint) error
}

type titleService struct {
	titles       repository.TitleRepository
	categories   repository.CategoryRepository
	genres       repository.GenreRepository
	maxYearAhead int
	logger       *logrus.Logger
}

func NewTitleService(
	titles repository.TitleRepository,
	categories repository.CategoryRepository,
	genres repository.GenreRepository,
	cfg config.CatalogConfig,
	logger *logrus.Logger,
) TitleService {
	return &titleService{
		titles:       titles,
		categories:   categories,
		genres:       genres,
		maxYearAhead: cfg.MaxYearAhead,
		logger:       logger,
	}
}

func (s *titleService) List(ctx context.Context, filter repository.TitleFilter, page, limit int) ([]models.Title, int64, error) {
	return s.titles.FindAll(ctx, filter, page, limit)
}

func (s *titleService) Get(ctx context.Context, id uint) (*models.Title, error) {
	title, err := s.titles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if title == nil {
		return nil, ErrNotFound
	}
	return title, nil
}

func (s *titleService) Create(ctx context.Context, input TitleInput) (*models.Title, error) {
	if input.Name == nil || *input.Name == "" {
		return nil, NewValidationError("name", "name is required")
	}
	if input.Year == nil {
		return nil, NewValidationError("year", "year is required")
	}

	title := &models.Title{}
	if err := s.applyInput(ctx, title, input); err != nil {
		return nil, err
	}

	genres, err := s.resolveGenres(ctx, input.Genres)
	if err != nil {
		return nil, err
	}
	title.Genres = genres

	if err := s.titles.Create(ctx, title); err != nil {
		return nil, fmt.Errorf("failed to create title: %w", err)
	}

	return s.Get(ctx, title.ID)
}

func (s *titleService) Update(ctx context.Context, id uint, input TitleInput) (*models.Title, error) {
	title, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.applyInput(ctx, title, input); err != nil {
		return nil, err
	}

	title.Category = nil
	title.Genres = nil
	if err := s.titles.Save(ctx, title); err != nil {
		return nil, fmt.Errorf("failed to update title: %w", err)
	}

	if input.Genres != nil {
		genres, err := s.resolveGenres(ctx, input.Genres)
		if err != nil {
			return nil, err
		}
		if err := s.titles.ReplaceGenres(ctx, title, genres); err != nil {
			return nil, fmt.Errorf("failed to update title genres: %w", err)
		}
	}

	return s.Get(ctx, id)
}

func (s *titleService) Delete(ctx context.Context, id uint) error {
	rows, err := s.titles.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete title: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *titleService) applyInput(ctx context.Context, title *models.Title, input TitleInput) error {
	if input.Name != nil {
		if len(*input.Name) > 256 {
			return NewValidationError("name", "name must be at most 256 characters")
		}
		title.Name = *input.Name
	}
	if input.Year != nil {
		if err := validateYear(*input.Year, s.maxYearAhead); err != nil {
			return err
		}
		title.Year = *input.Year
	}
	if input.Description != nil {
		if len(*input.Description) > 200 {
			return NewValidationError("description", "description must be at most 200 characters")
		}
		title.Description = *input.Description
	}
	if input.Category != nil {
		if *input.Category == "" {
			title.CategoryID = nil
		} else {
			category, err := s.categories.FindBySlug(ctx, *input.Category)
			if err != nil {
				return fmt.Errorf("failed to look up category: %w", err)
			}
			if category == nil {
				return NewValidationError("category", "unknown category slug")
			}
			title.CategoryID = &category.ID
		}
	}
	return nil
}

func (s *titleService) resolveGenres(ctx context.Context, slugs *[]string) ([]models.Genre, error) {
	if slugs == nil || len(*slugs) == 0 {
		return nil, nil
	}
	genres, err := s.genres.FindBySlugs(ctx, *slugs)
	if err != nil {
		return nil, fmt.Errorf("failed to look up genres: %w", err)
	}
	if len(genres) != len(*slugs) {
		return nil, NewValidationError("genre", "unknown genre slug")
	}
	return genres, nil
}
