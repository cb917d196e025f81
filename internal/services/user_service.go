package services

import (
	"context"
	"fmt"

	"review-backend/internal/models"
	"review-backend/internal/repository"

	"github.com/sirupsen/logrus"
)

// UserInput carries a full or partial user write; nil fields are left
// untouched on update.
type UserInput struct {
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
	Role      *string `json:"role"`
}

type UserService interface {
	List(ctx context.Context, page, limit int, search string) ([]models.User, int64, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, input UserInput) (*models.User, error)
	Update(ctx context.Context, username string, input UserInput) (*models.User, error)
	Delete(ctx context.Context, username string) error
	UpdateProfile(ctx context.Context, user *models.User, input UserInput) (*models.User, error)
}

type userService struct {
	users  repository.UserRepository
	logger *logrus.Logger
}

func NewUserService(users repository.UserRepository, logger *logrus.Logger) UserService {
	return &userService{users: users, logger: logger}
}

func (s *userService) List(ctx context.Context, page, limit int, search string) ([]models.User, int64, error) {
	return s.users.FindAll(ctx, page, limit, search)
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

func (s *userService) Create(ctx context.Context, input UserInput) (*models.User, error) {
	if input.Username == nil {
		return nil, NewValidationError("username", "username is required")
	}
	if input.Email == nil {
		return nil, NewValidationError("email", "email is required")
	}

	user := &models.User{Role: models.RoleUser}
	if err := applyUserInput(user, input, true); err != nil {
		return nil, err
	}

	if err := s.users.Create(ctx, user); err != nil {
		if field, ok := uniqueViolationField(err); ok {
			return nil, &ConflictError{Field: field}
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, username string, input UserInput) (*models.User, error) {
	user, err := s.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.save(ctx, user, input, true)
}

func (s *userService) Delete(ctx context.Context, username string) error {
	rows, err := s.users.DeleteByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateProfile is the /users/me write path: identical to Update except the
// role field is pinned to its pre-request value no matter what the client
// submits.
func (s *userService) UpdateProfile(ctx context.Context, user *models.User, input UserInput) (*models.User, error) {
	return s.save(ctx, user, input, false)
}

func (s *userService) save(ctx context.Context, user *models.User, input UserInput, allowRole bool) (*models.User, error) {
	if err := applyUserInput(user, input, allowRole); err != nil {
		return nil, err
	}
	if err := s.users.Save(ctx, user); err != nil {
		if field, ok := uniqueViolationField(err); ok {
			return nil, &ConflictError{Field: field}
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func applyUserInput(user *models.User, input UserInput, allowRole bool) error {
	if input.Username != nil {
		if err := validateUsername(*input.Username); err != nil {
			return err
		}
		user.Username = *input.Username
	}
	if input.Email != nil {
		if err := validateEmail(*input.Email); err != nil {
			return err
		}
		user.Email = *input.Email
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if allowRole && input.Role != nil {
		if !models.ValidRole(*input.Role) {
			return NewValidationError("role", "role must be one of user, moderator, admin")
		}
		user.Role = *input.Role
	}
	return nil
}
