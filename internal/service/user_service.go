package service

import (
	"context"

	"warbler/internal/models"
	"warbler/internal/repository"
)

// UserService handles profile reads and edits.
type UserService struct {
	users repository.UserRepository
}

// UpdateProfileInput carries the editable profile fields.
type UpdateProfileInput struct {
	UserID         uint
	Username       string
	Email          string
	ImageURL       string
	HeaderImageURL string
	Bio            string
	Location       string
}

// NewUserService returns a new UserService.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// ListUsers returns users ordered by username, optionally filtered by a
// username substring. An empty query matches everyone.
func (s *UserService) ListUsers(ctx context.Context, query string) ([]models.User, error) {
	return s.users.List(ctx, query, 0, 0)
}

// GetUserByID returns a user or a not-found error.
func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

// UpdateProfile applies non-empty fields from in to the stored user.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.users.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	const maxBioLen = 500

	if in.Username != "" {
		user.Username = in.Username
	}
	if in.Email != "" {
		user.Email = in.Email
	}
	if in.ImageURL != "" {
		user.ImageURL = in.ImageURL
	}
	if in.HeaderImageURL != "" {
		user.HeaderImageURL = in.HeaderImageURL
	}
	if in.Bio != "" {
		if len(in.Bio) > maxBioLen {
			return nil, models.NewValidationError("Bio too long (max 500 characters)")
		}
		user.Bio = in.Bio
	}
	if in.Location != "" {
		user.Location = in.Location
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// DeleteAccount removes the user and cascades to everything they own.
func (s *UserService) DeleteAccount(ctx context.Context, userID uint) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return err
	}
	return s.users.Delete(ctx, userID)
}
