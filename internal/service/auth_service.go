// Package service implements the domain rules on top of the repositories.
package service

import (
	"context"

	"warbler/internal/models"
	"warbler/internal/observability"
	"warbler/internal/repository"
	"warbler/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// AuthService handles signup and credential verification.
type AuthService struct {
	users repository.UserRepository
}

// SignupInput carries the fields of a signup request.
type SignupInput struct {
	Username string
	Email    string
	Password string
	ImageURL string
}

// NewAuthService returns a new AuthService.
func NewAuthService(users repository.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// Signup validates the input, hashes the password and persists the user.
// Validation failures are raised before any store interaction; a duplicate
// username or email surfaces as an integrity error from the insert itself.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	imageURL := in.ImageURL
	if imageURL == "" {
		imageURL = models.DefaultImageURL
	}

	user := &models.User{
		Username:       in.Username,
		Email:          in.Email,
		Password:       string(hashed),
		ImageURL:       imageURL,
		HeaderImageURL: models.DefaultHeaderImageURL,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate looks the user up by exact username and verifies the password
// against the stored hash. A failed match returns (nil, nil): authentication
// failure is a normal outcome, deliberately distinct from validation errors.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		observability.AuthFailures.WithLabelValues("unknown_username").Inc()
		return nil, nil
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		observability.AuthFailures.WithLabelValues("bad_password").Inc()
		return nil, nil
	}
	return user, nil
}

// VerifyPassword checks a plaintext password against a user's stored hash.
func (s *AuthService) VerifyPassword(user *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) == nil
}
