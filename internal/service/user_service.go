// Package service provides business logic services for Coursebook.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/prn-tf/coursebook/internal/domain"
	"github.com/prn-tf/coursebook/internal/repository"
)

// UserService handles user registration and credential verification.
type UserService struct {
	userRepo repository.UserRepository
	logger   zerolog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger.With().Str("service", "user").Logger(),
	}
}

// CreateUserInput contains the data needed to register a new user.
// Field-shape validation happens at the transport boundary; by the time
// input reaches here the fields are present and non-blank.
type CreateUserInput struct {
	FirstName    string
	LastName     string
	EmailAddress string
	Password     string
}

// CreateUserOutput contains the result of registering a user.
type CreateUserOutput struct {
	User *domain.User
}

// Create registers a new user account. The password is hashed before the
// single insert, so no row ever exists with a plaintext or missing hash.
// A duplicate email surfaces as a *domain.ValidationError.
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*CreateUserOutput, error) {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to hash password")
		return nil, fmt.Errorf("%w: failed to hash password", ErrInternalError)
	}

	user := domain.NewUser(input.FirstName, input.LastName, input.EmailAddress, string(passwordHash))

	if err := s.userRepo.Create(ctx, user); err != nil {
		if _, ok := domain.AsValidationError(err); ok {
			return nil, err
		}
		s.logger.Error().Err(err).Str("email", input.EmailAddress).Msg("failed to create user")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().
		Int64("user_id", user.ID).
		Str("email", user.EmailAddress).
		Msg("user created")

	return &CreateUserOutput{User: user}, nil
}

// Verify checks a basic-auth credential pair against the stored account.
// An unknown email and a wrong password both return
// domain.ErrInvalidCredentials so callers cannot probe for accounts.
func (s *UserService) Verify(ctx context.Context, emailAddress, password string) (*domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, emailAddress)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.logger.Debug().Str("email", emailAddress).Msg("user not found during authentication")
			return nil, domain.ErrInvalidCredentials
		}
		s.logger.Error().Err(err).Str("email", emailAddress).Msg("failed to look up user")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Debug().Str("email", emailAddress).Msg("invalid password during authentication")
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}

// GetByID retrieves a user by ID.
func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		s.logger.Error().Err(err).Int64("user_id", id).Msg("failed to get user")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return user, nil
}
