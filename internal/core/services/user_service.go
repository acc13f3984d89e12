package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/slimatic/zakapp-sub006/internal/apperrors"
	"github.com/slimatic/zakapp-sub006/internal/core/domain"
	portsrepo "github.com/slimatic/zakapp-sub006/internal/core/ports/repositories"
	portssvc "github.com/slimatic/zakapp-sub006/internal/core/ports/services"
	"github.com/slimatic/zakapp-sub006/internal/dto"
	"github.com/slimatic/zakapp-sub006/internal/utils"
)

// ErrInvalidCredentials is returned when a login attempt fails. It does not
// reveal whether the username or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid username or password")

// userService covers registration, credential verification and lookup.
type userService struct {
	userRepo        portsrepo.UserRepository
	defaultCurrency string
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepository, defaultCurrency string) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo, defaultCurrency: defaultCurrency}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// RegisterUser creates a new user with a bcrypt-hashed password.
func (s *userService) RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	existing, err := s.userRepo.FindUserByUsername(ctx, req.Username)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username availability: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: username '%s' is taken", apperrors.ErrDuplicate, req.Username)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	newUserID := uuid.NewString()
	currency := req.DefaultCurrency
	if currency == "" {
		currency = s.defaultCurrency
	}

	user := domain.User{
		UserID:          newUserID,
		Username:        req.Username,
		Name:            req.Name,
		PasswordHash:    hash,
		DefaultCurrency: currency,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     newUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: newUserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// AuthenticateUser verifies credentials and returns the user on success.
func (s *userService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user for authentication: %w", err)
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetUserByID retrieves a user by ID.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}
