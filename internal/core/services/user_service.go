package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/finpal/finpal-backend/internal/apperrors"
	"github.com/finpal/finpal-backend/internal/core/domain"
	portsrepo "github.com/finpal/finpal-backend/internal/core/ports/repositories"
	portssvc "github.com/finpal/finpal-backend/internal/core/ports/services"
	"github.com/finpal/finpal-backend/internal/dto"
	"github.com/finpal/finpal-backend/internal/utils"
	"github.com/google/uuid"
)

// UserService implements user account operations.
type UserService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) *UserService {
	return &UserService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*UserService)(nil)

func (s *UserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", userID, err)
	}
	return user, nil
}

func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return user, nil
}

func (s *UserService) CreateUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	existing, err := s.userRepo.FindUserByUsername(ctx, req.Username)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username availability: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: username %s is taken", apperrors.ErrDuplicate, req.Username)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	userID := uuid.NewString()
	user := domain.User{
		UserID:       userID,
		Name:         req.Name,
		Username:     req.Username,
		PasswordHash: hash,
		AuthProvider: domain.ProviderLocal,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "failed to save user", slog.String("username", req.Username))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.LogInfo(ctx, "user registered", slog.String("user_id", user.UserID))
	return &user, nil
}

// CreateOAuthUser finds the user tied to an external identity, creating one
// on first login. The username is the verified email address.
func (s *UserService) CreateOAuthUser(ctx context.Context, name, email, provider, providerUserID string, emailVerified bool) (*domain.User, error) {
	existing, err := s.userRepo.FindUserByProviderID(ctx, domain.AuthProvider(provider), providerUserID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up OAuth user: %w", err)
	}

	now := time.Now()
	userID := uuid.NewString()
	user := domain.User{
		UserID:         userID,
		Name:           name,
		Username:       email,
		AuthProvider:   domain.AuthProvider(provider),
		ProviderUserID: providerUserID,
		EmailVerified:  emailVerified,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "failed to save OAuth user", slog.String("provider", provider))
		return nil, fmt.Errorf("failed to create OAuth user: %w", err)
	}

	s.LogInfo(ctx, "OAuth user registered",
		slog.String("user_id", user.UserID),
		slog.String("provider", provider))
	return &user, nil
}

func (s *UserService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user %s for update: %w", userID, err)
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	user.LastUpdatedAt = time.Now()
	user.LastUpdatedBy = userID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "failed to update user", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to update user %s: %w", userID, err)
	}
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, userID string) error {
	if err := s.userRepo.DeleteUser(ctx, userID, userID); err != nil {
		return fmt.Errorf("failed to delete user %s: %w", userID, err)
	}
	s.LogInfo(ctx, "user deleted", slog.String("user_id", userID))
	return nil
}

func (s *UserService) StoreRefreshToken(ctx context.Context, userID string, tokenHash string, expiry time.Time) error {
	if err := s.userRepo.UpdateRefreshToken(ctx, userID, tokenHash, &expiry); err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

func (s *UserService) ClearRefreshToken(ctx context.Context, userID string) error {
	if err := s.userRepo.UpdateRefreshToken(ctx, userID, "", nil); err != nil {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	return nil
}
