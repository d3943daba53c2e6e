package services

import (
	"context"
	"time"

	"github.com/finpal/finpal-backend/internal/core/domain"
	"github.com/finpal/finpal-backend/internal/dto"
)

// UserReaderSvc defines read operations for user data.
type UserReaderSvc interface {
	// GetUserByID retrieves a user by their ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetUserByUsername retrieves a user by their login name.
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
}

// UserWriterSvc defines write operations for user data.
type UserWriterSvc interface {
	// CreateUser registers a new local user with a bcrypt-hashed password.
	CreateUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)

	// CreateOAuthUser finds or creates a user for an external identity.
	CreateOAuthUser(ctx context.Context, name, email, provider, providerUserID string, emailVerified bool) (*domain.User, error)

	// UpdateUser updates the user's mutable profile fields.
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error)

	// DeleteUser soft-deletes the user's account.
	DeleteUser(ctx context.Context, userID string) error

	// StoreRefreshToken persists the hash of an issued refresh token.
	StoreRefreshToken(ctx context.Context, userID string, tokenHash string, expiry time.Time) error

	// ClearRefreshToken invalidates the stored refresh token.
	ClearRefreshToken(ctx context.Context, userID string) error
}

// UserSvcFacade combines all user service interfaces.
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
}
