package repositories

import (
	"context"
	"time"

	"github.com/finpal/finpal-backend/internal/core/domain"
)

// UserReader defines read operations for user data.
type UserReader interface {
	// FindUserByID retrieves a user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByUsername retrieves a user by their login name.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindUserByProviderID retrieves a user by auth provider and external ID.
	FindUserByProviderID(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error)
}

// UserWriter defines write operations for user data.
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser updates a user's mutable profile fields.
	UpdateUser(ctx context.Context, user domain.User) error

	// UpdateRefreshToken stores the hashed refresh token and its expiry.
	// Passing an empty hash clears the stored token.
	UpdateRefreshToken(ctx context.Context, userID string, tokenHash string, expiry *time.Time) error

	// DeleteUser soft-deletes a user.
	DeleteUser(ctx context.Context, userID string, deletedBy string) error
}

// UserRepositoryFacade combines all user repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
