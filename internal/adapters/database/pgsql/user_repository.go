package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/finpal/finpal-backend/internal/apperrors"
	"github.com/finpal/finpal-backend/internal/core/domain"
	portsrepo "github.com/finpal/finpal-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `user_id, name, username, password_hash, auth_provider, provider_user_id, email_verified, refresh_token_hash, refresh_token_expiry_time, created_at, created_by, last_updated_at, last_updated_by, deleted_at`

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(pool *pgxpool.Pool) *PgxUserRepository {
	return &PgxUserRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	var passwordHash, providerUserID, refreshTokenHash *string
	err := row.Scan(
		&u.UserID,
		&u.Name,
		&u.Username,
		&passwordHash,
		&u.AuthProvider,
		&providerUserID,
		&u.EmailVerified,
		&refreshTokenHash,
		&u.RefreshTokenExpiryTime,
		&u.CreatedAt,
		&u.CreatedBy,
		&u.LastUpdatedAt,
		&u.LastUpdatedBy,
		&u.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	if passwordHash != nil {
		u.PasswordHash = *passwordHash
	}
	if providerUserID != nil {
		u.ProviderUserID = *providerUserID
	}
	if refreshTokenHash != nil {
		u.RefreshTokenHash = *refreshTokenHash
	}
	return &u, nil
}

// nullIfEmpty maps optional string fields to NULL so partial unique indexes
// on provider_user_id behave.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		user.UserID,
		user.Name,
		user.Username,
		nullIfEmpty(user.PasswordHash),
		user.AuthProvider,
		nullIfEmpty(user.ProviderUserID),
		user.EmailVerified,
		nullIfEmpty(user.RefreshTokenHash),
		user.RefreshTokenExpiryTime,
		user.CreatedAt,
		user.CreatedBy,
		user.LastUpdatedAt,
		user.LastUpdatedBy,
		user.DeletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save user %s: %w", user.UserID, err)
	}
	return nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1 AND deleted_at IS NULL;`
	user, err := scanUser(r.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user %s not found: %w", userID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find user %s: %w", userID, err)
	}
	return user, nil
}

func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1 AND deleted_at IS NULL;`
	user, err := scanUser(r.Pool.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user %s not found: %w", username, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find user by username: %w", err)
	}
	return user, nil
}

func (r *PgxUserRepository) FindUserByProviderID(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE auth_provider = $1 AND provider_user_id = $2 AND deleted_at IS NULL;`
	user, err := scanUser(r.Pool.QueryRow(ctx, query, provider, providerUserID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user with %s ID %s not found: %w", provider, providerUserID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find user by provider ID: %w", err)
	}
	return user, nil
}

func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	query := `
		UPDATE users
		SET name = $2, last_updated_at = $3, last_updated_by = $4
		WHERE user_id = $1 AND deleted_at IS NULL;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		user.UserID,
		user.Name,
		user.LastUpdatedAt,
		user.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update user %s: %w", user.UserID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user %s not found for update: %w", user.UserID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxUserRepository) UpdateRefreshToken(ctx context.Context, userID string, tokenHash string, expiry *time.Time) error {
	query := `
		UPDATE users
		SET refresh_token_hash = $2, refresh_token_expiry_time = $3, last_updated_at = NOW()
		WHERE user_id = $1 AND deleted_at IS NULL;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, userID, nullIfEmpty(tokenHash), expiry)
	if err != nil {
		return fmt.Errorf("failed to update refresh token for user %s: %w", userID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user %s not found for refresh token update: %w", userID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxUserRepository) DeleteUser(ctx context.Context, userID string, deletedBy string) error {
	query := `
		UPDATE users
		SET deleted_at = NOW(), last_updated_at = NOW(), last_updated_by = $2
		WHERE user_id = $1 AND deleted_at IS NULL;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, userID, deletedBy)
	if err != nil {
		return fmt.Errorf("failed to delete user %s: %w", userID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user %s not found for deletion: %w", userID, apperrors.ErrNotFound)
	}
	return nil
}
