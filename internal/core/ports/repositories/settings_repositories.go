package repositories

import (
	"context"

	"github.com/finpal/finpal-backend/internal/core/domain"
)

// SettingsRepositoryFacade persists per-user notification settings.
type SettingsRepositoryFacade interface {
	// FindSettings retrieves the user's notification settings.
	FindSettings(ctx context.Context, userID string) (*domain.NotificationSettings, error)

	// UpsertSettings creates or replaces the user's notification settings.
	UpsertSettings(ctx context.Context, settings domain.NotificationSettings) error
}
