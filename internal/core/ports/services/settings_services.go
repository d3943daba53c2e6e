package services

import (
	"context"

	"github.com/finpal/finpal-backend/internal/core/domain"
	"github.com/finpal/finpal-backend/internal/dto"
)

// SettingsSvcFacade manages per-user notification settings.
type SettingsSvcFacade interface {
	// GetSettings retrieves the user's settings, falling back to the
	// everything-on defaults when none are stored yet.
	GetSettings(ctx context.Context, userID string) (*domain.NotificationSettings, error)

	// UpdateSettings replaces the user's settings.
	UpdateSettings(ctx context.Context, userID string, req dto.UpdateNotificationSettingsRequest) (*domain.NotificationSettings, error)
}
