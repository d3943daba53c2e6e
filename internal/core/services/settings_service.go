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
)

// SettingsService manages per-user notification settings.
type SettingsService struct {
	BaseService
	settingsRepo portsrepo.SettingsRepositoryFacade
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(settingsRepo portsrepo.SettingsRepositoryFacade) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

var _ portssvc.SettingsSvcFacade = (*SettingsService)(nil)

// GetSettings returns the stored settings, or the everything-on defaults for
// a user who never changed them. The defaults are not persisted on read.
func (s *SettingsService) GetSettings(ctx context.Context, userID string) (*domain.NotificationSettings, error) {
	settings, err := s.settingsRepo.FindSettings(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			defaults := domain.DefaultNotificationSettings(userID)
			return &defaults, nil
		}
		return nil, fmt.Errorf("failed to get notification settings: %w", err)
	}
	return settings, nil
}

// UpdateSettings applies the toggles present in the request on top of the
// current settings and stores the result.
func (s *SettingsService) UpdateSettings(ctx context.Context, userID string, req dto.UpdateNotificationSettingsRequest) (*domain.NotificationSettings, error) {
	current, err := s.GetSettings(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.BudgetAlerts != nil {
		current.BudgetAlerts = *req.BudgetAlerts
	}
	if req.BillReminders != nil {
		current.BillReminders = *req.BillReminders
	}
	if req.SavingsReminders != nil {
		current.SavingsReminders = *req.SavingsReminders
	}
	if req.LoanReminders != nil {
		current.LoanReminders = *req.LoanReminders
	}

	now := time.Now()
	current.UserID = userID
	if current.CreatedAt.IsZero() {
		current.CreatedAt = now
		current.CreatedBy = userID
	}
	current.LastUpdatedAt = now
	current.LastUpdatedBy = userID

	if err := s.settingsRepo.UpsertSettings(ctx, *current); err != nil {
		s.LogError(ctx, err, "failed to upsert notification settings", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to update notification settings: %w", err)
	}

	s.LogInfo(ctx, "notification settings updated", slog.String("user_id", userID))
	return current, nil
}
