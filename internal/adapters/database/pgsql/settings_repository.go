package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/finpal/finpal-backend/internal/apperrors"
	"github.com/finpal/finpal-backend/internal/core/domain"
	portsrepo "github.com/finpal/finpal-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSettingsRepository struct {
	BaseRepository
}

// newPgxSettingsRepository creates a new repository for notification settings.
func newPgxSettingsRepository(pool *pgxpool.Pool) *PgxSettingsRepository {
	return &PgxSettingsRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.SettingsRepositoryFacade = (*PgxSettingsRepository)(nil)

func (r *PgxSettingsRepository) FindSettings(ctx context.Context, userID string) (*domain.NotificationSettings, error) {
	query := `
		SELECT user_id, budget_alerts, bill_reminders, savings_reminders, loan_reminders,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM notification_settings
		WHERE user_id = $1;
	`
	var s domain.NotificationSettings
	err := r.Pool.QueryRow(ctx, query, userID).Scan(
		&s.UserID,
		&s.BudgetAlerts,
		&s.BillReminders,
		&s.SavingsReminders,
		&s.LoanReminders,
		&s.CreatedAt,
		&s.CreatedBy,
		&s.LastUpdatedAt,
		&s.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find notification settings: %w", err)
	}
	return &s, nil
}

func (r *PgxSettingsRepository) UpsertSettings(ctx context.Context, settings domain.NotificationSettings) error {
	query := `
		INSERT INTO notification_settings (user_id, budget_alerts, bill_reminders, savings_reminders, loan_reminders,
		                                   created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id) DO UPDATE SET
			budget_alerts = EXCLUDED.budget_alerts,
			bill_reminders = EXCLUDED.bill_reminders,
			savings_reminders = EXCLUDED.savings_reminders,
			loan_reminders = EXCLUDED.loan_reminders,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		settings.UserID,
		settings.BudgetAlerts,
		settings.BillReminders,
		settings.SavingsReminders,
		settings.LoanReminders,
		settings.CreatedAt,
		settings.CreatedBy,
		settings.LastUpdatedAt,
		settings.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert notification settings: %w", err)
	}
	return nil
}
