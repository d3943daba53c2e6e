package pgsql

import (
	"context"
	"fmt"

	"github.com/finpal/finpal-backend/internal/core/domain"
	portsrepo "github.com/finpal/finpal-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxNotificationRepository struct {
	BaseRepository
}

// newPgxNotificationRepository creates a new repository for the notification feed.
func newPgxNotificationRepository(pool *pgxpool.Pool) *PgxNotificationRepository {
	return &PgxNotificationRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.NotificationRepositoryFacade = (*PgxNotificationRepository)(nil)

func (r *PgxNotificationRepository) SaveNotification(ctx context.Context, notification domain.Notification) error {
	query := `
		INSERT INTO notifications (notification_id, user_id, dedup_key, title, body, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query,
		notification.NotificationID,
		notification.UserID,
		notification.DedupKey,
		notification.Title,
		notification.Body,
		notification.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save notification %s: %w", notification.NotificationID, err)
	}
	return nil
}

func (r *PgxNotificationRepository) ListNotifications(ctx context.Context, userID string, limit int) ([]domain.Notification, error) {
	query := `
		SELECT notification_id, user_id, dedup_key, title, body, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2;
	`
	rows, err := r.Pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	feed, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Notification, error) {
		var n domain.Notification
		err := row.Scan(&n.NotificationID, &n.UserID, &n.DedupKey, &n.Title, &n.Body, &n.CreatedAt)
		return n, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan notifications: %w", err)
	}
	return feed, nil
}
