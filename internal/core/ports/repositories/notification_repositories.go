package repositories

import (
	"context"

	"github.com/finpal/finpal-backend/internal/core/domain"
)

// NotificationRepositoryFacade persists the per-user notification feed.
type NotificationRepositoryFacade interface {
	// SaveNotification appends a delivered event to the user's feed.
	SaveNotification(ctx context.Context, notification domain.Notification) error

	// ListNotifications retrieves the user's feed, newest first.
	ListNotifications(ctx context.Context, userID string, limit int) ([]domain.Notification, error)
}
