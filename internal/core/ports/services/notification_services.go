package services

import (
	"context"

	"github.com/finpal/finpal-backend/internal/core/domain"
)

// NotificationEvaluatorSvc runs the notification checks.
type NotificationEvaluatorSvc interface {
	// CheckAll evaluates every enabled notification condition against the
	// user's current data and delivers the events whose dedup keys have not
	// fired this session. It returns the newly fired events.
	CheckAll(ctx context.Context, userID string) ([]domain.NotificationEvent, error)

	// ResetSession clears the user's dedup set, starting a new notification
	// session (called on login).
	ResetSession(userID string)
}

// NotificationFeedSvc reads the persisted notification feed.
type NotificationFeedSvc interface {
	// ListFeed retrieves the user's delivered notifications, newest first.
	ListFeed(ctx context.Context, userID string, limit int) ([]domain.Notification, error)
}

// NotificationSvcFacade combines all notification service interfaces.
type NotificationSvcFacade interface {
	NotificationEvaluatorSvc
	NotificationFeedSvc
}
