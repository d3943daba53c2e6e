package services

import (
	"context"
	"time"

	"github.com/finpal/finpal-backend/internal/core/domain"
)

// Clock supplies "today" to the recurring processor and the notification
// evaluator. Neither core reads the wall clock directly, which keeps their
// date arithmetic deterministic under test.
type Clock interface {
	Now() time.Time
}

// NotificationDispatcher is the delivery sink for notification events. The
// evaluator decides what fires and whether; presentation (OS notification,
// push, in-app toast) and its permission gating belong to the dispatcher.
type NotificationDispatcher interface {
	Dispatch(ctx context.Context, userID string, event domain.NotificationEvent) error
}

// SentNotificationStore is the session-scoped dedup set: one opaque key per
// condition instance that has already been delivered. It is cleared at
// session boundaries (login, process restart) and never persisted long-term.
type SentNotificationStore interface {
	// AlreadySent reports whether the key has fired this session.
	AlreadySent(userID string, key string) bool

	// MarkSent records the key for the rest of the session.
	MarkSent(userID string, key string)

	// Reset clears the user's session keys.
	Reset(userID string)
}
