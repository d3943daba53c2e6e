// Package notify provides delivery sinks for notification events.
package notify

import (
	"context"
	"log/slog"

	"github.com/finpal/finpal-backend/internal/core/domain"
	portssvc "github.com/finpal/finpal-backend/internal/core/ports/services"
)

// SlogDispatcher delivers notification events to the structured log. The
// backend has no push channel of its own; clients read the persisted feed,
// and the log gives operators a delivery trail.
type SlogDispatcher struct {
	logger *slog.Logger
}

var _ portssvc.NotificationDispatcher = (*SlogDispatcher)(nil)

func NewSlogDispatcher(logger *slog.Logger) *SlogDispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogDispatcher{logger: logger}
}

func (d *SlogDispatcher) Dispatch(ctx context.Context, userID string, event domain.NotificationEvent) error {
	d.logger.InfoContext(ctx, "notification dispatched",
		slog.String("user_id", userID),
		slog.String("key", event.ID),
		slog.String("title", event.Title),
		slog.String("body", event.Body),
	)
	return nil
}
