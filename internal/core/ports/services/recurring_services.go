package services

import (
	"context"

	"github.com/finpal/finpal-backend/internal/core/domain"
	"github.com/finpal/finpal-backend/internal/dto"
)

// RecurringReaderSvc defines read operations for recurring templates.
type RecurringReaderSvc interface {
	// ListRecurring retrieves all of the user's templates.
	ListRecurring(ctx context.Context, userID string) ([]domain.RecurringTransaction, error)
}

// RecurringWriterSvc defines write operations for recurring templates.
type RecurringWriterSvc interface {
	// CreateRecurring persists a new template with NextDueDate = StartDate.
	CreateRecurring(ctx context.Context, userID string, req dto.CreateRecurringRequest) (*domain.RecurringTransaction, error)

	// DeleteRecurring removes a template owned by the user.
	DeleteRecurring(ctx context.Context, userID string, recurringID string) error
}

// RecurringProcessorSvc runs the due-date rollforward.
type RecurringProcessorSvc interface {
	// ProcessDue materializes a ledger entry for every template whose next
	// due date has been reached and advances each by one period. The
	// materialized entries and updated templates are committed atomically
	// before the call returns. Callers must not invoke it concurrently for
	// the same user.
	ProcessDue(ctx context.Context, userID string) (*domain.RollforwardResult, error)
}

// RecurringSvcFacade combines all recurring-template service interfaces.
type RecurringSvcFacade interface {
	RecurringReaderSvc
	RecurringWriterSvc
	RecurringProcessorSvc
}
