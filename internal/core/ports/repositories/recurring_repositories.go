package repositories

import (
	"context"

	"github.com/finpal/finpal-backend/internal/core/domain"
)

// RecurringReader defines read operations for recurring templates.
type RecurringReader interface {
	// FindRecurringByID retrieves a template owned by the user.
	FindRecurringByID(ctx context.Context, userID string, recurringID string) (*domain.RecurringTransaction, error)

	// ListRecurring retrieves all of the user's templates.
	ListRecurring(ctx context.Context, userID string) ([]domain.RecurringTransaction, error)
}

// RecurringWriter defines write operations for recurring templates.
type RecurringWriter interface {
	// SaveRecurring persists a new template.
	SaveRecurring(ctx context.Context, rt domain.RecurringTransaction) error

	// DeleteRecurring removes a template owned by the user.
	DeleteRecurring(ctx context.Context, userID string, recurringID string) error

	// ApplyRollforward persists one processor run atomically: the materialized
	// ledger entries are inserted and the advanced next-due dates written in a
	// single database transaction, or not at all.
	ApplyRollforward(ctx context.Context, materialized []domain.Transaction, updated []domain.RecurringTransaction) error
}

// RecurringRepositoryFacade combines all recurring-template repository interfaces.
type RecurringRepositoryFacade interface {
	RecurringReader
	RecurringWriter
}

// RecurringRepositoryWithTx extends the facade with transaction capabilities.
type RecurringRepositoryWithTx interface {
	RecurringRepositoryFacade
	TransactionManager
}
