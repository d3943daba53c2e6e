package pgsql

import (
	portsrepo "github.com/finpal/finpal-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider creates all pgx-backed repositories and returns them
// bundled for the service container.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TransactionRepo:  newPgxTransactionRepository(dbPool),
		RecurringRepo:    newPgxRecurringRepository(dbPool),
		BudgetRepo:       newPgxBudgetRepository(dbPool),
		SavingsGoalRepo:  newPgxSavingsGoalRepository(dbPool),
		LoanRepo:         newPgxLoanRepository(dbPool),
		SettingsRepo:     newPgxSettingsRepository(dbPool),
		NotificationRepo: newPgxNotificationRepository(dbPool),
		UserRepo:         newPgxUserRepository(dbPool),
	}
}
