package repositories

import (
	"context"

	"github.com/finpal/finpal-backend/internal/core/domain"
)

// BudgetReader defines read operations for budget data.
type BudgetReader interface {
	// FindBudgetByCategory retrieves the user's budget for one category.
	FindBudgetByCategory(ctx context.Context, userID string, category string) (*domain.Budget, error)

	// ListBudgets retrieves all of the user's budgets.
	ListBudgets(ctx context.Context, userID string) ([]domain.Budget, error)
}

// BudgetWriter defines write operations for budget data.
type BudgetWriter interface {
	// UpsertBudget creates or replaces the budget for (userID, category).
	UpsertBudget(ctx context.Context, budget domain.Budget) error

	// DeleteBudget removes the user's budget for a category.
	DeleteBudget(ctx context.Context, userID string, category string) error
}

// BudgetRepositoryFacade combines all budget repository interfaces.
type BudgetRepositoryFacade interface {
	BudgetReader
	BudgetWriter
}
