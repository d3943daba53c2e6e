package services

import (
	"context"

	"github.com/finpal/finpal-backend/internal/core/domain"
	"github.com/finpal/finpal-backend/internal/dto"
)

// BudgetReaderSvc defines read operations for budgets.
type BudgetReaderSvc interface {
	// ListBudgetStatuses retrieves all budgets with their derived spend.
	ListBudgetStatuses(ctx context.Context, userID string) ([]domain.BudgetStatus, error)
}

// BudgetWriterSvc defines write operations for budgets.
type BudgetWriterSvc interface {
	// UpsertBudget creates or replaces the budget for a category.
	UpsertBudget(ctx context.Context, userID string, req dto.UpsertBudgetRequest) (*domain.Budget, error)

	// DeleteBudget removes the user's budget for a category.
	DeleteBudget(ctx context.Context, userID string, category string) error
}

// BudgetSvcFacade combines all budget service interfaces.
type BudgetSvcFacade interface {
	BudgetReaderSvc
	BudgetWriterSvc
}
