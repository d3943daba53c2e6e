package repositories

import (
	"context"

	"github.com/finpal/finpal-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SavingsGoalReader defines read operations for savings goals.
type SavingsGoalReader interface {
	// FindGoalByID retrieves a goal owned by the user.
	FindGoalByID(ctx context.Context, userID string, goalID string) (*domain.SavingsGoal, error)

	// ListGoals retrieves all of the user's goals.
	ListGoals(ctx context.Context, userID string) ([]domain.SavingsGoal, error)
}

// SavingsGoalWriter defines write operations for savings goals.
type SavingsGoalWriter interface {
	// SaveGoal persists a new goal.
	SaveGoal(ctx context.Context, goal domain.SavingsGoal) error

	// UpdateCurrentAmount sets a goal's current amount.
	UpdateCurrentAmount(ctx context.Context, userID string, goalID string, amount decimal.Decimal, updatedBy string) error

	// DeleteGoal removes a goal owned by the user.
	DeleteGoal(ctx context.Context, userID string, goalID string) error
}

// SavingsGoalRepositoryFacade combines all savings-goal repository interfaces.
type SavingsGoalRepositoryFacade interface {
	SavingsGoalReader
	SavingsGoalWriter
}
