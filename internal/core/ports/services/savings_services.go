package services

import (
	"context"

	"github.com/finpal/finpal-backend/internal/core/domain"
	"github.com/finpal/finpal-backend/internal/dto"
)

// SavingsGoalReaderSvc defines read operations for savings goals.
type SavingsGoalReaderSvc interface {
	// ListGoals retrieves all of the user's goals.
	ListGoals(ctx context.Context, userID string) ([]domain.SavingsGoal, error)
}

// SavingsGoalWriterSvc defines write operations for savings goals.
type SavingsGoalWriterSvc interface {
	// CreateGoal persists a new goal with a zero current amount.
	CreateGoal(ctx context.Context, userID string, req dto.CreateSavingsGoalRequest) (*domain.SavingsGoal, error)

	// AddFunds deposits into a goal, clamped so the current amount never
	// exceeds the target.
	AddFunds(ctx context.Context, userID string, goalID string, req dto.AddFundsRequest) (*domain.SavingsGoal, error)

	// DeleteGoal removes a goal owned by the user.
	DeleteGoal(ctx context.Context, userID string, goalID string) error
}

// SavingsGoalSvcFacade combines all savings-goal service interfaces.
type SavingsGoalSvcFacade interface {
	SavingsGoalReaderSvc
	SavingsGoalWriterSvc
}
