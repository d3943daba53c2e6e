package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/finpal/finpal-backend/internal/apperrors"
	"github.com/finpal/finpal-backend/internal/core/domain"
	portsrepo "github.com/finpal/finpal-backend/internal/core/ports/repositories"
	portssvc "github.com/finpal/finpal-backend/internal/core/ports/services"
	"github.com/finpal/finpal-backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SavingsGoalService implements savings goal operations.
type SavingsGoalService struct {
	BaseService
	goalRepo portsrepo.SavingsGoalRepositoryFacade
}

// NewSavingsGoalService creates a new SavingsGoalService.
func NewSavingsGoalService(goalRepo portsrepo.SavingsGoalRepositoryFacade) *SavingsGoalService {
	return &SavingsGoalService{goalRepo: goalRepo}
}

var _ portssvc.SavingsGoalSvcFacade = (*SavingsGoalService)(nil)

func (s *SavingsGoalService) CreateGoal(ctx context.Context, userID string, req dto.CreateSavingsGoalRequest) (*domain.SavingsGoal, error) {
	now := time.Now()
	goal := domain.SavingsGoal{
		GoalID:        uuid.NewString(),
		UserID:        userID,
		Name:          req.Name,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: decimal.Zero,
		Deadline:      domain.DateOnly(req.Deadline),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := goal.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	if err := s.goalRepo.SaveGoal(ctx, goal); err != nil {
		s.LogError(ctx, err, "failed to save savings goal", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to create savings goal: %w", err)
	}

	s.LogInfo(ctx, "savings goal created", slog.String("goal_id", goal.GoalID), slog.String("name", goal.Name))
	return &goal, nil
}

func (s *SavingsGoalService) ListGoals(ctx context.Context, userID string) ([]domain.SavingsGoal, error) {
	goals, err := s.goalRepo.ListGoals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list savings goals: %w", err)
	}
	if goals == nil {
		return []domain.SavingsGoal{}, nil
	}
	return goals, nil
}

// AddFunds deposits into a goal. The stored amount is clamped at the target:
// depositing 600 into a goal at 500/1000 leaves it at exactly 1000.
func (s *SavingsGoalService) AddFunds(ctx context.Context, userID string, goalID string, req dto.AddFundsRequest) (*domain.SavingsGoal, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: deposit amount must be positive", apperrors.ErrValidation)
	}

	goal, err := s.goalRepo.FindGoalByID(ctx, userID, goalID)
	if err != nil {
		return nil, fmt.Errorf("failed to get savings goal %s: %w", goalID, err)
	}

	newAmount := goal.AddFunds(req.Amount)
	if err := s.goalRepo.UpdateCurrentAmount(ctx, userID, goalID, newAmount, userID); err != nil {
		s.LogError(ctx, err, "failed to update savings goal amount", slog.String("goal_id", goalID))
		return nil, fmt.Errorf("failed to add funds to goal %s: %w", goalID, err)
	}

	goal.CurrentAmount = newAmount
	goal.LastUpdatedAt = time.Now()
	goal.LastUpdatedBy = userID

	s.LogInfo(ctx, "funds added to savings goal",
		slog.String("goal_id", goalID),
		slog.String("current_amount", newAmount.String()))
	return goal, nil
}

func (s *SavingsGoalService) DeleteGoal(ctx context.Context, userID string, goalID string) error {
	if err := s.goalRepo.DeleteGoal(ctx, userID, goalID); err != nil {
		return fmt.Errorf("failed to delete savings goal %s: %w", goalID, err)
	}
	s.LogInfo(ctx, "savings goal deleted", slog.String("goal_id", goalID))
	return nil
}
