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
	"github.com/shopspring/decimal"
)

// Spent window modes. "all" counts every expense ever recorded in the
// category; "month" counts only the current calendar month.
const (
	SpentWindowAll   = "all"
	SpentWindowMonth = "month"
)

// BudgetService implements budget CRUD and spend derivation.
type BudgetService struct {
	BaseService
	budgetRepo  portsrepo.BudgetRepositoryFacade
	txnRepo     portsrepo.TransactionReader
	clock       portssvc.Clock
	spentWindow string
}

// NewBudgetService creates a new BudgetService. spentWindow must be
// SpentWindowAll or SpentWindowMonth; anything else falls back to all-time.
func NewBudgetService(budgetRepo portsrepo.BudgetRepositoryFacade, txnRepo portsrepo.TransactionReader, clock portssvc.Clock, spentWindow string) *BudgetService {
	if spentWindow != SpentWindowMonth {
		spentWindow = SpentWindowAll
	}
	return &BudgetService{
		budgetRepo:  budgetRepo,
		txnRepo:     txnRepo,
		clock:       clock,
		spentWindow: spentWindow,
	}
}

var _ portssvc.BudgetSvcFacade = (*BudgetService)(nil)

// spentSince returns the lower bound of the spend aggregation, nil for
// all-time.
func (s *BudgetService) spentSince() *time.Time {
	if s.spentWindow != SpentWindowMonth {
		return nil
	}
	now := s.clock.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return &monthStart
}

func (s *BudgetService) ListBudgetStatuses(ctx context.Context, userID string) ([]domain.BudgetStatus, error) {
	budgets, err := s.budgetRepo.ListBudgets(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}

	spentByCategory, err := s.txnRepo.SumExpensesByCategory(ctx, userID, s.spentSince())
	if err != nil {
		s.LogError(ctx, err, "failed to aggregate expenses", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to derive budget spend: %w", err)
	}

	statuses := make([]domain.BudgetStatus, len(budgets))
	for i, b := range budgets {
		spent := spentByCategory[b.Category]
		statuses[i] = domain.BudgetStatus{
			Budget:     b,
			Spent:      spent,
			Percentage: spendPercentage(spent, b.Limit),
		}
	}
	return statuses, nil
}

func (s *BudgetService) UpsertBudget(ctx context.Context, userID string, req dto.UpsertBudgetRequest) (*domain.Budget, error) {
	now := time.Now()
	budget := domain.Budget{
		UserID:   userID,
		Category: req.Category,
		Limit:    req.Limit,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := budget.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	if err := s.budgetRepo.UpsertBudget(ctx, budget); err != nil {
		s.LogError(ctx, err, "failed to upsert budget", slog.String("category", req.Category))
		return nil, fmt.Errorf("failed to upsert budget: %w", err)
	}

	s.LogInfo(ctx, "budget upserted", slog.String("category", budget.Category))
	return &budget, nil
}

func (s *BudgetService) DeleteBudget(ctx context.Context, userID string, category string) error {
	if err := s.budgetRepo.DeleteBudget(ctx, userID, category); err != nil {
		return fmt.Errorf("failed to delete budget for %s: %w", category, err)
	}
	s.LogInfo(ctx, "budget deleted", slog.String("category", category))
	return nil
}

// spendPercentage returns spent/limit as a percentage, 0 when the limit is
// not positive.
func spendPercentage(spent, limit decimal.Decimal) decimal.Decimal {
	if !limit.IsPositive() {
		return decimal.Zero
	}
	return spent.Mul(decimal.NewFromInt(100)).Div(limit)
}
