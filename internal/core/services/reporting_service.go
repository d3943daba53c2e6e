package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/finpal/finpal-backend/internal/core/domain"
	portsrepo "github.com/finpal/finpal-backend/internal/core/ports/repositories"
	portssvc "github.com/finpal/finpal-backend/internal/core/ports/services"
)

// ReportingService computes ledger aggregates.
type ReportingService struct {
	BaseService
	txnRepo portsrepo.TransactionReader
}

// NewReportingService creates a new ReportingService.
func NewReportingService(txnRepo portsrepo.TransactionReader) *ReportingService {
	return &ReportingService{txnRepo: txnRepo}
}

var _ portssvc.ReportingSvcFacade = (*ReportingService)(nil)

func (s *ReportingService) GetSummary(ctx context.Context, userID string) (*domain.Summary, error) {
	income, err := s.txnRepo.SumByType(ctx, userID, domain.Income)
	if err != nil {
		s.LogError(ctx, err, "failed to total income", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to compute summary: %w", err)
	}

	expenses, err := s.txnRepo.SumByType(ctx, userID, domain.Expense)
	if err != nil {
		s.LogError(ctx, err, "failed to total expenses", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to compute summary: %w", err)
	}

	byCategory, err := s.txnRepo.SumExpensesByCategory(ctx, userID, nil)
	if err != nil {
		s.LogError(ctx, err, "failed to aggregate expenses", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to compute summary: %w", err)
	}

	return &domain.Summary{
		TotalIncome:        income,
		TotalExpenses:      expenses,
		Balance:            income.Sub(expenses),
		ExpensesByCategory: byCategory,
	}, nil
}
