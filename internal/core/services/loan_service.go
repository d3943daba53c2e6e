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
)

// LoanService implements student loan operations.
type LoanService struct {
	BaseService
	loanRepo portsrepo.LoanRepositoryFacade
}

// NewLoanService creates a new LoanService.
func NewLoanService(loanRepo portsrepo.LoanRepositoryFacade) *LoanService {
	return &LoanService{loanRepo: loanRepo}
}

var _ portssvc.LoanSvcFacade = (*LoanService)(nil)

func (s *LoanService) CreateLoan(ctx context.Context, userID string, req dto.CreateLoanRequest) (*domain.StudentLoan, error) {
	now := time.Now()
	loan := domain.StudentLoan{
		LoanID:         uuid.NewString(),
		UserID:         userID,
		Lender:         req.Lender,
		InitialAmount:  req.InitialAmount,
		CurrentBalance: req.InitialAmount,
		InterestRate:   req.InterestRate,
		PaymentDueDate: req.PaymentDueDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := loan.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	if err := s.loanRepo.SaveLoan(ctx, loan); err != nil {
		s.LogError(ctx, err, "failed to save loan", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to create loan: %w", err)
	}

	s.LogInfo(ctx, "loan created", slog.String("loan_id", loan.LoanID), slog.String("lender", loan.Lender))
	return &loan, nil
}

func (s *LoanService) GetLoanByID(ctx context.Context, userID string, loanID string) (*domain.StudentLoan, []domain.LoanPayment, error) {
	loan, err := s.loanRepo.FindLoanByID(ctx, userID, loanID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get loan %s: %w", loanID, err)
	}

	payments, err := s.loanRepo.ListPayments(ctx, loanID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list payments for loan %s: %w", loanID, err)
	}
	return loan, payments, nil
}

func (s *LoanService) ListLoans(ctx context.Context, userID string) ([]domain.StudentLoan, error) {
	loans, err := s.loanRepo.ListLoans(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	if loans == nil {
		return []domain.StudentLoan{}, nil
	}
	return loans, nil
}

// LogPayment records a payment: the balance decreases by the amount, the
// payment history grows by one entry, and a matching "Loan Payment" expense
// lands in the ledger. The three writes commit atomically in the repository.
func (s *LoanService) LogPayment(ctx context.Context, userID string, loanID string, req dto.LogLoanPaymentRequest) (*domain.StudentLoan, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}

	loan, err := s.loanRepo.FindLoanByID(ctx, userID, loanID)
	if err != nil {
		return nil, fmt.Errorf("failed to get loan %s: %w", loanID, err)
	}

	now := time.Now()
	paymentDate := domain.DateOnly(now)
	if req.Date != nil {
		paymentDate = domain.DateOnly(*req.Date)
	}

	payment := domain.LoanPayment{
		PaymentID: uuid.NewString(),
		LoanID:    loanID,
		Date:      paymentDate,
		Amount:    req.Amount,
	}

	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        userID,
		Type:          domain.Expense,
		Amount:        req.Amount,
		Category:      domain.LoanPaymentCategory,
		Description:   fmt.Sprintf("Payment to %s", loan.Lender),
		Date:          paymentDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	updated := *loan
	updated.CurrentBalance = loan.BalanceAfterPayment(req.Amount)
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = userID

	if err := s.loanRepo.LogPayment(ctx, updated, payment, txn); err != nil {
		s.LogError(ctx, err, "failed to log loan payment", slog.String("loan_id", loanID))
		return nil, fmt.Errorf("failed to log payment for loan %s: %w", loanID, err)
	}

	s.LogInfo(ctx, "loan payment logged",
		slog.String("loan_id", loanID),
		slog.String("amount", req.Amount.String()),
		slog.String("balance", updated.CurrentBalance.String()))
	return &updated, nil
}

func (s *LoanService) DeleteLoan(ctx context.Context, userID string, loanID string) error {
	if err := s.loanRepo.DeleteLoan(ctx, userID, loanID); err != nil {
		return fmt.Errorf("failed to delete loan %s: %w", loanID, err)
	}
	s.LogInfo(ctx, "loan deleted", slog.String("loan_id", loanID))
	return nil
}
