package services

import (
	"context"

	"github.com/finpal/finpal-backend/internal/core/domain"
	"github.com/finpal/finpal-backend/internal/dto"
)

// LoanReaderSvc defines read operations for student loans.
type LoanReaderSvc interface {
	// GetLoanByID retrieves a loan with its payment history.
	GetLoanByID(ctx context.Context, userID string, loanID string) (*domain.StudentLoan, []domain.LoanPayment, error)

	// ListLoans retrieves all of the user's loans.
	ListLoans(ctx context.Context, userID string) ([]domain.StudentLoan, error)
}

// LoanWriterSvc defines write operations for student loans.
type LoanWriterSvc interface {
	// CreateLoan persists a new loan with balance equal to its initial amount.
	CreateLoan(ctx context.Context, userID string, req dto.CreateLoanRequest) (*domain.StudentLoan, error)

	// LogPayment records a payment: the balance decreases, the history grows
	// by one entry, and a "Loan Payment" expense lands in the ledger, all
	// atomically.
	LogPayment(ctx context.Context, userID string, loanID string, req dto.LogLoanPaymentRequest) (*domain.StudentLoan, error)

	// DeleteLoan removes a loan owned by the user.
	DeleteLoan(ctx context.Context, userID string, loanID string) error
}

// LoanSvcFacade combines all loan service interfaces.
type LoanSvcFacade interface {
	LoanReaderSvc
	LoanWriterSvc
}
