package repositories

import (
	"context"

	"github.com/finpal/finpal-backend/internal/core/domain"
)

// LoanReader defines read operations for student loans.
type LoanReader interface {
	// FindLoanByID retrieves a loan owned by the user.
	FindLoanByID(ctx context.Context, userID string, loanID string) (*domain.StudentLoan, error)

	// ListLoans retrieves all of the user's loans.
	ListLoans(ctx context.Context, userID string) ([]domain.StudentLoan, error)

	// ListPayments retrieves a loan's payment history, newest first.
	ListPayments(ctx context.Context, loanID string) ([]domain.LoanPayment, error)
}

// LoanWriter defines write operations for student loans.
type LoanWriter interface {
	// SaveLoan persists a new loan.
	SaveLoan(ctx context.Context, loan domain.StudentLoan) error

	// LogPayment persists one payment atomically: the loan balance is
	// decremented, the payment history entry appended, and the ledger
	// transaction inserted in a single database transaction.
	LogPayment(ctx context.Context, loan domain.StudentLoan, payment domain.LoanPayment, txn domain.Transaction) error

	// DeleteLoan removes a loan owned by the user along with its history.
	DeleteLoan(ctx context.Context, userID string, loanID string) error
}

// LoanRepositoryFacade combines all loan repository interfaces.
type LoanRepositoryFacade interface {
	LoanReader
	LoanWriter
}

// LoanRepositoryWithTx extends the facade with transaction capabilities.
type LoanRepositoryWithTx interface {
	LoanRepositoryFacade
	TransactionManager
}
