package repositories

import (
	"context"
	"time"

	"github.com/finpal/finpal-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ListTransactionsParams controls ledger listing: cursor pagination plus an
// optional inclusive date range (used for statements).
type ListTransactionsParams struct {
	Limit     int
	NextToken string
	From      *time.Time
	To        *time.Time
}

// TransactionReader defines read operations for ledger data.
type TransactionReader interface {
	// FindTransactionByID retrieves a single ledger entry owned by the user.
	FindTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves the user's ledger ordered by date descending.
	// It returns the page and the next cursor token ("" when exhausted).
	ListTransactions(ctx context.Context, userID string, params ListTransactionsParams) ([]domain.Transaction, string, error)

	// SumExpensesByCategory aggregates expense amounts per category. When
	// since is non-nil only entries dated on or after it are counted.
	SumExpensesByCategory(ctx context.Context, userID string, since *time.Time) (map[string]decimal.Decimal, error)

	// SumByType totals all entries of the given type.
	SumByType(ctx context.Context, userID string, txType domain.TransactionType) (decimal.Decimal, error)
}

// TransactionWriter defines write operations for ledger data.
type TransactionWriter interface {
	// SaveTransaction persists a new ledger entry.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// DeleteTransaction removes a ledger entry owned by the user.
	DeleteTransaction(ctx context.Context, userID string, transactionID string) error
}

// TransactionRepositoryFacade combines all ledger repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
