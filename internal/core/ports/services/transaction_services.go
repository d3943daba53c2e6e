package services

import (
	"context"

	"github.com/finpal/finpal-backend/internal/core/domain"
	"github.com/finpal/finpal-backend/internal/dto"
)

// TransactionReaderSvc defines read operations for the ledger.
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a single ledger entry owned by the user.
	GetTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a page of the user's ledger, date descending.
	ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// TransactionWriterSvc defines write operations for the ledger.
type TransactionWriterSvc interface {
	// CreateTransaction appends a new ledger entry.
	CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	// DeleteTransaction removes a ledger entry owned by the user.
	DeleteTransaction(ctx context.Context, userID string, transactionID string) error
}

// TransactionSvcFacade combines all ledger service interfaces.
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
