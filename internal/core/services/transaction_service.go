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

// TransactionService implements ledger operations.
type TransactionService struct {
	BaseService
	txnRepo portsrepo.TransactionRepositoryFacade
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(txnRepo portsrepo.TransactionRepositoryFacade) *TransactionService {
	return &TransactionService{txnRepo: txnRepo}
}

var _ portssvc.TransactionSvcFacade = (*TransactionService)(nil)

func (s *TransactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	now := time.Now()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        userID,
		Type:          domain.TransactionType(req.Type),
		Amount:        req.Amount,
		Category:      req.Category,
		Description:   req.Description,
		Date:          domain.DateOnly(req.Date),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := txn.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "failed to save transaction", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	s.LogInfo(ctx, "transaction created",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("type", string(txn.Type)),
		slog.String("category", txn.Category))
	return &txn, nil
}

func (s *TransactionService) GetTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, userID, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction %s: %w", transactionID, err)
	}
	return txn, nil
}

func (s *TransactionService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	repoParams := portsrepo.ListTransactionsParams{
		Limit:     params.Limit,
		NextToken: params.NextToken,
		From:      params.From,
		To:        params.To,
	}
	if repoParams.Limit <= 0 {
		repoParams.Limit = 20
	}

	txns, nextToken, err := s.txnRepo.ListTransactions(ctx, userID, repoParams)
	if err != nil {
		s.LogError(ctx, err, "failed to list transactions", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	res := dto.ToListTransactionsResponse(txns, nextToken)
	return &res, nil
}

func (s *TransactionService) DeleteTransaction(ctx context.Context, userID string, transactionID string) error {
	if err := s.txnRepo.DeleteTransaction(ctx, userID, transactionID); err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	s.LogInfo(ctx, "transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}
