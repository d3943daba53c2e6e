package dto

import (
	"time"

	"github.com/finpal/finpal-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to append a ledger entry.
type CreateTransactionRequest struct {
	Type        string          `json:"type" binding:"required,oneof=income expense"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Category    string          `json:"category" binding:"required"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date" binding:"required" time_format:"2006-01-02"`
}

// ListTransactionsParams defines query parameters for listing the ledger.
// From/To bound an inclusive date range, used when generating statements.
type ListTransactionsParams struct {
	Limit     int        `form:"limit,default=20"`
	NextToken string     `form:"nextToken"`
	From      *time.Time `form:"from" time_format:"2006-01-02"`
	To        *time.Time `form:"to" time_format:"2006-01-02"`
}

// TransactionResponse defines the data returned for a ledger entry.
type TransactionResponse struct {
	TransactionID string          `json:"transactionID"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category"`
	Description   string          `json:"description,omitempty"`
	Date          string          `json:"date"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ListTransactionsResponse wraps a page of ledger entries.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    string                `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to its DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: txn.TransactionID,
		Type:          string(txn.Type),
		Amount:        txn.Amount,
		Category:      txn.Category,
		Description:   txn.Description,
		Date:          txn.Date.Format("2006-01-02"),
		CreatedAt:     txn.CreatedAt,
	}
}

// ToListTransactionsResponse converts a page of domain transactions to DTOs.
func ToListTransactionsResponse(txns []domain.Transaction, nextToken string) ListTransactionsResponse {
	res := ListTransactionsResponse{
		Transactions: make([]TransactionResponse, len(txns)),
		NextToken:    nextToken,
	}
	for i, txn := range txns {
		res.Transactions[i] = ToTransactionResponse(&txn)
	}
	return res
}
