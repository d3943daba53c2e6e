package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a transaction is money in or money out.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// LoanPaymentCategory is the ledger category used for transactions that the
// loan service appends when a payment is logged.
const LoanPaymentCategory = "Loan Payment"

// Transaction is a single immutable ledger entry. Entries are never mutated
// after creation; they are only appended (by the user or by the recurring
// processor) and deleted by explicit user action.
type Transaction struct {
	TransactionID string          `json:"transactionID"` // Primary Key (UUID)
	UserID        string          `json:"userID"`        // FK -> users (Not Null)
	Type          TransactionType `json:"type"`          // income or expense
	Amount        decimal.Decimal `json:"amount"`        // Non-negative; precise decimal type
	Category      string          `json:"category"`      // Free-form label
	Description   string          `json:"description"`   // Nullable
	Date          time.Time       `json:"date"`          // Occurrence date; time-of-day not meaningful
	AuditFields
}

// Validate checks the invariants a ledger entry must hold before persistence.
func (t *Transaction) Validate() error {
	if t.Type != Income && t.Type != Expense {
		return fmt.Errorf("transaction type must be income or expense, got %q", t.Type)
	}
	if t.Amount.IsNegative() {
		return fmt.Errorf("transaction amount must be non-negative")
	}
	if t.Category == "" {
		return fmt.Errorf("transaction category is required")
	}
	if t.Date.IsZero() {
		return fmt.Errorf("transaction date is required")
	}
	return nil
}
