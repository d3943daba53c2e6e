package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Budget is a per-category spending ceiling. A user holds at most one budget
// per category; the pair (UserID, Category) is the key. "Spent" is not stored,
// it is derived from the ledger on demand.
type Budget struct {
	UserID   string          `json:"userID"`
	Category string          `json:"category"`
	Limit    decimal.Decimal `json:"limit"`
	AuditFields
}

func (b *Budget) Validate() error {
	if b.Category == "" {
		return fmt.Errorf("budget category is required")
	}
	if !b.Limit.IsPositive() {
		return fmt.Errorf("budget limit must be positive")
	}
	return nil
}

// BudgetStatus pairs a budget with its derived spend figures.
type BudgetStatus struct {
	Budget
	Spent      decimal.Decimal `json:"spent"`
	Percentage decimal.Decimal `json:"percentage"`
}
