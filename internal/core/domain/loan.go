package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// StudentLoan tracks an outstanding loan balance and its monthly payment day.
// InterestRate is informational only; the app does not amortize.
type StudentLoan struct {
	LoanID         string          `json:"loanID"` // Primary Key (UUID)
	UserID         string          `json:"userID"`
	Lender         string          `json:"lender"`
	InitialAmount  decimal.Decimal `json:"initialAmount"`
	CurrentBalance decimal.Decimal `json:"currentBalance"` // Starts at InitialAmount, only decreases
	InterestRate   decimal.Decimal `json:"interestRate"`   // Percentage
	PaymentDueDate int             `json:"paymentDueDate"` // Day of month, 1..31
	AuditFields
}

// LoanPayment is an append-only entry in a loan's payment history.
type LoanPayment struct {
	PaymentID string          `json:"paymentID"` // Primary Key (UUID)
	LoanID    string          `json:"loanID"`
	Date      time.Time       `json:"date"`
	Amount    decimal.Decimal `json:"amount"`
}

func (l *StudentLoan) Validate() error {
	if l.Lender == "" {
		return fmt.Errorf("loan lender is required")
	}
	if !l.InitialAmount.IsPositive() {
		return fmt.Errorf("loan initial amount must be positive")
	}
	if l.PaymentDueDate < 1 || l.PaymentDueDate > 31 {
		return fmt.Errorf("loan payment due date must be between 1 and 31, got %d", l.PaymentDueDate)
	}
	return nil
}

// BalanceAfterPayment returns the balance once the given payment is applied.
func (l *StudentLoan) BalanceAfterPayment(amount decimal.Decimal) decimal.Decimal {
	return l.CurrentBalance.Sub(amount)
}
