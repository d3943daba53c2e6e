package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Frequency is the cadence of a recurring transaction template.
type Frequency string

const (
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
)

// RecurringDescriptionPrefix marks ledger entries that were materialized by
// the recurring processor rather than entered by hand.
const RecurringDescriptionPrefix = "(Recurring) "

// RollforwardResult is the outcome of one processor invocation over a
// template snapshot.
type RollforwardResult struct {
	// Materialized holds the ledger entries generated this run, at most one
	// per template.
	Materialized []Transaction
	// Updated holds the templates whose NextDueDate advanced.
	Updated []RecurringTransaction
	// SkippedInvalid lists template IDs that failed validation and were left
	// untouched.
	SkippedInvalid []string
}

// RecurringTransaction is a template that periodically generates ledger
// entries. NextDueDate is the only mutable field: it equals StartDate until
// the first materialization and is advanced one period at a time by the
// processor afterwards.
//
// DayOfWeek is set for weekly templates only (0=Sunday..6=Saturday) and
// DayOfMonth for monthly templates only (1..31). The pairing is enforced by
// Validate rather than by the type system.
type RecurringTransaction struct {
	RecurringID string          `json:"recurringID"` // Primary Key (UUID)
	UserID      string          `json:"userID"`
	Type        TransactionType `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Frequency   Frequency       `json:"frequency"`
	StartDate   time.Time       `json:"startDate"`
	NextDueDate time.Time       `json:"nextDueDate"`
	DayOfWeek   *int            `json:"dayOfWeek,omitempty"`
	DayOfMonth  *int            `json:"dayOfMonth,omitempty"`
	AuditFields
}

// Validate checks the template invariants, in particular that exactly the
// frequency-specific day field is present.
func (rt *RecurringTransaction) Validate() error {
	if rt.Type != Income && rt.Type != Expense {
		return fmt.Errorf("recurring transaction type must be income or expense, got %q", rt.Type)
	}
	if rt.Amount.IsNegative() {
		return fmt.Errorf("recurring transaction amount must be non-negative")
	}
	switch rt.Frequency {
	case Weekly:
		if rt.DayOfWeek == nil {
			return fmt.Errorf("weekly recurring transaction requires dayOfWeek")
		}
		if *rt.DayOfWeek < 0 || *rt.DayOfWeek > 6 {
			return fmt.Errorf("dayOfWeek must be between 0 and 6, got %d", *rt.DayOfWeek)
		}
		if rt.DayOfMonth != nil {
			return fmt.Errorf("weekly recurring transaction must not set dayOfMonth")
		}
	case Monthly:
		if rt.DayOfMonth == nil {
			return fmt.Errorf("monthly recurring transaction requires dayOfMonth")
		}
		if *rt.DayOfMonth < 1 || *rt.DayOfMonth > 31 {
			return fmt.Errorf("dayOfMonth must be between 1 and 31, got %d", *rt.DayOfMonth)
		}
		if rt.DayOfWeek != nil {
			return fmt.Errorf("monthly recurring transaction must not set dayOfWeek")
		}
	default:
		return fmt.Errorf("frequency must be weekly or monthly, got %q", rt.Frequency)
	}
	if rt.StartDate.IsZero() || rt.NextDueDate.IsZero() {
		return fmt.Errorf("recurring transaction requires startDate and nextDueDate")
	}
	return nil
}

// IsDue reports whether the template's next due date has been reached as of
// the given day. Both sides are compared as calendar dates.
func (rt *RecurringTransaction) IsDue(today time.Time) bool {
	return !DateOnly(rt.NextDueDate).After(DateOnly(today))
}

// NextDueAfter returns the due date one period after the current one. The
// advance is always a single step from the current NextDueDate, never from
// "today": a template that is many periods overdue catches up one period per
// processor invocation.
func (rt *RecurringTransaction) NextDueAfter() time.Time {
	switch rt.Frequency {
	case Monthly:
		return rt.NextDueDate.AddDate(0, 1, 0)
	case Weekly:
		return rt.NextDueDate.AddDate(0, 0, 7)
	}
	return rt.NextDueDate
}

// Materialize builds the ledger entry for the template's current due date.
// The entry is dated at the pre-advance due date, not at processing time, so
// history stays accurate when the processor runs late.
func (rt *RecurringTransaction) Materialize(transactionID string, now time.Time) Transaction {
	return Transaction{
		TransactionID: transactionID,
		UserID:        rt.UserID,
		Type:          rt.Type,
		Amount:        rt.Amount,
		Category:      rt.Category,
		Description:   RecurringDescriptionPrefix + rt.Description,
		Date:          rt.NextDueDate,
		AuditFields: AuditFields{
			CreatedAt:     now,
			CreatedBy:     rt.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: rt.UserID,
		},
	}
}
