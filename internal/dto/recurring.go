package dto

import (
	"time"

	"github.com/finpal/finpal-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateRecurringRequest defines the data needed to create a recurring
// template. Exactly one of dayOfWeek/dayOfMonth must be set, matching the
// frequency; the pairing is checked by the registered "recurringschedule"
// struct validator.
type CreateRecurringRequest struct {
	Type        string          `json:"type" binding:"required,oneof=income expense"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Category    string          `json:"category" binding:"required"`
	Description string          `json:"description"`
	Frequency   string          `json:"frequency" binding:"required,oneof=weekly monthly"`
	StartDate   time.Time       `json:"startDate" binding:"required" time_format:"2006-01-02"`
	DayOfWeek   *int            `json:"dayOfWeek" binding:"omitempty,min=0,max=6"`
	DayOfMonth  *int            `json:"dayOfMonth" binding:"omitempty,min=1,max=31"`
}

// RecurringResponse defines the data returned for a template.
type RecurringResponse struct {
	RecurringID string          `json:"recurringID"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
	Frequency   string          `json:"frequency"`
	StartDate   string          `json:"startDate"`
	NextDueDate string          `json:"nextDueDate"`
	DayOfWeek   *int            `json:"dayOfWeek,omitempty"`
	DayOfMonth  *int            `json:"dayOfMonth,omitempty"`
}

// ProcessRecurringResponse reports the outcome of one processor run.
type ProcessRecurringResponse struct {
	Materialized   []TransactionResponse `json:"materialized"`
	Updated        []RecurringResponse   `json:"updated"`
	SkippedInvalid []string              `json:"skippedInvalid,omitempty"`
}

// ToRecurringResponse converts a domain.RecurringTransaction to its DTO.
func ToRecurringResponse(rt *domain.RecurringTransaction) RecurringResponse {
	return RecurringResponse{
		RecurringID: rt.RecurringID,
		Type:        string(rt.Type),
		Amount:      rt.Amount,
		Category:    rt.Category,
		Description: rt.Description,
		Frequency:   string(rt.Frequency),
		StartDate:   rt.StartDate.Format("2006-01-02"),
		NextDueDate: rt.NextDueDate.Format("2006-01-02"),
		DayOfWeek:   rt.DayOfWeek,
		DayOfMonth:  rt.DayOfMonth,
	}
}

// ToProcessRecurringResponse converts a rollforward result to its DTO.
func ToProcessRecurringResponse(result *domain.RollforwardResult) ProcessRecurringResponse {
	res := ProcessRecurringResponse{
		Materialized:   make([]TransactionResponse, len(result.Materialized)),
		Updated:        make([]RecurringResponse, len(result.Updated)),
		SkippedInvalid: result.SkippedInvalid,
	}
	for i, txn := range result.Materialized {
		res.Materialized[i] = ToTransactionResponse(&txn)
	}
	for i, rt := range result.Updated {
		res.Updated[i] = ToRecurringResponse(&rt)
	}
	return res
}
