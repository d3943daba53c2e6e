package dto

import (
	"github.com/finpal/finpal-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpsertBudgetRequest defines the data needed to set a category budget.
type UpsertBudgetRequest struct {
	Category string          `json:"category" binding:"required"`
	Limit    decimal.Decimal `json:"limit" binding:"required"`
}

// BudgetStatusResponse defines a budget with its derived spend figures.
type BudgetStatusResponse struct {
	Category   string          `json:"category"`
	Limit      decimal.Decimal `json:"limit"`
	Spent      decimal.Decimal `json:"spent"`
	Percentage decimal.Decimal `json:"percentage"`
}

// ToBudgetStatusResponse converts a domain.BudgetStatus to its DTO.
func ToBudgetStatusResponse(status *domain.BudgetStatus) BudgetStatusResponse {
	return BudgetStatusResponse{
		Category:   status.Category,
		Limit:      status.Limit,
		Spent:      status.Spent,
		Percentage: status.Percentage,
	}
}
