package dto

import (
	"github.com/finpal/finpal-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SummaryResponse defines the aggregate financial picture for a user.
type SummaryResponse struct {
	TotalIncome        decimal.Decimal            `json:"totalIncome"`
	TotalExpenses      decimal.Decimal            `json:"totalExpenses"`
	Balance            decimal.Decimal            `json:"balance"`
	ExpensesByCategory map[string]decimal.Decimal `json:"expensesByCategory"`
}

// ToSummaryResponse converts a domain.Summary to its DTO.
func ToSummaryResponse(s *domain.Summary) SummaryResponse {
	return SummaryResponse{
		TotalIncome:        s.TotalIncome,
		TotalExpenses:      s.TotalExpenses,
		Balance:            s.Balance,
		ExpensesByCategory: s.ExpensesByCategory,
	}
}
