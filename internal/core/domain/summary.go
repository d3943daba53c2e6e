package domain

import "github.com/shopspring/decimal"

// Summary is the aggregate financial picture for one user.
type Summary struct {
	TotalIncome        decimal.Decimal
	TotalExpenses      decimal.Decimal
	Balance            decimal.Decimal
	ExpensesByCategory map[string]decimal.Decimal
}
