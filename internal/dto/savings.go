package dto

import (
	"time"

	"github.com/finpal/finpal-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateSavingsGoalRequest defines the data needed to create a savings goal.
type CreateSavingsGoalRequest struct {
	Name         string          `json:"name" binding:"required"`
	TargetAmount decimal.Decimal `json:"targetAmount" binding:"required"`
	Deadline     time.Time       `json:"deadline" binding:"required" time_format:"2006-01-02"`
}

// AddFundsRequest defines a deposit into a savings goal.
type AddFundsRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// SavingsGoalResponse defines the data returned for a savings goal.
type SavingsGoalResponse struct {
	GoalID        string          `json:"goalID"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	Deadline      string          `json:"deadline"`
	Funded        bool            `json:"funded"`
}

// ToSavingsGoalResponse converts a domain.SavingsGoal to its DTO.
func ToSavingsGoalResponse(goal *domain.SavingsGoal) SavingsGoalResponse {
	return SavingsGoalResponse{
		GoalID:        goal.GoalID,
		Name:          goal.Name,
		TargetAmount:  goal.TargetAmount,
		CurrentAmount: goal.CurrentAmount,
		Deadline:      goal.Deadline.Format("2006-01-02"),
		Funded:        goal.IsFunded(),
	}
}
