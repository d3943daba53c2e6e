package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SavingsGoal tracks progress towards a target amount by a deadline.
type SavingsGoal struct {
	GoalID        string          `json:"goalID"` // Primary Key (UUID)
	UserID        string          `json:"userID"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	Deadline      time.Time       `json:"deadline"`
	AuditFields
}

func (g *SavingsGoal) Validate() error {
	if g.Name == "" {
		return fmt.Errorf("savings goal name is required")
	}
	if !g.TargetAmount.IsPositive() {
		return fmt.Errorf("savings goal target amount must be positive")
	}
	if g.CurrentAmount.IsNegative() {
		return fmt.Errorf("savings goal current amount must not be negative")
	}
	if g.Deadline.IsZero() {
		return fmt.Errorf("savings goal deadline is required")
	}
	return nil
}

// IsFunded reports whether the goal has reached its target.
func (g *SavingsGoal) IsFunded() bool {
	return g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount)
}

// AddFunds returns the new current amount after depositing the given amount,
// clamped so the goal never exceeds its target.
func (g *SavingsGoal) AddFunds(amount decimal.Decimal) decimal.Decimal {
	return decimal.Min(g.TargetAmount, g.CurrentAmount.Add(amount))
}
