package dto

import (
	"github.com/finpal/finpal-backend/internal/core/domain"
)

// UpdateNotificationSettingsRequest defines the toggles a user can change.
// Pointers distinguish "not sent" from "set to false".
type UpdateNotificationSettingsRequest struct {
	BudgetAlerts     *bool `json:"budgetAlerts"`
	BillReminders    *bool `json:"billReminders"`
	SavingsReminders *bool `json:"savingsReminders"`
	LoanReminders    *bool `json:"loanReminders"`
}

// NotificationSettingsResponse defines the data returned for settings.
type NotificationSettingsResponse struct {
	BudgetAlerts     bool `json:"budgetAlerts"`
	BillReminders    bool `json:"billReminders"`
	SavingsReminders bool `json:"savingsReminders"`
	LoanReminders    bool `json:"loanReminders"`
}

// ToNotificationSettingsResponse converts domain settings to their DTO.
func ToNotificationSettingsResponse(s *domain.NotificationSettings) NotificationSettingsResponse {
	return NotificationSettingsResponse{
		BudgetAlerts:     s.BudgetAlerts,
		BillReminders:    s.BillReminders,
		SavingsReminders: s.SavingsReminders,
		LoanReminders:    s.LoanReminders,
	}
}
