package domain

import (
	"fmt"
	"time"
)

// NotificationSettings holds the four independent reminder toggles. Pure
// configuration, one row per user.
type NotificationSettings struct {
	UserID           string `json:"userID"`
	BudgetAlerts     bool   `json:"budgetAlerts"`
	BillReminders    bool   `json:"billReminders"`
	SavingsReminders bool   `json:"savingsReminders"`
	LoanReminders    bool   `json:"loanReminders"`
	AuditFields
}

// DefaultNotificationSettings returns the settings a new user starts with:
// everything on.
func DefaultNotificationSettings(userID string) NotificationSettings {
	return NotificationSettings{
		UserID:           userID,
		BudgetAlerts:     true,
		BillReminders:    true,
		SavingsReminders: true,
		LoanReminders:    true,
	}
}

// NotificationEvent is a notification the evaluator decided should fire. ID
// is the dedup key: within one session the same ID never fires twice.
type NotificationEvent struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Notification is a persisted feed entry for an event that was delivered.
type Notification struct {
	NotificationID string    `json:"notificationID"` // Primary Key (UUID)
	UserID         string    `json:"userID"`
	DedupKey       string    `json:"dedupKey"`
	Title          string    `json:"title"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Dedup key builders. The key shapes are part of the evaluator's contract:
// equal condition instances map to equal keys, so they suppress each other
// within a session, and distinct instances (e.g. the same bill on a new due
// date) map to distinct keys.

func BudgetOverKey(category string) string {
	return fmt.Sprintf("budget-over-%s", category)
}

func BudgetWarningKey(category string) string {
	return fmt.Sprintf("budget-warning-%s", category)
}

func BillReminderKey(recurringID string, dueDate time.Time) string {
	return fmt.Sprintf("bill-reminder-%s-%s", recurringID, dueDate.Format(time.DateOnly))
}

func SavingsReminderKey(goalID string) string {
	return fmt.Sprintf("savings-reminder-%s", goalID)
}

// LoanReminderKey includes today's date on purpose: the advance reminder
// three days before the due day and the due-day reminder fall on different
// dates and are meant to fire independently.
func LoanReminderKey(loanID string, today time.Time) string {
	return fmt.Sprintf("loan-reminder-%s-%s", loanID, today.Format(time.DateOnly))
}
