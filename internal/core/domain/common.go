package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID Reference
}

// DateOnly reduces a timestamp to its wall-clock calendar date, anchored at
// UTC midnight. Every due date and deadline comparison in the app is a
// calendar-date comparison; anchoring both sides at UTC keeps that true even
// when stored dates (UTC midnights) and the clock (server local time) carry
// different locations.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
