package dto

import (
	"github.com/finpal/finpal-backend/internal/core/domain"
)

// NotificationEventResponse defines one freshly evaluated notification.
type NotificationEventResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// CheckNotificationsResponse defines the result of an evaluation run.
type CheckNotificationsResponse struct {
	Notifications []NotificationEventResponse `json:"notifications"`
}

// NotificationResponse defines one persisted feed entry.
type NotificationResponse struct {
	NotificationID string `json:"notificationID"`
	Title          string `json:"title"`
	Body           string `json:"body"`
	CreatedAt      string `json:"createdAt"`
}

// SyncResponse defines the combined rollforward-then-check result.
type SyncResponse struct {
	Processed     ProcessRecurringResponse   `json:"processed"`
	Notifications CheckNotificationsResponse `json:"notifications"`
}

// ToNotificationEventResponse converts a domain.NotificationEvent to its DTO.
func ToNotificationEventResponse(ev domain.NotificationEvent) NotificationEventResponse {
	return NotificationEventResponse{
		ID:    ev.ID,
		Title: ev.Title,
		Body:  ev.Body,
	}
}

// ToCheckNotificationsResponse converts an evaluation result to its DTO.
func ToCheckNotificationsResponse(events []domain.NotificationEvent) CheckNotificationsResponse {
	res := CheckNotificationsResponse{Notifications: make([]NotificationEventResponse, len(events))}
	for i, ev := range events {
		res.Notifications[i] = ToNotificationEventResponse(ev)
	}
	return res
}

// ToNotificationResponse converts a domain.Notification feed entry to its DTO.
func ToNotificationResponse(n domain.Notification) NotificationResponse {
	return NotificationResponse{
		NotificationID: n.NotificationID,
		Title:          n.Title,
		Body:           n.Body,
		CreatedAt:      n.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
