package domain

import "time"

// Notification statuses.
const (
	NotificationSent     = "sent"
	NotificationSentStub = "sent (stub)"
)

// Notification is a push message delivered to a user.
type Notification struct {
	UserID  string    `json:"user_id"`
	Message string    `json:"message"`
	Status  string    `json:"status"`
	SentAt  time.Time `json:"sent_at"`
}
