package domain

import "time"

// Notification is an ephemeral, informational message. Duplicates are tolerable.
type Notification struct {
	NotificationID string    `json:"notificationID"`
	RecipientID    string    `json:"recipientID"`
	DocumentID     string    `json:"documentID"`
	Message        string    `json:"message"`
	CreatedAt      time.Time `json:"createdAt"`
}
