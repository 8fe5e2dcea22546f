package services

import (
	"context"

	"github.com/SscSPs/academic_docs_app/internal/core/domain"
)

// NotificationSvc delivers informational messages off the request path.
type NotificationSvc interface {
	// Notify enqueues a message and returns immediately. Delivery is at-least-once.
	Notify(ctx context.Context, recipientID, message, documentID string)

	// Close stops accepting work and waits for in-flight deliveries.
	Close()
}

// NotificationChannel is one external destination for notifications.
type NotificationChannel interface {
	Name() string
	Deliver(ctx context.Context, n domain.Notification) error
}

// OperatorAlerter escalates internal failures that need a human.
type OperatorAlerter interface {
	Alert(ctx context.Context, subject, body string) error
}
