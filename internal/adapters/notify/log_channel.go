package notify

import (
	"context"
	"log/slog"

	"github.com/SscSPs/academic_docs_app/internal/core/domain"
	portssvc "github.com/SscSPs/academic_docs_app/internal/core/ports/services"
)

// LogChannel writes notifications to the structured log. It is the fallback when
// no broker is configured.
type LogChannel struct {
	logger *slog.Logger
}

func NewLogChannel(logger *slog.Logger) *LogChannel {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogChannel{logger: logger.With(slog.String("channel", "log"))}
}

var _ portssvc.NotificationChannel = (*LogChannel)(nil)

func (l *LogChannel) Name() string { return "log" }

func (l *LogChannel) Deliver(ctx context.Context, n domain.Notification) error {
	l.logger.InfoContext(ctx, "Notification",
		slog.String("notification_id", n.NotificationID),
		slog.String("recipient_id", n.RecipientID),
		slog.String("document_id", n.DocumentID),
		slog.String("message", n.Message),
	)
	return nil
}
