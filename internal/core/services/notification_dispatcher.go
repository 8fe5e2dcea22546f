package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/academic_docs_app/internal/core/domain"
	portssvc "github.com/SscSPs/academic_docs_app/internal/core/ports/services"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DispatcherConfig sizes the notification worker pool.
type DispatcherConfig struct {
	Workers         int
	QueueSize       int
	MaxAttempts     int
	RetryBackoff    time.Duration
	DeliveryTimeout time.Duration
}

func (c DispatcherConfig) withDefaults() DispatcherConfig {
	if c.Workers <= 0 {
		c.Workers = 2
	}
	if c.QueueSize <= 0 {
		c.QueueSize = 256
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 3
	}
	if c.RetryBackoff <= 0 {
		c.RetryBackoff = 200 * time.Millisecond
	}
	if c.DeliveryTimeout <= 0 {
		c.DeliveryTimeout = 5 * time.Second
	}
	return c
}

// notificationDispatcher implements the NotificationSvc interface with a bounded
// queue drained by a fixed pool of workers.
type notificationDispatcher struct {
	BaseService
	channels []portssvc.NotificationChannel
	metrics  *Metrics
	cfg      DispatcherConfig
	logger   *slog.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan domain.Notification
	wg     sync.WaitGroup
}

// NewNotificationDispatcher starts the worker pool. Callers must Close it.
func NewNotificationDispatcher(channels []portssvc.NotificationChannel, metrics *Metrics, cfg DispatcherConfig) portssvc.NotificationSvc {
	cfg = cfg.withDefaults()
	d := &notificationDispatcher{
		channels: channels,
		metrics:  metrics,
		cfg:      cfg,
		logger:   slog.Default().With(slog.String("component", "notification_dispatcher")),
		queue:    make(chan domain.Notification, cfg.QueueSize),
	}
	d.wg.Add(cfg.Workers)
	for i := 0; i < cfg.Workers; i++ {
		go d.worker()
	}
	return d
}

var _ portssvc.NotificationSvc = (*notificationDispatcher)(nil)

// Notify enqueues without blocking. A full or closed queue drops the message.
func (d *notificationDispatcher) Notify(ctx context.Context, recipientID, message, documentID string) {
	if recipientID == "" {
		return
	}
	n := domain.Notification{
		NotificationID: uuid.NewString(),
		RecipientID:    recipientID,
		DocumentID:     documentID,
		Message:        message,
		CreatedAt:      time.Now().UTC(),
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.metrics.observeDrop()
		d.LogWarn(ctx, "Notification dropped after shutdown", slog.String("recipient_id", recipientID))
		return
	}
	select {
	case d.queue <- n:
	default:
		d.metrics.observeDrop()
		d.LogWarn(ctx, "Notification queue full, dropping",
			slog.String("recipient_id", recipientID),
			slog.String("document_id", documentID))
	}
}

// Close stops intake, lets workers drain what is queued and waits for them.
func (d *notificationDispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()
	d.wg.Wait()
}

func (d *notificationDispatcher) worker() {
	defer d.wg.Done()
	for n := range d.queue {
		d.dispatch(n)
	}
}

// dispatch fans n out to every channel. Channels retry independently so a slow or
// broken one does not hold back the others.
func (d *notificationDispatcher) dispatch(n domain.Notification) {
	var g errgroup.Group
	for _, ch := range d.channels {
		g.Go(func() error {
			return d.deliverWithRetry(ch, n)
		})
	}
	if err := g.Wait(); err != nil {
		d.metrics.observeNotification("failed")
		d.logger.Error("Notification delivery failed",
			slog.String("notification_id", n.NotificationID),
			slog.String("recipient_id", n.RecipientID),
			slog.String("error", err.Error()))
		return
	}
	d.metrics.observeNotification("delivered")
}

func (d *notificationDispatcher) deliverWithRetry(ch portssvc.NotificationChannel, n domain.Notification) error {
	var err error
	for attempt := 1; attempt <= d.cfg.MaxAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), d.cfg.DeliveryTimeout)
		err = ch.Deliver(ctx, n)
		cancel()
		if err == nil {
			return nil
		}
		d.logger.Debug("Notification channel attempt failed",
			slog.String("channel", ch.Name()),
			slog.Int("attempt", attempt),
			slog.String("error", err.Error()))
		if attempt < d.cfg.MaxAttempts {
			time.Sleep(d.cfg.RetryBackoff * time.Duration(attempt))
		}
	}
	return fmt.Errorf("channel %s: %w", ch.Name(), err)
}
