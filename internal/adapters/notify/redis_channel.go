package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SscSPs/academic_docs_app/internal/core/domain"
	portssvc "github.com/SscSPs/academic_docs_app/internal/core/ports/services"
	"github.com/redis/go-redis/v9"
)

// RedisConfig controls where notifications are published.
type RedisConfig struct {
	// ChannelPrefix is prepended to the recipient ID to form the pub/sub channel.
	ChannelPrefix string
	// Stream, when set, also appends every notification to a capped stream so
	// offline clients can catch up.
	Stream string
	MaxLen int64
}

// RedisChannel publishes notifications to per-recipient pub/sub channels.
type RedisChannel struct {
	client redis.UniversalClient
	cfg    RedisConfig
}

// NewRedisChannel wraps an existing client. The caller owns the client.
func NewRedisChannel(client redis.UniversalClient, cfg RedisConfig) *RedisChannel {
	if cfg.ChannelPrefix == "" {
		cfg.ChannelPrefix = "docflow:notify:"
	}
	if cfg.MaxLen <= 0 {
		cfg.MaxLen = 10000
	}
	return &RedisChannel{client: client, cfg: cfg}
}

var _ portssvc.NotificationChannel = (*RedisChannel)(nil)

func (r *RedisChannel) Name() string { return "redis" }

// ChannelFor returns the pub/sub channel a recipient subscribes to.
func (r *RedisChannel) ChannelFor(recipientID string) string {
	return r.cfg.ChannelPrefix + recipientID
}

func (r *RedisChannel) Deliver(ctx context.Context, n domain.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	if err := r.client.Publish(ctx, r.ChannelFor(n.RecipientID), payload).Err(); err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}

	if r.cfg.Stream == "" {
		return nil
	}
	if err := r.client.XAdd(ctx, &redis.XAddArgs{
		Stream: r.cfg.Stream,
		MaxLen: r.cfg.MaxLen,
		Approx: true,
		Values: map[string]any{
			"notification_id": n.NotificationID,
			"recipient_id":    n.RecipientID,
			"document_id":     n.DocumentID,
			"message":         n.Message,
			"created_at":      n.CreatedAt.UTC().Format(time.RFC3339Nano),
		},
	}).Err(); err != nil {
		return fmt.Errorf("append notification stream: %w", err)
	}
	return nil
}
