package notify

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/SscSPs/academic_docs_app/internal/core/domain"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return srv, client
}

func sampleNotification() domain.Notification {
	return domain.Notification{
		NotificationID: "n-1",
		RecipientID:    "teacher-1",
		DocumentID:     "doc-1",
		Message:        "Your document \"Syllabus\" has been approved",
		CreatedAt:      time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestRedisChannel_PublishesToRecipientChannel(t *testing.T) {
	_, client := newTestRedis(t)
	ctx := context.Background()
	ch := NewRedisChannel(client, RedisConfig{ChannelPrefix: "test:notify:"})

	sub := client.Subscribe(ctx, ch.ChannelFor("teacher-1"))
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	require.NoError(t, ch.Deliver(ctx, sampleNotification()))

	select {
	case msg := <-sub.Channel():
		assert.Equal(t, "test:notify:teacher-1", msg.Channel)
		var got domain.Notification
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
		assert.Equal(t, "doc-1", got.DocumentID)
		assert.Equal(t, "teacher-1", got.RecipientID)
	case <-time.After(2 * time.Second):
		t.Fatal("no message received")
	}
}

func TestRedisChannel_AppendsToStream(t *testing.T) {
	_, client := newTestRedis(t)
	ctx := context.Background()
	ch := NewRedisChannel(client, RedisConfig{Stream: "test:notifications", MaxLen: 100})

	require.NoError(t, ch.Deliver(ctx, sampleNotification()))
	require.NoError(t, ch.Deliver(ctx, sampleNotification()))

	entries, err := client.XRange(ctx, "test:notifications", "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "teacher-1", entries[0].Values["recipient_id"])
	assert.Equal(t, "doc-1", entries[0].Values["document_id"])
}

func TestRedisChannel_FailsWhenServerIsDown(t *testing.T) {
	srv, client := newTestRedis(t)
	ch := NewRedisChannel(client, RedisConfig{})
	srv.Close()

	err := ch.Deliver(context.Background(), sampleNotification())
	assert.Error(t, err)
}

func TestLogChannel_NeverFails(t *testing.T) {
	ch := NewLogChannel(nil)
	assert.Equal(t, "log", ch.Name())
	assert.NoError(t, ch.Deliver(context.Background(), sampleNotification()))
}
