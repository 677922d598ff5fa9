package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/mesapos/restaurant-pos/internal/api/metrics"
	"github.com/mesapos/restaurant-pos/internal/core/domain"
)

const (
	streamKey       = "notifications:stream"
	cursorKeyPrefix = "notifications:cursor:"
	payloadField    = "payload"

	streamMaxLen = 500
	readBatch    = 100
	cursorTTL    = 24 * time.Hour
)

// NotificationStream keeps recent notifications in a capped Redis stream.
// Each user has a cursor holding the last stream ID they were sent.
type NotificationStream struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewNotificationStream(client *redis.Client, log zerolog.Logger) *NotificationStream {
	return &NotificationStream{client: client, log: log}
}

func (s *NotificationStream) Publish(ctx context.Context, n domain.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	return s.client.XAdd(ctx, &redis.XAddArgs{
		Stream: streamKey,
		MaxLen: streamMaxLen,
		Approx: true,
		Values: map[string]any{payloadField: payload},
	}).Err()
}

// ReadSince returns up to readBatch notifications newer than the user's
// cursor. A user without a cursor starts at the current tail and gets nothing,
// so signing in does not replay history.
func (s *NotificationStream) ReadSince(ctx context.Context, userID string) ([]domain.Notification, error) {
	ck := cursorKeyPrefix + userID

	cursor, err := s.client.Get(ctx, ck).Result()
	if errors.Is(err, redis.Nil) {
		return nil, s.positionAtTail(ctx, ck)
	}
	if err != nil {
		return nil, fmt.Errorf("read cursor: %w", err)
	}

	msgs, err := s.client.XRangeN(ctx, streamKey, "("+cursor, "+", readBatch).Result()
	if err != nil {
		return nil, fmt.Errorf("read stream: %w", err)
	}
	if len(msgs) == 0 {
		return nil, s.client.Expire(ctx, ck, cursorTTL).Err()
	}

	out := decodeEntries(msgs, s.log)
	if err := s.client.Set(ctx, ck, msgs[len(msgs)-1].ID, cursorTTL).Err(); err != nil {
		return nil, fmt.Errorf("advance cursor: %w", err)
	}
	return out, nil
}

func (s *NotificationStream) positionAtTail(ctx context.Context, ck string) error {
	tail := "0-0"
	last, err := s.client.XRevRangeN(ctx, streamKey, "+", "-", 1).Result()
	if err != nil {
		return fmt.Errorf("read stream tail: %w", err)
	}
	if len(last) > 0 {
		tail = last[0].ID
	}
	return s.client.Set(ctx, ck, tail, cursorTTL).Err()
}

// decodeEntries skips entries whose payload is not a notification. The cursor
// still moves past them, so each one is logged and counted exactly once.
func decodeEntries(msgs []redis.XMessage, log zerolog.Logger) []domain.Notification {
	out := make([]domain.Notification, 0, len(msgs))
	for _, m := range msgs {
		raw, _ := m.Values[payloadField].(string)
		var n domain.Notification
		if err := json.Unmarshal([]byte(raw), &n); err != nil {
			metrics.NotificationsCorruptTotal.Inc()
			log.Warn().Err(err).Str("stream_id", m.ID).Msg("skipping undecodable notification")
			continue
		}
		out = append(out, n)
	}
	return out
}
