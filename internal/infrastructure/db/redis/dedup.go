package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const orderDedupTTL = 10 * time.Minute

// OrderDeduper binds Idempotency-Key headers to the order they created.
// Key format: idempotency:order:<key>
type OrderDeduper struct {
	client *redis.Client
	ttl    time.Duration
}

// NewOrderDeduper creates an OrderDeduper wrapping the given Redis client.
func NewOrderDeduper(client *redis.Client) *OrderDeduper {
	return &OrderDeduper{client: client, ttl: orderDedupTTL}
}

// Claim atomically binds key to orderID with SET NX. On conflict the order ID
// already bound to key is returned.
func (d *OrderDeduper) Claim(ctx context.Context, key, orderID string) (string, bool, error) {
	ok, err := d.client.SetNX(ctx, d.key(key), orderID, d.ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("dedup claim: %w", err)
	}
	if ok {
		return "", true, nil
	}

	existing, err := d.client.Get(ctx, d.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		// Expired between SETNX and GET; treat as fresh.
		return d.Claim(ctx, key, orderID)
	}
	if err != nil {
		return "", false, fmt.Errorf("dedup lookup: %w", err)
	}
	return existing, false, nil
}

// Release forgets key so a failed submission can be retried with it.
func (d *OrderDeduper) Release(ctx context.Context, key string) error {
	return d.client.Del(ctx, d.key(key)).Err()
}

func (d *OrderDeduper) key(k string) string {
	return "idempotency:order:" + k
}
