package ports

import (
	"context"
	"time"

	"github.com/mesapos/restaurant-pos/internal/core/domain"
)

// ListOrdersFilter carries the query parameters for listing orders.
type ListOrdersFilter struct {
	ActiveOnly  bool               // excludes completed
	Status      domain.OrderStatus // optional exact match
	TableNumber int                // optional; 0 = any table
	From        time.Time          // optional: created_at >= From
	To          time.Time          // optional: created_at < To
}

type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	// List returns matching orders, newest first.
	List(ctx context.Context, filter ListOrdersFilter) ([]*domain.Order, error)
	// UpdateStatus sets status only if the stored status still equals from.
	UpdateStatus(ctx context.Context, id string, from, to domain.OrderStatus, at time.Time) error
	Delete(ctx context.Context, id string) error
}

// OrderDeduper remembers Idempotency-Key headers for a bounded window.
type OrderDeduper interface {
	// Claim binds key to orderID. When the key is already bound it returns
	// the earlier order ID and claimed=false.
	Claim(ctx context.Context, key, orderID string) (existingID string, claimed bool, err error)
	// Release forgets key, so a failed create can be retried.
	Release(ctx context.Context, key string) error
}

// OrderEventPublisher receives order events for asynchronous fan-out.
type OrderEventPublisher interface {
	Enqueue(ev domain.OrderEvent)
}
