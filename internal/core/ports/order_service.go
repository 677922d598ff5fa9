package ports

import (
	"context"

	"github.com/mesapos/restaurant-pos/internal/core/domain"
)

type OrderItemInput struct {
	ProductID string
	Quantity  int
}

// CreateOrderInput is the DTO passed from the transport layer to OrderService.
type CreateOrderInput struct {
	TableNumber    int
	CustomerName   string
	Items          []OrderItemInput
	Notes          string
	IdempotencyKey string
}

// CreateOrderResult wraps the created order. Replayed is true when the
// Idempotency-Key matched an earlier submission.
type CreateOrderResult struct {
	Order    *domain.Order
	Replayed bool
}

type OrderService interface {
	Create(ctx context.Context, input CreateOrderInput) (*CreateOrderResult, error)
	Get(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context, filter ListOrdersFilter) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
	Delete(ctx context.Context, id string) error
}
