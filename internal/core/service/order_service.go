package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mesapos/restaurant-pos/internal/core/domain"
	"github.com/mesapos/restaurant-pos/internal/core/ports"
	"github.com/mesapos/restaurant-pos/pkg/money"
)

type OrderService struct {
	orders   ports.OrderRepository
	products ports.ProductRepository
	tables   ports.TableRepository
	dedup    ports.OrderDeduper
	events   ports.OrderEventPublisher
	logger   zerolog.Logger
	now      func() time.Time
}

// NewOrderService wires the order use cases. dedup and events may be nil.
func NewOrderService(
	orders ports.OrderRepository,
	products ports.ProductRepository,
	tables ports.TableRepository,
	dedup ports.OrderDeduper,
	events ports.OrderEventPublisher,
	logger zerolog.Logger,
) *OrderService {
	return &OrderService{
		orders:   orders,
		products: products,
		tables:   tables,
		dedup:    dedup,
		events:   events,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Create places an order from the table's QR menu. If an idempotency key is
// provided and already seen, the earlier order is returned without side effects.
func (s *OrderService) Create(ctx context.Context, input ports.CreateOrderInput) (*ports.CreateOrderResult, error) {
	if input.TableNumber <= 0 {
		return nil, fmt.Errorf("%w: table number must be positive", domain.ErrInvalidInput)
	}
	if len(input.Items) == 0 {
		return nil, domain.ErrEmptyOrder
	}
	if _, err := s.tables.FindByNumber(ctx, input.TableNumber); err != nil {
		return nil, err
	}

	items, total, err := s.priceItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	claimed := false
	if input.IdempotencyKey != "" && s.dedup != nil {
		existingID, ok, err := s.dedup.Claim(ctx, input.IdempotencyKey, id)
		switch {
		case err != nil:
			s.logger.Warn().Err(err).Str("idempotency_key", input.IdempotencyKey).Msg("dedup claim failed, creating anyway")
		case !ok:
			return s.replay(ctx, input.IdempotencyKey, existingID)
		default:
			claimed = true
		}
	}

	now := s.now()
	order := &domain.Order{
		ID:           id,
		TableNumber:  input.TableNumber,
		CustomerName: strings.TrimSpace(input.CustomerName),
		Items:        items,
		Total:        total,
		Status:       domain.OrderPending,
		Notes:        strings.TrimSpace(input.Notes),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		s.logger.Error().Err(err).Int("table", input.TableNumber).Msg("failed to create order")
		if claimed {
			if rerr := s.dedup.Release(ctx, input.IdempotencyKey); rerr != nil {
				s.logger.Warn().Err(rerr).Msg("failed to release idempotency key")
			}
		}
		return nil, err
	}

	s.logger.Info().Str("order_id", order.ID).Int("table", order.TableNumber).Float64("total", order.Total).Msg("order created")
	s.publish(domain.OrderEvent{
		Kind:         domain.OrderCreated,
		OrderID:      order.ID,
		TableNumber:  order.TableNumber,
		CustomerName: order.CustomerName,
		Status:       order.Status,
		Total:        order.Total,
		At:           now,
	})

	return &ports.CreateOrderResult{Order: order}, nil
}

func (s *OrderService) replay(ctx context.Context, key, existingID string) (*ports.CreateOrderResult, error) {
	existing, err := s.orders.FindByID(ctx, existingID)
	if errors.Is(err, domain.ErrOrderNotFound) {
		return nil, domain.ErrRequestInFlight
	}
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("idempotency_key", key).Str("order_id", existing.ID).Msg("idempotent replay")
	return &ports.CreateOrderResult{Order: existing, Replayed: true}, nil
}

// priceItems snapshots catalog names and prices into the order lines.
func (s *OrderService) priceItems(ctx context.Context, in []ports.OrderItemInput) ([]domain.OrderItem, float64, error) {
	ids := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, it := range in {
		if it.Quantity <= 0 {
			return nil, 0, fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidInput)
		}
		if !seen[it.ProductID] {
			seen[it.ProductID] = true
			ids = append(ids, it.ProductID)
		}
	}

	found, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	byID := make(map[string]*domain.Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}

	items := make([]domain.OrderItem, 0, len(in))
	var total float64
	for _, it := range in {
		p, ok := byID[it.ProductID]
		if !ok {
			return nil, 0, fmt.Errorf("%w: %s", domain.ErrProductNotFound, it.ProductID)
		}
		if !p.Available {
			return nil, 0, fmt.Errorf("%w: %s", domain.ErrProductUnavailable, p.Name)
		}
		items = append(items, domain.OrderItem{
			ProductID: p.ID,
			Name:      p.Name,
			Quantity:  it.Quantity,
			UnitPrice: p.Price,
		})
		total += p.Price * float64(it.Quantity)
	}
	return items, money.Round(total), nil
}

func (s *OrderService) Get(ctx context.Context, id string) (*domain.Order, error) {
	return s.orders.FindByID(ctx, id)
}

func (s *OrderService) List(ctx context.Context, filter ports.ListOrdersFilter) ([]*domain.Order, error) {
	return s.orders.List(ctx, filter)
}

// UpdateStatus moves an order one step forward in the kitchen lifecycle.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, order.Status, status)
	}

	now := s.now()
	if err := s.orders.UpdateStatus(ctx, id, order.Status, status, now); err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}

	s.logger.Info().Str("order_id", id).Str("from", string(order.Status)).Str("to", string(status)).Msg("order status changed")
	order.Status = status
	order.UpdatedAt = now

	s.publish(domain.OrderEvent{
		Kind:         domain.OrderStatusChanged,
		OrderID:      order.ID,
		TableNumber:  order.TableNumber,
		CustomerName: order.CustomerName,
		Status:       status,
		Total:        order.Total,
		At:           now,
	})
	return order, nil
}

func (s *OrderService) Delete(ctx context.Context, id string) error {
	return s.orders.Delete(ctx, id)
}

func (s *OrderService) publish(ev domain.OrderEvent) {
	if s.events != nil {
		s.events.Enqueue(ev)
	}
}
