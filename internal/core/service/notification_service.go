package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mesapos/restaurant-pos/internal/core/domain"
	"github.com/mesapos/restaurant-pos/internal/core/ports"
	"github.com/mesapos/restaurant-pos/pkg/money"
)

type notificationService struct {
	stream   ports.NotificationStream
	currency func() string
	log      zerolog.Logger
}

// NewNotificationService returns a NotificationService. currency supplies the
// code used when amounts appear in messages.
func NewNotificationService(stream ports.NotificationStream, currency func() string, log zerolog.Logger) ports.NotificationService {
	if currency == nil {
		currency = func() string { return money.DefaultCurrency }
	}
	return &notificationService{stream: stream, currency: currency, log: log}
}

type orderEventData struct {
	OrderID     string `json:"order_id"`
	TableNumber int    `json:"table_number"`
	Status      string `json:"status"`
}

func (s *notificationService) Process(ctx context.Context, ev domain.OrderEvent) error {
	n := domain.Notification{
		ID:        uuid.NewString(),
		CreatedAt: ev.At,
	}

	switch ev.Kind {
	case domain.OrderCreated:
		n.Type = domain.NotificationNewOrder
		n.Message = fmt.Sprintf("New order at table %d (%s)", ev.TableNumber, money.Format(ev.Total, s.currency()))
		if ev.CustomerName != "" {
			n.Message = fmt.Sprintf("New order from %s at table %d (%s)", ev.CustomerName, ev.TableNumber, money.Format(ev.Total, s.currency()))
		}
	case domain.OrderStatusChanged:
		n.Type = domain.NotificationForStatus(ev.Status)
		n.Message = fmt.Sprintf("Order for table %d is %s", ev.TableNumber, ev.Status)
	default:
		return fmt.Errorf("process order event: unknown kind %q", ev.Kind)
	}

	data, err := json.Marshal(orderEventData{OrderID: ev.OrderID, TableNumber: ev.TableNumber, Status: string(ev.Status)})
	if err != nil {
		return fmt.Errorf("process order event: %w", err)
	}
	n.Data = data

	if err := s.stream.Publish(ctx, n); err != nil {
		return fmt.Errorf("process order event: publish: %w", err)
	}

	s.log.Debug().Str("order_id", ev.OrderID).Str("type", n.Type).Msg("notification published")
	return nil
}

func (s *notificationService) Poll(ctx context.Context, userID string) ([]domain.Notification, error) {
	ns, err := s.stream.ReadSince(ctx, userID)
	if err != nil {
		return nil, err
	}
	if ns == nil {
		ns = []domain.Notification{}
	}
	return ns, nil
}
