package ports

import (
	"context"

	"github.com/mesapos/restaurant-pos/internal/core/domain"
)

// NotificationStream is the shared feed all staff poll.
type NotificationStream interface {
	Publish(ctx context.Context, n domain.Notification) error
	// ReadSince returns notifications published after the caller's last read
	// and advances its cursor. The first read only positions the cursor.
	ReadSince(ctx context.Context, userID string) ([]domain.Notification, error)
}

type NotificationService interface {
	// Process turns an order event into a published notification.
	Process(ctx context.Context, ev domain.OrderEvent) error
	Poll(ctx context.Context, userID string) ([]domain.Notification, error)
}
