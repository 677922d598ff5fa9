package domain

import (
	"encoding/json"
	"time"
)

const NotificationNewOrder = "new_order"

// NotificationForStatus returns the notification type for an order entering status.
func NotificationForStatus(s OrderStatus) string {
	return "order_" + string(s)
}

type Notification struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
