package client

import (
	"encoding/json"
	"time"
)

// Order statuses as reported by the server.
const (
	StatusPending   = "pending"
	StatusPreparing = "preparing"
	StatusReady     = "ready"
	StatusCompleted = "completed"
)

// User is the identity stored alongside the session token.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type OrderItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// Order is the client's read-only view of a server order.
type Order struct {
	ID           string      `json:"id"`
	TableNumber  int         `json:"table_number"`
	CustomerName string      `json:"customer_name"`
	Items        []OrderItem `json:"items"`
	Total        float64     `json:"total"`
	Status       string      `json:"status"`
	Notes        string      `json:"notes,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}

// Notification is a one-shot message from the notification queue.
type Notification struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

type Table struct {
	ID       string `json:"id"`
	Number   int    `json:"number"`
	Capacity int    `json:"capacity"`
	QRCode   string `json:"qr_code"`
}

type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	SortOrder   int    `json:"sort_order"`
}

type Product struct {
	ID          string  `json:"id"`
	CategoryID  string  `json:"category_id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Available   bool    `json:"available"`
}

// Menu is what a customer sees after scanning a table's QR code.
type Menu struct {
	Table      Table      `json:"table"`
	Categories []Category `json:"categories"`
	Products   []Product  `json:"products"`
	Orders     []Order    `json:"orders"`
}

type authResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// CountPending returns the number of orders in pending status.
func CountPending(orders []Order) int {
	n := 0
	for _, o := range orders {
		if o.Status == StatusPending {
			n++
		}
	}
	return n
}
