package domain

import (
	"fmt"
	"time"
)

// OrderStatus is the kitchen lifecycle state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderCompleted OrderStatus = "completed"
)

// validTransitions is forward-only; completed is terminal.
var validTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:   {OrderPreparing},
	OrderPreparing: {OrderReady},
	OrderReady:     {OrderCompleted},
}

// ParseOrderStatus validates a wire value.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch st := OrderStatus(s); st {
	case OrderPending, OrderPreparing, OrderReady, OrderCompleted:
		return st, nil
	}
	return "", fmt.Errorf("%w: unknown order status %q", ErrInvalidInput, s)
}

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Active reports whether the order still needs attention from staff.
func (s OrderStatus) Active() bool { return s != OrderCompleted }

// OrderItem is a line captured at order time. Name and UnitPrice are copied
// from the catalog so later price changes do not rewrite history.
type OrderItem struct {
	ProductID string  `json:"product_id" bson:"product_id"`
	Name      string  `json:"name" bson:"name"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	UnitPrice float64 `json:"unit_price" bson:"unit_price"`
}

type Order struct {
	ID           string      `json:"id" bson:"_id"`
	TableNumber  int         `json:"table_number" bson:"table_number"`
	CustomerName string      `json:"customer_name" bson:"customer_name"`
	Items        []OrderItem `json:"items" bson:"items"`
	Total        float64     `json:"total" bson:"total"`
	Status       OrderStatus `json:"status" bson:"status"`
	Notes        string      `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt    time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at" bson:"updated_at"`
}

// OrderEvent describes a change worth telling staff about.
type OrderEvent struct {
	Kind         OrderEventKind
	OrderID      string
	TableNumber  int
	CustomerName string
	Status       OrderStatus
	Total        float64
	At           time.Time
}

type OrderEventKind string

const (
	OrderCreated       OrderEventKind = "created"
	OrderStatusChanged OrderEventKind = "status_changed"
)
