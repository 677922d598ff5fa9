package domain

import "time"

// Category groups products on the menu.
type Category struct {
	ID          string    `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	SortOrder   int       `json:"sort_order" bson:"sort_order"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

type Product struct {
	ID          string    `json:"id" bson:"_id"`
	CategoryID  string    `json:"category_id" bson:"category_id"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Price       float64   `json:"price" bson:"price"`
	Available   bool      `json:"available" bson:"available"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}
