package domain

import "time"

type Expense struct {
	ID          string    `json:"id" bson:"_id"`
	Description string    `json:"description" bson:"description"`
	Amount      float64   `json:"amount" bson:"amount"`
	Category    string    `json:"category" bson:"category"`
	SpentAt     time.Time `json:"spent_at" bson:"spent_at"`
	CreatedBy   string    `json:"created_by" bson:"created_by"`
}

// Settings is the single restaurant-wide configuration document.
type Settings struct {
	RestaurantName string    `json:"restaurant_name" bson:"restaurant_name"`
	Currency       string    `json:"currency" bson:"currency"`
	TaxRate        float64   `json:"tax_rate" bson:"tax_rate"`
	UpdatedAt      time.Time `json:"updated_at" bson:"updated_at"`
}

// DailySales is the revenue booked on one calendar day (UTC).
type DailySales struct {
	Date    string  `json:"date"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

type ProductSales struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Revenue   float64 `json:"revenue"`
}

type SalesReport struct {
	From        time.Time      `json:"from"`
	To          time.Time      `json:"to"`
	Orders      int            `json:"orders"`
	Revenue     float64        `json:"revenue"`
	Expenses    float64        `json:"expenses"`
	Net         float64        `json:"net"`
	Daily       []DailySales   `json:"daily"`
	TopProducts []ProductSales `json:"top_products"`
}
