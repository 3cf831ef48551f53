package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem defines the struct for the 'cart' table.
type CartItem struct {
	ID        int64     `json:"id" db:"id"`
	ProductID int64     `json:"product_id" db:"product_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CartLine is a cart row combined with the product's current fields.
// It is assembled at read time and never stored.
type CartLine struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"product_id"`
	Quantity    int             `json:"quantity"`
	CreatedAt   time.Time       `json:"created_at"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Stock       int             `json:"stock"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
}

// CartSummary is the totals view over the projected lines.
type CartSummary struct {
	Items      []CartLine      `json:"items"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	TotalItems int             `json:"totalItems"`
}
