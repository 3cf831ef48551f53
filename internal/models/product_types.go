package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices go over the wire as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product is the model for the 'products' table.
type Product struct {
	ID           int64           `json:"id" db:"id"`
	Name         string          `json:"name" db:"name"`
	Price        decimal.Decimal `json:"price" db:"price"`
	Category     string          `json:"category" db:"category"`
	CategorySlug string          `json:"categorySlug" db:"category_slug"`
	Image        string          `json:"image" db:"image"`
	Description  string          `json:"description" db:"description"`
	Stock        int             `json:"stock" db:"stock"`
	CreatedAt    time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time       `json:"updatedAt" db:"updated_at"`
}

// ProductInput carries every mutable field. Create and update both take
// the full set; there is no partial patch.
type ProductInput struct {
	Name        string           `json:"name" binding:"required"`
	Price       *decimal.Decimal `json:"price" binding:"required"`
	Category    string           `json:"category" binding:"required"`
	Image       string           `json:"image" binding:"required"`
	Description string           `json:"description" binding:"required"`
	Stock       int              `json:"stock" binding:"gte=0"`
}

// ProductFilter narrows a product listing. Zero value lists everything.
type ProductFilter struct {
	Query        string
	CategorySlug string
}
