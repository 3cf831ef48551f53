// Package cart builds the cart view. Cart rows only hold a product id and a
// quantity; name, price and the rest are read from the product at view time
// so an edited product shows up in every cart immediately.
package cart

import (
	"github.com/01moynul/marketpro-admin/internal/models"
	"github.com/shopspring/decimal"
)

// Lookup returns the current state of a product and whether it exists.
type Lookup func(productID int64) (models.Product, bool)

// MapLookup serves lookups from a preloaded id-keyed map.
func MapLookup(products map[int64]models.Product) Lookup {
	return func(id int64) (models.Product, bool) {
		p, ok := products[id]
		return p, ok
	}
}

// ProductIDs returns the distinct product ids referenced by items, in first-seen order.
func ProductIDs(items []models.CartItem) []int64 {
	seen := make(map[int64]struct{}, len(items))
	ids := make([]int64, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it.ProductID]; ok {
			continue
		}
		seen[it.ProductID] = struct{}{}
		ids = append(ids, it.ProductID)
	}
	return ids
}

// ProjectView joins each row with its product. Rows whose product is gone
// are left out. The result is never nil.
func ProjectView(items []models.CartItem, lookup Lookup) []models.CartLine {
	lines := make([]models.CartLine, 0, len(items))
	for _, it := range items {
		p, ok := lookup(it.ProductID)
		if !ok {
			continue
		}
		lines = append(lines, models.CartLine{
			ID:          it.ID,
			ProductID:   it.ProductID,
			Quantity:    it.Quantity,
			CreatedAt:   it.CreatedAt,
			Name:        p.Name,
			Price:       p.Price,
			Image:       p.Image,
			Category:    p.Category,
			Description: p.Description,
			Stock:       p.Stock,
			LineTotal:   p.Price.Mul(decimal.NewFromInt(int64(it.Quantity))),
		})
	}
	return lines
}

// Summarize totals the projected lines.
func Summarize(lines []models.CartLine) models.CartSummary {
	sum := models.CartSummary{Items: lines, Subtotal: decimal.Zero}
	if sum.Items == nil {
		sum.Items = []models.CartLine{}
	}
	for _, l := range lines {
		sum.Subtotal = sum.Subtotal.Add(l.LineTotal)
		sum.TotalItems += l.Quantity
	}
	return sum
}
