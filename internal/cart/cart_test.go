package cart

import (
	"testing"
	"time"

	"github.com/01moynul/marketpro-admin/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func product(id int64, name, price string) models.Product {
	return models.Product{ID: id, Name: name, Price: decimal.RequireFromString(price), Category: "Lighting", Stock: 9}
}

func TestProjectViewUsesCurrentProduct(t *testing.T) {
	added := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	items := []models.CartItem{{ID: 1, ProductID: 10, Quantity: 2, CreatedAt: added}}

	products := map[int64]models.Product{10: product(10, "Lamp", "9.99")}
	lines := ProjectView(items, MapLookup(products))
	require.Len(t, lines, 1)
	require.Equal(t, "Lamp", lines[0].Name)
	require.Equal(t, added, lines[0].CreatedAt)
	require.Equal(t, "19.98", lines[0].LineTotal.StringFixed(2))

	products[10] = product(10, "Lamp Pro", "12.00")
	lines = ProjectView(items, MapLookup(products))
	require.Equal(t, "Lamp Pro", lines[0].Name)
	require.Equal(t, "24.00", lines[0].LineTotal.StringFixed(2))
}

func TestProjectViewDropsMissingProducts(t *testing.T) {
	items := []models.CartItem{
		{ID: 1, ProductID: 10, Quantity: 1},
		{ID: 2, ProductID: 11, Quantity: 1},
	}
	lines := ProjectView(items, MapLookup(map[int64]models.Product{11: product(11, "Rug", "40")}))
	require.Len(t, lines, 1)
	require.Equal(t, int64(2), lines[0].ID)

	require.NotNil(t, ProjectView(nil, MapLookup(nil)))
}

func TestSummarize(t *testing.T) {
	items := []models.CartItem{
		{ID: 1, ProductID: 10, Quantity: 3},
		{ID: 2, ProductID: 11, Quantity: 1},
	}
	products := map[int64]models.Product{
		10: product(10, "Cup", "0.10"),
		11: product(11, "Mat", "0.20"),
	}

	sum := Summarize(ProjectView(items, MapLookup(products)))
	require.Equal(t, 4, sum.TotalItems)
	require.Equal(t, "0.50", sum.Subtotal.StringFixed(2))

	empty := Summarize(nil)
	require.NotNil(t, empty.Items)
	require.True(t, empty.Subtotal.IsZero())
}

func TestProductIDsDistinct(t *testing.T) {
	ids := ProductIDs([]models.CartItem{{ProductID: 3}, {ProductID: 1}, {ProductID: 3}})
	require.Equal(t, []int64{3, 1}, ids)
}
