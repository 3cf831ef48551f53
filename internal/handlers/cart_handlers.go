package handlers

import (
	"net/http"

	"github.com/01moynul/marketpro-admin/internal/cart"
	"github.com/01moynul/marketpro-admin/internal/models"
	"github.com/gin-gonic/gin"
)

// AddToCartInput defines the JSON for adding an item to the cart.
// Quantity is optional and defaults to 1.
type AddToCartInput struct {
	ProductID int64 `json:"product_id" binding:"required,gt=0"`
	Quantity  *int  `json:"quantity" binding:"omitempty,gte=1"`
}

// cartLines loads the cart rows and joins them with the products as they are
// now. Rows whose product is gone are not shown.
func (h *Handlers) cartLines(c *gin.Context) ([]models.CartLine, error) {
	ctx := c.Request.Context()

	items, err := h.Store.ListCartItems(ctx)
	if err != nil {
		return nil, err
	}
	products, err := h.Store.ProductsByIDs(ctx, cart.ProductIDs(items))
	if err != nil {
		return nil, err
	}
	return cart.ProjectView(items, cart.MapLookup(products)), nil
}

// GetCart handles GET /api/cart.
func (h *Handlers) GetCart(c *gin.Context) {
	lines, err := h.cartLines(c)
	if err != nil {
		storeError(c, err, "Cart item not found", "Error fetching cart")
		return
	}
	c.JSON(http.StatusOK, lines)
}

// GetCartSummary handles GET /api/cart/summary.
func (h *Handlers) GetCartSummary(c *gin.Context) {
	lines, err := h.cartLines(c)
	if err != nil {
		storeError(c, err, "Cart item not found", "Error fetching cart")
		return
	}
	c.JSON(http.StatusOK, cart.Summarize(lines))
}

// AddToCart handles POST /api/cart.
func (h *Handlers) AddToCart(c *gin.Context) {
	var input AddToCartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		jsonError(c, http.StatusBadRequest, err.Error())
		return
	}

	quantity := 1
	if input.Quantity != nil {
		quantity = *input.Quantity
	}

	item, err := h.Store.AddCartItem(c.Request.Context(), input.ProductID, quantity)
	if err != nil {
		storeError(c, err, "Cart item not found", "Error adding to cart")
		return
	}
	c.JSON(http.StatusCreated, item)
}

// RemoveFromCart handles DELETE /api/cart/:id. Any authenticated caller may
// remove any row.
func (h *Handlers) RemoveFromCart(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		jsonError(c, http.StatusBadRequest, "Invalid cart item id")
		return
	}

	if err := h.Store.RemoveCartItem(c.Request.Context(), id); err != nil {
		storeError(c, err, "Cart item not found", "Error removing from cart")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart"})
}
