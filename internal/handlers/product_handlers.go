package handlers

import (
	"net/http"

	"github.com/01moynul/marketpro-admin/internal/events"
	"github.com/01moynul/marketpro-admin/internal/logging"
	"github.com/01moynul/marketpro-admin/internal/models"
	"github.com/gin-gonic/gin"
)

// bindProduct reads and validates a full product body.
func bindProduct(c *gin.Context) (models.ProductInput, bool) {
	var input models.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		jsonError(c, http.StatusBadRequest, err.Error())
		return input, false
	}
	if input.Price.IsNegative() {
		jsonError(c, http.StatusBadRequest, "Price must not be negative")
		return input, false
	}
	return input, true
}

// ListProducts handles GET /api/products. Optional ?q= matches name or
// description, ?category= matches the category by slug.
func (h *Handlers) ListProducts(c *gin.Context) {
	filter := models.ProductFilter{
		Query:        c.Query("q"),
		CategorySlug: c.Query("category"),
	}

	products, err := h.Store.ListProducts(c.Request.Context(), filter)
	if err != nil {
		storeError(c, err, "Product not found", "Error fetching products")
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *Handlers) GetProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		jsonError(c, http.StatusBadRequest, "Invalid product id")
		return
	}

	p, err := h.Store.GetProduct(c.Request.Context(), id)
	if err != nil {
		storeError(c, err, "Product not found", "Error fetching products")
		return
	}
	c.JSON(http.StatusOK, p)
}

// CreateProduct handles POST /api/products.
func (h *Handlers) CreateProduct(c *gin.Context) {
	// 1. --- Bind & Validate JSON ---
	input, ok := bindProduct(c)
	if !ok {
		return
	}

	// 2. --- Save ---
	ctx := c.Request.Context()
	p, err := h.Store.CreateProduct(ctx, input)
	if err != nil {
		storeError(c, err, "Product not found", "Error adding product")
		return
	}

	// 3. --- Tell the admin and downstream consumers (best-effort) ---
	if h.Notifier != nil {
		if err := h.Notifier.ProductCreated(ctx, p); err != nil {
			logging.FromContext(ctx).Warn("product created notification", "product_id", p.ID, "error", err)
		}
	}
	h.publish(ctx, events.NewProductEvent(events.ProductCreated, p.ID, &p))

	c.JSON(http.StatusCreated, p)
}

// UpdateProduct handles PUT /api/products/:id. Every mutable field is replaced.
func (h *Handlers) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		jsonError(c, http.StatusBadRequest, "Invalid product id")
		return
	}
	input, ok := bindProduct(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	p, err := h.Store.UpdateProduct(ctx, id, input)
	if err != nil {
		storeError(c, err, "Product not found", "Error updating product")
		return
	}

	h.publish(ctx, events.NewProductEvent(events.ProductUpdated, p.ID, &p))
	c.JSON(http.StatusOK, p)
}

// DeleteProduct handles DELETE /api/products/:id.
func (h *Handlers) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		jsonError(c, http.StatusBadRequest, "Invalid product id")
		return
	}

	ctx := c.Request.Context()
	if err := h.Store.DeleteProduct(ctx, id); err != nil {
		storeError(c, err, "Product not found", "Error deleting product")
		return
	}

	h.publish(ctx, events.NewProductEvent(events.ProductDeleted, id, nil))
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}
