package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/01moynul/marketpro-admin/internal/auth"
	"github.com/01moynul/marketpro-admin/internal/email"
	"github.com/01moynul/marketpro-admin/internal/events"
	"github.com/01moynul/marketpro-admin/internal/logging"
	"github.com/01moynul/marketpro-admin/internal/store"
	"github.com/gin-gonic/gin"
)

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	Store    *store.Store
	Tokens   *auth.Tokens
	Notifier *email.Notifier
	Events   events.Publisher
	Uploads  UploadSettings
}

func jsonError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// storeError turns a store error into a response. Known conditions get a
// specific status; anything else is logged and reported as fallback.
func storeError(c *gin.Context, err error, notFound, fallback string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		jsonError(c, http.StatusNotFound, notFound)
	case errors.Is(err, store.ErrProductReference):
		jsonError(c, http.StatusBadRequest, "Product does not exist")
	case errors.Is(err, store.ErrProductInUse):
		jsonError(c, http.StatusConflict, "Product is in a cart and cannot be deleted")
	default:
		logging.FromContext(c.Request.Context()).Error(fallback, "error", err)
		_ = c.Error(err)
		jsonError(c, http.StatusInternalServerError, fallback)
	}
}

// publish emits a catalog event. Failures are logged and otherwise ignored.
func (h *Handlers) publish(ctx context.Context, e events.Event) {
	if h.Events == nil {
		return
	}
	if err := h.Events.Publish(ctx, e); err != nil {
		logging.FromContext(ctx).Warn("publish catalog event", "type", e.Type, "product_id", e.ProductID, "error", err)
	}
}

func (h *Handlers) Ping(c *gin.Context) {
	if err := h.Store.Ping(c.Request.Context()); err != nil {
		logging.FromContext(c.Request.Context()).Error("ping database", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "pong!", "database": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "pong!", "database": "ok"})
}
