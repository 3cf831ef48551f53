package routes

import (
	"log/slog"

	"github.com/01moynul/marketpro-admin/internal/handlers"
	"github.com/01moynul/marketpro-admin/internal/middleware"
	"github.com/gin-gonic/gin"
)

// Options carries what the router needs besides the handlers.
type Options struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	Auth           *middleware.Authenticator
}

func SetupRouter(h *handlers.Handlers, opts Options) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(opts.Logger))

	// CORS must run before anything that can abort the request.
	router.Use(middleware.CORS(opts.AllowedOrigins))

	requireAuth := opts.Auth.RequireAuth()

	if h.Uploads.Dir != "" {
		router.Static("/uploads", h.Uploads.Dir)
	}

	api := router.Group("/api")
	{
		// --- Public ---
		api.GET("/ping", h.Ping)
		api.GET("/products", h.ListProducts)
		api.GET("/products/:id", h.GetProduct)

		// --- Protected ---
		protected := api.Group("/")
		protected.Use(requireAuth)
		{
			protected.POST("/products", h.CreateProduct)
			protected.PUT("/products/:id", h.UpdateProduct)
			protected.DELETE("/products/:id", h.DeleteProduct)

			protected.GET("/cart", h.GetCart)
			protected.GET("/cart/summary", h.GetCartSummary)
			protected.POST("/cart", h.AddToCart)
			protected.DELETE("/cart/:id", h.RemoveFromCart)

			protected.POST("/email/send", h.SendEmail)
			protected.POST("/email/send-to-self", h.SendEmailToSelf)
			protected.GET("/email/sent", h.ListSentEmails)

			protected.POST("/uploads/images", h.UploadImage)
		}
	}

	// The admin client resolves auth paths against its /api base URL, so the
	// auth routes are served at both /auth and /api/auth.
	authRoutes(router.Group("/auth"), h, requireAuth)
	authRoutes(api.Group("/auth"), h, requireAuth)

	return router
}

func authRoutes(g *gin.RouterGroup, h *handlers.Handlers, requireAuth gin.HandlerFunc) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.GET("/me", requireAuth, h.Me)
}
