package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/01moynul/marketpro-admin/internal/auth"
	"github.com/01moynul/marketpro-admin/internal/config"
	"github.com/01moynul/marketpro-admin/internal/database"
	"github.com/01moynul/marketpro-admin/internal/email"
	"github.com/01moynul/marketpro-admin/internal/events"
	"github.com/01moynul/marketpro-admin/internal/handlers"
	"github.com/01moynul/marketpro-admin/internal/logging"
	"github.com/01moynul/marketpro-admin/internal/middleware"
	"github.com/01moynul/marketpro-admin/internal/routes"
	"github.com/01moynul/marketpro-admin/internal/store"
	"github.com/gin-gonic/gin"
)

func main() {
	// 0. --- Configuration (.env + environment) ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. --- Database pool + tables ---
	db, err := database.OpenDB(ctx, cfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db, logger); err != nil {
		logger.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	st := store.New(db)
	tokens := auth.NewTokens(cfg.JWTSecret, cfg.JWTTTL)

	// 2. --- Mail transport ---
	var sender email.Sender = email.LogSender{Logger: logger}
	if cfg.MailTransport == config.MailTransportAMQP {
		amqpSender, err := email.DialAMQP(cfg.RabbitMQURL, cfg.MailQueue)
		if err != nil {
			logger.Error("failed to connect to rabbitmq", "error", err)
			os.Exit(1)
		}
		defer amqpSender.Close()
		sender = amqpSender
	}
	notifier := email.NewNotifier(sender, st, cfg.MailFrom, cfg.MailAdminTo, logger)

	// 3. --- Catalog events ---
	var publisher events.Publisher = events.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
	}
	defer publisher.Close()

	app := &handlers.Handlers{
		Store:    st,
		Tokens:   tokens,
		Notifier: notifier,
		Events:   publisher,
		Uploads: handlers.UploadSettings{
			Dir:      cfg.UploadDir,
			BaseURL:  cfg.PublicBaseURL,
			MaxBytes: cfg.MaxUploadBytes,
		},
	}

	router := routes.SetupRouter(app, routes.Options{
		Logger:         logger,
		AllowedOrigins: cfg.AllowedOrigins(),
		Auth:           middleware.NewAuthenticator(tokens, st, cfg.UserCacheTTL),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// --- Start Server ---
	go func() {
		logger.Info("starting MarketPro admin API", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}
