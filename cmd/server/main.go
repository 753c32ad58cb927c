package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/grpaccess/backend/internal/config"
	"github.com/grpaccess/backend/internal/docstore"
	"github.com/grpaccess/backend/internal/handler"
	"github.com/grpaccess/backend/internal/logging"
	"github.com/grpaccess/backend/internal/metrics"
	"github.com/grpaccess/backend/internal/notify"
	"github.com/grpaccess/backend/internal/service"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		// Logger is not configured yet; fall back to the default handler.
		logging.Fatal("invalid configuration", "error", err)
	}
	logging.Setup(cfg.LogLevel)
	metrics.Register()

	store, err := openStore(context.Background(), cfg)
	if err != nil {
		logging.Fatal("failed to open document store", "driver", cfg.StoreDriver, "error", err)
	}
	defer store.Close()

	sender := notify.NewSender(notify.Config{
		APIKey:         cfg.SendGridAPIKey,
		FromEmail:      cfg.FromEmail,
		RecipientEmail: cfg.RecipientEmail,
		Timeout:        cfg.EmailTimeoutDuration(),
	})
	if cfg.SendGridAPIKey == "" {
		slog.Warn("SENDGRID_API_KEY not set; contact notifications are disabled")
	}

	statusService := service.NewStatusService(store)
	contactService := service.NewContactService(store, sender)

	routes := handler.Routes{
		Prefix:  cfg.APIPrefix,
		Root:    handler.New(store, cfg.Origins()),
		Status:  handler.NewStatusHandler(statusService),
		Contact: handler.NewContactHandler(contactService),
	}
	if cfg.ContactRateLimit > 0 {
		routes.ContactLimiter = handler.NewRateLimiter(cfg.ContactRateLimit)
		defer routes.ContactLimiter.Close()
	}

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler.NewRouter(routes),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// Long enough for a store write plus the email provider call.
		WriteTimeout: cfg.StoreTimeoutDuration() + cfg.EmailTimeoutDuration() + 5*time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr, "prefix", cfg.APIPrefix, "store", cfg.StoreDriver)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}

func openStore(ctx context.Context, cfg *config.Config) (docstore.Store, error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		slog.Warn("using in-memory document store; data is lost on restart")
		return docstore.NewMemoryStore(), nil
	}
	connectCtx, cancel := context.WithTimeout(ctx, cfg.StoreTimeoutDuration())
	defer cancel()
	pool, err := docstore.NewPool(connectCtx, cfg.DatabaseURL, cfg.DBName)
	if err != nil {
		return nil, err
	}
	return docstore.NewPgStore(pool, cfg.StoreTimeoutDuration()), nil
}
