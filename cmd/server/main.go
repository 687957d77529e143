package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storemail/internal/config"
	"storemail/internal/domain/customer"
	"storemail/internal/domain/notification"
	"storemail/internal/infra/email"
	"storemail/internal/infra/health"
	"storemail/internal/infra/queue"
	"storemail/internal/infra/template"
	"storemail/internal/metrics"
	"storemail/internal/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Log.SlogLevel(),
	}))
	slog.SetDefault(logger)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"mode", cfg.Server.Mode,
		"email_provider", cfg.Email.Provider,
	)

	// ==========================================
	// Dependency Injection (Manual Wiring)
	// ==========================================

	tmplEngine, err := template.NewEngine(template.Defaults{
		StoreName:                 cfg.Templates.StoreName,
		CustomerRegisteredSubject: cfg.Templates.CustomerRegistered.Subject,
		CustomerRegisteredPreview: cfg.Templates.CustomerRegistered.Preview,
	})
	if err != nil {
		slog.Error("failed to initialize template engine", "error", err)
		os.Exit(1)
	}

	emailProvider, err := email.NewProvider(cfg)
	if err != nil {
		slog.Error("failed to initialize email provider", "error", err)
		os.Exit(1)
	}
	slog.Info("email provider initialized", "provider", emailProvider.Name())

	recorder := metrics.NewRecorder()

	notificationService := notification.NewService(tmplEngine, cfg.Email.DefaultLocale, emailProvider).
		WithObserver(recorder)

	redisOpt := queue.RedisOpt(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)
	publisher := queue.NewPublisher(redisOpt, cfg.Events.MaxRetry)
	defer publisher.Close()
	slog.Info("event publisher initialized", "redis", cfg.Redis.Address)

	redisProbe := health.NewRedisProbe(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)
	defer redisProbe.Close()

	r := router.New(cfg, router.Deps{
		Notifications: notification.NewHandler(notificationService),
		Customers:     customer.NewHandler(publisher),
		Metrics:       recorder,
		Probes:        []router.Probe{redisProbe},
	})

	// ==========================================
	// HTTP Server with Graceful Shutdown
	// ==========================================

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited gracefully")
}
