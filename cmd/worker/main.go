package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"storemail/internal/config"
	"storemail/internal/domain/customer"
	"storemail/internal/domain/notification"
	"storemail/internal/infra/email"
	"storemail/internal/infra/queue"
	"storemail/internal/infra/store"
	"storemail/internal/infra/template"
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

	slog.Info("worker configuration loaded")

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

	customerStore, err := store.NewCustomerStore(cfg.Supabase.URL, cfg.Supabase.ServiceKey, cfg.Supabase.CustomerTable)
	if err != nil {
		slog.Error("failed to initialize supabase store", "error", err)
		os.Exit(1)
	}
	slog.Info("supabase customer store initialized", "table", cfg.Supabase.CustomerTable)

	notificationService := notification.NewService(tmplEngine, cfg.Email.DefaultLocale, emailProvider)
	workflow := customer.NewWorkflow(customerStore, notificationService)

	// ==========================================
	// Asynq Server (event processing)
	// ==========================================

	asynqServer := queue.NewServer(
		queue.RedisOpt(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB),
		cfg.Events.Concurrency,
	)

	go func() {
		slog.Info("worker starting",
			"concurrency", cfg.Events.Concurrency,
			"redis", cfg.Redis.Address,
			"provider", emailProvider.Name(),
		)
		if err := asynqServer.Run(queue.NewMux(workflow)); err != nil {
			slog.Error("worker failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// ==========================================
	// Graceful Shutdown
	// ==========================================

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down worker...")
	asynqServer.Shutdown()
	slog.Info("worker exited gracefully")
}
