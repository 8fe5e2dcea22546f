package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/SscSPs/academic_docs_app/internal/adapters/notify"
	portsrepo "github.com/SscSPs/academic_docs_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/academic_docs_app/internal/core/ports/services"
	"github.com/SscSPs/academic_docs_app/internal/core/services"
	"github.com/SscSPs/academic_docs_app/internal/handlers"
	"github.com/SscSPs/academic_docs_app/internal/platform/config"
	"github.com/SscSPs/academic_docs_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/academic_docs_app/internal/repositories/memory"
	"github.com/SscSPs/academic_docs_app/pkg/database"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serveRun(cmd.Context(), configFromContext(cmd.Context()))
		},
	}
}

func serveRun(ctx context.Context, cfg *config.Config) error {
	logger := newLogger(cfg)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := services.NewMetrics(registry)

	repos, closeRepos, err := setupRepositories(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeRepos()

	channels, closeChannels, err := setupChannels(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeChannels()

	container := services.NewServiceContainer(cfg, repos, services.Adapters{
		Channels: channels,
		Alerter:  setupAlerter(cfg, logger),
		Metrics:  metrics,
	})
	// Drain pending notifications before the channels they use are closed.
	defer container.Notification.Close()

	r := handlers.NewRouter(cfg, logger)
	if err := handlers.RegisterRoutes(r, cfg, container, registry); err != nil {
		return fmt.Errorf("failed to register routes: %w", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("storage", cfg.StorageBackend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed to run: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down", slog.Duration("timeout", cfg.ShutdownPeriod))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownPeriod)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

func setupRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	if cfg.StorageBackend == config.StorageMemory {
		logger.Warn("Using in-memory storage; data is lost on restart")
		return memory.NewSeededStore().Provider(), func() {}, nil
	}

	if cfg.RunMigrations {
		logger.Info("Running database migrations...")
		if err := database.Migrate(cfg.DatabaseURL, cfg.MigrationsPath, database.MigrateUp, logger); err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
	}

	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("failed to initialize database pool: %w", err)
	}
	return pgsql.NewRepositoryProvider(pool), func() { database.ClosePgxPool(pool, logger) }, nil
}

func setupChannels(ctx context.Context, cfg *config.Config, logger *slog.Logger) ([]portssvc.NotificationChannel, func(), error) {
	channels := []portssvc.NotificationChannel{notify.NewLogChannel(logger)}
	if cfg.RedisAddr == "" {
		return channels, func() {}, nil
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
	}
	channels = append(channels, notify.NewRedisChannel(client, notify.RedisConfig{
		ChannelPrefix: cfg.NotifyChannelPrefix,
		Stream:        cfg.NotifyStream,
		MaxLen:        cfg.NotifyStreamMaxLen,
	}))
	logger.Info("Redis notification channel enabled", slog.String("addr", cfg.RedisAddr))

	return channels, func() {
		if err := client.Close(); err != nil {
			logger.Error("Error closing redis client", slog.String("error", err.Error()))
		}
	}, nil
}

func setupAlerter(cfg *config.Config, logger *slog.Logger) portssvc.OperatorAlerter {
	if !cfg.AlertsEnabled() {
		return notify.NewLogAlerter(logger)
	}
	alerter, err := notify.NewMailAlerter(notify.MailConfig{
		Host: cfg.SMTPHost,
		Port: cfg.SMTPPort,
		User: cfg.SMTPUser,
		Pass: cfg.SMTPPass,
		From: cfg.SMTPFrom,
		To:   strings.Split(cfg.OperatorEmail, ","),
	})
	if err != nil {
		logger.Warn("Operator e-mail alerts disabled", slog.String("error", err.Error()))
		return notify.NewLogAlerter(logger)
	}
	return alerter
}
