package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/SscSPs/mlm_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/mlm_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/mlm_backoffice/internal/core/ports/services"
	"github.com/SscSPs/mlm_backoffice/internal/core/services"
	"github.com/SscSPs/mlm_backoffice/internal/events"
	"github.com/SscSPs/mlm_backoffice/internal/events/kafka"
	"github.com/SscSPs/mlm_backoffice/internal/handlers"
	"github.com/SscSPs/mlm_backoffice/internal/middleware"
	"github.com/SscSPs/mlm_backoffice/internal/platform/config"
	"github.com/SscSPs/mlm_backoffice/internal/repositories/database/pgsql"
	"github.com/SscSPs/mlm_backoffice/internal/repositories/memory"
	"github.com/SscSPs/mlm_backoffice/internal/utils"
	"github.com/SscSPs/mlm_backoffice/pkg/database"
)

const shutdownTimeout = 15 * time.Second

// @title MLM Back Office API
// @version 1.0
// @description Admin adjudication of fund and withdrawal requests for the MLM back office.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, closeStorage, err := setupStorage(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("driver", cfg.StorageDriver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStorage()

	hub := events.NewHub()
	var publisher portssvc.EventPublisher = hub
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer func() {
			if err := kafkaPublisher.Close(); err != nil {
				logger.Error("Failed to close kafka publisher", slog.String("error", err.Error()))
			}
		}()
		publisher = events.NewMultiPublisher(hub, kafkaPublisher)
		logger.Info("Publishing events to kafka", slog.Any("brokers", cfg.KafkaBrokers), slog.String("topic", cfg.KafkaTopic))
	}

	serviceContainer := services.NewServiceContainer(repos, publisher, hub)

	if cfg.BootstrapAdminID != "" {
		if _, err := serviceContainer.User.EnsureUser(ctx, cfg.BootstrapAdminID, cfg.BootstrapAdminName, domain.RoleAdmin); err != nil {
			logger.Error("Failed to bootstrap admin user", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer posthogClient.Close()

	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid rate limit", slog.String("rate", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowHeaders:     []string{"Authorization", "Content-Type", middleware.IdempotencyKeyHeader},
		ExposeHeaders:    []string{middleware.IdempotencyReplayedHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimit(rateLimiter), middleware.PosthogMiddleware(posthogClient))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	idempotency := middleware.NewIdempotency(repos.IdempotencyRepo, cfg.IdempotencyTTL)
	handlers.RegisterRoutes(r, cfg, serviceContainer, idempotency)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("storage", cfg.StorageDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server")

		// SSE streams end when their subscriptions close
		hub.Close()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server stopped with error", slog.String("error", err.Error()))
	}
}

// setupStorage returns the repositories for the configured driver and a func releasing them.
func setupStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	if cfg.StorageDriver == config.StorageMemory {
		logger.Warn("Using in-memory storage; all data is lost on restart")
		return memory.NewStore().Provider(), func() {}, nil
	}

	logger.Info("Running database migrations...")
	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
		return portsrepo.RepositoryProvider{}, nil, err
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, err
	}
	logger.Info("Database connection pool established.")
	return pgsql.NewRepositoryProvider(dbPool), dbPool.Close, nil
}
