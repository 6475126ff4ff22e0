package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/CaptainFAHIM/uni-ride/internal/app"
	"github.com/CaptainFAHIM/uni-ride/internal/config"
	"github.com/CaptainFAHIM/uni-ride/internal/handler"
	internalRedis "github.com/CaptainFAHIM/uni-ride/internal/redis"
	"github.com/CaptainFAHIM/uni-ride/internal/repository/postgres"
	"github.com/CaptainFAHIM/uni-ride/internal/service"
)

func main() {
	// Load configuration.
	cfg := config.Load()

	logger, err := app.NewLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before database so we can instrument DB).
	var nrApp *newrelic.Application
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			logger.Warn("failed to initialize New Relic", zap.Error(err))
		} else {
			logger.Info("New Relic enabled", zap.String("app", cfg.NewRelic.AppName))
		}
	}

	// Initialize database and apply the schema.
	db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := app.EnsureSchema(ctx, db); err != nil {
		logger.Fatal("failed to apply schema", zap.Error(err))
	}
	logger.Info("connected to PostgreSQL")

	// Initialize Redis.
	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer redisClient.Close()
	logger.Info("connected to Redis")

	// Wire dependencies.
	server := wireServer(db, redisClient, nrApp, cfg, logger)

	// Start server in goroutine.
	go func() {
		logger.Info("starting server", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(db *sql.DB, redisClient *redis.Client, nrApp *newrelic.Application, cfg *config.Config, logger *zap.Logger) *http.Server {
	// Initialize Redis stores.
	sessionStore := internalRedis.NewSessionStore(redisClient, cfg.Auth.SessionTTL)
	cacheStore := internalRedis.NewCacheStore(redisClient)

	// Initialize repositories.
	userRepo := postgres.NewUserRepository(db)
	rideRepo := postgres.NewRideRepository(db)
	messageRepo := postgres.NewMessageRepository(db)
	paymentRepo := postgres.NewPaymentRepository(db)

	// Initialize services.
	authService := service.NewAuthService(userRepo, sessionStore, logger)
	rideService := service.NewRideService(rideRepo, cacheStore, logger)
	messageService := service.NewMessageService(messageRepo, userRepo, rideRepo, logger)
	paymentService := service.NewPaymentService(paymentRepo, userRepo, logger)
	seedService := service.NewSeedService(userRepo, logger)

	// Initialize handlers.
	cookie := handler.CookieConfig{
		Name:   cfg.Auth.CookieName,
		MaxAge: cfg.Auth.SessionTTL,
		Secure: cfg.Auth.CookieSecure,
	}
	authHandler := handler.NewAuthHandler(authService, cookie, logger)
	rideHandler := handler.NewRideHandler(rideService, logger)
	messageHandler := handler.NewMessageHandler(messageService, logger)
	paymentHandler := handler.NewPaymentHandler(paymentService, logger)
	seedHandler := handler.NewSeedHandler(seedService, logger)

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		AuthHandler:    authHandler,
		RideHandler:    rideHandler,
		MessageHandler: messageHandler,
		PaymentHandler: paymentHandler,
		SeedHandler:    seedHandler,
		AuthService:    authService,
		CookieName:     cfg.Auth.CookieName,
		SeedEnabled:    cfg.Seed.Enabled,
		RedisClient:    redisClient,
		NewRelicApp:    nrApp,
	})

	// Create HTTP server.
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
