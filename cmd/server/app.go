package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/parcelo/parcelo-api/internal/config"
	"github.com/parcelo/parcelo-api/internal/platform/postgres"
	"github.com/parcelo/parcelo-api/internal/platform/tracking"
	"github.com/parcelo/parcelo-api/internal/service"
	"github.com/parcelo/parcelo-api/internal/service/auth"
	"github.com/parcelo/parcelo-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore    store.UserStore
	trackerStore store.TrackerStore
	provider     tracking.Provider

	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	passwordHasher   auth.PasswordHasher

	accountService service.AccountService
}

// newApplication creates a new application instance with all dependencies
// initialized. Configuration, logging and the database connection must be
// established before calling it.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordVerifier = auth.NewBcryptVerifier()
	app.passwordHasher = auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	app.userStore = postgres.NewPostgresUserStore(db)
	app.trackerStore = postgres.NewPostgresTrackerStore(db)

	app.provider, err = setupTrackingProvider(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracking provider: %w", err)
	}

	app.accountService, err = service.NewAccountService(
		app.userStore,
		app.trackerStore,
		app.provider,
		app.jwtService,
		app.passwordVerifier,
		app.passwordHasher,
		db,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create account service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// setupTrackingProvider builds the carrier lookup client, wrapped in the
// Redis read-through cache when one is configured.
func setupTrackingProvider(cfg *config.Config, logger *slog.Logger) (tracking.Provider, error) {
	client, err := tracking.NewClient(logger.With("component", "tracking_client"), cfg.Tracking)
	if err != nil {
		return nil, err
	}

	if !cfg.Tracking.Cache.Enabled() {
		return client, nil
	}

	cacheCfg := cfg.Tracking.Cache
	kv := tracking.NewRedisKV(cacheCfg.RedisAddr, cacheCfg.RedisPassword, cacheCfg.RedisDB)
	ttl := time.Duration(cacheCfg.TTLSeconds) * time.Second

	logger.Info("Tracking lookup cache enabled",
		"redis_addr", cacheCfg.RedisAddr,
		"ttl_seconds", cacheCfg.TTLSeconds)

	return tracking.NewCachedProvider(client, kv, ttl, logger), nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
