package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/mkazanov/nutrilog/internal/config"
	"github.com/mkazanov/nutrilog/internal/domain/foodmatch"
	"github.com/mkazanov/nutrilog/internal/platform/openfoodfacts"
	"github.com/mkazanov/nutrilog/internal/platform/postgres"
	"github.com/mkazanov/nutrilog/internal/service/auth"
	"github.com/mkazanov/nutrilog/internal/service/foodlog"
	"github.com/mkazanov/nutrilog/internal/service/resolution"
	"github.com/mkazanov/nutrilog/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore   store.UserStore
	foodStore   store.FoodStore
	dayLogStore store.DayLogStore

	// Service interfaces
	jwtService        auth.JWTService
	passwordVerifier  auth.PasswordVerifier
	resolutionService *resolution.Service
	foodLogService    foodlog.Service
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger and
// database connection that must be established before application
// initialization.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Initialize JWT service
	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))

	// Initialize password verifier
	app.passwordVerifier = auth.NewBcryptVerifier()

	// Initialize stores
	app.userStore = postgres.NewPostgresUserStore(db, cfg.Auth.BCryptCost, logger)
	app.foodStore = postgres.NewPostgresFoodStore(db, logger)
	app.dayLogStore = postgres.NewPostgresDayLogStore(db, logger)

	// Shared matching parameters, with any configured overrides applied.
	params := foodmatch.NewParams(foodmatch.ParamsConfig{
		FuzzyAcceptScore:     cfg.Resolver.FuzzyAcceptScore,
		FuzzyFloorScore:      cfg.Resolver.FuzzyFloorScore,
		TopCandidates:        cfg.Resolver.TopCandidates,
		MaxOptions:           cfg.Resolver.MaxOptions,
		PlausibleKcalMax:     cfg.Resolver.PlausibleKcalMax,
		RobustMinEvidence:    cfg.Resolver.RobustMinEvidence,
		AutoAcceptConfidence: cfg.Resolver.AutoAcceptConfidence,
		SmallNumberMax:       cfg.Resolver.SmallNumberMax,
	})

	// Initialize the external nutrition database client
	nutritionClient := openfoodfacts.NewClient(cfg.Nutrition, logger)
	logger.Info("Nutrition database client initialized",
		slog.String("base_url", cfg.Nutrition.BaseURL))

	// Initialize the resolution service
	app.resolutionService = resolution.NewService(
		app.foodStore,
		nutritionClient,
		params,
		cfg.Nutrition.SearchPageSize,
		logger,
	)

	// Initialize the food logging service
	limits := foodlog.NewDefaultLimits()
	if cfg.Resolver.MaxManualKcal100g > 0 {
		limits.MaxManualKcal100g = cfg.Resolver.MaxManualKcal100g
	}
	if cfg.Resolver.MaxServingGrams > 0 {
		limits.MaxServingGrams = cfg.Resolver.MaxServingGrams
	}
	if cfg.Resolver.MaxMealGrams > 0 {
		limits.MaxMealGrams = cfg.Resolver.MaxMealGrams
	}

	app.foodLogService = foodlog.NewService(
		db,
		app.resolutionService,
		app.foodStore,
		app.dayLogStore,
		params,
		limits,
		logger,
	)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
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
			app.logger.Error("Failed to close database connection",
				slog.String("error", err.Error()))
		} else {
			app.logger.Info("Database connection closed")
		}
	}
}
