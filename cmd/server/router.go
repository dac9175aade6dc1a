package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mkazanov/nutrilog/internal/api"
	apiMiddleware "github.com/mkazanov/nutrilog/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	// Create API handlers using the application's services
	authHandler := api.NewAuthHandler(app.userStore, app.jwtService, app.passwordVerifier)
	foodHandler := api.NewFoodHandler(app.foodStore, app.logger)
	foodLogHandler := api.NewFoodLogHandler(app.foodLogService, app.logger)
	progressHandler := api.NewProgressHandler(app.dayLogStore, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Learned food management
			r.Post("/foods", foodHandler.CreateFood)
			r.Get("/foods", foodHandler.ListFoods)

			// Food logging conversation
			r.Post("/log/food", foodLogHandler.LogFood)
			r.Post("/log/food/choice", foodLogHandler.Choose)
			r.Post("/log/food/kcal", foodLogHandler.EnterKcal)
			r.Post("/log/food/serving", foodLogHandler.EnterServing)
			r.Post("/log/food/grams", foodLogHandler.EnterGrams)
			r.Delete("/log/food", foodLogHandler.Cancel)

			// Daily totals
			r.Get("/progress", progressHandler.GetProgress)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
