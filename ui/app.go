package ui

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"gorosi/app"
	"gorosi/internal/engine"
)

// App is the HTTP surface of the risk engine: stateless JSON endpoints for
// the two decision problems.
type App struct {
	router   *chi.Mux
	sequence *app.SequenceService
	vendors  *app.VendorService
}

// Config holds HTTP application configuration
type Config struct {
	Port string
}

// NewApp creates the HTTP application with its services wired in.
func NewApp() *App {
	a := &App{
		router:   chi.NewRouter(),
		sequence: app.NewSequenceService(),
		vendors:  app.NewVendorService(engine.NewModeEstimator()),
	}
	a.setupMiddleware()
	a.setupRoutes()
	return a
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/api/risk/sequence", a.handleSequence)
	a.router.Get("/api/risk/vendors", a.handleVendors)
	a.router.Get("/api/risk/sequence/report", a.handleSequenceReport)
	a.router.Get("/api/risk/vendors/report", a.handleVendorReport)
	a.router.Get("/health", a.handleHealth)
}

// Router exposes the handler for serving and for tests.
func (a *App) Router() http.Handler {
	return a.router
}

// Start runs the HTTP server on the configured port.
func (a *App) Start(config Config) error {
	port := config.Port
	if port == "" {
		port = "8080"
	}
	log.Printf("Risk engine listening on :%s", port)
	return http.ListenAndServe(":"+port, a.router)
}
