// Package api serves the dashboard pipeline as a headless JSON API.
package api

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"edadash/adapters/echarts"
	"edadash/internal/config"
	"edadash/ports"
)

// App represents the JSON API application
type App struct {
	router    *chi.Mux
	config    *config.Config
	dashboard ports.DashboardRunner
	uploads   ports.UploadStore
	charts    *echarts.Generator
}

// NewApp creates a new API application
func NewApp(cfg *config.Config, dashboard ports.DashboardRunner, store ports.UploadStore) *App {
	app := &App{
		router:    chi.NewRouter(),
		config:    cfg,
		dashboard: dashboard,
		uploads:   store,
		charts:    echarts.NewGenerator(nil),
	}

	app.setupMiddleware()
	app.setupRoutes()
	return app
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the API routes
func (a *App) setupRoutes() {
	a.router.Get("/healthz", a.handleHealth)

	a.router.Route("/api", func(r chi.Router) {
		r.Get("/columns", a.handleColumns)
		r.Get("/dashboard", a.handleDashboard)
		r.Get("/charts/{kind}", a.handleChartOption)
		r.Post("/uploads", a.handleUpload)
	})
}

// ServeHTTP implements http.Handler
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Start starts the API server
func (a *App) Start(addr string) error {
	log.Printf("Starting API server on %s", addr)
	return http.ListenAndServe(addr, a.router)
}
