// Package server provides the HTTP server and route wiring
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/forkcast/v2/internal/infrastructure/config"
	"github.com/forkcast/v2/internal/infrastructure/http/handlers"
	"github.com/forkcast/v2/internal/infrastructure/http/middleware"
	"github.com/forkcast/v2/internal/ports/inbound"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/net/http2"
)

// Server represents the HTTP server
type Server struct {
	config              *config.Config
	logger              *zap.Logger
	router              *chi.Mux
	server              *http.Server
	shoppingListService inbound.ShoppingListService
	inventoryService    inbound.InventoryService
	database            handlers.HealthChecker
}

// NewServer creates a new HTTP server instance
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	shoppingListService inbound.ShoppingListService,
	inventoryService inbound.InventoryService,
	database handlers.HealthChecker,
) *Server {
	s := &Server{
		config:              cfg,
		logger:              logger,
		shoppingListService: shoppingListService,
		inventoryService:    inventoryService,
		database:            database,
	}

	s.router = s.setupRouter()

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           s.router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    cfg.Server.MaxHeaderBytes,
	}

	return s
}

// setupRouter configures the HTTP router with middleware and routes
func (s *Server) setupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Security())
	r.Use(middleware.CORS())
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(chimiddleware.Compress(5))

	if s.config.Monitoring.EnableMetrics {
		metrics := middleware.NewMetrics()
		r.Use(metrics.Handler())
		r.Handle(s.config.Monitoring.MetricsPath, promhttp.Handler())
	}

	health := handlers.NewHealthHandlers(s.config.App.Version, s.database, s.logger)
	r.Get(s.config.Monitoring.HealthCheckPath, health.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		s.setupAPIRoutes(r)
	})

	return r
}

// setupAPIRoutes configures REST API routes
func (s *Server) setupAPIRoutes(r chi.Router) {
	lists := handlers.NewShoppingListHandlers(s.shoppingListService, s.logger)
	inv := handlers.NewInventoryHandlers(s.inventoryService, s.logger)

	r.Route("/shopping-list", func(r chi.Router) {
		r.Get("/", lists.GetWeek)
		r.Post("/sync", lists.Sync)
		r.Post("/items", lists.AddItem)
		r.Patch("/items/{id}", lists.SetItemChecked)
		r.Post("/toggle", lists.ToggleInventoryItem)
	})

	r.Route("/inventory", func(r chi.Router) {
		r.Get("/", inv.ListItems)
		r.Post("/", inv.CreateItem)
		r.Delete("/{id}", inv.DeleteItem)
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server",
		zap.String("address", s.server.Addr),
		zap.String("environment", s.config.App.Environment),
	)

	if err := http2.ConfigureServer(s.server, nil); err != nil {
		s.logger.Error("Failed to configure HTTP/2", zap.Error(err))
	}

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
