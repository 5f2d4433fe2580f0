// Package http provides the loopback API server that serves decrypted finance
// data and master key lifecycle operations to the local UI.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/metric"

	cryptoHTTP "github.com/allisson/finvault/internal/crypto/http"
	financeHTTP "github.com/allisson/finvault/internal/finance/http"
	"github.com/allisson/finvault/internal/metrics"
)

// Handlers bundles the route handlers served by the API server.
type Handlers struct {
	Key         *cryptoHTTP.KeyHandler
	Account     *financeHTTP.AccountHandler
	Transaction *financeHTTP.TransactionHandler
	Pool        *financeHTTP.PoolHandler
	Allocation  *financeHTTP.AllocationHandler
}

// Options controls the optional middleware applied to the API server.
type Options struct {
	CORSEnabled             bool
	CORSAllowOrigins        string
	RateLimitEnabled        bool
	RateLimitRequestsPerSec float64
	RateLimitBurst          int
	MetricsNamespace        string
	MeterProvider           metric.MeterProvider
}

// Server represents the loopback API HTTP server.
type Server struct {
	server *http.Server
	logger *slog.Logger
}

// NewServer creates a new API server with all routes registered.
func NewServer(
	host string,
	port int,
	handlers Handlers,
	opts Options,
	logger *slog.Logger,
) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New())
	router.Use(CustomLoggerMiddleware(logger))

	if opts.MeterProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(opts.MeterProvider, opts.MetricsNamespace))
	}

	if corsMiddleware := createCORSMiddleware(opts.CORSEnabled, opts.CORSAllowOrigins, logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if opts.RateLimitEnabled {
		router.Use(RateLimitMiddleware(
			opts.RateLimitRequestsPerSec,
			opts.RateLimitBurst,
			logger,
		))
	}

	registerRoutes(router, handlers)

	return &Server{
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// registerRoutes wires all handlers into the router.
func registerRoutes(router *gin.Engine, handlers Handlers) {
	router.GET("/health", HealthHandler)
	router.GET("/ready", ReadinessHandler)

	v1 := router.Group("/v1")

	if handlers.Key != nil {
		v1.GET("/key", handlers.Key.StatusHandler)
		v1.POST("/key", handlers.Key.InitializeHandler)
		v1.DELETE("/key", handlers.Key.DeleteHandler)
		v1.POST("/key/export", handlers.Key.ExportHandler)
		v1.POST("/key/import", handlers.Key.ImportHandler)
		v1.POST("/key/lock", handlers.Key.LockHandler)
	}

	if handlers.Account != nil {
		v1.GET("/accounts", handlers.Account.ListHandler)
		v1.POST("/accounts", handlers.Account.CreateHandler)
		v1.PUT("/accounts/:id", handlers.Account.UpdateHandler)
		v1.DELETE("/accounts/:id", handlers.Account.DeleteHandler)
	}

	if handlers.Transaction != nil {
		v1.GET("/transactions", handlers.Transaction.ListHandler)
		v1.POST("/transactions", handlers.Transaction.CreateHandler)
		v1.DELETE("/transactions/:id", handlers.Transaction.DeleteHandler)
	}

	if handlers.Pool != nil {
		v1.GET("/pools", handlers.Pool.ListHandler)
		v1.POST("/pools", handlers.Pool.CreateHandler)
		v1.PUT("/pools/:id", handlers.Pool.UpdateHandler)
		v1.DELETE("/pools/:id", handlers.Pool.DeleteHandler)
	}

	if handlers.Allocation != nil {
		v1.GET("/allocations", handlers.Allocation.ListHandler)
		v1.POST("/allocations", handlers.Allocation.CreateHandler)
		v1.DELETE("/allocations/:id", handlers.Allocation.DeleteHandler)
	}
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// Start starts the API HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting api server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start api server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the API HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down api server")
	return s.server.Shutdown(ctx)
}
