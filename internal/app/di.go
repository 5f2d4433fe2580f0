// Package app provides the dependency injection container for assembling the
// local vault daemon.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	appcache "github.com/allisson/finvault/internal/cache"
	"github.com/allisson/finvault/internal/config"
	cryptoService "github.com/allisson/finvault/internal/crypto/service"
	cryptoUseCase "github.com/allisson/finvault/internal/crypto/usecase"
	financeRepository "github.com/allisson/finvault/internal/finance/repository"
	financeService "github.com/allisson/finvault/internal/finance/service"
	financeUseCase "github.com/allisson/finvault/internal/finance/usecase"
	appHTTP "github.com/allisson/finvault/internal/http"
	"github.com/allisson/finvault/internal/keystore"
	"github.com/allisson/finvault/internal/metrics"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger          *slog.Logger
	keyStore        *keystore.Store
	entityCache     *appcache.EntityCache
	remoteClient    *financeRepository.RemoteClient
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Crypto and finance services
	envelopeCodec   *cryptoService.EnvelopeCodec
	phraseCodec     *cryptoService.RecoveryPhraseCodec
	entityEncryptor *financeService.EntityEncryptor

	// Use Cases
	keyUseCase         cryptoUseCase.KeyUseCase
	accountUseCase     financeUseCase.AccountUseCase
	transactionUseCase financeUseCase.TransactionUseCase
	poolUseCase        financeUseCase.PoolUseCase
	allocationUseCase  financeUseCase.AllocationUseCase

	// Servers
	httpServer    *appHTTP.Server
	metricsServer *appHTTP.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                     sync.Mutex
	loggerInit             sync.Once
	keyStoreInit           sync.Once
	entityCacheInit        sync.Once
	remoteClientInit       sync.Once
	metricsProviderInit    sync.Once
	businessMetricsInit    sync.Once
	envelopeCodecInit      sync.Once
	phraseCodecInit        sync.Once
	entityEncryptorInit    sync.Once
	keyUseCaseInit         sync.Once
	accountUseCaseInit     sync.Once
	transactionUseCaseInit sync.Once
	poolUseCaseInit        sync.Once
	allocationUseCaseInit  sync.Once
	httpServerInit         sync.Once
	metricsServerInit      sync.Once
	initErrors             map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
// It creates a new logger on first access based on the log level in configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// KeyStore returns the local master key store.
func (c *Container) KeyStore() (*keystore.Store, error) {
	var err error
	c.keyStoreInit.Do(func() {
		c.keyStore, err = keystore.Open(c.config.KeyStorePath, c.Logger())
		if err != nil {
			c.initErrors["keyStore"] = fmt.Errorf("failed to open key store: %w", err)
		}
	})
	if err != nil {
		return nil, c.initErrors["keyStore"]
	}
	if storedErr, exists := c.initErrors["keyStore"]; exists {
		return nil, storedErr
	}
	return c.keyStore, nil
}

// EntityCache returns the decrypted-entity LRU cache.
func (c *Container) EntityCache() (*appcache.EntityCache, error) {
	var err error
	c.entityCacheInit.Do(func() {
		c.entityCache, err = appcache.New(c.config.CacheSize)
		if err != nil {
			c.initErrors["entityCache"] = fmt.Errorf("failed to create entity cache: %w", err)
		}
	})
	if err != nil {
		return nil, c.initErrors["entityCache"]
	}
	if storedErr, exists := c.initErrors["entityCache"]; exists {
		return nil, storedErr
	}
	return c.entityCache, nil
}

// RemoteClient returns the remote sync server client.
func (c *Container) RemoteClient() *financeRepository.RemoteClient {
	c.remoteClientInit.Do(func() {
		c.remoteClient = financeRepository.NewRemoteClient(
			c.config.RemoteBaseURL,
			c.config.RemoteAuthToken,
			c.config.RemoteTimeout,
			c.config.RemoteRetryMax,
			c.Logger(),
		)
	})
	return c.remoteClient
}

// MetricsProvider returns the metrics provider, or nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	var err error
	c.metricsProviderInit.Do(func() {
		if !c.config.MetricsEnabled {
			return
		}
		c.metricsProvider, err = metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["metricsProvider"] = fmt.Errorf("failed to create metrics provider: %w", err)
		}
	})
	if err != nil {
		return nil, c.initErrors["metricsProvider"]
	}
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder. When metrics are
// disabled a no-op implementation is returned so use cases never nil-check.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	var err error
	c.businessMetricsInit.Do(func() {
		provider, providerErr := c.MetricsProvider()
		if providerErr != nil {
			err = providerErr
			c.initErrors["businessMetrics"] = providerErr
			return
		}
		if provider == nil {
			c.businessMetrics = metrics.NewNoOpBusinessMetrics()
			return
		}
		c.businessMetrics, err = metrics.NewBusinessMetrics(
			provider.MeterProvider(),
			c.config.MetricsNamespace,
		)
		if err != nil {
			c.initErrors["businessMetrics"] = fmt.Errorf("failed to create business metrics: %w", err)
		}
	})
	if err != nil {
		return nil, c.initErrors["businessMetrics"]
	}
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// HTTPServer returns the API server instance.
func (c *Container) HTTPServer() (*appHTTP.Server, error) {
	var err error
	c.httpServerInit.Do(func() {
		c.httpServer, err = c.initHTTPServer()
		if err != nil {
			c.initErrors["httpServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the metrics server instance, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*appHTTP.MetricsServer, error) {
	var err error
	c.metricsServerInit.Do(func() {
		provider, providerErr := c.MetricsProvider()
		if providerErr != nil {
			err = providerErr
			c.initErrors["metricsServer"] = providerErr
			return
		}
		if provider == nil {
			return
		}
		c.metricsServer = appHTTP.NewMetricsServer(
			c.config.ServerHost,
			c.config.MetricsPort,
			c.Logger(),
			provider,
		)
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown performs cleanup of all initialized resources.
// It should be called when the application is shutting down.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("api server shutdown: %w", err))
		}
	}

	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if c.keyStore != nil {
		if err := c.keyStore.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("key store close: %w", err))
		}
	}

	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
	}

	return nil
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// initHTTPServer creates the API server with all its dependencies.
func (c *Container) initHTTPServer() (*appHTTP.Server, error) {
	handlers, err := c.initHandlers()
	if err != nil {
		return nil, err
	}

	opts := appHTTP.Options{
		CORSEnabled:             c.config.CORSEnabled,
		CORSAllowOrigins:        c.config.CORSAllowOrigins,
		RateLimitEnabled:        c.config.RateLimitEnabled,
		RateLimitRequestsPerSec: c.config.RateLimitRequestsPerSec,
		RateLimitBurst:          c.config.RateLimitBurst,
		MetricsNamespace:        c.config.MetricsNamespace,
	}

	if provider, err := c.MetricsProvider(); err != nil {
		return nil, err
	} else if provider != nil {
		opts.MeterProvider = provider.MeterProvider()
	}

	return appHTTP.NewServer(
		c.config.ServerHost,
		c.config.ServerPort,
		handlers,
		opts,
		c.Logger(),
	), nil
}
