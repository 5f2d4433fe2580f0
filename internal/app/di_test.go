package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/finvault/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		ServerHost:       "127.0.0.1",
		ServerPort:       8080,
		KeyStorePath:     filepath.Join(t.TempDir(), "keystore.db"),
		RemoteBaseURL:    "http://localhost:9090",
		RemoteAuthToken:  "test-token",
		RemoteTimeout:    5 * time.Second,
		RemoteRetryMax:   0,
		CacheSize:        32,
		LogLevel:         "info",
		MetricsEnabled:   true,
		MetricsNamespace: "finvault",
		MetricsPort:      8081,
	}
}

func TestNewContainer(t *testing.T) {
	cfg := testConfig(t)
	container := NewContainer(cfg)

	require.NotNil(t, container)
	assert.Equal(t, cfg, container.Config())
}

func TestContainerLogger(t *testing.T) {
	container := NewContainer(testConfig(t))

	logger := container.Logger()
	require.NotNil(t, logger)

	// Calling Logger() again should return the same instance (singleton)
	assert.Same(t, logger, container.Logger())
}

func TestContainerKeyStore(t *testing.T) {
	container := NewContainer(testConfig(t))
	defer func() {
		require.NoError(t, container.Shutdown(context.Background()))
	}()

	store, err := container.KeyStore()
	require.NoError(t, err)
	require.NotNil(t, store)

	store2, err := container.KeyStore()
	require.NoError(t, err)
	assert.Same(t, store, store2)
}

func TestContainerKeyStoreInitializationError(t *testing.T) {
	cfg := testConfig(t)
	// A directory is not an openable database file
	cfg.KeyStorePath = t.TempDir()

	container := NewContainer(cfg)

	_, err := container.KeyStore()
	require.Error(t, err)

	// The error must be sticky across calls
	_, err2 := container.KeyStore()
	require.Error(t, err2)
}

func TestContainerUseCases(t *testing.T) {
	container := NewContainer(testConfig(t))
	defer func() {
		require.NoError(t, container.Shutdown(context.Background()))
	}()

	keyUseCase, err := container.KeyUseCase()
	require.NoError(t, err)
	require.NotNil(t, keyUseCase)

	accountUseCase, err := container.AccountUseCase()
	require.NoError(t, err)
	require.NotNil(t, accountUseCase)

	transactionUseCase, err := container.TransactionUseCase()
	require.NoError(t, err)
	require.NotNil(t, transactionUseCase)

	poolUseCase, err := container.PoolUseCase()
	require.NoError(t, err)
	require.NotNil(t, poolUseCase)

	allocationUseCase, err := container.AllocationUseCase()
	require.NoError(t, err)
	require.NotNil(t, allocationUseCase)
}

func TestContainerHTTPServer(t *testing.T) {
	container := NewContainer(testConfig(t))
	defer func() {
		require.NoError(t, container.Shutdown(context.Background()))
	}()

	server, err := container.HTTPServer()
	require.NoError(t, err)
	require.NotNil(t, server)

	server2, err := container.HTTPServer()
	require.NoError(t, err)
	assert.Same(t, server, server2)
}

func TestContainerMetricsDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.MetricsEnabled = false

	container := NewContainer(cfg)
	defer func() {
		require.NoError(t, container.Shutdown(context.Background()))
	}()

	provider, err := container.MetricsProvider()
	require.NoError(t, err)
	assert.Nil(t, provider)

	metricsServer, err := container.MetricsServer()
	require.NoError(t, err)
	assert.Nil(t, metricsServer)

	// Business metrics fall back to the no-op recorder
	businessMetrics, err := container.BusinessMetrics()
	require.NoError(t, err)
	require.NotNil(t, businessMetrics)
}

func TestContainerMetricsEnabled(t *testing.T) {
	container := NewContainer(testConfig(t))
	defer func() {
		require.NoError(t, container.Shutdown(context.Background()))
	}()

	provider, err := container.MetricsProvider()
	require.NoError(t, err)
	require.NotNil(t, provider)

	metricsServer, err := container.MetricsServer()
	require.NoError(t, err)
	require.NotNil(t, metricsServer)
}

func TestContainerShutdownWithoutInitialization(t *testing.T) {
	container := NewContainer(testConfig(t))
	assert.NoError(t, container.Shutdown(context.Background()))
}
