package app

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/aquatrack/hydrosync/internal/api"
	"github.com/aquatrack/hydrosync/internal/app/storage"
	"github.com/aquatrack/hydrosync/internal/config"
	"github.com/aquatrack/hydrosync/internal/identity"
	"github.com/aquatrack/hydrosync/internal/local"
	"github.com/aquatrack/hydrosync/internal/local/sqlite"
	"github.com/aquatrack/hydrosync/internal/status"
	pkgsync "github.com/aquatrack/hydrosync/internal/sync"
	"github.com/aquatrack/hydrosync/internal/sync/coordinator"
	"github.com/aquatrack/hydrosync/internal/telemetry"
)

const (
	defaultHTTPAddress    = "127.0.0.1:8080"
	defaultRequestTimeout = 60 * time.Second
	defaultReadTimeout    = 10 * time.Second
	defaultWriteTimeout   = 90 * time.Second
	defaultIdleTimeout    = 60 * time.Second

	// instrumentationName names the tracer handed to the sync manager and stores
	instrumentationName = "github.com/aquatrack/hydrosync"
)

// SyncAppOptions is a function that configures the sync app builder
type SyncAppOptions func(*syncAppConfig) error

// syncAppConfig collects the builder settings. It supports dependency
// injection for testing while providing sensible defaults for production.
type syncAppConfig struct {
	config *config.Config

	// Optional component overrides (primarily for testing)
	storageFactory    storage.Factory
	localStore        local.Store
	identity          identity.Provider
	syncManager       pkgsync.Manager
	statusPersistence status.StatusPersistence

	// HTTP server options
	address        string
	middlewares    []func(http.Handler) http.Handler
	requestTimeout time.Duration
	readTimeout    time.Duration
	writeTimeout   time.Duration
	idleTimeout    time.Duration

	// Telemetry components
	meterProvider  metric.MeterProvider
	tracerProvider trace.TracerProvider
	metricsHandler http.Handler
}

func baseConfig(opts ...SyncAppOptions) (*syncAppConfig, error) {
	cfg := &syncAppConfig{
		address:        defaultHTTPAddress,
		requestTimeout: defaultRequestTimeout,
		readTimeout:    defaultReadTimeout,
		writeTimeout:   defaultWriteTimeout,
		idleTimeout:    defaultIdleTimeout,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	return cfg, nil
}

// BuildComponents creates the stores, identity provider and coordinator
// without an HTTP server. The caller must Close the returned components.
func BuildComponents(ctx context.Context, opts ...SyncAppOptions) (*AppComponents, error) {
	cfg, err := baseConfig(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build base configuration: %w", err)
	}
	return buildComponents(ctx, cfg)
}

func buildComponents(ctx context.Context, b *syncAppConfig) (*AppComponents, error) {
	components := &AppComponents{}

	// Ensure cleanup happens on error
	cleanupNeeded := true
	defer func() {
		if cleanupNeeded {
			components.Close()
		}
	}()

	if err := buildStores(ctx, b, components); err != nil {
		return nil, err
	}

	if b.identity == nil {
		ids, err := NewIdentityProvider(b.config)
		if err != nil {
			return nil, fmt.Errorf("failed to create identity provider: %w", err)
		}
		b.identity = ids
	}
	components.Identity = b.identity

	syncCoordinator, err := buildSyncComponents(b, components)
	if err != nil {
		return nil, fmt.Errorf("failed to build sync components: %w", err)
	}
	components.Coordinator = syncCoordinator

	cleanupNeeded = false
	return components, nil
}

// buildStores opens the local store and the remote document store
func buildStores(ctx context.Context, b *syncAppConfig, components *AppComponents) error {
	if b.localStore == nil {
		path := b.config.GetLocalPath()
		store, err := sqlite.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open local store: %w", err)
		}
		slog.Info("Opened local store", "path", path)
		b.localStore = store
		components.onClose(func() {
			if err := store.Close(); err != nil {
				slog.Error("Failed to close local store", "error", err)
			}
		})
	}
	components.LocalStore = b.localStore

	if b.storageFactory == nil {
		var factoryOpts []storage.FactoryOption
		if b.tracerProvider != nil {
			factoryOpts = append(factoryOpts, storage.WithTracer(b.tracerProvider.Tracer(instrumentationName)))
		}
		factory, err := storage.NewStorageFactory(ctx, b.config, factoryOpts...)
		if err != nil {
			return fmt.Errorf("failed to create storage factory: %w", err)
		}
		b.storageFactory = factory
	}
	components.onClose(b.storageFactory.Cleanup)

	docs, err := b.storageFactory.CreateDocumentStore(ctx)
	if err != nil {
		return fmt.Errorf("failed to create document store: %w", err)
	}
	components.DocumentStore = docs
	return nil
}

// buildSyncComponents builds the sync manager and coordinator
func buildSyncComponents(b *syncAppConfig, components *AppComponents) (coordinator.Coordinator, error) {
	slog.Info("Initializing sync components")

	if b.syncManager == nil {
		var managerOpts []pkgsync.ManagerOption
		if b.tracerProvider != nil {
			managerOpts = append(managerOpts, pkgsync.WithTracer(b.tracerProvider.Tracer(instrumentationName)))
		}
		syncers := pkgsync.DefaultSyncers(components.Identity, components.LocalStore, components.DocumentStore)
		b.syncManager = pkgsync.NewDefaultSyncManager(syncers, managerOpts...)
	}

	if b.statusPersistence == nil {
		b.statusPersistence = status.NewFileStatusPersistence(b.config.GetStatusDir())
	}

	coordOpts := []coordinator.Option{
		coordinator.WithStatusPersistence(b.statusPersistence),
		coordinator.WithInterval(coordinator.IntervalFromPolicy(b.config.SyncPolicy)),
	}

	// Create sync metrics if meter provider is configured
	if b.meterProvider != nil {
		syncMetrics, err := telemetry.NewSyncMetrics(b.meterProvider)
		if err != nil {
			return nil, fmt.Errorf("failed to create sync metrics: %w", err)
		}
		if syncMetrics != nil {
			coordOpts = append(coordOpts, coordinator.WithSyncMetrics(syncMetrics))
			slog.Info("Sync metrics enabled")
		}
	}

	syncCoordinator := coordinator.New(b.syncManager, components.Identity, components.DocumentStore, coordOpts...)
	slog.Info("Sync components initialized successfully")

	return syncCoordinator, nil
}

// NewSyncApp creates the long running application: components plus the HTTP API
func NewSyncApp(ctx context.Context, opts ...SyncAppOptions) (*SyncApp, error) {
	cfg, err := baseConfig(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build base configuration: %w", err)
	}

	components, err := buildComponents(ctx, cfg)
	if err != nil {
		return nil, err
	}

	httpServer, err := buildHTTPServer(cfg, components)
	if err != nil {
		components.Close()
		return nil, fmt.Errorf("failed to build HTTP server: %w", err)
	}

	appCtx, cancel := context.WithCancel(ctx)

	return &SyncApp{
		config:     cfg.config,
		components: components,
		httpServer: httpServer,
		ctx:        appCtx,
		cancelFunc: cancel,
	}, nil
}

// WithConfig sets the configuration
func WithConfig(c *config.Config) SyncAppOptions {
	return func(cfg *syncAppConfig) error {
		cfg.config = c
		return nil
	}
}

// WithAddress sets the HTTP server address
func WithAddress(addr string) SyncAppOptions {
	return func(cfg *syncAppConfig) error {
		if addr == "" {
			return fmt.Errorf("address cannot be empty")
		}

		host, port, err := net.SplitHostPort(addr)
		if err != nil {
			return fmt.Errorf("address is not a valid host:port: %w", err)
		}
		if port == "" {
			return fmt.Errorf("address is not a valid port: %s", addr)
		}
		if host == "localhost" {
			host = "127.0.0.1"
		}
		if host == "" {
			host = "0.0.0.0"
		}

		if _, err := netip.ParseAddrPort(net.JoinHostPort(host, port)); err != nil {
			return fmt.Errorf("address is not a valid port: %w", err)
		}

		cfg.address = addr
		return nil
	}
}

// WithMiddlewares sets custom HTTP middlewares
func WithMiddlewares(mw ...func(http.Handler) http.Handler) SyncAppOptions {
	return func(cfg *syncAppConfig) error {
		cfg.middlewares = mw
		return nil
	}
}

// WithRequestTimeout bounds every API request except the status stream
func WithRequestTimeout(d time.Duration) SyncAppOptions {
	return func(cfg *syncAppConfig) error {
		if d < 0 {
			return fmt.Errorf("request timeout cannot be negative")
		}
		cfg.requestTimeout = d
		return nil
	}
}

// WithStorageFactory allows injecting a custom storage factory (for testing)
func WithStorageFactory(f storage.Factory) SyncAppOptions {
	return func(cfg *syncAppConfig) error {
		cfg.storageFactory = f
		return nil
	}
}

// WithLocalStore allows injecting an already opened local store. The caller
// keeps ownership and closes it.
func WithLocalStore(s local.Store) SyncAppOptions {
	return func(cfg *syncAppConfig) error {
		cfg.localStore = s
		return nil
	}
}

// WithIdentityProvider overrides the configured identity provider
func WithIdentityProvider(p identity.Provider) SyncAppOptions {
	return func(cfg *syncAppConfig) error {
		cfg.identity = p
		return nil
	}
}

// WithSyncManager allows injecting a custom sync manager (for testing)
func WithSyncManager(sm pkgsync.Manager) SyncAppOptions {
	return func(cfg *syncAppConfig) error {
		cfg.syncManager = sm
		return nil
	}
}

// WithStatusPersistence overrides the file based status persistence
func WithStatusPersistence(p status.StatusPersistence) SyncAppOptions {
	return func(cfg *syncAppConfig) error {
		cfg.statusPersistence = p
		return nil
	}
}

// WithMeterProvider sets the OpenTelemetry meter provider for sync and HTTP metrics
func WithMeterProvider(mp metric.MeterProvider) SyncAppOptions {
	return func(cfg *syncAppConfig) error {
		cfg.meterProvider = mp
		return nil
	}
}

// WithTracerProvider sets the OpenTelemetry tracer provider
func WithTracerProvider(tp trace.TracerProvider) SyncAppOptions {
	return func(cfg *syncAppConfig) error {
		cfg.tracerProvider = tp
		return nil
	}
}

// WithMetricsHandler serves the given handler on /metrics
func WithMetricsHandler(h http.Handler) SyncAppOptions {
	return func(cfg *syncAppConfig) error {
		cfg.metricsHandler = h
		return nil
	}
}

// buildHTTPServer builds the HTTP server with router and middleware
func buildHTTPServer(b *syncAppConfig, components *AppComponents) (*http.Server, error) {
	slog.Info("Initializing HTTP server")

	// Use default middlewares if not provided
	if b.middlewares == nil {
		b.middlewares = []func(http.Handler) http.Handler{
			middleware.RequestID,
			middleware.RealIP,
			middleware.Recoverer,
			api.LoggingMiddleware,
		}
	}

	if b.tracerProvider != nil {
		b.middlewares = append([]func(http.Handler) http.Handler{
			telemetry.TracingMiddleware(b.tracerProvider),
		}, b.middlewares...)
	}

	// Added first so that every request is measured
	if b.meterProvider != nil {
		metricsMiddleware, err := telemetry.MetricsMiddleware(b.meterProvider)
		if err != nil {
			return nil, fmt.Errorf("failed to create metrics middleware: %w", err)
		}
		if metricsMiddleware != nil {
			b.middlewares = append([]func(http.Handler) http.Handler{metricsMiddleware}, b.middlewares...)
			slog.Info("HTTP metrics middleware enabled")
		}
	}

	serverOpts := []api.ServerOption{
		api.WithMiddlewares(b.middlewares...),
		api.WithReadinessChecker(components),
		api.WithRequestTimeout(b.requestTimeout),
	}
	if b.metricsHandler != nil {
		serverOpts = append(serverOpts, api.WithMetricsHandler(b.metricsHandler))
	}
	router := api.NewServer(components.Coordinator, serverOpts...)

	server := &http.Server{
		Addr:         b.address,
		Handler:      router,
		ReadTimeout:  b.readTimeout,
		WriteTimeout: b.writeTimeout,
		IdleTimeout:  b.idleTimeout,
	}

	slog.Info("HTTP server configured", "address", b.address)
	return server, nil
}
