package router

import (
	powerMonitor "StorWatch/internal/monitoring/power"
	storageMonitor "StorWatch/internal/monitoring/storage"
	"StorWatch/internal/pkg/config"
	"StorWatch/internal/pkg/logger"
	diskProbe "StorWatch/internal/probes/disk"
	powerProbe "StorWatch/internal/probes/power"
	"context"

	"github.com/gin-gonic/gin"
)

// Builder provides a fluent interface for constructing a router
type Builder struct {
	router *Router
	ctx    context.Context
	cancel context.CancelFunc

	// Monitors for lifecycle management
	monitors struct {
		storage *storageMonitor.Monitor
		power   *powerMonitor.Monitor
	}
}

// NewBuilder creates a new router builder
func NewBuilder(cfg *config.Config) *Builder {
	ctx, cancel := context.WithCancel(context.Background())

	// Create monitors
	storage := createStorageMonitor(cfg)
	power := createPowerMonitor(cfg)

	// Create builder
	builder := &Builder{
		router: New(cfg, storage, power),
		ctx:    ctx,
		cancel: cancel,
	}

	// Store monitors for lifecycle management
	builder.monitors.storage = storage
	builder.monitors.power = power

	return builder
}

// createStorageMonitor creates and starts the storage monitor
func createStorageMonitor(cfg *config.Config) *storageMonitor.Monitor {
	probe := diskProbe.NewProbe()
	model := storageMonitor.NewModel(probe, cfg.Monitoring.Storage.HistoryWindow)

	monitor := storageMonitor.NewMonitor(cfg, model)
	if err := monitor.StartMonitoring(); err != nil {
		logger.Warn("Failed to start storage monitor", logger.String("error", err.Error()))
	} else {
		logger.Debug("Started storage monitoring service")
	}
	return monitor
}

// createPowerMonitor creates and starts the power monitor
func createPowerMonitor(cfg *config.Config) *powerMonitor.Monitor {
	probe := powerProbe.NewProbe()
	model := powerMonitor.NewModel(probe, cfg.Monitoring.Power.HistoryWindow)

	monitor := powerMonitor.NewMonitor(cfg, model)
	if err := monitor.StartMonitoring(); err != nil {
		logger.Warn("Failed to start power monitor", logger.String("error", err.Error()))
	} else {
		logger.Debug("Started power monitoring service")
	}
	return monitor
}

// WithMiddleware adds a middleware to the router
func (b *Builder) WithMiddleware(middleware gin.HandlerFunc) *Builder {
	b.router.engine.Use(middleware)
	return b
}

// WithAPIRoutes adds API routes
func (b *Builder) WithAPIRoutes() *Builder {
	b.router.registerAPIRoutes()
	return b
}

// WithWebSocketRoutes adds WebSocket routes
func (b *Builder) WithWebSocketRoutes() *Builder {
	b.router.registerWebSocketRoutes()
	return b
}

// WithAllRoutes adds all routes and initializes the router
func (b *Builder) WithAllRoutes() *Builder {
	b.router.Initialize()
	return b
}

// GetRouter returns the underlying router
func (b *Builder) GetRouter() *Router {
	return b.router
}

// Start starts the HTTP server
func (b *Builder) Start() {
	b.router.Start()
}

// Build is a convenience method that returns the Builder itself
// to maintain backward compatibility
func (b *Builder) Build() (*Builder, error) {
	return b, nil
}

// Shutdown stops all monitors
func (b *Builder) Shutdown() {
	if b.cancel != nil {
		b.cancel()
	}

	if b.monitors.storage != nil {
		b.monitors.storage.StopMonitoring()
		logger.Info("Stopped storage monitoring service")
	}

	if b.monitors.power != nil {
		b.monitors.power.StopMonitoring()
		logger.Info("Stopped power monitoring service")
	}
}
