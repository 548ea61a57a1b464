package router

import (
	"StorWatch/internal/api/handlers"
	"StorWatch/internal/api/middleware"
	"StorWatch/internal/api/router/routes/agent"
	"StorWatch/internal/api/router/routes/auth"
	powerRoutes "StorWatch/internal/api/router/routes/power"
	storageRoutes "StorWatch/internal/api/router/routes/storage"
	"StorWatch/internal/api/router/routes/websocket"
	powerMonitor "StorWatch/internal/monitoring/power"
	storageMonitor "StorWatch/internal/monitoring/storage"
	"StorWatch/internal/pkg/config"
	"StorWatch/internal/pkg/logger"
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Router encapsulates the HTTP router functionality
type Router struct {
	config         *config.Config
	engine         *gin.Engine
	storageHandler *handlers.StorageHandler
	powerHandler   *handlers.PowerHandler
	agentHandler   *handlers.AgentHandler

	// Monitors
	monitors struct {
		storage *storageMonitor.Monitor
		power   *powerMonitor.Monitor
	}
}

// New creates a new router instance with the given configuration
func New(cfg *config.Config, storage *storageMonitor.Monitor, power *powerMonitor.Monitor) *Router {
	// Configure gin mode based on config
	if cfg.Logs.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	r := &Router{
		config:         cfg,
		engine:         engine,
		storageHandler: handlers.NewStorageHandler(cfg, storage),
		powerHandler:   handlers.NewPowerHandler(cfg, power),
		agentHandler:   handlers.NewAgentHandler(cfg),
	}

	// Store monitors
	r.monitors.storage = storage
	r.monitors.power = power

	return r
}

// Initialize sets up the router with middlewares and routes
func (r *Router) Initialize() *Router {
	// Apply essential middleware only
	r.engine.Use(gin.Recovery())
	r.engine.Use(LoggerMiddleware())

	if r.config.API.CORS.Enabled {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = r.config.API.CORS.AllowedOrigins
		if len(r.config.API.CORS.AllowedMethods) > 0 {
			corsConfig.AllowMethods = r.config.API.CORS.AllowedMethods
		}
		corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
		r.engine.Use(cors.New(corsConfig))
	}

	if r.config.API.Auth.Enabled {
		r.engine.Use(middleware.JWTAuthMiddleware(r.config.API.Auth.JWTSecret))
	}

	// Register API routes
	r.registerAPIRoutes()

	// Register WebSocket routes
	r.registerWebSocketRoutes()

	// Add a simple root endpoint for API health check
	r.registerRootAPIEndpoint()

	// Log all registered routes for debugging
	for _, route := range r.engine.Routes() {
		logger.Debug("Registered route",
			logger.String("method", route.Method),
			logger.String("path", route.Path))
	}

	return r
}

// registerAPIRoutes registers all API-specific routes
func (r *Router) registerAPIRoutes() {
	storageRoutes.RegisterRoutes(r.engine, r.storageHandler)
	powerRoutes.RegisterRoutes(r.engine, r.powerHandler)
	agent.RegisterRoutes(r.engine, r.agentHandler)

	authRegistrar := &auth.AuthRegistrar{}
	if err := authRegistrar.Register(r.engine, r.config); err != nil {
		logger.Error("Failed to register auth routes", logger.String("error", err.Error()))
	}
}

// registerWebSocketRoutes registers all WebSocket routes
func (r *Router) registerWebSocketRoutes() {
	websocket.RegisterWebSocketRoutes(
		r.engine,
		r.monitors.storage,
		r.monitors.power,
	)
}

// registerRootAPIEndpoint provides a simple API health check endpoint
func (r *Router) registerRootAPIEndpoint() {
	r.engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"app":     "StorWatch API",
			"version": "1.0",
		})
	})

	// API status endpoint
	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
		})
	})
}

// Engine returns the underlying gin engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// ServeHTTP implements the http.Handler interface
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.engine.ServeHTTP(w, req)
}

// LoggerMiddleware creates a middleware for logging HTTP requests
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip logging for WebSocket connections
		if c.Request.Header.Get("Upgrade") == "websocket" {
			c.Next()
			return
		}

		// Process request
		c.Next()

		// Log after request
		logger.Info("HTTP Request",
			logger.String("method", c.Request.Method),
			logger.String("path", c.Request.URL.Path),
			logger.Int("status", c.Writer.Status()),
			logger.String("client_ip", c.ClientIP()),
		)
	}
}

// Start starts the HTTP server
func (r *Router) Start() {
	addr := fmt.Sprintf("%s:%d", r.config.Server.Host, r.config.Server.Port)
	logger.Info("Starting HTTP server", logger.String("address", addr))

	if err := r.engine.Run(addr); err != nil {
		logger.Error("Failed to start HTTP server", logger.String("error", err.Error()))
	}
}
