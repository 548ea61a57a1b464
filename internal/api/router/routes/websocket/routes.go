package websocket

import (
	"StorWatch/internal/monitoring/power"
	"StorWatch/internal/monitoring/storage"

	"github.com/gin-gonic/gin"
)

// RegisterWebSocketRoutes registers the websocket routes
func RegisterWebSocketRoutes(router *gin.Engine, storageMonitor *storage.Monitor, powerMonitor *power.Monitor) {
	// Storage-specific websocket endpoint
	router.GET("/ws/storage", func(c *gin.Context) {
		storageMonitor.WebSocketHandler(c)
	})

	// Power-specific websocket endpoint
	router.GET("/ws/power", func(c *gin.Context) {
		powerMonitor.WebSocketHandler(c)
	})
}
