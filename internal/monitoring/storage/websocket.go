package storage

import (
	"StorWatch/internal/pkg/logger"
	"StorWatch/internal/websocket"

	"github.com/gin-gonic/gin"
)

// WebSocketHandler creates a handler function for the storage metrics stream
func (m *Monitor) WebSocketHandler(c *gin.Context) {
	if m == nil {
		logger.Error("Storage monitor is nil in WebSocketHandler")
		c.String(500, "Internal server error: storage monitor not initialized")
		return
	}

	registry := websocket.GetRegistry()
	handler := registry.GetStorageHandler()
	if handler == nil {
		handler = websocket.NewHandler()
		registry.RegisterStorageHandler(handler)
	}

	websocket.LogWebSocketConnection(c.ClientIP(), "/ws/storage", c.GetString("username"))

	// New clients see data on the next tick; Sample stays owned by the
	// single producer goroutine
	handler.ServeHTTP(c.Writer, c.Request)
}
