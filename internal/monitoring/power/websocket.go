package power

import (
	"StorWatch/internal/pkg/logger"
	"StorWatch/internal/websocket"

	"github.com/gin-gonic/gin"
)

// WebSocketHandler creates a handler function for the power metrics stream
func (m *Monitor) WebSocketHandler(c *gin.Context) {
	if m == nil {
		logger.Error("Power monitor is nil in WebSocketHandler")
		c.String(500, "Internal server error: power monitor not initialized")
		return
	}

	registry := websocket.GetRegistry()
	handler := registry.GetPowerHandler()
	if handler == nil {
		handler = websocket.NewHandler()
		registry.RegisterPowerHandler(handler)
	}

	websocket.LogWebSocketConnection(c.ClientIP(), "/ws/power", c.GetString("username"))

	handler.ServeHTTP(c.Writer, c.Request)
}
