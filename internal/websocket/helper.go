package websocket

import (
	"StorWatch/internal/pkg/logger"
)

// LogWebSocketConnection logs a new WebSocket connection with authentication info
func LogWebSocketConnection(clientIP, endpoint, username string) {
	if username != "" {
		logger.Info("New authenticated WebSocket client connected",
			logger.String("endpoint", endpoint),
			logger.String("client_ip", clientIP),
			logger.String("username", username))
	} else {
		logger.Warn("WebSocket client connected without authentication",
			logger.String("endpoint", endpoint),
			logger.String("client_ip", clientIP))
	}
}
