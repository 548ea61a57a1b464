package websocket

import (
	"StorWatch/internal/pkg/logger"
	"encoding/json"
	"time"
)

// BroadcastStorage sends a storage snapshot to all connected clients
func (r *Registry) BroadcastStorage(metrics interface{}) {
	if handler := r.GetStorageHandler(); handler != nil {
		data, err := json.Marshal(map[string]interface{}{
			"storage":   metrics,
			"timestamp": timeNow(),
		})
		if err != nil {
			logger.Error("Failed to marshal storage metrics for WebSocket broadcast",
				logger.String("error", err.Error()))
			return
		}
		handler.Broadcast(data)
	}
}

// BroadcastPower sends a power reading to all connected clients
func (r *Registry) BroadcastPower(metrics interface{}) {
	if handler := r.GetPowerHandler(); handler != nil {
		data, err := json.Marshal(map[string]interface{}{
			"power":     metrics,
			"timestamp": timeNow(),
		})
		if err != nil {
			logger.Error("Failed to marshal power metrics for WebSocket broadcast",
				logger.String("error", err.Error()))
			return
		}
		handler.Broadcast(data)
	}
}

// timeNow returns the current time formatted for broadcast payloads
func timeNow() string {
	return time.Now().Format(time.RFC3339)
}
