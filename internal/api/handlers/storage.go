package handlers

import (
	"StorWatch/internal/monitoring/storage"
	"StorWatch/internal/pkg/config"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// StorageHandler contains handlers for storage metric endpoints
type StorageHandler struct {
	config  *config.Config
	monitor *storage.Monitor
}

// NewStorageHandler creates a new storage handler
func NewStorageHandler(cfg *config.Config, monitor *storage.Monitor) *StorageHandler {
	return &StorageHandler{
		config:  cfg,
		monitor: monitor,
	}
}

// GetLatest returns the most recent storage snapshot
func (h *StorageHandler) GetLatest(c *gin.Context) {
	snapshot, ok := h.monitor.Model().LatestSnapshot()
	if !ok {
		c.JSON(http.StatusOK, gin.H{
			"available": false,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"available": true,
		"snapshot":  snapshot,
	})
}

// GetHistory returns the retained snapshot history
func (h *StorageHandler) GetHistory(c *gin.Context) {
	model := h.monitor.Model()
	c.JSON(http.StatusOK, gin.H{
		"timestamps":        model.HistoryTimestamps(),
		"snapshots":         model.History(),
		"total_read_rates":  model.TotalReadHistory(),
		"total_write_rates": model.TotalWriteHistory(),
	})
}

// GetCapabilities returns the probe's capability flags
func (h *StorageHandler) GetCapabilities(c *gin.Context) {
	c.JSON(http.StatusOK, h.monitor.Model().Capabilities())
}

// SetHistoryWindow reconfigures the history retention window
func (h *StorageHandler) SetHistoryWindow(c *gin.Context) {
	seconds, err := strconv.Atoi(c.Query("seconds"))
	if err != nil || seconds <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "seconds must be a positive integer",
		})
		return
	}

	h.monitor.Model().SetMaxHistorySeconds(seconds)
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"seconds": seconds,
	})
}
