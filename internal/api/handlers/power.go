package handlers

import (
	"StorWatch/internal/monitoring/power"
	"StorWatch/internal/pkg/config"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// PowerHandler contains handlers for battery/power metric endpoints
type PowerHandler struct {
	config  *config.Config
	monitor *power.Monitor
}

// NewPowerHandler creates a new power handler
func NewPowerHandler(cfg *config.Config, monitor *power.Monitor) *PowerHandler {
	return &PowerHandler{
		config:  cfg,
		monitor: monitor,
	}
}

// GetLatest returns the most recent battery reading
func (h *PowerHandler) GetLatest(c *gin.Context) {
	reading, ok := h.monitor.Model().LatestReading()
	if !ok {
		c.JSON(http.StatusOK, gin.H{
			"available": false,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"available": true,
		"reading":   reading,
	})
}

// GetHistory returns the retained charge/draw history
func (h *PowerHandler) GetHistory(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"points": h.monitor.Model().History(),
	})
}

// GetCapabilities returns the probe's capability flags
func (h *PowerHandler) GetCapabilities(c *gin.Context) {
	c.JSON(http.StatusOK, h.monitor.Model().Capabilities())
}

// SetHistoryWindow reconfigures the history retention window
func (h *PowerHandler) SetHistoryWindow(c *gin.Context) {
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
