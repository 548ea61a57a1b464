package handlers

import (
	"StorWatch/internal/pkg/config"
	"StorWatch/internal/pkg/paths"
	"net/http"
	"runtime"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/host"
)

// AgentHandler contains handlers for agent/host information endpoints
type AgentHandler struct {
	config *config.Config
}

// NewAgentHandler creates a new agent handler
func NewAgentHandler(cfg *config.Config) *AgentHandler {
	return &AgentHandler{
		config: cfg,
	}
}

// GetInfo returns agent and host information
func (h *AgentHandler) GetInfo(c *gin.Context) {
	info, err := host.Info()
	if err != nil {
		HandleError(c, err)
		return
	}

	exeDir, _ := paths.ExecutableDir()
	configDir, _ := paths.UserConfigDir()

	c.JSON(http.StatusOK, gin.H{
		"app":              h.config.AppName,
		"os":               runtime.GOOS,
		"arch":             runtime.GOARCH,
		"hostname":         info.Hostname,
		"platform":         info.Platform,
		"platform_version": info.PlatformVersion,
		"kernel_version":   info.KernelVersion,
		"uptime_seconds":   info.Uptime,
		"executable_dir":   exeDir,
		"config_dir":       configDir,
	})
}
