package agent

import (
	"StorWatch/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers agent information routes
func RegisterRoutes(engine *gin.Engine, agentHandler *handlers.AgentHandler) {
	agentGroup := engine.Group("/api/agent")
	{
		agentGroup.GET("/info", agentHandler.GetInfo)
	}
}
