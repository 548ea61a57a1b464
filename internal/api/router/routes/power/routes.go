package power

import (
	"StorWatch/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all battery and power supply routes
func RegisterRoutes(engine *gin.Engine, powerHandler *handlers.PowerHandler) {
	powerGroup := engine.Group("/api/power")
	{
		powerGroup.GET("/latest", powerHandler.GetLatest)
		powerGroup.GET("/history", powerHandler.GetHistory)
		powerGroup.GET("/capabilities", powerHandler.GetCapabilities)
		powerGroup.PUT("/history/window", powerHandler.SetHistoryWindow)
	}
}
