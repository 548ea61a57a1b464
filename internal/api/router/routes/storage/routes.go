package storage

import (
	"StorWatch/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all storage metric routes
func RegisterRoutes(engine *gin.Engine, storageHandler *handlers.StorageHandler) {
	storageGroup := engine.Group("/api/storage")
	{
		storageGroup.GET("/latest", storageHandler.GetLatest)
		storageGroup.GET("/history", storageHandler.GetHistory)
		storageGroup.GET("/capabilities", storageHandler.GetCapabilities)
		storageGroup.PUT("/history/window", storageHandler.SetHistoryWindow)
	}
}
