package http

import (
	"github.com/gin-gonic/gin"

	"github.com/produktlister/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// The frontend consumes a flat route set.
	router.GET("/health", handler.HealthCheck)
	router.GET("/urun", handler.GetProduct)
	router.GET("/export-headers", handler.ExportHeaders)
	router.POST("/export-excel", handler.ExportExcel)
	router.GET("/test-api", handler.TestAPI)

	return router
}
