package handlers

import (
	"smartpan/internal/logger"
	"smartpan/internal/service"

	"github.com/gin-gonic/gin"
)

// Handler wires the diagnostics HTTP layer to services and logging. The API
// is read-only: the target temperature is owned by the remote sync endpoint
// and cannot be mutated locally.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	// Health endpoint
	router.GET("/health", h.health)

	api := router.Group("/api/v1")
	{
		device := api.Group("/device")
		{
			device.GET("/state", h.getState)
		}
		api.GET("/readings", h.getReadings)
		api.GET("/logs", h.getLogs)
	}

	// Live state stream (HTTP upgrade) on the same port
	router.GET("/ws", h.wsConnect)

	return router
}
