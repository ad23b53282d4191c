package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bgp-notifier/internal/config"
	"bgp-notifier/internal/logging"
)

// NewRouter wires the HTTP surface: health, notification history,
// manual report injection and the live WebSocket feed.
func NewRouter(logger *logging.Logger, cfg config.Config, h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLoggingMiddleware(logger))

	api := r.Group(cfg.API.BasePath)
	{
		api.GET("/notifications", h.GetNotifications)
		api.GET("/notifications/:id", h.GetNotificationByID)
		api.POST("/report", h.Report)
	}

	r.GET("/ws", h.Feed)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}
