package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"bgp-notifier/internal/db"
	"bgp-notifier/internal/logging"
	"bgp-notifier/internal/models"
	"bgp-notifier/internal/notification"
)

type Handler struct {
	db       *db.DB
	logger   *logging.Logger
	svc      *notification.Service
	upgrader websocket.Upgrader
}

// NewHandler builds the API handler. db may be nil when the
// notification log is disabled.
func NewHandler(db *db.DB, logger *logging.Logger, svc *notification.Service) *Handler {
	return &Handler{
		db:     db,
		logger: logger,
		svc:    svc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

func (h *Handler) GetNotifications(c *gin.Context) {
	if h.db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "notification log disabled"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	notifications, err := h.db.GetAllNotifications(c.Request.Context(), limit, offset)
	if err != nil {
		h.logger.Errorf("Get notifications failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, notifications)
}

func (h *Handler) GetNotificationByID(c *gin.Context) {
	if h.db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "notification log disabled"})
		return
	}
	id := c.Param("id")
	n, err := h.db.GetNotificationByID(c.Request.Context(), id)
	if err != nil {
		h.logger.Errorf("Get notification %s failed: %v", id, err)
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}
	c.JSON(http.StatusOK, n)
}

type reportRequest struct {
	Channel string              `json:"channel" binding:"required"`
	Content models.AlertContent `json:"content" binding:"required"`
}

// Report lets operators inject an alert by hand, mostly to verify
// templates and SMTP settings.
func (h *Handler) Report(c *gin.Context) {
	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorf("Invalid report request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.svc.Report(req.Channel, req.Content)
	c.JSON(http.StatusAccepted, gin.H{"status": "queued"})
}

// Feed upgrades the connection and streams dispatched notifications.
func (h *Handler) Feed(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Errorf("WebSocket upgrade failed: %v", err)
		return
	}
	feed := h.svc.Feed()
	feed.AddConnection(conn)

	// Reads are discarded; the socket exists to push events out. The
	// read loop just detects the client going away.
	go func() {
		defer func() {
			feed.RemoveConnection(conn)
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
