package notification

import (
	"sync"

	"github.com/gorilla/websocket"

	"bgp-notifier/internal/logging"
)

// Feed pushes dispatched notifications to connected WebSocket clients.
type Feed struct {
	mutex   sync.Mutex
	clients map[*websocket.Conn]bool
	logger  *logging.Logger
}

func NewFeed(logger *logging.Logger) *Feed {
	return &Feed{
		clients: make(map[*websocket.Conn]bool),
		logger:  logger,
	}
}

// AddConnection registers a WebSocket connection.
func (f *Feed) AddConnection(conn *websocket.Conn) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.clients[conn] = true
	f.logger.Infof("Added WebSocket connection (total: %d)", len(f.clients))
}

// RemoveConnection unregisters a WebSocket connection.
func (f *Feed) RemoveConnection(conn *websocket.Conn) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	delete(f.clients, conn)
	f.logger.Infof("Removed WebSocket connection (remaining: %d)", len(f.clients))
}

// Broadcast sends v as JSON to every connected client. Connections
// that fail to write are dropped.
func (f *Feed) Broadcast(v interface{}) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	for conn := range f.clients {
		if err := conn.WriteJSON(v); err != nil {
			f.logger.Errorf("Failed to push notification over WebSocket: %v", err)
			conn.Close()
			delete(f.clients, conn)
		}
	}
}
