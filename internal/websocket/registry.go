package websocket

import (
	"StorWatch/internal/pkg/logger"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

var (
	// Registry singleton
	registry *Registry
	once     sync.Once
)

// Registry manages WebSocket handlers for the metric domains
type Registry struct {
	mu             sync.RWMutex
	storageHandler *Handler
	powerHandler   *Handler
}

// GetRegistry returns the WebSocket registry singleton
func GetRegistry() *Registry {
	once.Do(func() {
		registry = &Registry{}
	})
	return registry
}

// Handler manages WebSocket connections
type Handler struct {
	clients  map[*Client]bool
	mu       sync.RWMutex
	upgrader websocket.Upgrader
}

// Client represents a WebSocket client connection
type Client struct {
	conn *websocket.Conn
}

// NewHandler creates a new WebSocket handler
func NewHandler() *Handler {
	return &Handler{
		clients: make(map[*Client]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins for development
			},
		},
	}
}

// ServeHTTP handles WebSocket connections
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("Failed to upgrade to WebSocket connection",
			logger.String("error", err.Error()))
		return
	}

	client := &Client{conn: conn}

	// Register client
	h.mu.Lock()
	h.clients[client] = true
	h.mu.Unlock()

	// Handle disconnect when connection closes
	defer func() {
		conn.Close()
		h.mu.Lock()
		delete(h.clients, client)
		h.mu.Unlock()
	}()

	// Keep connection open; inbound messages are read and discarded,
	// clients are broadcast-only consumers
	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			break
		}
	}
}

// Broadcast sends a message to all clients of this handler
func (h *Handler) Broadcast(message []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		err := client.conn.WriteMessage(websocket.TextMessage, message)
		if err != nil {
			logger.Error("Error broadcasting to WebSocket client",
				logger.String("error", err.Error()))
			client.conn.Close()
			delete(h.clients, client)
		}
	}
}

// GetStorageHandler returns the storage-specific WebSocket handler
func (r *Registry) GetStorageHandler() *Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.storageHandler
}

// RegisterStorageHandler sets the storage-specific WebSocket handler
func (r *Registry) RegisterStorageHandler(handler *Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.storageHandler = handler
}

// GetPowerHandler returns the power-specific WebSocket handler
func (r *Registry) GetPowerHandler() *Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.powerHandler
}

// RegisterPowerHandler sets the power-specific WebSocket handler
func (r *Registry) RegisterPowerHandler(handler *Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.powerHandler = handler
}
