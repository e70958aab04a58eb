package main

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// liveReloadPath is the websocket endpoint watched pages subscribe to.
const liveReloadPath = "/__livereload"

const reloadWriteTimeout = 5 * time.Second

// reloadHub tells every connected page to reload.
type reloadHub struct {
	upgrader websocket.Upgrader
	logger   *slog.Logger

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

func newReloadHub(logger *slog.Logger) *reloadHub {
	return &reloadHub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger:  logger,
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// ServeHTTP upgrades the request and holds the connection until the
// client goes away.
func (h *reloadHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug("live reload upgrade failed", slog.Any("error", err))
		return
	}

	h.mu.Lock()
	h.clients[conn] = struct{}{}
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
		_ = conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Broadcast sends a reload message to every client and returns how many
// received it.
func (h *reloadHub) Broadcast() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	sent := 0
	for conn := range h.clients {
		if err := conn.SetWriteDeadline(time.Now().Add(reloadWriteTimeout)); err != nil {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, []byte("reload")); err != nil {
			h.logger.Debug("live reload write failed", slog.Any("error", err))
			continue
		}
		sent++
	}
	return sent
}

// Clients returns the number of connected pages.
func (h *reloadHub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client.
func (h *reloadHub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		_ = conn.Close()
		delete(h.clients, conn)
	}
}
