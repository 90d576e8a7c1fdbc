// Package wsmirror mirrors the serial host's output lines to any number
// of connected websocket clients, for a browser dashboard to tail a root
// node's traffic live. It has no bearing on protocol correctness; it is
// a debugging aid layered on serialhost.Host via AddSink.
package wsmirror

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"

	"DodagMesh/internal/logger"
)

// Hub fans out lines to every connected client, mirroring the teacher
// pack's websocket broadcast hub shape.
type Hub struct {
	log     logger.Logger
	mu      sync.RWMutex
	clients map[*websocket.Conn]struct{}
}

// NewHub returns an empty Hub.
func NewHub(log logger.Logger) *Hub {
	return &Hub{log: log, clients: make(map[*websocket.Conn]struct{})}
}

// HandleWS upgrades the request to a websocket connection and registers
// it for broadcasts until the client disconnects.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, nil)
	if err != nil {
		h.log.Warn("wsmirror: accept failed", logger.F("error", err.Error()))
		return
	}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	go func() {
		defer func() {
			h.mu.Lock()
			delete(h.clients, c)
			h.mu.Unlock()
			c.Close(websocket.StatusNormalClosure, "")
		}()
		for {
			if _, _, err := c.Read(context.Background()); err != nil {
				return
			}
		}
	}()
}

// Sink returns a func(string) suitable for serialhost.Host.AddSink.
func (h *Hub) Sink() func(line string) {
	return func(line string) {
		h.mu.RLock()
		defer h.mu.RUnlock()
		for c := range h.clients {
			go func(conn *websocket.Conn) {
				ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				_ = conn.Write(ctx, websocket.MessageText, []byte(line))
			}(c)
		}
	}
}
