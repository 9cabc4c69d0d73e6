// Package ws serves the family real-time sync endpoint over WebSocket.
package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"sync"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/wegoagain-dev/ECS-GymFuel/internal/hub"
	"github.com/wegoagain-dev/ECS-GymFuel/internal/logger"
)

// Handler upgrades requests on /ws/family/{family_id} and runs a Session per connection.
type Handler struct {
	hub      *hub.Hub
	auth     Authorizer
	upgrader websocket.Upgrader
	sessions sync.WaitGroup
	logger   *logger.Logger
}

// NewHandler creates a Handler. Browser origins are checked against
// allowedOrigins; an empty list falls back to the same-origin check.
func NewHandler(h *hub.Hub, auth Authorizer, allowedOrigins []string, logger *logger.Logger) *Handler {
	handler := &Handler{
		hub:    h,
		auth:   auth,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	if len(allowedOrigins) > 0 {
		handler.upgrader.CheckOrigin = func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || slices.Contains(allowedOrigins, origin)
		}
	}
	return handler
}

// ServeFamily handles one real-time connection. The token is taken from the
// "token" query parameter and checked after the upgrade so that refusals
// can be reported with a close code.
func (h *Handler) ServeFamily(w http.ResponseWriter, r *http.Request) {
	familyID := mux.Vars(r)["family_id"]
	token := r.URL.Query().Get("token")

	wsConn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("Sync handler: upgrade failed",
			"family_id", familyID,
			"error", err.Error())
		return
	}

	h.sessions.Add(1)
	defer h.sessions.Done()

	conn := newConn(wsConn)
	go conn.keepAlive()

	NewSession(conn, h.hub, h.auth, familyID, token, h.logger).Run(r.Context())
}

// Info describes the endpoint for clients probing it over plain HTTP.
func (h *Handler) Info(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"message":  "WebSocket endpoint available",
		"endpoint": "/ws/family/{family_id}",
		"params": map[string]string{
			"token": "JWT authentication token",
		},
	})
}

// Shutdown closes every live connection and waits for their sessions to
// finish or for ctx to end, whichever comes first.
func (h *Handler) Shutdown(ctx context.Context) error {
	h.hub.Close()

	done := make(chan struct{})
	go func() {
		h.sessions.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("failed to drain sync sessions: %w", ctx.Err())
	}
}
