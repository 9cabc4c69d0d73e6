// Package hub fans real-time events out to the live connections of a family group.
package hub

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/wegoagain-dev/ECS-GymFuel/internal/logger"
)

// ErrAlreadyRegistered is returned when a connection is registered while it
// is still a member of some group.
var ErrAlreadyRegistered = errors.New("connection already registered")

// ErrClosed is returned by Register once Close has been called.
var ErrClosed = errors.New("hub closed")

// Conn is a live peer channel. Send must be safe to call concurrently with
// the connection's own writes.
type Conn interface {
	Send(payload []byte) error
	Close() error
}

// Hub keeps the set of live connections per family group. Groups with no
// connections are removed.
type Hub struct {
	mu     sync.Mutex
	groups map[string][]Conn
	member map[Conn]string
	closed bool
	logger *logger.Logger
}

// New creates an empty Hub.
func New(logger *logger.Logger) *Hub {
	return &Hub{
		groups: make(map[string][]Conn),
		member: make(map[Conn]string),
		logger: logger,
	}
}

// Register adds conn to the group familyID, creating the group if needed.
// A connection already present in any group is left untouched.
func (h *Hub) Register(conn Conn, familyID string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrClosed
	}
	if current, ok := h.member[conn]; ok {
		h.logger.Warn("Hub: duplicate registration ignored",
			"family_id", familyID,
			"registered_family_id", current)
		return ErrAlreadyRegistered
	}

	h.groups[familyID] = append(h.groups[familyID], conn)
	h.member[conn] = familyID

	h.logger.Debug("Hub: connection registered",
		"family_id", familyID,
		"group_size", len(h.groups[familyID]))
	return nil
}

// Unregister removes conn from the group familyID and drops the group when
// it becomes empty. Unknown connections are ignored.
func (h *Hub) Unregister(conn Conn, familyID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeLocked(conn, familyID)
}

// Broadcast delivers payload to every connection of familyID, the sender
// included. Connections that fail to receive are removed once the fan-out
// pass is over. It returns the number of successful deliveries.
func (h *Hub) Broadcast(familyID string, payload []byte) int {
	h.mu.Lock()
	recipients := slices.Clone(h.groups[familyID])
	h.mu.Unlock()

	var failed []Conn
	delivered := 0
	for _, conn := range recipients {
		if err := conn.Send(payload); err != nil {
			h.logger.Debug("Hub: delivery failed, pruning connection",
				"family_id", familyID,
				"error", err.Error())
			failed = append(failed, conn)
			continue
		}
		delivered++
	}

	if len(failed) > 0 {
		h.mu.Lock()
		for _, conn := range failed {
			h.removeLocked(conn, familyID)
		}
		h.mu.Unlock()
	}

	return delivered
}

// BroadcastJSON encodes v and broadcasts it to familyID.
func (h *Hub) BroadcastJSON(familyID string, v any) (int, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return 0, fmt.Errorf("failed to encode event: %w", err)
	}
	return h.Broadcast(familyID, payload), nil
}

// Len returns the number of live connections in familyID.
func (h *Hub) Len(familyID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.groups[familyID])
}

// Groups returns the number of non-empty groups.
func (h *Hub) Groups() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.groups)
}

// Contains reports whether conn is a member of familyID.
func (h *Hub) Contains(conn Conn, familyID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	current, ok := h.member[conn]
	return ok && current == familyID
}

// Closed reports whether Close has been called.
func (h *Hub) Closed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.closed
}

// Close closes every registered connection and refuses later registrations.
// Sessions observe the closed transport and unregister themselves.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	conns := make([]Conn, 0, len(h.member))
	for conn := range h.member {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	for _, conn := range conns {
		if err := conn.Close(); err != nil {
			h.logger.Debug("Hub: failed to close connection", "error", err.Error())
		}
	}
	h.logger.Info("Hub: closed connections", "count", len(conns))
}

func (h *Hub) removeLocked(conn Conn, familyID string) {
	current, ok := h.member[conn]
	if !ok || current != familyID {
		return
	}
	delete(h.member, conn)

	group := h.groups[familyID]
	if i := slices.Index(group, conn); i >= 0 {
		group = slices.Delete(group, i, i+1)
	}
	if len(group) == 0 {
		delete(h.groups, familyID)
		h.logger.Debug("Hub: group removed", "family_id", familyID)
		return
	}
	h.groups[familyID] = group
}
