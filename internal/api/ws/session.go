package ws

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"

	"github.com/gorilla/websocket"

	"github.com/wegoagain-dev/ECS-GymFuel/internal/hub"
	"github.com/wegoagain-dev/ECS-GymFuel/internal/logger"
	"github.com/wegoagain-dev/ECS-GymFuel/internal/model"
)

// Close codes sent to peers refused during authorization.
const (
	CloseUnauthorized = 4001
	CloseForbidden    = 4003
)

const (
	eventConnected    = "connected"
	eventUpdate       = "update"
	eventDisconnected = "user_disconnected"
)

// State is a step of the session lifecycle.
type State int

const (
	StateConnecting State = iota
	StateAuthorizing
	StateOpen
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateAuthorizing:
		return "authorizing"
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Authorizer resolves the session token and checks family membership.
type Authorizer interface {
	Resolve(ctx context.Context, token string) (model.User, error)
	RequireFamilyMembership(user model.User, familyID string) error
}

// Transport is the peer channel a session runs on.
type Transport interface {
	hub.Conn
	ReadMessage() ([]byte, error)
	CloseWithCode(code int, reason string) error
}

type connectedEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}

type relayedEvent struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data"`
	UserID    string          `json:"user_id"`
	Timestamp json.RawMessage `json:"timestamp,omitempty"`
}

type departedEvent struct {
	Type    string `json:"type"`
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

// readOutcome is the result of one receive step: an event to relay, a
// graceful close by the peer, or a transport failure.
type readOutcome interface {
	isReadOutcome()
}

type received struct{ event relayedEvent }

type peerClosed struct{}

type readFailed struct{ err error }

func (received) isReadOutcome()   {}
func (peerClosed) isReadOutcome() {}
func (readFailed) isReadOutcome() {}

// Session drives one peer connection from authorization to teardown.
type Session struct {
	conn     Transport
	hub      *hub.Hub
	auth     Authorizer
	familyID string
	token    string
	userID   string
	state    atomic.Int32
	logger   *logger.Logger
}

// NewSession creates a session for a connection targeting familyID.
func NewSession(conn Transport, h *hub.Hub, auth Authorizer, familyID, token string, logger *logger.Logger) *Session {
	return &Session{
		conn:     conn,
		hub:      h,
		auth:     auth,
		familyID: familyID,
		token:    token,
		logger:   logger,
	}
}

// State returns the current lifecycle state. It is safe to call while Run is in progress.
func (s *Session) State() State {
	return State(s.state.Load())
}

func (s *Session) setState(state State) {
	s.state.Store(int32(state))
}

// Run authorizes the peer and, if allowed, relays its events to the family
// group until the connection ends. It always leaves the session Closed.
func (s *Session) Run(ctx context.Context) {
	s.setState(StateAuthorizing)
	if !s.authorize(ctx) {
		s.setState(StateClosed)
		return
	}

	s.setState(StateOpen)
	if err := s.hub.Register(s.conn, s.familyID); err != nil {
		if errors.Is(err, hub.ErrClosed) {
			s.logger.Info("Sync session: hub closed, dropping connection", "family_id", s.familyID)
			s.refuse(websocket.CloseGoingAway, "server shutting down")
			s.setState(StateClosed)
			return
		}
		s.logger.Error("Sync session: register failed",
			"family_id", s.familyID,
			"user_id", s.userID,
			"error", err.Error())
		_ = s.conn.Close()
		s.setState(StateClosed)
		return
	}

	s.logger.Info("Sync session: connected",
		"family_id", s.familyID,
		"user_id", s.userID)

	err := s.welcome()
loop:
	for err == nil {
		switch out := s.next().(type) {
		case received:
			s.relay(out.event)
		case peerClosed:
			s.logger.Debug("Sync session: peer closed", "user_id", s.userID)
			break loop
		case readFailed:
			err = out.err
		}
	}
	if err != nil {
		s.logger.Warn("Sync session: connection failed",
			"family_id", s.familyID,
			"user_id", s.userID,
			"error", err.Error())
	}

	s.teardown()
}

func (s *Session) authorize(ctx context.Context) bool {
	user, err := s.auth.Resolve(ctx, s.token)
	if err != nil {
		s.logger.Info("Sync session: unauthorized", "family_id", s.familyID)
		s.refuse(CloseUnauthorized, "unauthorized")
		return false
	}

	if err := s.auth.RequireFamilyMembership(user, s.familyID); err != nil {
		s.logger.Info("Sync session: forbidden",
			"family_id", s.familyID,
			"user_id", user.ID)
		s.refuse(CloseForbidden, "forbidden")
		return false
	}

	s.userID = user.ID.String()
	return true
}

func (s *Session) refuse(code int, reason string) {
	if err := s.conn.CloseWithCode(code, reason); err != nil {
		s.logger.Debug("Sync session: close failed", "code", code, "error", err.Error())
	}
}

func (s *Session) welcome() error {
	payload, err := json.Marshal(connectedEvent{
		Type:    eventConnected,
		Message: "User " + s.userID + " connected to family " + s.familyID,
		UserID:  s.userID,
	})
	if err != nil {
		return err
	}
	return s.conn.Send(payload)
}

func (s *Session) next() readOutcome {
	data, err := s.conn.ReadMessage()
	switch {
	case errors.Is(err, errPeerClosed):
		return peerClosed{}
	case err != nil:
		return readFailed{err: err}
	}
	return received{event: normalize(data, s.userID)}
}

func (s *Session) relay(event relayedEvent) {
	if _, err := s.hub.BroadcastJSON(s.familyID, event); err != nil {
		s.logger.Warn("Sync session: dropped event",
			"user_id", s.userID,
			"error", err.Error())
	}
}

// teardown runs on every path out of Open.
func (s *Session) teardown() {
	s.hub.Unregister(s.conn, s.familyID)
	_ = s.conn.Close()
	s.setState(StateClosed)

	if _, err := s.hub.BroadcastJSON(s.familyID, departedEvent{
		Type:    eventDisconnected,
		UserID:  s.userID,
		Message: "User " + s.userID + " disconnected",
	}); err != nil {
		s.logger.Warn("Sync session: failed to announce departure", "error", err.Error())
	}

	s.logger.Info("Sync session: disconnected",
		"family_id", s.familyID,
		"user_id", s.userID)
}

var emptyObject = json.RawMessage(`{}`)

// normalize interprets an inbound frame leniently. Missing or unusable
// fields fall back to defaults instead of rejecting the frame.
func normalize(data []byte, userID string) relayedEvent {
	event := relayedEvent{Type: eventUpdate, Data: emptyObject, UserID: userID}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return event
	}

	var typ string
	if err := json.Unmarshal(fields["type"], &typ); err == nil && typ != "" {
		event.Type = typ
	}
	if raw, ok := fields["data"]; ok && !isNull(raw) {
		event.Data = raw
	}
	if raw, ok := fields["timestamp"]; ok {
		event.Timestamp = raw
	}
	return event
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
