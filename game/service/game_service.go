package service

import (
	"github.com/seafight/server/game/registry"
)

// Notifier is the outbound event boundary the core dispatches through.
// Delivery is fire-and-forget; implementations must not block on slow
// clients.
type Notifier interface {
	Send(connID, event string, data any)
	SendMany(connIDs []string, event string, data any)
	Broadcast(event string, data any)
}

// GameService handles every inbound client operation. Per-request
// failures are reported back to the initiating connection through the
// Notifier and never affect unrelated sessions.
type GameService interface {
	// Lobby
	Register(connID, name string)
	Chat(connID, message string)
	Offer(fromID, toID string)
	Answer(offererID, answererID string, accepted bool)

	// Match
	SubmitFleet(sessionID, playerID string, ships []ShipPlacement)
	Move(sessionID, playerID string, x, y int)
	ResolveTurn(sessionID, playerID string, x, y int)
	Abort(connID string)

	// Transport lifecycle
	Connected(connID string)
	Disconnect(connID string)

	// Read side for the admin API
	Players() []registry.Player
	Sessions() []SessionView
	Session(id string) (SessionView, error)
}
