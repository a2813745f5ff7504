package service

import (
	"github.com/seafight/server/game/engine"
)

// Event names delivered through the Notifier. These are the client
// contract; renaming one breaks deployed clients.
const (
	EventWelcome               = "welcome"
	EventPlayers               = "players"
	EventNameTaken             = "name_taken"
	EventChat                  = "chat"
	EventOffer                 = "offer"
	EventOfferBusySelf         = "offer_busy_self"
	EventOfferBusyOpponent     = "offer_busy_opponent"
	EventOfferAnswer           = "offer_answer"
	EventGameStart             = "game_start"
	EventHit                   = "hit"
	EventMiss                  = "miss"
	EventOpponentHit           = "opponent_hit"
	EventOpponentMiss          = "opponent_miss"
	EventShipDestroyed         = "ship_destroyed"
	EventOpponentShipDestroyed = "opponent_ship_destroyed"
	EventVictory               = "victory"
	EventOpponentAbort         = "opponent_abort"
	EventError                 = "error"
)

// DeckPlacement is one cell of a ship in a placement payload.
type DeckPlacement struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ShipPlacement is one ship of a placement payload. The payload format
// is the decode boundary: a sequence of ships, each a sequence of deck
// cells.
type ShipPlacement struct {
	Decks []DeckPlacement `json:"decks"`
}

// WelcomePayload tells a fresh connection its server-assigned id.
type WelcomePayload struct {
	ConnectionID string `json:"connection_id"`
}

// ChatPayload is a broadcast chat line.
type ChatPayload struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// OfferPayload is a forwarded game offer.
type OfferPayload struct {
	FromName string `json:"from_name"`
	FromID   string `json:"from_id"`
	ToName   string `json:"to_name"`
}

// AnswerPayload reports the outcome of an offer. SessionID is empty on
// rejection.
type AnswerPayload struct {
	FromName  string `json:"from_name"`
	ToName    string `json:"to_name"`
	Accepted  bool   `json:"accepted"`
	SessionID string `json:"session_id,omitempty"`
}

// GameStartPayload announces that both fleets are placed.
type GameStartPayload struct {
	FirstTurnID   string `json:"first_turn_id"`
	FirstTurnName string `json:"first_turn_name"`
}

// ShotPayload carries the coordinates of a resolved shot.
type ShotPayload struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ShipDestroyedPayload reports a fallen ship: its snapshot, its size
// class, and how many ships of that class its owner still has afloat.
type ShipDestroyedPayload struct {
	Ship      *engine.Ship `json:"ship"`
	DeckCount int          `json:"deck_count"`
	LiveShips int          `json:"live_ships"`
}

// VictoryPayload ends a match.
type VictoryPayload struct {
	SessionID string `json:"session_id"`
	WinnerID  string `json:"winner_id"`
}

// AbortPayload names the player who walked away.
type AbortPayload struct {
	Name string `json:"name"`
}

// ErrorPayload reports a per-request failure to its originator.
type ErrorPayload struct {
	Message string `json:"message"`
}

// SessionView is a read-only session summary for the admin API.
type SessionView struct {
	ID          string              `json:"id"`
	Players     [2]engine.PlayerRef `json:"players"`
	Phase       engine.Phase        `json:"phase"`
	TurnID      string              `json:"turn_id"`
	FirstTurnID string              `json:"first_turn_id"`
	WinnerID    string              `json:"winner_id,omitempty"`
}
