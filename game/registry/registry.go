// Package registry tracks the players connected to this process. It is
// the only process-wide mutable structure besides the session
// directory, and every connection goroutine contends on it.
package registry

import (
	"errors"
	"sync"
)

var (
	ErrNameTaken     = errors.New("name already registered")
	ErrUnknownPlayer = errors.New("unknown player")
	ErrPlayerBusy    = errors.New("player is busy")
)

// Player is a connected client known to the matchmaker. Busy is true
// while the player participates in an active session.
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Busy bool   `json:"busy"`
}

// Registry maps connection ids to players. All methods are safe for
// concurrent use; name uniqueness is decided under the registry lock,
// so a race between two identical registrations has exactly one winner.
type Registry struct {
	mu      sync.RWMutex
	players map[string]*Player
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		players: make(map[string]*Player),
	}
}

// Register inserts a new idle player. The name must not match any
// currently registered player (case-sensitive exact match).
func (r *Registry) Register(connID, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.players {
		if p.Name == name {
			return ErrNameTaken
		}
	}
	r.players[connID] = &Player{ID: connID, Name: name}
	return nil
}

// Remove deletes the player unconditionally; absent ids are a no-op.
func (r *Registry) Remove(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.players, connID)
}

// Get returns a copy of the player, if registered.
func (r *Registry) Get(connID string) (Player, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.players[connID]
	if !ok {
		return Player{}, false
	}
	return *p, true
}

// SetBusy toggles the busy flag; absent ids are a no-op.
func (r *Registry) SetBusy(connID string, busy bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.players[connID]; ok {
		p.Busy = busy
	}
}

// ReservePair atomically marks both players busy. It fails without
// side effects when either is missing (ErrUnknownPlayer) or already in
// a session (ErrPlayerBusy), which keeps a player out of two sessions
// even when two accepted offers race.
func (r *Registry) ReservePair(firstID, secondID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	first, ok := r.players[firstID]
	if !ok {
		return ErrUnknownPlayer
	}
	second, ok := r.players[secondID]
	if !ok {
		return ErrUnknownPlayer
	}
	if first.Busy || second.Busy {
		return ErrPlayerBusy
	}
	first.Busy = true
	second.Busy = true
	return nil
}

// Snapshot returns a consistent copy of all registered players. Order
// follows map iteration and is not stable.
func (r *Registry) Snapshot() []Player {
	r.mu.RLock()
	defer r.mu.RUnlock()

	players := make([]Player, 0, len(r.players))
	for _, p := range r.players {
		players = append(players, *p)
	}
	return players
}

// Count returns the number of registered players.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.players)
}
