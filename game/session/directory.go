package session

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/seafight/server/game/engine"
)

var ErrSessionNotFound = errors.New("session not found")

// NewID generates a fresh session identifier.
func NewID() string {
	return uuid.NewString()
}

// Directory is the collection of live sessions. All methods are safe
// for concurrent use.
type Directory struct {
	mu       sync.RWMutex
	sessions map[string]*engine.Session
	byConn   map[string]string // connection id -> session id
}

// NewDirectory creates an empty directory.
func NewDirectory() *Directory {
	return &Directory{
		sessions: make(map[string]*engine.Session),
		byConn:   make(map[string]string),
	}
}

// Add registers a session and indexes both participants.
func (d *Directory) Add(s *engine.Session) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.sessions[s.ID()] = s
	for _, ref := range s.Players() {
		d.byConn[ref.ID] = s.ID()
	}
}

// Get returns the session with the given id.
func (d *Directory) Get(id string) (*engine.Session, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	s, ok := d.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// FindByConn returns the session containing the given connection.
func (d *Directory) FindByConn(connID string) (*engine.Session, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	id, ok := d.byConn[connID]
	if !ok {
		return nil, false
	}
	s, ok := d.sessions[id]
	return s, ok
}

// Remove deregisters the session and its connection index entries.
// Absent ids are a no-op.
func (d *Directory) Remove(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	s, ok := d.sessions[id]
	if !ok {
		return
	}
	for _, ref := range s.Players() {
		if d.byConn[ref.ID] == id {
			delete(d.byConn, ref.ID)
		}
	}
	delete(d.sessions, id)
}

// List returns all live sessions in unspecified order.
func (d *Directory) List() []*engine.Session {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]*engine.Session, 0, len(d.sessions))
	for _, s := range d.sessions {
		out = append(out, s)
	}
	return out
}

// Count returns the number of live sessions.
func (d *Directory) Count() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.sessions)
}
