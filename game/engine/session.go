package engine

import (
	"math/rand"
	"sync"
	"time"
)

// participant is one player's in-session state. Fleet and board are
// owned exclusively by the session and reset on every fleet submission.
type participant struct {
	ref   PlayerRef
	fleet []*Ship
	board Board
}

func (p *participant) shipAt(x, y int) *Ship {
	for _, ship := range p.fleet {
		if ship.HasDeckAt(x, y) {
			return ship
		}
	}
	return nil
}

func (p *participant) liveShips(deckCount int) int {
	n := 0
	for _, ship := range p.fleet {
		if ship.DeckCount() == deckCount && !ship.Destroyed {
			n++
		}
	}
	return n
}

func (p *participant) aliveShips() int {
	n := 0
	for _, ship := range p.fleet {
		if !ship.Destroyed {
			n++
		}
	}
	return n
}

// Session is one authoritative match between exactly two players. All
// operations hold the session mutex; nothing outside the session may
// mutate its state.
type Session struct {
	id          string
	players     [2]*participant
	firstTurnID string
	turnID      string
	winnerID    string
	phase       Phase

	mu sync.Mutex
}

// NewSession creates a session between two players. The first-turn
// holder is chosen uniformly at random from rng; a nil rng falls back
// to a time-seeded source.
func NewSession(id string, players [2]PlayerRef, rng *rand.Rand) *Session {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s := &Session{
		id:    id,
		phase: PhasePlacing,
	}
	s.players[0] = &participant{ref: players[0]}
	s.players[1] = &participant{ref: players[1]}
	s.firstTurnID = players[rng.Intn(2)].ID
	s.turnID = s.firstTurnID
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Players returns both player references in creation order.
func (s *Session) Players() [2]PlayerRef {
	return [2]PlayerRef{s.players[0].ref, s.players[1].ref}
}

// HasPlayer reports whether the connection id belongs to this session.
func (s *Session) HasPlayer(id string) bool {
	return s.players[0].ref.ID == id || s.players[1].ref.ID == id
}

// Opponent returns the other player's reference.
func (s *Session) Opponent(id string) (PlayerRef, bool) {
	switch id {
	case s.players[0].ref.ID:
		return s.players[1].ref, true
	case s.players[1].ref.ID:
		return s.players[0].ref, true
	}
	return PlayerRef{}, false
}

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// TurnID returns the connection id of the current turn holder.
func (s *Session) TurnID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.turnID
}

// FirstTurnID returns the player chosen to move first at creation.
func (s *Session) FirstTurnID() string {
	return s.firstTurnID
}

// WinnerID returns the victor's connection id, or "" while the match
// is undecided.
func (s *Session) WinnerID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.winnerID
}

// SubmitFleet replaces the player's fleet and rebuilds their board
// occupancy from scratch. Damage flags on the submitted ships are
// cleared; a fresh fleet starts whole. Once both players hold a
// non-empty fleet the session moves to PhaseInProgress and the outcome
// carries the ready announcement. Submissions after the placing phase
// are ignored.
func (s *Session) SubmitFleet(playerID string, ships []*Ship) FleetOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out FleetOutcome
	if s.phase != PhasePlacing {
		return out
	}
	p := s.participant(playerID)
	if p == nil {
		return out
	}

	fleet := make([]*Ship, 0, len(ships))
	for _, ship := range ships {
		fresh := ship.Snapshot()
		for i := range fresh.Decks {
			fresh.Decks[i].Damaged = false
		}
		fresh.Destroyed = false
		fleet = append(fleet, fresh)
	}
	p.fleet = fleet
	p.board.Populate(fleet)
	out.Accepted = true

	if len(s.players[0].fleet) > 0 && len(s.players[1].fleet) > 0 {
		s.phase = PhaseInProgress
		out.AllReady = true
		out.PlayerIDs = [2]string{s.players[0].ref.ID, s.players[1].ref.ID}
		out.FirstTurnID = s.firstTurnID
		out.FirstTurnName = s.nameOf(s.firstTurnID)
	}
	return out
}

// Move resolves one shot at the opponent's board. Shots from anyone
// but the turn holder, or after the match is over, are ignored. A hit
// damages the matching deck and keeps the turn; a miss passes the turn
// to the opponent. Out-of-range coordinates never match an occupied
// cell and resolve as a miss.
func (s *Session) Move(playerID string, x, y int) MoveOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == PhaseOver || playerID != s.turnID {
		return MoveOutcome{}
	}
	opp := s.opponentOf(playerID)
	out := MoveOutcome{
		Applied:    true,
		X:          x,
		Y:          y,
		MoverID:    playerID,
		OpponentID: opp.ref.ID,
	}
	if opp.board.Occupied(x, y) {
		if ship := opp.shipAt(x, y); ship != nil {
			ship.DamageAt(x, y)
		}
		out.Hit = true
		return out
	}
	s.turnID = opp.ref.ID
	out.NextTurnID = opp.ref.ID
	return out
}

// ResolveTurn re-examines the ship owning (x, y) after a shot and
// reports it if fully destroyed, then evaluates victory. When the
// caller holds the turn the opponent's ship is examined (they just
// landed the hit); otherwise the caller's own. Victory is decided at
// most once per session: a finished session ignores further calls.
func (s *Session) ResolveTurn(playerID string, x, y int) TurnOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out TurnOutcome
	if s.phase != PhaseInProgress {
		return out
	}
	caller := s.participant(playerID)
	if caller == nil {
		return out
	}

	owner := caller
	if playerID == s.turnID {
		owner = s.opponentOf(playerID)
	}
	if ship := owner.shipAt(x, y); ship != nil && ship.Destroyed {
		out.ShipDestroyed = true
		out.OwnerID = owner.ref.ID
		out.Ship = ship.Snapshot()
		out.DeckCount = ship.DeckCount()
		out.LiveShips = owner.liveShips(ship.DeckCount())
	}

	// The earlier-indexed player wins a (not naturally reachable) tie.
	switch {
	case s.players[1].aliveShips() == 0:
		s.finish(s.players[0].ref.ID, &out)
	case s.players[0].aliveShips() == 0:
		s.finish(s.players[1].ref.ID, &out)
	}
	return out
}

func (s *Session) finish(winnerID string, out *TurnOutcome) {
	s.phase = PhaseOver
	s.winnerID = winnerID
	out.Win = true
	out.SessionID = s.id
	out.WinnerID = winnerID
}

func (s *Session) participant(id string) *participant {
	for _, p := range s.players {
		if p.ref.ID == id {
			return p
		}
	}
	return nil
}

// opponentOf assumes id belongs to the session.
func (s *Session) opponentOf(id string) *participant {
	if s.players[0].ref.ID == id {
		return s.players[1]
	}
	return s.players[0]
}

func (s *Session) nameOf(id string) string {
	if p := s.participant(id); p != nil {
		return p.ref.Name
	}
	return ""
}
