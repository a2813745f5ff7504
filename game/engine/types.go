package engine

// GridSize is the fixed board dimension. Clients lay out their fleets
// on the same grid, so changing this is a protocol change.
const GridSize = 10

// Deck is a single cell of a ship. Coordinates are fixed at placement
// time; only Damaged mutates.
type Deck struct {
	X       int  `json:"x"`
	Y       int  `json:"y"`
	Damaged bool `json:"damaged"`
}

// Ship is an ordered run of decks. A ship is destroyed once every deck
// has been damaged.
type Ship struct {
	Decks     []Deck `json:"decks"`
	Destroyed bool   `json:"destroyed"`
}

// DeckCount returns the ship's size class (1-4 in the standard fleet).
func (s *Ship) DeckCount() int {
	return len(s.Decks)
}

// HasDeckAt reports whether the ship owns the cell (x, y).
func (s *Ship) HasDeckAt(x, y int) bool {
	for i := range s.Decks {
		if s.Decks[i].X == x && s.Decks[i].Y == y {
			return true
		}
	}
	return false
}

// DamageAt marks the deck at (x, y) damaged and recomputes the
// destroyed flag. Damaging an already-damaged deck is idempotent.
func (s *Ship) DamageAt(x, y int) {
	for i := range s.Decks {
		if s.Decks[i].X == x && s.Decks[i].Y == y {
			s.Decks[i].Damaged = true
		}
	}
	destroyed := true
	for i := range s.Decks {
		if !s.Decks[i].Damaged {
			destroyed = false
			break
		}
	}
	s.Destroyed = destroyed
}

// Snapshot returns a deep copy safe to hand outside the session lock.
func (s *Ship) Snapshot() *Ship {
	decks := make([]Deck, len(s.Decks))
	copy(decks, s.Decks)
	return &Ship{Decks: decks, Destroyed: s.Destroyed}
}

// Board is one player's occupancy grid. It is rebuilt from the fleet on
// every fleet submission and never mutated afterward; damage lives on
// the ships.
type Board struct {
	cells [GridSize][GridSize]bool
}

// Occupied reports whether (x, y) holds a ship deck. Out-of-range
// coordinates are never occupied, so stray shots resolve as misses.
func (b *Board) Occupied(x, y int) bool {
	if x < 0 || x >= GridSize || y < 0 || y >= GridSize {
		return false
	}
	return b.cells[x][y]
}

// Populate rebuilds occupancy from the fleet, discarding prior state.
// Decks outside the grid are skipped.
func (b *Board) Populate(fleet []*Ship) {
	b.cells = [GridSize][GridSize]bool{}
	for _, ship := range fleet {
		for _, deck := range ship.Decks {
			if deck.X < 0 || deck.X >= GridSize || deck.Y < 0 || deck.Y >= GridSize {
				continue
			}
			b.cells[deck.X][deck.Y] = true
		}
	}
}

// PlayerRef identifies one of a session's two players.
type PlayerRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Phase of a session's lifecycle. There are no backward transitions.
type Phase string

const (
	PhasePlacing    Phase = "placing"
	PhaseInProgress Phase = "in_progress"
	PhaseOver       Phase = "over"
)

// FleetOutcome reports the result of a fleet submission.
type FleetOutcome struct {
	Accepted      bool
	AllReady      bool
	PlayerIDs     [2]string
	FirstTurnID   string
	FirstTurnName string
}

// MoveOutcome reports the result of a single shot. Applied is false
// when the shot was ignored (out of turn, or the game is over).
type MoveOutcome struct {
	Applied    bool
	Hit        bool
	X          int
	Y          int
	MoverID    string
	OpponentID string
	NextTurnID string // set when the turn passed to the opponent
}

// TurnOutcome reports the destruction/victory check that follows a
// shot. Ship is a snapshot of the fallen ship, if any.
type TurnOutcome struct {
	ShipDestroyed bool
	OwnerID       string // whose ship fell
	Ship          *Ship
	DeckCount     int
	LiveShips     int // surviving ships of the same class for the owner

	Win       bool
	SessionID string
	WinnerID  string
}
