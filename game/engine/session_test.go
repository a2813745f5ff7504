package engine

import (
	"math/rand"
	"testing"
)

var testPlayers = [2]PlayerRef{
	{ID: "conn-a", Name: "alice"},
	{ID: "conn-b", Name: "bob"},
}

// newTestSession returns a session where conn-a holds the first turn.
func newTestSession(t *testing.T) *Session {
	t.Helper()
	for seed := int64(0); seed < 64; seed++ {
		s := NewSession("sess-1", testPlayers, rand.New(rand.NewSource(seed)))
		if s.FirstTurnID() == "conn-a" {
			return s
		}
	}
	t.Fatal("No seed produced conn-a as first-turn holder")
	return nil
}

func singleDeckFleet(x, y int) []*Ship {
	return []*Ship{{Decks: []Deck{{X: x, Y: y}}}}
}

func TestNewSession(t *testing.T) {
	t.Run("first turn holder is one of the players", func(t *testing.T) {
		s := NewSession("s", testPlayers, nil)
		if s.FirstTurnID() != "conn-a" && s.FirstTurnID() != "conn-b" {
			t.Errorf("Unexpected first-turn holder %q", s.FirstTurnID())
		}
		if s.TurnID() != s.FirstTurnID() {
			t.Error("Turn holder should start at the first-turn holder")
		}
	})

	t.Run("both orderings are reachable", func(t *testing.T) {
		seen := map[string]bool{}
		for seed := int64(0); seed < 64; seed++ {
			s := NewSession("s", testPlayers, rand.New(rand.NewSource(seed)))
			seen[s.FirstTurnID()] = true
		}
		if !seen["conn-a"] || !seen["conn-b"] {
			t.Errorf("Expected both players to be pickable, got %v", seen)
		}
	})

	t.Run("starts placing", func(t *testing.T) {
		s := NewSession("s", testPlayers, nil)
		if s.Phase() != PhasePlacing {
			t.Errorf("Expected phase %q, got %q", PhasePlacing, s.Phase())
		}
		if s.WinnerID() != "" {
			t.Error("New session should have no winner")
		}
	})

	t.Run("player lookups", func(t *testing.T) {
		s := NewSession("s", testPlayers, nil)
		if !s.HasPlayer("conn-a") || !s.HasPlayer("conn-b") {
			t.Error("Expected both players to be members")
		}
		if s.HasPlayer("conn-x") {
			t.Error("Stranger should not be a member")
		}
		opp, ok := s.Opponent("conn-a")
		if !ok || opp.ID != "conn-b" {
			t.Errorf("Expected opponent conn-b, got %+v ok=%v", opp, ok)
		}
		if _, ok := s.Opponent("conn-x"); ok {
			t.Error("Stranger should have no opponent")
		}
	})
}

func TestSubmitFleet(t *testing.T) {
	t.Run("one fleet is not ready", func(t *testing.T) {
		s := newTestSession(t)
		out := s.SubmitFleet("conn-a", singleDeckFleet(0, 0))
		if !out.Accepted {
			t.Error("Expected submission to be accepted")
		}
		if out.AllReady {
			t.Error("One fleet must not make the session ready")
		}
		if s.Phase() != PhasePlacing {
			t.Error("Session should still be placing")
		}
	})

	t.Run("empty fleet does not count", func(t *testing.T) {
		s := newTestSession(t)
		s.SubmitFleet("conn-a", singleDeckFleet(0, 0))
		out := s.SubmitFleet("conn-b", nil)
		if out.AllReady {
			t.Error("Empty fleet must not make the session ready")
		}
	})

	t.Run("both fleets start the game", func(t *testing.T) {
		s := newTestSession(t)
		s.SubmitFleet("conn-a", singleDeckFleet(0, 0))
		out := s.SubmitFleet("conn-b", singleDeckFleet(1, 1))
		if !out.AllReady {
			t.Fatal("Expected session to become ready")
		}
		if out.PlayerIDs != [2]string{"conn-a", "conn-b"} {
			t.Errorf("Unexpected player ids %v", out.PlayerIDs)
		}
		if out.FirstTurnID != "conn-a" || out.FirstTurnName != "alice" {
			t.Errorf("Unexpected first turn %q/%q", out.FirstTurnID, out.FirstTurnName)
		}
		if s.Phase() != PhaseInProgress {
			t.Errorf("Expected phase %q, got %q", PhaseInProgress, s.Phase())
		}
	})

	t.Run("resubmission in placing replaces the fleet", func(t *testing.T) {
		s := newTestSession(t)
		s.SubmitFleet("conn-b", singleDeckFleet(0, 0))
		out := s.SubmitFleet("conn-b", singleDeckFleet(5, 5))
		if !out.Accepted {
			t.Fatal("Expected resubmission during placing to be accepted")
		}
		s.SubmitFleet("conn-a", singleDeckFleet(1, 1))

		if mv := s.Move("conn-a", 0, 0); mv.Hit {
			t.Error("Old board position should be empty after resubmission")
		}
	})

	t.Run("resubmission after start is ignored", func(t *testing.T) {
		s := newTestSession(t)
		s.SubmitFleet("conn-a", singleDeckFleet(0, 0))
		s.SubmitFleet("conn-b", singleDeckFleet(1, 1))

		out := s.SubmitFleet("conn-b", singleDeckFleet(9, 9))
		if out.Accepted {
			t.Error("Fleet resubmission after start must be rejected")
		}
		if mv := s.Move("conn-a", 1, 1); !mv.Hit {
			t.Error("Original board must survive an ignored resubmission")
		}
	})

	t.Run("unknown player is ignored", func(t *testing.T) {
		s := newTestSession(t)
		if out := s.SubmitFleet("conn-x", singleDeckFleet(0, 0)); out.Accepted {
			t.Error("Fleet from a non-member must be ignored")
		}
	})

	t.Run("submitted damage flags are cleared", func(t *testing.T) {
		s := newTestSession(t)
		poisoned := []*Ship{{Decks: []Deck{{X: 2, Y: 2, Damaged: true}}, Destroyed: true}}
		s.SubmitFleet("conn-a", poisoned)
		s.SubmitFleet("conn-b", singleDeckFleet(0, 0))

		// conn-b's fleet is whole: a resolve by conn-a must not find a win yet.
		out := s.ResolveTurn("conn-a", 2, 2)
		if out.Win {
			t.Error("Pre-damaged placement payload must not decide the match")
		}
	})
}

func TestMove(t *testing.T) {
	started := func(t *testing.T) *Session {
		t.Helper()
		s := newTestSession(t)
		s.SubmitFleet("conn-a", singleDeckFleet(0, 0))
		s.SubmitFleet("conn-b", []*Ship{{Decks: []Deck{{X: 4, Y: 4}, {X: 4, Y: 5}}}})
		return s
	}

	t.Run("hit keeps the turn", func(t *testing.T) {
		s := started(t)
		out := s.Move("conn-a", 4, 4)
		if !out.Applied || !out.Hit {
			t.Fatalf("Expected an applied hit, got %+v", out)
		}
		if out.MoverID != "conn-a" || out.OpponentID != "conn-b" {
			t.Errorf("Unexpected participants %q vs %q", out.MoverID, out.OpponentID)
		}
		if s.TurnID() != "conn-a" {
			t.Error("Turn must not pass on a hit")
		}
	})

	t.Run("miss passes the turn", func(t *testing.T) {
		s := started(t)
		out := s.Move("conn-a", 9, 9)
		if !out.Applied || out.Hit {
			t.Fatalf("Expected an applied miss, got %+v", out)
		}
		if out.NextTurnID != "conn-b" || s.TurnID() != "conn-b" {
			t.Error("Turn should pass to the opponent on a miss")
		}
	})

	t.Run("out of turn is a no-op", func(t *testing.T) {
		s := started(t)
		out := s.Move("conn-b", 0, 0)
		if out.Applied {
			t.Error("Move out of turn must be ignored")
		}
		if s.TurnID() != "conn-a" {
			t.Error("Turn holder must be unchanged")
		}
		// The target ship is untouched.
		if res := s.ResolveTurn("conn-b", 0, 0); res.ShipDestroyed {
			t.Error("Ignored move must not damage a ship")
		}
	})

	t.Run("out of range resolves as miss", func(t *testing.T) {
		s := started(t)
		out := s.Move("conn-a", -3, 40)
		if !out.Applied || out.Hit {
			t.Fatalf("Expected out-of-range shot to miss, got %+v", out)
		}
		if s.TurnID() != "conn-b" {
			t.Error("Out-of-range miss should pass the turn")
		}
	})

	t.Run("after game over is a no-op", func(t *testing.T) {
		s := started(t)
		s.Move("conn-a", 4, 4)
		s.Move("conn-a", 4, 5)
		s.ResolveTurn("conn-a", 4, 5)
		if s.Phase() != PhaseOver {
			t.Fatal("Expected the match to be over")
		}
		if out := s.Move("conn-a", 0, 0); out.Applied {
			t.Error("Moves after game over must be ignored")
		}
	})
}

func TestResolveTurn(t *testing.T) {
	started := func(t *testing.T) *Session {
		t.Helper()
		s := newTestSession(t)
		s.SubmitFleet("conn-a", []*Ship{
			{Decks: []Deck{{X: 0, Y: 0}}},
			{Decks: []Deck{{X: 2, Y: 0}}},
		})
		s.SubmitFleet("conn-b", []*Ship{
			{Decks: []Deck{{X: 4, Y: 4}, {X: 4, Y: 5}}},
			{Decks: []Deck{{X: 7, Y: 7}}},
		})
		return s
	}

	t.Run("intact ship reports nothing", func(t *testing.T) {
		s := started(t)
		s.Move("conn-a", 4, 4)
		out := s.ResolveTurn("conn-a", 4, 4)
		if out.ShipDestroyed {
			t.Error("Half-damaged ship must not be reported destroyed")
		}
		if out.Win {
			t.Error("No victory with ships afloat")
		}
	})

	t.Run("mover resolves the opponent ship", func(t *testing.T) {
		s := started(t)
		s.Move("conn-a", 4, 4)
		s.Move("conn-a", 4, 5)
		out := s.ResolveTurn("conn-a", 4, 5)
		if !out.ShipDestroyed {
			t.Fatal("Expected the two-deck ship to be reported destroyed")
		}
		if out.OwnerID != "conn-b" {
			t.Errorf("Destroyed ship should belong to conn-b, got %q", out.OwnerID)
		}
		if out.DeckCount != 2 {
			t.Errorf("Expected deck count 2, got %d", out.DeckCount)
		}
		if out.LiveShips != 0 {
			t.Errorf("Expected no surviving two-deckers, got %d", out.LiveShips)
		}
		if out.Ship == nil || !out.Ship.Destroyed {
			t.Error("Outcome should carry a destroyed ship snapshot")
		}
		if out.Win {
			t.Error("conn-b still has a single-decker afloat")
		}
	})

	t.Run("victim resolves their own ship", func(t *testing.T) {
		s := started(t)
		s.Move("conn-a", 4, 4)
		s.Move("conn-a", 4, 5)
		// conn-a holds the turn, so conn-b resolving examines conn-b's fleet.
		out := s.ResolveTurn("conn-b", 4, 5)
		if !out.ShipDestroyed || out.OwnerID != "conn-b" {
			t.Errorf("Victim-side resolve should report their own ship, got %+v", out)
		}
	})

	t.Run("live ship count tracks the class", func(t *testing.T) {
		s := started(t)
		s.Move("conn-a", 7, 7)
		out := s.ResolveTurn("conn-a", 7, 7)
		if !out.ShipDestroyed || out.DeckCount != 1 {
			t.Fatalf("Expected single-decker destruction, got %+v", out)
		}
		if out.LiveShips != 0 {
			t.Errorf("conn-b has no other single-deckers, got %d", out.LiveShips)
		}
	})

	t.Run("victory fires exactly once", func(t *testing.T) {
		s := started(t)
		s.Move("conn-a", 4, 4)
		s.Move("conn-a", 4, 5)
		s.Move("conn-a", 7, 7)
		out := s.ResolveTurn("conn-a", 7, 7)
		if !out.Win {
			t.Fatal("Expected victory once the whole fleet is gone")
		}
		if out.WinnerID != "conn-a" {
			t.Errorf("Expected conn-a to win, got %q", out.WinnerID)
		}
		if out.SessionID != "sess-1" {
			t.Errorf("Win outcome should carry the session id, got %q", out.SessionID)
		}
		if s.WinnerID() != "conn-a" || s.Phase() != PhaseOver {
			t.Error("Session should record the victor and finish")
		}

		again := s.ResolveTurn("conn-a", 7, 7)
		if again.Win || again.ShipDestroyed {
			t.Error("A finished session must not re-announce anything")
		}
	})

	t.Run("no-op during placing", func(t *testing.T) {
		s := newTestSession(t)
		s.SubmitFleet("conn-a", singleDeckFleet(0, 0))
		out := s.ResolveTurn("conn-a", 0, 0)
		if out.ShipDestroyed || out.Win {
			t.Error("Resolve before the match starts must be a no-op")
		}
	})
}
