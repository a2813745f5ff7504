package engine

import "testing"

func TestShipDamageAt(t *testing.T) {
	ship := &Ship{Decks: []Deck{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}}

	t.Run("partial damage does not destroy", func(t *testing.T) {
		ship.DamageAt(0, 0)
		if !ship.Decks[0].Damaged {
			t.Error("Expected deck (0,0) to be damaged")
		}
		if ship.Destroyed {
			t.Error("Ship should not be destroyed with undamaged decks left")
		}
	})

	t.Run("repeated damage is idempotent", func(t *testing.T) {
		ship.DamageAt(0, 0)
		ship.DamageAt(0, 0)
		if ship.Destroyed {
			t.Error("Re-damaging a deck must not count toward destruction")
		}
	})

	t.Run("missing coordinates change nothing", func(t *testing.T) {
		ship.DamageAt(9, 9)
		if ship.Decks[1].Damaged || ship.Decks[2].Damaged {
			t.Error("Damage at a foreign cell must not touch other decks")
		}
	})

	t.Run("all decks damaged destroys", func(t *testing.T) {
		ship.DamageAt(1, 0)
		ship.DamageAt(2, 0)
		if !ship.Destroyed {
			t.Error("Expected ship to be destroyed after every deck was hit")
		}
	})
}

func TestShipSnapshot(t *testing.T) {
	ship := &Ship{Decks: []Deck{{X: 3, Y: 4}}}
	snap := ship.Snapshot()

	snap.Decks[0].Damaged = true
	if ship.Decks[0].Damaged {
		t.Error("Snapshot must not share deck storage with the ship")
	}

	ship.DamageAt(3, 4)
	if !ship.Destroyed {
		t.Error("Expected single-deck ship to be destroyed after one hit")
	}
	if snap.Destroyed {
		t.Error("Snapshot taken before the hit must stay undestroyed")
	}
}

func TestBoardPopulate(t *testing.T) {
	fleet := []*Ship{
		{Decks: []Deck{{X: 0, Y: 0}, {X: 0, Y: 1}}},
		{Decks: []Deck{{X: 5, Y: 5}}},
	}

	var board Board
	board.Populate(fleet)

	if !board.Occupied(0, 0) || !board.Occupied(0, 1) || !board.Occupied(5, 5) {
		t.Error("Expected every deck cell to be occupied")
	}
	if board.Occupied(1, 1) {
		t.Error("Cell without a deck should not be occupied")
	}

	t.Run("rebuild discards prior occupancy", func(t *testing.T) {
		board.Populate([]*Ship{{Decks: []Deck{{X: 9, Y: 9}}}})
		if board.Occupied(0, 0) {
			t.Error("Old occupancy should be gone after rebuild")
		}
		if !board.Occupied(9, 9) {
			t.Error("New occupancy missing after rebuild")
		}
	})

	t.Run("out of range lookups miss", func(t *testing.T) {
		coords := [][2]int{{-1, 0}, {0, -1}, {GridSize, 0}, {0, GridSize}, {100, 100}}
		for _, c := range coords {
			if board.Occupied(c[0], c[1]) {
				t.Errorf("Out-of-range cell (%d,%d) reported occupied", c[0], c[1])
			}
		}
	})

	t.Run("out of range decks are skipped", func(t *testing.T) {
		var b Board
		b.Populate([]*Ship{{Decks: []Deck{{X: -1, Y: 3}, {X: 2, Y: 3}}}})
		if !b.Occupied(2, 3) {
			t.Error("In-range deck should populate the board")
		}
	})
}

func TestShipQueries(t *testing.T) {
	ship := &Ship{Decks: []Deck{{X: 1, Y: 1}, {X: 1, Y: 2}}}

	if ship.DeckCount() != 2 {
		t.Errorf("Expected deck count 2, got %d", ship.DeckCount())
	}
	if !ship.HasDeckAt(1, 2) {
		t.Error("Expected ship to own (1,2)")
	}
	if ship.HasDeckAt(2, 1) {
		t.Error("Ship should not own (2,1)")
	}
}
