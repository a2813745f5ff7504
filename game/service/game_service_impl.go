package service

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"

	"github.com/seafight/server/game/engine"
	"github.com/seafight/server/game/registry"
	"github.com/seafight/server/game/session"
)

// gameServiceImpl implements the GameService interface.
type gameServiceImpl struct {
	registry  *registry.Registry
	directory *session.Directory
	notifier  Notifier

	// rng picks the first-turn holder; rand.Rand is not safe for
	// concurrent use, so creation sites hold rngMu.
	rng   *rand.Rand
	rngMu sync.Mutex
}

// NewGameService creates the matchmaking service. A nil rng lets each
// session seed its own source; tests inject one to force orderings.
func NewGameService(reg *registry.Registry, dir *session.Directory, notifier Notifier, rng *rand.Rand) GameService {
	return &gameServiceImpl{
		registry:  reg,
		directory: dir,
		notifier:  notifier,
		rng:       rng,
	}
}

// Connected greets a fresh connection with its server-assigned id.
func (s *gameServiceImpl) Connected(connID string) {
	s.notifier.Send(connID, EventWelcome, WelcomePayload{ConnectionID: connID})
}

// Register inserts the player or reports the name conflict, then
// broadcasts the updated roster.
func (s *gameServiceImpl) Register(connID, name string) {
	if err := s.registry.Register(connID, name); err != nil {
		s.notifier.Send(connID, EventNameTaken, nil)
		return
	}
	log.Printf("[LOBBY] registered %s as %q (%d online)", connID, name, s.registry.Count())
	s.broadcastRoster()
}

// Chat broadcasts a chat line under the sender's registered name.
func (s *gameServiceImpl) Chat(connID, message string) {
	p, ok := s.registry.Get(connID)
	if !ok {
		return
	}
	s.notifier.Broadcast(EventChat, ChatPayload{Name: p.Name, Message: message})
}

// Offer forwards a game offer unless either side is busy. Busy flags
// are not touched at offer time.
func (s *gameServiceImpl) Offer(fromID, toID string) {
	from, ok := s.registry.Get(fromID)
	if !ok {
		s.notifier.Send(fromID, EventError, ErrorPayload{Message: "unknown player"})
		return
	}
	to, ok := s.registry.Get(toID)
	if !ok {
		s.notifier.Send(fromID, EventError, ErrorPayload{Message: "unknown player"})
		return
	}
	if from.Busy {
		s.notifier.Send(fromID, EventOfferBusySelf, nil)
		return
	}
	if to.Busy {
		s.notifier.Send(fromID, EventOfferBusyOpponent, nil)
		return
	}
	s.notifier.Send(toID, EventOffer, OfferPayload{
		FromName: from.Name,
		FromID:   from.ID,
		ToName:   to.Name,
	})
}

// Answer completes the handshake. An accepted offer reserves both
// players, creates the session, and announces it to both sides; a
// rejection notifies only the original offerer.
func (s *gameServiceImpl) Answer(offererID, answererID string, accepted bool) {
	offerer, ok := s.registry.Get(offererID)
	if !ok {
		s.notifier.Send(answererID, EventError, ErrorPayload{Message: "unknown player"})
		return
	}
	answerer, ok := s.registry.Get(answererID)
	if !ok {
		s.notifier.Send(answererID, EventError, ErrorPayload{Message: "unknown player"})
		return
	}

	if !accepted {
		s.notifier.Send(offererID, EventOfferAnswer, AnswerPayload{
			FromName: answerer.Name,
			ToName:   offerer.Name,
			Accepted: false,
		})
		return
	}

	if err := s.registry.ReservePair(offererID, answererID); err != nil {
		if errors.Is(err, registry.ErrUnknownPlayer) {
			s.notifier.Send(answererID, EventError, ErrorPayload{Message: "unknown player"})
		} else {
			s.notifier.Send(answererID, EventOfferBusyOpponent, nil)
		}
		return
	}

	sess := s.newSession([2]engine.PlayerRef{
		{ID: offerer.ID, Name: offerer.Name},
		{ID: answerer.ID, Name: answerer.Name},
	})
	s.directory.Add(sess)
	log.Printf("[MATCH] session %s created: %q vs %q", sess.ID(), offerer.Name, answerer.Name)

	s.notifier.SendMany([]string{answererID, offererID}, EventOfferAnswer, AnswerPayload{
		FromName:  offerer.Name,
		ToName:    answerer.Name,
		Accepted:  true,
		SessionID: sess.ID(),
	})
	s.broadcastRoster()
}

func (s *gameServiceImpl) newSession(players [2]engine.PlayerRef) *engine.Session {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return engine.NewSession(session.NewID(), players, s.rng)
}

// SubmitFleet builds the player's board. When the submission completes
// the pair, both sides learn who moves first. Unknown session ids are
// a silent no-op.
func (s *gameServiceImpl) SubmitFleet(sessionID, playerID string, ships []ShipPlacement) {
	sess, err := s.directory.Get(sessionID)
	if err != nil {
		return
	}
	out := sess.SubmitFleet(playerID, buildFleet(ships))
	if out.AllReady {
		s.notifier.SendMany(out.PlayerIDs[:], EventGameStart, GameStartPayload{
			FirstTurnID:   out.FirstTurnID,
			FirstTurnName: out.FirstTurnName,
		})
	}
}

func buildFleet(ships []ShipPlacement) []*engine.Ship {
	fleet := make([]*engine.Ship, 0, len(ships))
	for _, placement := range ships {
		decks := make([]engine.Deck, 0, len(placement.Decks))
		for _, d := range placement.Decks {
			decks = append(decks, engine.Deck{X: d.X, Y: d.Y})
		}
		fleet = append(fleet, &engine.Ship{Decks: decks})
	}
	return fleet
}

// Move resolves a shot and tells each side what happened from their
// own perspective.
func (s *gameServiceImpl) Move(sessionID, playerID string, x, y int) {
	sess, err := s.directory.Get(sessionID)
	if err != nil {
		return
	}
	out := sess.Move(playerID, x, y)
	if !out.Applied {
		return
	}
	shot := ShotPayload{X: x, Y: y}
	if out.Hit {
		s.notifier.Send(out.MoverID, EventHit, shot)
		s.notifier.Send(out.OpponentID, EventOpponentHit, shot)
		return
	}
	s.notifier.Send(out.MoverID, EventMiss, shot)
	s.notifier.Send(out.OpponentID, EventOpponentMiss, shot)
}

// ResolveTurn runs the destruction/victory check for the caller. A
// destroyed ship is reported to the caller only, from their
// perspective; a decided match is torn down and announced to both.
func (s *gameServiceImpl) ResolveTurn(sessionID, playerID string, x, y int) {
	sess, err := s.directory.Get(sessionID)
	if err != nil {
		return
	}
	out := sess.ResolveTurn(playerID, x, y)

	if out.ShipDestroyed {
		payload := ShipDestroyedPayload{
			Ship:      out.Ship,
			DeckCount: out.DeckCount,
			LiveShips: out.LiveShips,
		}
		if out.OwnerID == playerID {
			s.notifier.Send(playerID, EventShipDestroyed, payload)
		} else {
			s.notifier.Send(playerID, EventOpponentShipDestroyed, payload)
		}
	}

	if out.Win {
		refs := sess.Players()
		ids := []string{refs[0].ID, refs[1].ID}
		s.notifier.SendMany(ids, EventVictory, VictoryPayload{
			SessionID: out.SessionID,
			WinnerID:  out.WinnerID,
		})
		s.directory.Remove(out.SessionID)
		s.registry.SetBusy(refs[0].ID, false)
		s.registry.SetBusy(refs[1].ID, false)
		log.Printf("[MATCH] session %s won by %s", out.SessionID, out.WinnerID)
		s.broadcastRoster()
	}
}

// Abort tears down the caller's session, if any, and re-broadcasts the
// roster either way.
func (s *gameServiceImpl) Abort(connID string) {
	if sess, ok := s.directory.FindByConn(connID); ok {
		s.abortSession(connID, sess)
	}
	s.broadcastRoster()
}

// Disconnect aborts any active session, removes the player from the
// registry, and re-broadcasts the roster.
func (s *gameServiceImpl) Disconnect(connID string) {
	if sess, ok := s.directory.FindByConn(connID); ok {
		s.abortSession(connID, sess)
	}
	s.registry.Remove(connID)
	s.broadcastRoster()
}

func (s *gameServiceImpl) abortSession(connID string, sess *engine.Session) {
	refs := sess.Players()
	s.registry.SetBusy(refs[0].ID, false)
	s.registry.SetBusy(refs[1].ID, false)

	name := ""
	if p, ok := s.registry.Get(connID); ok {
		name = p.Name
	} else if me := pick(refs, connID); me != nil {
		name = me.Name
	}
	if opp, ok := sess.Opponent(connID); ok {
		s.notifier.Send(opp.ID, EventOpponentAbort, AbortPayload{Name: name})
	}
	s.directory.Remove(sess.ID())
	log.Printf("[MATCH] session %s aborted by %s", sess.ID(), connID)
}

func pick(refs [2]engine.PlayerRef, id string) *engine.PlayerRef {
	for i := range refs {
		if refs[i].ID == id {
			return &refs[i]
		}
	}
	return nil
}

func (s *gameServiceImpl) broadcastRoster() {
	s.notifier.Broadcast(EventPlayers, s.registry.Snapshot())
}

// Players returns a roster snapshot.
func (s *gameServiceImpl) Players() []registry.Player {
	return s.registry.Snapshot()
}

// Sessions returns read-only summaries of all live sessions.
func (s *gameServiceImpl) Sessions() []SessionView {
	sessions := s.directory.List()
	views := make([]SessionView, 0, len(sessions))
	for _, sess := range sessions {
		views = append(views, viewOf(sess))
	}
	return views
}

// Session returns the summary of one live session.
func (s *gameServiceImpl) Session(id string) (SessionView, error) {
	sess, err := s.directory.Get(id)
	if err != nil {
		return SessionView{}, fmt.Errorf("session %s: %w", id, err)
	}
	return viewOf(sess), nil
}

func viewOf(sess *engine.Session) SessionView {
	return SessionView{
		ID:          sess.ID(),
		Players:     sess.Players(),
		Phase:       sess.Phase(),
		TurnID:      sess.TurnID(),
		FirstTurnID: sess.FirstTurnID(),
		WinnerID:    sess.WinnerID(),
	}
}
