// Package table runs bridge tables: one engine.GameState per table, bots in
// the local seats, and an archive for finished hands.
package table

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ZygmuntJakub/bridge/internal/engine"
	"github.com/ZygmuntJakub/bridge/internal/player"
	"github.com/ZygmuntJakub/bridge/internal/store"
)

var (
	ErrTableNotFound  = errors.New("table not found")
	ErrSeatNotRemote  = errors.New("seat is played by a bot")
	ErrHandInProgress = errors.New("hand in progress")
)

// Archive stores finished hands.
type Archive interface {
	SaveHand(ctx context.Context, rec *store.HandRecord) error
}

type Options struct {
	Params  engine.GameParams
	Bots    [engine.NumSeats]string // bot kind per seat, see player.FactoryFor
	Seed    int64                   // 0 seeds from the clock
	Logger  *zap.Logger // nil discards logs
	Archive Archive
}

type Table struct {
	ID      uuid.UUID
	Created time.Time

	mu       sync.Mutex
	game     *engine.GameState
	bots     [engine.NumSeats]player.Player
	logger   *zap.Logger
	archive  Archive
	archived bool
}

func New(opts Options) (*Table, error) {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	t := &Table{
		ID:      uuid.New(),
		Created: time.Now(),
		logger:  logger,
		archive: opts.Archive,
	}
	t.game = engine.NewGame(opts.Params, rng, LogObserver{Logger: logger, TableID: t.ID})
	for s := range t.bots {
		factory, err := player.FactoryFor(opts.Bots[s])
		if err != nil {
			return nil, fmt.Errorf("seat %s: %w", engine.Seat(s), err)
		}
		t.bots[s] = factory(t.game.Players[s].Name, rng)
	}
	return t, nil
}

// StartHand deals a new hand and lets the bots act until a remote seat is
// due or the hand is over.
func (t *Table) StartHand(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.newHand(); err != nil {
		return err
	}
	if _, err := t.game.Deal(); err != nil {
		return err
	}
	return t.advance(ctx)
}

// StartDealtHand is StartHand with a predetermined deal.
func (t *Table) StartDealtHand(ctx context.Context, hands [engine.NumSeats][]engine.Card) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.newHand(); err != nil {
		return err
	}
	if err := t.game.DealHands(hands); err != nil {
		return err
	}
	return t.advance(ctx)
}

func (t *Table) newHand() error {
	switch t.game.Phase {
	case engine.PhaseAuction, engine.PhasePlay:
		return ErrHandInProgress
	}
	t.game.NewHand()
	t.archived = false
	return nil
}

// PlaceCall applies a call from a remote seat.
func (t *Table) PlaceCall(ctx context.Context, seat engine.Seat, bid engine.Bid) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.checkRemote(seat); err != nil {
		return err
	}
	if err := t.game.PlaceCall(seat, bid); err != nil {
		return err
	}
	return t.advance(ctx)
}

// PlayCard plays card from seat's hand. For the dummy the declarer's seat
// must be remote.
func (t *Table) PlayCard(ctx context.Context, seat engine.Seat, card engine.Card) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.checkRemote(t.game.Controller(seat)); err != nil {
		return err
	}
	if err := t.game.PlayCard(seat, card); err != nil {
		return err
	}
	return t.advance(ctx)
}

func (t *Table) checkRemote(seat engine.Seat) error {
	if !seat.Valid() {
		return fmt.Errorf("invalid seat %d", int(seat))
	}
	if t.game.Players[seat].Role != engine.RoleRemote {
		return fmt.Errorf("%w: %s", ErrSeatNotRemote, seat)
	}
	return nil
}

// advance lets local seats act until a remote seat is due, then archives a
// finished hand.
func (t *Table) advance(ctx context.Context) error {
	g := t.game
	for !g.HandOver() {
		seat, _ := g.ToAct()
		ctrl := g.Controller(seat)
		if g.Players[ctrl].Role == engine.RoleRemote {
			return nil
		}
		bot := t.bots[ctrl]
		switch g.Phase {
		case engine.PhaseAuction:
			bid, err := bot.ChooseCall(g.Hand(seat), g.LegalCalls(seat), g.Auction)
			if err != nil {
				return fmt.Errorf("%s chooses a call: %w", bot.Name(), err)
			}
			if err := g.PlaceCall(seat, bid); err != nil {
				return fmt.Errorf("%s calls %s: %w", bot.Name(), bid, err)
			}
		case engine.PhasePlay:
			card, err := bot.ChooseCard(g.Hand(seat), g.LegalCards(seat), g.Play)
			if err != nil {
				return fmt.Errorf("%s chooses a card: %w", bot.Name(), err)
			}
			if err := g.PlayCard(seat, card); err != nil {
				return fmt.Errorf("%s plays %s: %w", bot.Name(), card.ShortName(), err)
			}
		}
	}
	t.archiveHand(ctx)
	return nil
}

// archiveHand saves the finished hand. The save outlives the caller's
// context: a client that hangs up after its last move still gets the hand
// archived.
func (t *Table) archiveHand(ctx context.Context) {
	if t.archive == nil || t.archived {
		return
	}
	t.archived = true
	rec := t.record()
	if err := t.archive.SaveHand(context.WithoutCancel(ctx), rec); err != nil {
		t.logger.Error("failed to archive hand", zap.String("table", t.ID.String()), zap.Error(err))
		return
	}
	t.logger.Debug("hand archived", zap.String("table", t.ID.String()), zap.String("hand", rec.ID.String()))
}

func (t *Table) record() *store.HandRecord {
	g := t.game
	rec := &store.HandRecord{
		TableID: t.ID,
		Number:  g.HandsPlayed,
		Dealer:  g.Auction.Dealer(),
		Calls:   g.Auction.History(),
	}
	if res, ok := g.AuctionResult(); ok {
		declarer := res.Declarer
		rec.Contract = res.Contract.String()
		rec.Declarer = &declarer
		rec.Tally = g.TricksTally()
		rec.Plays = g.Play.History()
	}
	return rec
}

// Hand returns seat's current cards.
func (t *Table) Hand(seat engine.Seat) []engine.Card {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.game.Hand(seat)
}

// LegalCalls returns seat's legal calls, nil when seat is not on call.
func (t *Table) LegalCalls(seat engine.Seat) []engine.Bid {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.game.LegalCalls(seat)
}

// LegalCards returns the cards seat may play, nil when it is not seat's turn.
func (t *Table) LegalCards(seat engine.Seat) []engine.Card {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.game.LegalCards(seat)
}

func (t *Table) Tally() engine.Tally {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.game.TricksTally()
}

// HandsPlayed returns the number of finished hands.
func (t *Table) HandsPlayed() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.game.HandsPlayed
}
