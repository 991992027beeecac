package engine

import (
	"fmt"
	"math/rand"
	"time"
)

var defaultNames = [NumSeats]string{"South", "West", "North", "East"}

// NewGame creates a table. A nil rng falls back to a time-seeded source; a
// nil observer disables events.
func NewGame(params GameParams, rng Shuffler, observer Observer) *GameState {
	for i := range params.Names {
		if params.Names[i] == "" {
			params.Names[i] = defaultNames[i]
		}
	}
	if !params.Dealer.Valid() {
		params.Dealer = South
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	gs := &GameState{
		Phase:    PhaseInit,
		Params:   params,
		Dealer:   params.Dealer,
		rng:      rng,
		observer: observer,
	}
	for i := range gs.Players {
		gs.Players[i] = Player{Name: params.Names[i], Role: params.Roles[i]}
	}
	return gs
}

// NewHand clears the previous hand and enters the deal phase. A hand that is
// still being bid or played is abandoned.
func (g *GameState) NewHand() {
	if g.Params.RotateDealer && (g.Phase == PhaseHandComplete || g.Phase == PhasePassedOut) {
		g.Dealer = g.Dealer.Next()
	}
	for i := range g.Players {
		g.Players[i].Hand = nil
	}
	g.Auction = nil
	g.Play = nil
	g.Phase = PhaseDeal
}

// Deal shuffles a fresh deck, gives 13 cards to each seat starting left of
// the dealer, and opens the auction.
func (g *GameState) Deal() ([NumSeats][]Card, error) {
	if g.Phase != PhaseDeal {
		return [NumSeats][]Card{}, ErrNotDealPhase
	}
	deck := NewDeck(g.rng)
	deck.Shuffle()
	hands, err := DealHands(deck, g.Dealer.Next())
	if err != nil {
		return hands, err
	}
	if deck.Count() != 0 || deck.Dealt() != DeckSize {
		invariant("deck holds %d cards after dealing %d", deck.Count(), deck.Dealt())
	}
	g.install(hands)
	return g.Hands(), nil
}

// DealHands installs a predetermined deal. The hands must partition the 52
// cards 13 apiece.
func (g *GameState) DealHands(hands [NumSeats][]Card) error {
	if g.Phase != PhaseDeal {
		return ErrNotDealPhase
	}
	seen := make(map[Card]bool, DeckSize)
	for s, hand := range hands {
		if len(hand) != HandSize {
			return fmt.Errorf("%w: %s has %d cards", ErrInvalidDeal, Seat(s), len(hand))
		}
		for _, c := range hand {
			if !c.Valid() {
				return fmt.Errorf("%w: bad card %d/%d", ErrInvalidDeal, c.Suit, c.Rank)
			}
			if seen[c] {
				return fmt.Errorf("%w: duplicate card %s", ErrInvalidDeal, c.ShortName())
			}
			seen[c] = true
		}
	}
	var copied [NumSeats][]Card
	for s := range hands {
		copied[s] = append([]Card(nil), hands[s]...)
	}
	g.install(copied)
	return nil
}

func (g *GameState) install(hands [NumSeats][]Card) {
	for s := range hands {
		SortHand(hands[s])
		g.Players[s].Hand = hands[s]
	}
	g.Auction = NewAuction(g.Dealer)
	g.Phase = PhaseAuction
	notify(g.observer, Event{Kind: EventHandDealt, Seat: g.Dealer})
}

// Hands returns a copy of every seat's current hand.
func (g *GameState) Hands() [NumSeats][]Card {
	var out [NumSeats][]Card
	for s := range g.Players {
		out[s] = g.Hand(Seat(s))
	}
	return out
}

// Hand returns a copy of seat's current hand.
func (g *GameState) Hand(seat Seat) []Card {
	if !seat.Valid() {
		return nil
	}
	return append([]Card(nil), g.Players[seat].Hand...)
}

// PlaceCall submits seat's call to the auction.
func (g *GameState) PlaceCall(seat Seat, bid Bid) error {
	if g.Phase != PhaseAuction {
		return ErrNotAuctionPhase
	}
	if err := g.Auction.PlaceCall(seat, bid); err != nil {
		return err
	}
	notify(g.observer, Event{Kind: EventCallPlaced, Seat: seat, Bid: bid})
	if !g.Auction.Resolved() {
		return nil
	}
	result, ok := g.Auction.Result()
	if !ok {
		g.Phase = PhasePassedOut
		g.HandsPlayed++
		notify(g.observer, Event{Kind: EventAuctionPassedOut, Seat: g.Dealer})
		return nil
	}
	g.Play = NewPlay(g.Hands(), result)
	g.Phase = PhasePlay
	notify(g.observer, Event{Kind: EventAuctionResolved, Seat: result.Declarer, Result: &result})
	return nil
}

// LegalCalls returns the calls seat may make now, or nil when it is not
// seat's turn to call.
func (g *GameState) LegalCalls(seat Seat) []Bid {
	if g.Phase != PhaseAuction || g.Auction.CurrentBidder() != seat {
		return nil
	}
	return g.Auction.LegalCalls()
}

// AuctionResult returns the contract, declarer, dummy and opening leader once
// the auction has produced a contract.
func (g *GameState) AuctionResult() (Result, bool) {
	if g.Auction == nil {
		return Result{}, false
	}
	return g.Auction.Result()
}

// PlayCard submits seat's card to the current trick.
func (g *GameState) PlayCard(seat Seat, card Card) error {
	if g.Phase != PhasePlay {
		return ErrNotPlayPhase
	}
	trick := g.Play.TrickIndex()
	winner, done, err := g.Play.PlayCard(seat, card)
	if err != nil {
		return err
	}
	g.Players[seat].Hand = g.Play.Hand(seat)
	notify(g.observer, Event{Kind: EventCardPlayed, Seat: seat, Card: card, Trick: trick})
	if !done {
		return nil
	}
	notify(g.observer, Event{Kind: EventTrickWon, Seat: winner, Trick: trick, Tally: g.Play.Tally()})
	if g.Play.Complete() {
		g.Phase = PhaseHandComplete
		g.HandsPlayed++
		notify(g.observer, Event{Kind: EventHandComplete, Tally: g.Play.Tally()})
	}
	return nil
}

// LegalCards returns the cards seat may play now, or nil when it is not
// seat's turn.
func (g *GameState) LegalCards(seat Seat) []Card {
	if g.Phase != PhasePlay {
		return nil
	}
	return g.Play.LegalCards(seat)
}

// CurrentTrick returns the plays of the trick in progress.
func (g *GameState) CurrentTrick() []PlayedCard {
	if g.Play == nil {
		return nil
	}
	return g.Play.CurrentTrick()
}

// LastTrickWinner returns the winner of the most recent completed trick.
func (g *GameState) LastTrickWinner() (Seat, bool) {
	if g.Play == nil {
		return 0, false
	}
	return g.Play.LastTrickWinner()
}

// TricksTally returns tricks won per partnership in the current hand.
func (g *GameState) TricksTally() Tally {
	if g.Play == nil {
		return Tally{}
	}
	return g.Play.Tally()
}

// ToAct returns the seat whose call or card is due.
func (g *GameState) ToAct() (Seat, bool) {
	switch g.Phase {
	case PhaseAuction:
		return g.Auction.CurrentBidder(), true
	case PhasePlay:
		return g.Play.Turn(), true
	}
	return 0, false
}

// Controller returns the seat that chooses seat's plays: the declarer plays
// for the dummy.
func (g *GameState) Controller(seat Seat) Seat {
	if g.Phase == PhasePlay && seat == g.Play.Dummy() {
		return g.Play.Declarer()
	}
	return seat
}

// HandOver reports whether the current hand has finished.
func (g *GameState) HandOver() bool {
	return g.Phase == PhaseHandComplete || g.Phase == PhasePassedOut
}
