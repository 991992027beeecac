package engine

import (
	"math/rand"
	"time"
)

// Shuffler is the source of randomness for a Deck. *rand.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// DeckSize is the number of cards in a full deck.
const DeckSize = 52

// HandSize is the number of cards each seat receives.
const HandSize = DeckSize / NumSeats

// Deck holds the undealt cards of one hand. Cards are drawn from the end.
type Deck struct {
	cards []Card
	dealt int
	rng   Shuffler
}

// NewDeck returns a full deck in canonical order. A nil rng falls back to a
// time-seeded source.
func NewDeck(rng Shuffler) *Deck {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	d := &Deck{rng: rng}
	d.Reset()
	return d
}

// Reset regenerates the 52 cards: Spades, Hearts, Diamonds, Clubs, each 2 through Ace.
func (d *Deck) Reset() {
	d.cards = make([]Card, 0, DeckSize)
	for _, s := range Suits {
		for r := Two; r <= Ace; r++ {
			d.cards = append(d.cards, Card{Suit: s, Rank: r})
		}
	}
	d.dealt = 0
}

// Shuffle permutes the remaining cards uniformly (Fisher-Yates).
func (d *Deck) Shuffle() {
	d.rng.Shuffle(len(d.cards), func(i, j int) { d.cards[i], d.cards[j] = d.cards[j], d.cards[i] })
}

// DealOne removes and returns the card at the draw end.
func (d *Deck) DealOne() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrDeckExhausted
	}
	c := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	d.dealt++
	return c, nil
}

// Count returns the number of cards left.
func (d *Deck) Count() int { return len(d.cards) }

// Dealt returns the number of cards drawn since the last Reset.
func (d *Deck) Dealt() int { return d.dealt }

// Cards returns a copy of the remaining cards in draw order (last is drawn first).
func (d *Deck) Cards() []Card { return append([]Card(nil), d.cards...) }

// DealHands drains the deck one card at a time, starting with first and
// moving clockwise. The deck must be full.
func DealHands(d *Deck, first Seat) ([NumSeats][]Card, error) {
	var hands [NumSeats][]Card
	for i := range hands {
		hands[i] = make([]Card, 0, HandSize)
	}
	seat := first
	for i := 0; i < DeckSize; i++ {
		c, err := d.DealOne()
		if err != nil {
			return hands, err
		}
		hands[seat] = append(hands[seat], c)
		seat = seat.Next()
	}
	for s := range hands {
		if len(hands[s]) != HandSize {
			invariant("seat %s holds %d cards after the deal", Seat(s), len(hands[s]))
		}
	}
	return hands, nil
}
