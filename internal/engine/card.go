package engine

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Card represents a playing card. Cards are plain values; equality is structural.
type Card struct {
	Suit Suit
	Rank Rank
}

// Valid reports whether c is one of the 52 cards.
func (c Card) Valid() bool { return c.Suit.valid() && c.Rank.valid() }

// ShortName returns rank followed by suit letter, e.g. "AS" or "10H".
func (c Card) ShortName() string { return c.Rank.Short() + c.Suit.Letter() }

// String returns the long display form, e.g. "Ace of Spades".
func (c Card) String() string { return c.Rank.String() + " of " + c.Suit.String() }

// Compare orders cards by rank within a suit and by suit precedence across
// suits. Trick resolution does not use the cross-suit part.
func (c Card) Compare(o Card) int {
	if c.Suit != o.Suit {
		return int(c.Suit) - int(o.Suit)
	}
	return int(c.Rank) - int(o.Rank)
}

// Beats reports whether c outranks o in the same suit.
func (c Card) Beats(o Card) bool { return c.Suit == o.Suit && c.Rank > o.Rank }

// ParseCard parses a short name such as "AS", "10h" or "Q♥".
func ParseCard(text string) (Card, error) {
	t := strings.TrimSpace(text)
	if len(t) < 2 {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidCardText, text)
	}
	// the suit is the last rune; symbols are multi-byte
	runes := []rune(t)
	suit, ok := parseSuit(string(runes[len(runes)-1]))
	if !ok {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidCardText, text)
	}
	rank, ok := parseRank(string(runes[:len(runes)-1]))
	if !ok {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidCardText, text)
	}
	return Card{Suit: suit, Rank: rank}, nil
}

func parseRank(text string) (Rank, bool) {
	switch strings.ToUpper(text) {
	case "J":
		return Jack, true
	case "Q":
		return Queen, true
	case "K":
		return King, true
	case "A":
		return Ace, true
	case "T":
		return Ten, true
	}
	n, err := strconv.Atoi(text)
	if err != nil || !Rank(n).valid() || n > 10 {
		return 0, false
	}
	return Rank(n), true
}

// MustParseCard is ParseCard for literals known to be valid.
func MustParseCard(text string) Card {
	c, err := ParseCard(text)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Card) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d/%d", ErrInvalidCardText, c.Suit, c.Rank)
	}
	return []byte(c.ShortName()), nil
}

func (c *Card) UnmarshalText(b []byte) error {
	v, err := ParseCard(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// SortHand orders cards for display: by suit precedence, then rank, both descending.
func SortHand(cards []Card) {
	sort.Slice(cards, func(i, j int) bool { return cards[i].Compare(cards[j]) > 0 })
}

func indexOfCard(cards []Card, target Card) (int, bool) {
	for i, c := range cards {
		if c == target {
			return i, true
		}
	}
	return -1, false
}

func hasCardOfSuit(hand []Card, s Suit) bool {
	for _, c := range hand {
		if c.Suit == s {
			return true
		}
	}
	return false
}

func removeCard(hand []Card, idx int) []Card {
	out := make([]Card, 0, len(hand)-1)
	out = append(out, hand[:idx]...)
	return append(out, hand[idx+1:]...)
}
