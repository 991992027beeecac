package engine

import (
	"fmt"
	"strings"
)

// Suit represents a card suit. The numeric order is the suit precedence
// used outside of trick play: Spades > Hearts > Diamonds > Clubs.
type Suit int

const (
	Clubs    Suit = iota // ♣
	Diamonds             // ♦
	Hearts               // ♥
	Spades               // ♠
)

// Suits lists all suits from highest to lowest precedence.
var Suits = [4]Suit{Spades, Hearts, Diamonds, Clubs}

var suitLetters = [4]string{"C", "D", "H", "S"}
var suitNames = [4]string{"Clubs", "Diamonds", "Hearts", "Spades"}
var suitSymbols = [4]string{"♣", "♦", "♥", "♠"}

func (s Suit) valid() bool { return s >= Clubs && s <= Spades }

// Letter returns the one-letter code of the suit.
func (s Suit) Letter() string {
	if !s.valid() {
		return "?"
	}
	return suitLetters[s]
}

// Symbol returns the unicode suit symbol.
func (s Suit) Symbol() string {
	if !s.valid() {
		return "?"
	}
	return suitSymbols[s]
}

func (s Suit) String() string {
	if !s.valid() {
		return fmt.Sprintf("Suit(%d)", int(s))
	}
	return suitNames[s]
}

func parseSuit(text string) (Suit, bool) {
	switch strings.ToUpper(text) {
	case "C", "♣":
		return Clubs, true
	case "D", "♦":
		return Diamonds, true
	case "H", "♥":
		return Hearts, true
	case "S", "♠":
		return Spades, true
	}
	return 0, false
}

// Rank represents a card rank, 2..14 with 14 being the Ace.
type Rank int

const (
	Two   Rank = 2
	Three Rank = 3
	Four  Rank = 4
	Five  Rank = 5
	Six   Rank = 6
	Seven Rank = 7
	Eight Rank = 8
	Nine  Rank = 9
	Ten   Rank = 10
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
	Ace   Rank = 14
)

func (r Rank) valid() bool { return r >= Two && r <= Ace }

// Short returns the rank as used in card short names ("2".."10", "J", "Q", "K", "A").
func (r Rank) Short() string {
	switch r {
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	}
	if r.valid() {
		return fmt.Sprintf("%d", int(r))
	}
	return "?"
}

func (r Rank) String() string {
	switch r {
	case Jack:
		return "Jack"
	case Queen:
		return "Queen"
	case King:
		return "King"
	case Ace:
		return "Ace"
	}
	return r.Short()
}

// Seat identifies one of the four positions at the table, in rotation order.
type Seat int

const (
	South Seat = iota
	West
	North
	East
)

// NumSeats is the number of seats at a bridge table.
const NumSeats = 4

var seatNames = [NumSeats]string{"South", "West", "North", "East"}

// Valid reports whether s is one of the four seats.
func (s Seat) Valid() bool { return s >= South && s <= East }

// Next returns the seat to the left, which acts after s.
func (s Seat) Next() Seat { return (s + 1) % NumSeats }

// Partner returns the seat opposite s.
func (s Seat) Partner() Seat { return (s + 2) % NumSeats }

// Partnership returns the partnership s belongs to.
func (s Seat) Partnership() Partnership { return Partnership(s % 2) }

func (s Seat) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Seat(%d)", int(s))
	}
	return seatNames[s]
}

// ParseSeat accepts a seat name ("North"), its initial ("N") or its index ("2").
func ParseSeat(text string) (Seat, error) {
	t := strings.TrimSpace(text)
	for i, name := range seatNames {
		if strings.EqualFold(t, name) || strings.EqualFold(t, name[:1]) || t == fmt.Sprint(i) {
			return Seat(i), nil
		}
	}
	return 0, fmt.Errorf("unknown seat %q", text)
}

func (s Seat) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid seat %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *Seat) UnmarshalText(b []byte) error {
	v, err := ParseSeat(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Partnership is one of the two pairs of opposite seats.
type Partnership int

const (
	NorthSouth Partnership = iota // seats 0 and 2
	EastWest                      // seats 1 and 3
)

func (p Partnership) String() string {
	if p == NorthSouth {
		return "North-South"
	}
	return "East-West"
}

// Role says who drives a seat.
type Role int

const (
	RoleLocal  Role = iota // an in-process bot
	RoleRemote             // an external client
)

func (r Role) String() string {
	if r == RoleRemote {
		return "remote"
	}
	return "local"
}

// ParseRole accepts "local" or "remote"; empty means local.
func ParseRole(text string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "", "local":
		return RoleLocal, nil
	case "remote":
		return RoleRemote, nil
	}
	return 0, fmt.Errorf("unknown role %q", text)
}

func (r Role) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// Player is the per-seat record kept by GameState.
type Player struct {
	Name string
	Role Role
	Hand []Card
}

// Phase represents the game phase.
type Phase int

const (
	PhaseInit         Phase = iota // init
	PhaseDeal                      // deal
	PhaseAuction                   // auction
	PhasePlay                      // play
	PhaseHandComplete              // hand complete
	PhasePassedOut                 // passed out
)

var phaseNames = [...]string{"init", "deal", "auction", "play", "hand complete", "passed out"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("Phase(%d)", int(p))
	}
	return phaseNames[p]
}

func (p Phase) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// GameParams parameterizes a table.
type GameParams struct {
	Names        [NumSeats]string
	Roles        [NumSeats]Role
	Dealer       Seat
	RotateDealer bool
}

// GameState is the root state container for one table.
type GameState struct {
	Phase   Phase
	Params  GameParams
	Dealer  Seat
	Players [NumSeats]Player

	Auction *Auction
	Play    *Play

	// HandsPlayed counts hands that reached HandComplete or PassedOut.
	HandsPlayed int

	rng      Shuffler
	observer Observer
}
