package engine

import (
	"fmt"
	"strings"
)

// BidKind distinguishes the four kinds of call.
type BidKind int

const (
	BidPass BidKind = iota
	BidNormal
	BidDouble
	BidRedouble
)

// Strain is the denomination of a normal bid. Its numeric order is the bidding
// order, and the four suits share their value with Suit.
type Strain int

const (
	StrainClubs    = Strain(Clubs)
	StrainDiamonds = Strain(Diamonds)
	StrainHearts   = Strain(Hearts)
	StrainSpades   = Strain(Spades)
	NoTrump        Strain = 4
)

// Strains lists the strains in bidding order.
var Strains = [5]Strain{StrainClubs, StrainDiamonds, StrainHearts, StrainSpades, NoTrump}

// Suit returns the trump suit named by the strain; ok is false for No-Trump.
func (s Strain) Suit() (Suit, bool) {
	if s == NoTrump {
		return 0, false
	}
	return Suit(s), true
}

func (s Strain) valid() bool { return s >= StrainClubs && s <= NoTrump }

// Letter returns the strain's text code: C, D, H, S or NT.
func (s Strain) Letter() string {
	if s == NoTrump {
		return "NT"
	}
	return Suit(s).Letter()
}

// Symbol returns the display form: a suit symbol or NT.
func (s Strain) Symbol() string {
	if s == NoTrump {
		return "NT"
	}
	return Suit(s).Symbol()
}

func (s Strain) String() string {
	if s == NoTrump {
		return "No Trump"
	}
	return Suit(s).String()
}

func parseStrain(text string) (Strain, bool) {
	if strings.EqualFold(text, "NT") || strings.EqualFold(text, "N") {
		return NoTrump, true
	}
	suit, ok := parseSuit(text)
	return Strain(suit), ok
}

// MaxLevel is the highest bid level.
const MaxLevel = 7

// Bid is one call in the auction. Level and Strain are only meaningful for
// BidNormal. The zero value is Pass.
type Bid struct {
	Kind   BidKind
	Level  int
	Strain Strain
}

var (
	Pass     = Bid{Kind: BidPass}
	Double   = Bid{Kind: BidDouble}
	Redouble = Bid{Kind: BidRedouble}
)

// NewBid returns the normal bid level/strain.
func NewBid(level int, strain Strain) (Bid, error) {
	if level < 1 || level > MaxLevel || !strain.valid() {
		return Bid{}, fmt.Errorf("%w: level %d strain %d", ErrInvalidBidText, level, strain)
	}
	return Bid{Kind: BidNormal, Level: level, Strain: strain}, nil
}

// MustBid is NewBid for literals known to be valid.
func MustBid(level int, strain Strain) Bid {
	b, err := NewBid(level, strain)
	if err != nil {
		panic(err)
	}
	return b
}

// IsNormal reports whether b names a level and strain.
func (b Bid) IsNormal() bool { return b.Kind == BidNormal }

// Valid reports whether b is one of the 38 canonical calls. Pass, Double and
// Redouble carry no level or strain.
func (b Bid) Valid() bool {
	switch b.Kind {
	case BidPass, BidDouble, BidRedouble:
		return b.Level == 0 && b.Strain == 0
	case BidNormal:
		return b.Level >= 1 && b.Level <= MaxLevel && b.Strain.valid()
	}
	return false
}

// ParseBid parses "Pass", "Double", "Redouble" or <level><strain>, ignoring
// case. Strains are C, D, H, S, NT or a suit symbol.
func ParseBid(text string) (Bid, error) {
	t := strings.TrimSpace(text)
	switch strings.ToLower(t) {
	case "pass":
		return Pass, nil
	case "double":
		return Double, nil
	case "redouble":
		return Redouble, nil
	}
	if len(t) < 2 || t[0] < '1' || t[0] > '7' {
		return Bid{}, fmt.Errorf("%w: %q", ErrInvalidBidText, text)
	}
	strain, ok := parseStrain(t[1:])
	if !ok {
		return Bid{}, fmt.Errorf("%w: %q", ErrInvalidBidText, text)
	}
	return Bid{Kind: BidNormal, Level: int(t[0] - '0'), Strain: strain}, nil
}

// MustParseBid is ParseBid for literals known to be valid.
func MustParseBid(text string) Bid {
	b, err := ParseBid(text)
	if err != nil {
		panic(err)
	}
	return b
}

// String returns the canonical text; ParseBid(b.String()) == b for every
// valid b.
func (b Bid) String() string {
	switch b.Kind {
	case BidPass:
		return "Pass"
	case BidDouble:
		return "Double"
	case BidRedouble:
		return "Redouble"
	}
	return fmt.Sprintf("%d%s", b.Level, b.Strain.Letter())
}

// Display is like String with suit symbols for normal bids.
func (b Bid) Display() string {
	if b.Kind != BidNormal {
		return b.String()
	}
	return fmt.Sprintf("%d%s", b.Level, b.Strain.Symbol())
}

// rankKey places every bid on one scale: Pass < Double < Redouble < normal
// bids, and normal bids by level then strain.
func (b Bid) rankKey() int {
	switch b.Kind {
	case BidPass:
		return 0
	case BidDouble:
		return 1
	case BidRedouble:
		return 2
	}
	return 3 + (b.Level-1)*len(Strains) + int(b.Strain)
}

// Compare returns a negative, zero or positive number as b is lower than,
// equal to or higher than o. Double and Redouble sort below every normal
// bid; auction legality never depends on that part of the order.
func (b Bid) Compare(o Bid) int { return b.rankKey() - o.rankKey() }

// Higher reports whether b ranks above o.
func (b Bid) Higher(o Bid) bool { return b.Compare(o) > 0 }

func (b Bid) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

func (b *Bid) UnmarshalText(text []byte) error {
	v, err := ParseBid(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// AllNormalBids returns the 35 normal bids in ascending order.
func AllNormalBids() []Bid {
	out := make([]Bid, 0, MaxLevel*len(Strains))
	for level := 1; level <= MaxLevel; level++ {
		for _, s := range Strains {
			out = append(out, Bid{Kind: BidNormal, Level: level, Strain: s})
		}
	}
	return out
}
