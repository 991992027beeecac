package player

import (
	"math/rand"

	"github.com/ZygmuntJakub/bridge/internal/engine"
)

// PointCountBot bids from high card points and shape and plays the cheapest
// card that takes the trick.
type PointCountBot struct {
	BotName string
}

func NewPointCountBot(name string, _ *rand.Rand) Player {
	if name == "" {
		name = "PointCountBot"
	}
	return &PointCountBot{BotName: name}
}

func (b *PointCountBot) Name() string { return b.BotName }

func (b *PointCountBot) ChooseCall(hand []engine.Card, legal []engine.Bid, auction *engine.Auction) (engine.Bid, error) {
	if len(legal) == 0 {
		return engine.Bid{}, ErrNoLegalOptions
	}
	var want engine.Bid
	if auction != nil {
		want = chooseCall(hand, auction)
	} else {
		want = OpeningBid(hand)
	}
	for _, l := range legal {
		if l == want {
			return want, nil
		}
	}
	for _, l := range legal {
		if l == engine.Pass {
			return l, nil
		}
	}
	return legal[0], nil
}

// chooseCall bids once per auction: open, respond to partner when the
// opponents are silent, or compete over the opponents' bid. A doubled
// opponent contract is left to partner.
func chooseCall(hand []engine.Card, a *engine.Auction) engine.Bid {
	top, _, ok := a.HighestBid()
	if !ok {
		return OpeningBid(hand)
	}
	me := a.CurrentBidder()
	var partnerBid engine.Bid
	opponentsBid := false
	for _, c := range a.History() {
		if !c.Bid.IsNormal() {
			continue
		}
		switch c.Seat {
		case me:
			return engine.Pass
		case me.Partner():
			partnerBid = c.Bid
		default:
			opponentsBid = true
		}
	}
	switch {
	case partnerBid.IsNormal() && !opponentsBid:
		return ResponseBid(hand, partnerBid)
	case opponentsBid && !partnerBid.IsNormal():
		if a.DoubleStatus() != engine.Undoubled {
			return engine.Pass
		}
		return CompetitiveBid(hand, top)
	}
	return engine.Pass
}

// OpeningBid picks a first-seat opening: 12+ HCP to open, 1NT with a
// balanced 15-17, 2NT with a balanced 20-21, a five-card major, else the
// longer minor with diamonds on equal length.
func OpeningBid(hand []engine.Card) engine.Bid {
	hcp := HighCardPoints(hand)
	lengths := SuitLengths(hand)
	balanced := IsBalanced(lengths)
	switch {
	case hcp < 12:
		return engine.Pass
	case balanced && hcp >= 15 && hcp <= 17:
		return engine.MustBid(1, engine.NoTrump)
	case balanced && hcp >= 20 && hcp <= 21:
		return engine.MustBid(2, engine.NoTrump)
	case lengths[engine.Spades] >= 5:
		return engine.MustBid(1, engine.StrainSpades)
	case lengths[engine.Hearts] >= 5:
		return engine.MustBid(1, engine.StrainHearts)
	case lengths[engine.Diamonds] >= lengths[engine.Clubs]:
		return engine.MustBid(1, engine.StrainDiamonds)
	}
	return engine.MustBid(1, engine.StrainClubs)
}

// ResponseBid answers partner's opening when the opponents have been silent.
// Raises of a major count shortness on top of high card points.
func ResponseBid(hand []engine.Card, partner engine.Bid) engine.Bid {
	hcp := HighCardPoints(hand)
	lengths := SuitLengths(hand)
	balanced := IsBalanced(lengths)
	if hcp < 6 {
		return engine.Pass
	}
	if partner.Strain == engine.NoTrump {
		if partner.Level != 1 || !balanced || hcp < 8 {
			return engine.Pass
		}
		if hcp <= 9 {
			return engine.MustBid(2, engine.NoTrump)
		}
		return engine.MustBid(3, engine.NoTrump)
	}
	if partner.Level != 1 {
		return engine.Pass
	}
	suit, _ := partner.Strain.Suit()
	if partner.Strain <= engine.StrainDiamonds {
		if lengths[engine.Hearts] >= 4 {
			return engine.MustBid(1, engine.StrainHearts)
		}
		if lengths[engine.Spades] >= 4 {
			return engine.MustBid(1, engine.StrainSpades)
		}
		if lengths[suit] >= 5 && hcp >= 10 {
			return engine.MustBid(3, partner.Strain)
		}
	} else if lengths[suit] >= 3 {
		support := hcp + DistributionPoints(lengths)
		switch {
		case support <= 10:
			return engine.MustBid(2, partner.Strain)
		case support <= 12:
			return engine.MustBid(3, partner.Strain)
		default:
			return engine.MustBid(4, partner.Strain)
		}
	}
	switch {
	case balanced && hcp <= 10:
		return engine.MustBid(1, engine.NoTrump)
	case balanced && hcp <= 12:
		return engine.MustBid(2, engine.NoTrump)
	case balanced && hcp <= 15:
		return engine.MustBid(3, engine.NoTrump)
	}
	return engine.Pass
}

// CompetitiveBid acts over an opponent's opening: 1NT with a balanced 15-18
// and a stopper in their suit, a takeout double with 13+ HCP and at most a
// doubleton in their suit, otherwise an overcall in a five-card suit with
// 8-16 HCP.
func CompetitiveBid(hand []engine.Card, opponent engine.Bid) engine.Bid {
	hcp := HighCardPoints(hand)
	lengths := SuitLengths(hand)
	suit, isSuit := opponent.Strain.Suit()
	notrump := engine.MustBid(1, engine.NoTrump)
	if isSuit && IsBalanced(lengths) && hcp >= 15 && hcp <= 18 &&
		HasStopper(hand, suit) && notrump.Higher(opponent) {
		return notrump
	}
	if isSuit && hcp >= 13 && lengths[suit] <= 2 {
		return engine.Double
	}
	if hcp < 8 || hcp > 16 {
		return engine.Pass
	}
	for _, s := range engine.Suits {
		if lengths[s] < 5 {
			continue
		}
		for level := opponent.Level; level <= opponent.Level+1 && level <= engine.MaxLevel; level++ {
			bid := engine.MustBid(level, engine.Strain(s))
			if bid.Higher(opponent) {
				return bid
			}
		}
	}
	return engine.Pass
}

func (b *PointCountBot) ChooseCard(hand []engine.Card, legal []engine.Card, play *engine.Play) (engine.Card, error) {
	if len(legal) == 0 {
		return engine.Card{}, ErrNoLegalOptions
	}
	if play == nil {
		return lowest(legal), nil
	}
	trick := play.CurrentTrick()
	trump, hasTrump := play.Trump()
	best, ok := engine.WinningPlay(trick, trump, hasTrump)
	if !ok {
		return openingLead(legal), nil
	}
	me := play.Turn()
	if best.Seat == me.Partner() {
		return lowest(legal), nil
	}
	led := trick[0].Card.Suit
	var cheapest engine.Card
	found := false
	for _, c := range legal {
		if !engine.Wins(c, best, led, trump, hasTrump) {
			continue
		}
		if !found || cheaper(c, cheapest, trump, hasTrump) {
			cheapest, found = c, true
		}
	}
	if found {
		return cheapest, nil
	}
	return lowest(legal), nil
}

// openingLead leads the top card of the longest suit held.
func openingLead(legal []engine.Card) engine.Card {
	lengths := SuitLengths(legal)
	long := legal[0].Suit
	for _, s := range engine.Suits {
		if lengths[s] > lengths[long] {
			long = s
		}
	}
	var top engine.Card
	for _, c := range legal {
		if c.Suit == long && c.Rank > top.Rank {
			top = c
		}
	}
	return top
}

func lowest(cards []engine.Card) engine.Card {
	low := cards[0]
	for _, c := range cards[1:] {
		if c.Rank < low.Rank || (c.Rank == low.Rank && c.Suit < low.Suit) {
			low = c
		}
	}
	return low
}

// cheaper prefers a non-trump over a trump, then the lower rank.
func cheaper(a, b engine.Card, trump engine.Suit, hasTrump bool) bool {
	aTrump := hasTrump && a.Suit == trump
	bTrump := hasTrump && b.Suit == trump
	if aTrump != bTrump {
		return !aTrump
	}
	return a.Rank < b.Rank
}
