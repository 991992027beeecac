package engine

import (
	"fmt"
	"strings"
)

// DoubleStatus tracks whether the last normal bid has been doubled.
type DoubleStatus int

const (
	Undoubled DoubleStatus = iota
	Doubled
	Redoubled
)

func (d DoubleStatus) String() string {
	switch d {
	case Doubled:
		return "doubled"
	case Redoubled:
		return "redoubled"
	}
	return "undoubled"
}

func (d DoubleStatus) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// Contract is the final level and strain of an auction with its double status.
type Contract struct {
	Level   int
	Strain  Strain
	Doubled DoubleStatus
}

// Trump returns the trump suit; ok is false for No-Trump.
func (c Contract) Trump() (Suit, bool) { return c.Strain.Suit() }

// String returns e.g. "4H", "4SX" (doubled) or "3NTXX" (redoubled).
func (c Contract) String() string {
	return fmt.Sprintf("%d%s%s", c.Level, c.Strain.Letter(), strings.Repeat("X", int(c.Doubled)))
}

func (c Contract) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// Result is the outcome of a resolved auction that produced a contract.
type Result struct {
	Contract      Contract `json:"contract"`
	Declarer      Seat     `json:"declarer"`
	Dummy         Seat     `json:"dummy"`
	OpeningLeader Seat     `json:"opening_leader"`
}

// Call is one accepted entry in the auction history.
type Call struct {
	Seat Seat `json:"seat"`
	Bid  Bid  `json:"bid"`
}

// Auction is the bidding state machine of one hand.
type Auction struct {
	history        []Call
	dealer         Seat
	current        Seat
	lastNormal     Bid
	lastNormalSeat Seat
	hasNormal      bool
	doubleStatus   DoubleStatus
	resolved       bool
	result         *Result
}

// NewAuction opens an auction in which dealer calls first.
func NewAuction(dealer Seat) *Auction {
	return &Auction{dealer: dealer, current: dealer}
}

// Dealer returns the seat that called first.
func (a *Auction) Dealer() Seat { return a.dealer }

// CurrentBidder returns the seat whose call is due.
func (a *Auction) CurrentBidder() Seat { return a.current }

// History returns a copy of the accepted calls.
func (a *Auction) History() []Call { return append([]Call(nil), a.history...) }

// Resolved reports whether the auction has ended.
func (a *Auction) Resolved() bool { return a.resolved }

// PassedOut reports whether the auction ended with four passes.
func (a *Auction) PassedOut() bool { return a.resolved && a.result == nil }

// DoubleStatus returns the double status of the current highest bid.
func (a *Auction) DoubleStatus() DoubleStatus { return a.doubleStatus }

// HighestBid returns the last normal bid and who made it.
func (a *Auction) HighestBid() (Bid, Seat, bool) {
	return a.lastNormal, a.lastNormalSeat, a.hasNormal
}

// Result returns the final contract; ok is false while the auction is open
// or when it was passed out.
func (a *Auction) Result() (Result, bool) {
	if a.result == nil {
		return Result{}, false
	}
	return *a.result, true
}

// IsLegal reports whether the current bidder may make bid.
func (a *Auction) IsLegal(bid Bid) bool {
	if a.resolved || !bid.Valid() {
		return false
	}
	bidder := a.current.Partnership()
	switch bid.Kind {
	case BidPass:
		return true
	case BidNormal:
		return !a.hasNormal || bid.Higher(a.lastNormal)
	case BidDouble:
		return a.hasNormal && a.doubleStatus == Undoubled && a.lastNormalSeat.Partnership() != bidder
	case BidRedouble:
		return a.hasNormal && a.doubleStatus == Doubled && a.lastNormalSeat.Partnership() == bidder
	}
	return false
}

// LegalCalls returns every call the current bidder may make: Pass, then
// Double or Redouble when allowed, then the normal bids in ascending order.
func (a *Auction) LegalCalls() []Bid {
	if a.resolved {
		return nil
	}
	calls := []Bid{Pass}
	for _, b := range []Bid{Double, Redouble} {
		if a.IsLegal(b) {
			calls = append(calls, b)
		}
	}
	for _, b := range AllNormalBids() {
		if a.IsLegal(b) {
			calls = append(calls, b)
		}
	}
	return calls
}

// PlaceCall applies seat's call. A rejected call leaves the auction unchanged.
func (a *Auction) PlaceCall(seat Seat, bid Bid) error {
	if a.resolved {
		return ErrAuctionClosed
	}
	if seat != a.current {
		return fmt.Errorf("%w: %s to call, not %s", ErrOutOfTurn, a.current, seat)
	}
	if !a.IsLegal(bid) {
		return fmt.Errorf("%w: %s by %s", ErrIllegalCall, bid, seat)
	}
	a.history = append(a.history, Call{Seat: seat, Bid: bid})
	switch bid.Kind {
	case BidNormal:
		a.lastNormal = bid
		a.lastNormalSeat = seat
		a.hasNormal = true
		a.doubleStatus = Undoubled
	case BidDouble:
		a.doubleStatus = Doubled
	case BidRedouble:
		a.doubleStatus = Redoubled
	}
	a.current = a.current.Next()
	if a.complete() {
		a.resolve()
	}
	return nil
}

func (a *Auction) complete() bool {
	n := len(a.history)
	if n < 4 {
		return false
	}
	for _, c := range a.history[n-3:] {
		if c.Bid.Kind != BidPass {
			return false
		}
	}
	// either four opening passes or three passes after some action
	return n == 4 || a.hasNormal
}

func (a *Auction) resolve() {
	a.resolved = true
	if !a.hasNormal {
		return
	}
	declarer := a.lastNormalSeat
	side := declarer.Partnership()
	for _, c := range a.history {
		if c.Bid.Kind == BidNormal && c.Bid.Strain == a.lastNormal.Strain && c.Seat.Partnership() == side {
			declarer = c.Seat
			break
		}
	}
	a.result = &Result{
		Contract:      Contract{Level: a.lastNormal.Level, Strain: a.lastNormal.Strain, Doubled: a.doubleStatus},
		Declarer:      declarer,
		Dummy:         declarer.Partner(),
		OpeningLeader: declarer.Next(),
	}
}
